package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadInputFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "work.json")
	if err := os.WriteFile(path, []byte(`{"name":"work"}`), 0600); err != nil {
		t.Fatalf("Failed to write input: %v", err)
	}

	data, err := ReadInput(path)
	if err != nil {
		t.Fatalf("ReadInput failed: %v", err)
	}
	if string(data) != `{"name":"work"}` {
		t.Errorf("Unexpected content %q", data)
	}
}

func TestReadInputErrors(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty")
	if err := os.WriteFile(empty, nil, 0600); err != nil {
		t.Fatalf("Failed to write input: %v", err)
	}
	large := filepath.Join(dir, "large")
	if err := os.WriteFile(large, make([]byte, MaxInputBytes+1), 0600); err != nil {
		t.Fatalf("Failed to write input: %v", err)
	}

	tests := []struct {
		name string
		path string
		want string
	}{
		{"missing", filepath.Join(dir, "missing"), "failed to read"},
		{"empty", empty, "is empty"},
		{"too large", large, "larger than"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadInput(tt.path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}
