package cmd

import (
	"strings"
	"testing"

	"github.com/oidcrypt/oidcrypt/internal/version"
)

func TestVersionCommand(t *testing.T) {
	setupTestEnvironment(t, testPassword)

	output, err := runCLI(t, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.Contains(output, "oidcrypt "+version.Current) {
		t.Errorf("Expected version line, got: %s", output)
	}
	if !strings.Contains(output, version.MinBase64) {
		t.Errorf("Expected minimum base64 version, got: %s", output)
	}
}
