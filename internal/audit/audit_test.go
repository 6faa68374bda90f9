package audit

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

func withLogPath(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "audit.jsonl")
	old := LogPath()
	Configure(path)
	t.Cleanup(func() { Configure(old) })
	return path
}

func TestLog_CreatesFile(t *testing.T) {
	logPath := withLogPath(t)

	Log(Entry{User: "alice", Operation: OpAdd, Account: "work"})

	info, err := os.Stat(logPath)
	if os.IsNotExist(err) {
		t.Fatalf("Audit log file was not created")
	}
	if runtime.GOOS != "windows" && info.Mode().Perm() != 0600 {
		t.Errorf("Expected mode 0600, got %v", info.Mode().Perm())
	}
}

func TestLog_AppendsEntries(t *testing.T) {
	withLogPath(t)

	Log(Entry{User: "alice", Operation: OpAdd, Account: "work"})
	Log(Entry{User: "alice", Operation: OpPrint, Account: "work"})
	Log(Entry{User: "bob", Operation: OpRemove, Account: "home"})

	entries, err := ReadEntries()
	if err != nil {
		t.Fatalf("ReadEntries failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(entries))
	}

	wantOps := []string{OpAdd, OpPrint, OpRemove}
	for i, op := range wantOps {
		if entries[i].Operation != op {
			t.Errorf("Entry %d: expected op %q, got %q", i, op, entries[i].Operation)
		}
	}
}

func TestLog_FillsIDAndTimestamp(t *testing.T) {
	withLogPath(t)

	Log(Entry{Operation: OpMigrate})
	Log(Entry{Operation: OpMigrate})

	entries, err := ReadEntries()
	if err != nil {
		t.Fatalf("ReadEntries failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[0].ID == "" || entries[0].ID == entries[1].ID {
		t.Errorf("Expected distinct IDs, got %q and %q", entries[0].ID, entries[1].ID)
	}

	ts, err := time.Parse(time.RFC3339Nano, entries[0].Timestamp)
	if err != nil {
		t.Fatalf("Timestamp %q is not RFC3339: %v", entries[0].Timestamp, err)
	}
	if time.Since(ts) > time.Minute {
		t.Errorf("Timestamp %v is too old", ts)
	}
	if !strings.HasSuffix(entries[0].Timestamp, "Z") {
		t.Errorf("Expected UTC timestamp, got %s", entries[0].Timestamp)
	}
}

func TestLog_OmitsEmptyFields(t *testing.T) {
	logPath := withLogPath(t)

	Log(Entry{User: "alice", Operation: OpPrint, Account: "work"})

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("Failed to read audit log: %v", err)
	}
	for _, field := range []string{"from_format", "backup", "kid", "thumbprint", "forced"} {
		if strings.Contains(string(data), `"`+field+`"`) {
			t.Errorf("Expected %q to be omitted, got %s", field, data)
		}
	}
}

func TestLog_Disabled(t *testing.T) {
	old := LogPath()
	Configure("")
	defer Configure(old)

	// Must not panic or create anything.
	Log(Entry{Operation: OpAdd})

	entries, err := ReadEntries()
	if err != nil || entries != nil {
		t.Errorf("Expected no entries when disabled, got %v, %v", entries, err)
	}
}

func TestNewEntry(t *testing.T) {
	entry := NewEntry(OpKeygen)
	if entry.Operation != OpKeygen {
		t.Errorf("Expected op %q, got %q", OpKeygen, entry.Operation)
	}
	if len(entry.ID) != 36 {
		t.Errorf("Expected UUID ID, got %q", entry.ID)
	}
}

func TestParseEntries_ValidData(t *testing.T) {
	data := []byte(`{"id":"1","ts":"2024-01-15T10:30:00.123456Z","user":"alice","op":"add","account":"work"}
{"id":"2","ts":"2024-01-15T10:35:00.456789Z","user":"bob","op":"migrate","account":"home","from_format":"hex"}
`)

	entries, err := ParseEntries(data)
	if err != nil {
		t.Fatalf("ParseEntries failed: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[0].Account != "work" {
		t.Errorf("Expected first account work, got %s", entries[0].Account)
	}
	if entries[1].FromFormat != "hex" {
		t.Errorf("Expected from_format hex, got %s", entries[1].FromFormat)
	}
}

func TestParseEntries_SkipsMalformedLines(t *testing.T) {
	data := []byte(`{"ts":"2024-01-15T10:30:00.123456Z","user":"alice","op":"add"}
this is not valid json
{"ts":"2024-01-15T10:35:00.456789Z","user":"bob","op":"print"}
`)

	entries, err := ParseEntries(data)
	if err != nil {
		t.Fatalf("ParseEntries failed: %v", err)
	}

	if len(entries) != 2 {
		t.Errorf("Expected 2 valid entries (malformed should be skipped), got %d", len(entries))
	}
}

func TestParseEntries_EmptyData(t *testing.T) {
	entries, err := ParseEntries([]byte{})
	if err != nil {
		t.Fatalf("ParseEntries failed: %v", err)
	}

	if entries != nil {
		t.Errorf("Expected nil entries for empty data, got %v", entries)
	}
}
