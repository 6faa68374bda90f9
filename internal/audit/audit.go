package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oidcrypt/oidcrypt/internal/utils"
)

// Operation names.
const (
	OpAdd     = "add"
	OpPrint   = "print"
	OpRemove  = "remove"
	OpMigrate = "migrate"
	OpKeygen  = "keygen"
	OpAssert  = "assert"
	OpImport  = "import"
)

// Entry represents a single audit log entry.
type Entry struct {
	ID        string `json:"id"`
	Timestamp string `json:"ts"` // RFC3339 with microseconds.
	User      string `json:"user"`
	Host      string `json:"host,omitempty"`
	Operation string `json:"op"`
	Account   string `json:"account,omitempty"`

	// Optional fields depending on operation.
	Backend    string `json:"backend,omitempty"`
	Format     string `json:"format,omitempty"`      // Envelope format read or written.
	FromFormat string `json:"from_format,omitempty"` // For migrate.
	Version    string `json:"version,omitempty"`     // Producer version on the envelope.
	BackupPath string `json:"backup,omitempty"`      // For migrate.
	KeyID      string `json:"kid,omitempty"`         // For keygen.
	Thumbprint string `json:"thumbprint,omitempty"`  // For keygen.
	Forced     bool   `json:"forced,omitempty"`      // For add with --force.
}

var (
	mu      sync.Mutex
	logPath string
)

// Configure sets the audit log file. An empty path disables logging.
func Configure(path string) {
	mu.Lock()
	defer mu.Unlock()
	logPath = path
}

// LogPath returns the configured audit log path, or "" when disabled.
func LogPath() string {
	mu.Lock()
	defer mu.Unlock()
	return logPath
}

// NewEntry returns an entry for op with ID, user and host filled in.
func NewEntry(op string) Entry {
	id := utils.CurrentIdentity()
	return Entry{
		ID:        uuid.NewString(),
		User:      id.User,
		Host:      id.Host,
		Operation: op,
	}
}

// Log appends an entry to the audit log. Failures are ignored.
func Log(entry Entry) {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format("2006-01-02T15:04:05.000000Z")
	}

	mu.Lock()
	defer mu.Unlock()
	if logPath == "" {
		return
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0700); err != nil {
		return
	}
	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}
	_, _ = f.Write(append(data, '\n'))
}

// ReadEntries reads all entries from the audit log.
// Returns an empty slice if the log doesn't exist.
func ReadEntries() ([]Entry, error) {
	path := LogPath()
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return ParseEntries(data)
}

// ParseEntries parses JSON Lines data into audit entries.
// Malformed lines are silently skipped.
func ParseEntries(data []byte) ([]Entry, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var entries []Entry
	start := 0

	for i := 0; i <= len(data); i++ {
		if i == len(data) || data[i] == '\n' {
			line := data[start:i]
			start = i + 1

			if len(line) == 0 {
				continue
			}

			var entry Entry
			if err := json.Unmarshal(line, &entry); err != nil {
				continue
			}
			entries = append(entries, entry)
		}
	}

	return entries, nil
}
