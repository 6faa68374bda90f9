// Package audit provides an audit trail for oidcrypt operations.
//
// Every operation that touches stored secrets (add, print, remove, migrate,
// keygen, import, assert) is recorded as one JSON object per line in the file set
// by Configure, by default:
//
//	$XDG_DATA_HOME/oidcrypt/audit.jsonl
//
// Each entry contains:
//   - A random entry ID (UUID)
//   - Timestamp (RFC3339 with microseconds, UTC)
//   - System user and host
//   - Operation name and the account it applied to
//   - Operation-specific details (formats, versions, key IDs)
//
// Entries never contain passwords, plaintext or cipher text.
//
// # Usage
//
//	entry := audit.NewEntry(audit.OpMigrate)
//	entry.Account = "work"
//	entry.FromFormat = "hex"
//	audit.Log(entry)
//
// # Failure Handling
//
// Audit logging is best-effort. If logging fails (permissions, disk full,
// etc.), the operation continues without error.
//
// # Reading Logs
//
// ReadEntries parses the audit log. Malformed lines are skipped to handle
// partial writes.
package audit
