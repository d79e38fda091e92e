package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Operation names recorded in the log.
const (
	OpFetchKey      = "fetch_key"
	OpIssueExcerpt  = "issue_excerpt"
	OpIssueBundle   = "issue_bundle"
	OpCheckExcerpt  = "check_excerpt"
	OpCheckPassword = "check_password"
)

// Entry represents a single audit log entry.
type Entry struct {
	Timestamp  string `json:"ts"`          // RFC3339 with microseconds.
	Operation  string `json:"op"`          // Operation name.
	IdentityFP string `json:"identity_fp"` // Fingerprint, never the raw identity.

	// Optional fields depending on operation.
	ArtifactID string `json:"artifact_id,omitempty"` // For issue_bundle.
	Matched    *bool  `json:"matched,omitempty"`     // For check operations.
	Error      string `json:"error,omitempty"`       // Set when the operation failed.
}

// Log appends entries to a JSON Lines file. A nil *Log, or one with an
// empty path, discards everything.
type Log struct {
	path string
	mu   sync.Mutex
}

// New returns a Log writing to path. An empty path disables logging.
func New(path string) *Log {
	return &Log{path: path}
}

// Path returns the log file path, or "" when logging is disabled.
func (l *Log) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Record appends an entry to the audit log.
// If writing fails the entry is dropped; operations never fail because of
// the audit log.
func (l *Log) Record(entry Entry) {
	if l == nil || l.path == "" {
		return
	}

	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format("2006-01-02T15:04:05.000000Z")
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(l.path), 0700); err != nil {
		return
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return
	}
	defer f.Close()

	_, _ = f.Write(append(data, '\n'))
}

// Bool returns a pointer to b, for Entry.Matched.
func Bool(b bool) *bool {
	return &b
}

// ReadEntries reads all entries from the audit log at path.
// Returns an empty slice if the log doesn't exist.
func ReadEntries(path string) ([]Entry, error) {
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
