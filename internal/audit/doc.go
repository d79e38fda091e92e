// Package audit records an append-only trail of issued artifacts and checks.
//
// Every workflow (key fetch, excerpt issue, bundle issue, excerpt check,
// password check) writes one entry. Instructors use the trail to see who
// requested what and how many guesses a participant made.
//
// # Log Format
//
// The audit log is stored as JSON Lines (one JSON object per line). Each
// entry contains:
//   - Timestamp (RFC3339 with microseconds, UTC)
//   - Operation name
//   - Identity fingerprint (the raw identity is never written)
//   - Operation-specific details (artifact id, match result, error)
//
// # Usage
//
//	log := audit.New(settings.Audit.Path)
//	log.Record(audit.Entry{Operation: audit.OpCheckPassword, IdentityFP: fp, Matched: audit.Bool(ok)})
//
// # Failure Handling
//
// Audit logging is best-effort. If logging fails (permissions, disk full,
// etc.), the operation continues without error.
//
// # Reading Logs
//
// Use ReadEntries() to parse the audit log for display or analysis.
// Malformed entries are silently skipped to handle partial writes.
package audit
