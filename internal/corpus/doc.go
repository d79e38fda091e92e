// Package corpus loads the static candidate data identities select from.
//
// Two sources make up a corpus:
//
//   - Excerpts: a JSON (or YAML) array of records, each with an "excerpt"
//     field. Records without the field are skipped.
//   - Passwords: a newline-delimited text file, one candidate per line.
//
// Order matters: selections index into the lists as loaded, so reordering a
// file changes which candidate every identity receives.
//
// Loader caches the first successful load for the life of the process.
// Failed loads are not cached, so a server recovers as soon as the files
// become readable again.
package corpus
