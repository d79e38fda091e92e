// Package logger provides logging for cipherlab commands and the server.
//
// CLI output goes through Logger, whose verbosity is controlled by two flags:
//
//   - --verbose: Shows info and warning messages
//   - --debug: Shows all messages including debug details and errors
//
// Without flags only WarnfAlways messages are shown; user-facing results are
// printed by the commands themselves.
//
//	log := Logger{Verbose: verbose, Debug: debug}
//	log.Infof("Loaded %d excerpts", count)
//
// The HTTP server writes one structured JSON line per request with the
// logrus logger returned by NewAccessLogger. Identities never appear in
// those lines; Fingerprint produces a short tag instead.
package logger
