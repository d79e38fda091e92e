// Package utils provides shared helpers for the cipherlab command line.
//
// # String Utilities
//
//   - FormatMapping: renders a letter mapping as two aligned rows
//
// # I/O Utilities
//
//   - ReadStdin: reads piped data from standard input
//
// # Terminal Utilities
//
//   - ReadHidden: prompts for input without echoing it
//   - IsTerminal: checks whether stdin is a terminal
package utils
