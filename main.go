package main

import (
	"fmt"
	"os"

	"github.com/PolarWolf314/cipherlab/cmd"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cipherlab",
	Short: "cipherlab - per-participant cryptography challenges.",
	Long: `cipherlab hands every participant their own puzzles, derived from a numeric
identity: a substitution-enciphered excerpt and an AES-encrypted credential
bundle whose password they must crack.

Usage:
  cipherlab <command> [flags]

Available Commands:
  serve      Run the challenge HTTP server
  key        Print the bundle key for an identity
  excerpt    Print the enciphered excerpt for an identity
  bundle     Write an encrypted credential bundle
  decrypt    Open a bundle
  check      Check an excerpt or password guess
  solve      Decipher text with an identity's mapping
  config     Manage configuration
  log        View the audit log

Run 'cipherlab help <command>' for more details on a specific command.
`,
	SilenceErrors: true,
	SilenceUsage:  true,
	Run: func(c *cobra.Command, args []string) {
		fmt.Println("Welcome to cipherlab! Run 'cipherlab --help' to see available commands.")
	},
}

func init() {
	cmd.Attach(rootCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, cmd.Explain(err))
		os.Exit(1)
	}
}
