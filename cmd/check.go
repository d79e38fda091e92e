package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/PolarWolf314/cipherlab/internal/ui"
	"github.com/PolarWolf314/cipherlab/internal/utils"
	"github.com/PolarWolf314/cipherlab/internal/workflows"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check a guess against an identity's excerpt or password",
}

func init() {
	checkCmd.AddCommand(checkExcerptCmd)
	checkCmd.AddCommand(checkPasswordCmd)
}

var checkExcerptCmd = &cobra.Command{
	Use:   "excerpt <id> [text...]",
	Short: "Check a deciphered excerpt",
	Long: `Reports whether the text is exactly the identity's plaintext excerpt.
Remaining arguments are joined with spaces, so quoting is optional.

Examples:
  cipherlab check excerpt 20250001 "it was a dark and stormy night"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting check excerpt command")
		guess, err := guessFrom(args[1:], "Excerpt: ")
		if err != nil {
			return err
		}
		return runCheck(cmd, "excerpt", workflows.CheckOptions{Identity: args[0], Guess: guess})
	},
}

var checkPasswordCmd = &cobra.Command{
	Use:   "password <id> [guess]",
	Short: "Check a cracked password",
	Long: `Reports whether the guess is exactly the identity's password. When the
guess is omitted it is read from the terminal without echo.

Examples:
  cipherlab check password 20250001 letmein
  cipherlab check password 20250001`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting check password command")
		guess, err := guessFrom(args[1:], "Password: ")
		if err != nil {
			return err
		}
		return runCheck(cmd, "password", workflows.CheckOptions{Identity: args[0], Guess: guess})
	},
}

// guessFrom joins args, prompting on the terminal when there are none.
// An empty guess is passed through so the workflow reports it.
func guessFrom(args []string, prompt string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	if !utils.IsTerminal() {
		return "", nil
	}
	return utils.ReadHidden(prompt)
}

func runCheck(cmd *cobra.Command, kind string, opts workflows.CheckOptions) error {
	runner, err := loadRunner()
	if err != nil {
		return err
	}

	var result *workflows.CheckResult
	switch kind {
	case "excerpt":
		result, err = runner.CheckExcerpt(context.Background(), opts)
	default:
		result, err = runner.CheckPassword(context.Background(), opts)
	}
	if err != nil {
		return err
	}
	Logger.Debugf("Check %s matched=%t", kind, result.Matched)

	if result.Matched {
		fmt.Fprintln(cmd.OutOrStdout(), ui.Succeeded("Correct!"))
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), ui.Failed("Not quite, keep going"))
	return nil
}
