package cmd

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/cipherlab/internal/ui"
	"github.com/PolarWolf314/cipherlab/internal/utils"
	"github.com/PolarWolf314/cipherlab/internal/workflows"
	"github.com/spf13/cobra"
)

var excerptReveal bool

func init() {
	excerptCmd.Flags().BoolVar(&excerptReveal, "reveal", false, "also print the plaintext and letter mapping")
}

func resetExcerptCommandState() {
	excerptReveal = false
}

var excerptCmd = &cobra.Command{
	Use:   "excerpt <id>",
	Short: "Print the enciphered excerpt assigned to an identity",
	Long: `Prints the same ciphertext the /get_text endpoint serves.

With --reveal the plaintext and the letter mapping are printed too, which
is handy when grading.

Examples:
  cipherlab excerpt 20250001
  cipherlab excerpt 20250001 --reveal`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting excerpt command")
		runner, err := loadRunner()
		if err != nil {
			return err
		}

		result, err := runner.IssueExcerpt(context.Background(), workflows.IssueExcerptOptions{Identity: args[0]})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if !excerptReveal {
			fmt.Fprintln(out, result.Ciphertext)
			return nil
		}

		fmt.Fprintln(out, ui.Muted.Sprint("ciphertext"))
		fmt.Fprintln(out, ui.Secret.Sprint(result.Ciphertext))
		fmt.Fprintln(out, ui.Muted.Sprint("plaintext"))
		fmt.Fprintln(out, ui.Secret.Sprint(result.Plaintext))
		fmt.Fprintln(out, ui.Muted.Sprint("mapping"))
		fmt.Fprintln(out, utils.FormatMapping(result.Mapping))
		return nil
	},
}
