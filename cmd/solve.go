package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/PolarWolf314/cipherlab/internal/utils"
	"github.com/PolarWolf314/cipherlab/internal/workflows"
	"github.com/spf13/cobra"
)

var solveCmd = &cobra.Command{
	Use:   "solve <id> [ciphertext...]",
	Short: "Decipher text with an identity's letter mapping",
	Long: `Undoes the identity's substitution cipher. Without ciphertext arguments
the text is read from stdin. Uppercase letters were dropped at
encipherment, so they cannot be recovered.

Examples:
  cipherlab solve 20250001 "qr fjh j rjdl"
  cipherlab excerpt 20250001 | cipherlab solve 20250001`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting solve command")

		ciphertext := strings.Join(args[1:], " ")
		if len(args) == 1 {
			data, err := utils.ReadStdin()
			if err != nil {
				return err
			}
			ciphertext = strings.TrimRight(string(data), "\r\n")
		}

		runner, err := loadRunner()
		if err != nil {
			return err
		}

		result, err := runner.Solve(context.Background(), workflows.SolveOptions{
			Identity:   args[0],
			Ciphertext: ciphertext,
		})
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), result.Plaintext)
		return nil
	},
}
