package cmd

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/cipherlab/internal/workflows"
	"github.com/spf13/cobra"
)

var keyCmd = &cobra.Command{
	Use:   "key <id>",
	Short: "Print the hex bundle key for an identity",
	Long: `Prints the key a participant uses to open their bundle, exactly as the
/fetch endpoint returns it.

Examples:
  cipherlab key 20250001`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting key command")
		runner, err := loadRunner()
		if err != nil {
			return err
		}

		result, err := runner.FetchKey(context.Background(), workflows.FetchKeyOptions{Identity: args[0]})
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), result.KeyHex)
		return nil
	},
}
