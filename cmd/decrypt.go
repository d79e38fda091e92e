package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/PolarWolf314/cipherlab/internal/utils"
	"github.com/PolarWolf314/cipherlab/internal/workflows"
	"github.com/spf13/cobra"
)

var decryptCmd = &cobra.Command{
	Use:   "decrypt <id> <file>",
	Short: "Decrypt a bundle issued to an identity",
	Long: `Prints the credential line inside a bundle. Use - as the file to read
the bundle from stdin.

Examples:
  cipherlab decrypt 20250001 passwords.db
  curl -s -d id=20250001 localhost:8080/download | cipherlab decrypt 20250001 -`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting decrypt command")
		identity, path := args[0], args[1]

		var (
			blob []byte
			err  error
		)
		if path == "-" {
			blob, err = utils.ReadStdin()
		} else {
			blob, err = os.ReadFile(path)
		}
		if err != nil {
			return fmt.Errorf("failed to read bundle: %w", err)
		}
		Logger.Debugf("Read %d bundle bytes", len(blob))

		runner, err := loadRunner()
		if err != nil {
			return err
		}

		result, err := runner.OpenBundle(context.Background(), workflows.OpenBundleOptions{
			Identity: identity,
			Bundle:   blob,
		})
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), result.Credential)
		return nil
	},
}
