package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/PolarWolf314/cipherlab/internal/ui"
	"github.com/PolarWolf314/cipherlab/internal/workflows"
	"github.com/spf13/cobra"
)

var bundleOutput string

func init() {
	bundleCmd.Flags().StringVarP(&bundleOutput, "output", "o", "", "where to write the bundle (default passwords-<artifact-id>.db, - for stdout)")
}

func resetBundleCommandState() {
	bundleOutput = ""
}

var bundleCmd = &cobra.Command{
	Use:   "bundle <id>",
	Short: "Write an encrypted credential bundle for an identity",
	Long: `Encrypts the identity's credential line and writes it to a file, just as
POST /download does. Every run produces a fresh IV, so bundles differ
byte for byte while decrypting to the same credential.

Examples:
  cipherlab bundle 20250001
  cipherlab bundle 20250001 -o passwords.db
  cipherlab bundle 20250001 -o - > passwords.db`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting bundle command")
		identity := args[0]

		runner, err := loadRunner()
		if err != nil {
			return err
		}

		if bundleOutput == "-" {
			result, err := runner.IssueBundle(context.Background(), workflows.IssueBundleOptions{Identity: identity})
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(result.Bundle)
			return err
		}

		spinner, cleanup := startSpinner("Encrypting credential bundle...", cmd.OutOrStdout())
		defer cleanup()

		result, err := runner.IssueBundle(context.Background(), workflows.IssueBundleOptions{Identity: identity})
		if err != nil {
			return err
		}
		Logger.Debugf("Issued artifact %s (%d bytes)", result.ArtifactID, len(result.Bundle))

		path := bundleOutput
		if path == "" {
			path = fmt.Sprintf("passwords-%s.db", result.ArtifactID)
		}
		if err := os.WriteFile(path, result.Bundle, 0600); err != nil {
			return Logger.ErrorfAndReturn("failed to write bundle to %s: %v", path, err)
		}
		Logger.Infof("Bundle written to %s", path)

		spinner.FinalMSG = ui.Succeeded("Bundle written to "+ui.Path.Sprint(path)) + "\n" +
			ui.Hint("Open it with "+ui.Code.Sprintf("cipherlab decrypt %s %s", identity, path))
		return nil
	},
}
