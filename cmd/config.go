package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/PolarWolf314/cipherlab/internal/configs"
	"github.com/PolarWolf314/cipherlab/internal/ui"
)

// ConfigCmd is the top-level config command.
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage cipherlab configuration",
	Long: `Provides commands for writing and inspecting the config file.

Settings are resolved in this order, later sources winning:
  1. built-in defaults
  2. the TOML file named by --config
  3. the dotenv file named by --env-file
  4. CIPHERLAB_* environment variables

Examples:
  cipherlab config init
  cipherlab config show`,
}

var configInitForce bool

func init() {
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "overwrite an existing config file")
	ConfigCmd.AddCommand(configInitCmd)
	ConfigCmd.AddCommand(configShowCmd)
}

// resetConfigInitState resets the config init command's global state for testing.
func resetConfigInitState() {
	configInitForce = false
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with default settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting config init command")
		out := cmd.OutOrStdout()

		if _, err := os.Stat(configPath); err == nil && !configInitForce {
			fmt.Fprintln(out, ui.Failed(ui.Path.Sprint(configPath)+" already exists"))
			fmt.Fprintln(out, ui.Hint("Use "+ui.Flag.Sprint("--force")+" to overwrite it"))
			return nil
		} else if err != nil && !errors.Is(err, os.ErrNotExist) {
			return Logger.ErrorfAndReturn("failed to check %s: %v", configPath, err)
		}

		if err := configs.SaveSettings(configPath, configs.Defaults()); err != nil {
			return err
		}

		fmt.Fprintln(out, ui.Succeeded("Wrote default settings to "+ui.Path.Sprint(configPath)))
		fmt.Fprintln(out, ui.Hint("Start the server with "+ui.Code.Sprint("cipherlab serve")))
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings as TOML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting config show command")
		settings, err := loadSettings()
		if err != nil {
			return err
		}
		return toml.NewEncoder(cmd.OutOrStdout()).Encode(settings)
	},
}
