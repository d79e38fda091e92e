package cmd

import (
	logger "github.com/PolarWolf314/cipherlab/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Default locations of the config and dotenv files.
const (
	DefaultConfigPath = "cipherlab.toml"
	DefaultEnvFile    = ".env"
)

var (
	verbose    bool
	debug      bool
	configPath string
	envFile    string
	Logger     logger.Logger
)

// Attach registers the global flags and every subcommand on root.
func Attach(root *cobra.Command) {
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	root.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")
	root.PersistentFlags().StringVarP(&configPath, "config", "c", DefaultConfigPath, "path to the TOML config file")
	root.PersistentFlags().StringVar(&envFile, "env-file", DefaultEnvFile, "dotenv file applied before CIPHERLAB_* variables")

	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		Logger = logger.Logger{
			Verbose: verbose,
			Debug:   debug,
		}
		Logger.Debugf("Initializing %s command with verbose=%t, debug=%t", cmd.Name(), verbose, debug)
	}

	root.AddCommand(serveCmd)
	root.AddCommand(keyCmd)
	root.AddCommand(excerptCmd)
	root.AddCommand(bundleCmd)
	root.AddCommand(decryptCmd)
	root.AddCommand(checkCmd)
	root.AddCommand(solveCmd)
	root.AddCommand(ConfigCmd)
	root.AddCommand(logCmd)
}

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	configPath = DefaultConfigPath
	envFile = DefaultEnvFile
	Logger = logger.Logger{}

	resetServeCommandState()
	resetExcerptCommandState()
	resetBundleCommandState()
	resetConfigInitState()
	resetLogCommandState()

	for _, c := range []*cobra.Command{serveCmd, excerptCmd, bundleCmd, configInitCmd, logCmd} {
		resetCobraFlagState(c)
	}
}

// resetCobraFlagState clears Changed on every flag so one test's flags do not leak into the next.
func resetCobraFlagState(c *cobra.Command) {
	c.Flags().VisitAll(func(flag *pflag.Flag) {
		flag.Changed = false
	})
}
