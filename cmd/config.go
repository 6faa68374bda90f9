package cmd

import (
	"github.com/spf13/cobra"
)

// ConfigCmd is the top-level config command.
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage oidcrypt configuration",
	Long: `Provides commands for managing the oidcrypt configuration file.

Examples:
  # Write a configuration file with the defaults
  oidcrypt config init

  # Use the OS keyring instead of files
  oidcrypt config init --backend keyring

  # Show the effective configuration
  oidcrypt config show`,
}

func init() {
	ConfigCmd.AddCommand(configInitCmd)
	ConfigCmd.AddCommand(configShowCmd)
}

// resetConfigState resets all config command global variables for testing.
func resetConfigState() {
	resetConfigInitState()
	resetConfigShowState()
	resetCobraFlagState(ConfigCmd)
}
