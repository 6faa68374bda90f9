package cmd

import (
	"errors"

	logger "github.com/oidcrypt/oidcrypt/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	verbose bool
	debug   bool
	Logger  logger.Logger
)

// errReported marks a failure whose message was already printed.
var errReported = errors.New("failure already reported")

// IsReported reports whether err was already shown to the user.
func IsReported(err error) bool {
	return errors.Is(err, errReported)
}

// Register adds the global flags and every command group to root.
func Register(root *cobra.Command) {
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	root.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		Logger = logger.Logger{
			Verbose: verbose,
			Debug:   debug,
		}
		Logger.Debugf("Initializing %s command with verbose=%t, debug=%t", cmd.Name(), verbose, debug)
	}
	root.SilenceErrors = true
	root.SilenceUsage = true

	root.AddCommand(AccountCmd)
	root.AddCommand(KeyCmd)
	root.AddCommand(ConfigCmd)
	root.AddCommand(randomCmd)
	root.AddCommand(logCmd)
	root.AddCommand(versionCmd)
}

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	resetAccountState()
	resetKeyState()
	resetConfigState()
	resetRandomState()
	resetLogCommandState()
	versionBanner = false
	resetCobraFlagState(versionCmd)
}

// resetCobraFlagState clears the Changed marker on every flag of c and its
// children to prevent test pollution.
func resetCobraFlagState(c *cobra.Command) {
	c.Flags().VisitAll(func(flag *pflag.Flag) {
		flag.Changed = false
	})
	for _, child := range c.Commands() {
		resetCobraFlagState(child)
	}
}

// SetLogger sets the logger for testing.
func SetLogger(l logger.Logger) {
	Logger = l
}
