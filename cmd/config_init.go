package cmd

import (
	"errors"
	"io/fs"
	"os"

	"github.com/oidcrypt/oidcrypt/internal/configs"
	"github.com/oidcrypt/oidcrypt/internal/ui"
	"github.com/spf13/cobra"
)

var (
	initBackend  string
	initCertPath string
	initForce    bool
)

func init() {
	configInitCmd.Flags().StringVar(&initBackend, "backend", configs.BackendFile, "storage backend: file or keyring")
	configInitCmd.Flags().StringVar(&initCertPath, "cert-path", "", "CA certificate file or directory for JWKS fetches")
	configInitCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing configuration file")
}

// resetConfigInitState resets the config init command's global state for testing.
func resetConfigInitState() {
	initBackend = configs.BackendFile
	initCertPath = ""
	initForce = false
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a configuration file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting config init command")
		path := configs.OidcryptSettings.ConfigPath()

		spinner, cleanup := startSpinner("Writing configuration...")
		defer cleanup()

		if _, err := os.Stat(path); err == nil && !initForce {
			spinner.FinalMSG = ui.FailMark() + " Configuration already exists at " + ui.Path.Sprint(path) + "\n" +
				ui.HintMark() + " Use " + ui.Flag.Sprint("--force") + " to overwrite it"
			return errReported
		} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return reportError(&spinner.FinalMSG, "check "+path, err)
		}

		config := configs.DefaultConfig()
		config.Storage.Backend = initBackend
		if initCertPath != "" {
			config.HTTP.CertPath = initCertPath
		}

		Logger.Debugf("Writing config to %s", path)
		if err := configs.SaveConfig(config); err != nil {
			return reportError(&spinner.FinalMSG, "write configuration", err)
		}

		spinner.FinalMSG = ui.SuccessMark() + " Configuration written to " + ui.Path.Sprint(path)
		return nil
	},
}
