package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/oidcrypt/oidcrypt/internal/configs"
	"github.com/oidcrypt/oidcrypt/internal/ui"
	"github.com/spf13/cobra"
)

var configShowJSON bool

func init() {
	configShowCmd.Flags().BoolVar(&configShowJSON, "json", false, "output in JSON format")
}

// resetConfigShowState resets the config show command's global state for testing.
func resetConfigShowState() {
	configShowJSON = false
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the effective configuration",
	Long: `Displays the configuration oidcrypt runs with: the configuration file
merged over the built-in defaults.

Examples:
  oidcrypt config show
  oidcrypt config show --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting config show command")
		path := configs.OidcryptSettings.ConfigPath()

		Logger.Debugf("Loading config from %s", path)
		config, err := configs.LoadConfig()
		if err != nil {
			msg := ""
			err = reportError(&msg, "load configuration", err)
			fmt.Println(msg)
			return err
		}

		if configShowJSON {
			output := map[string]any{
				"path": path,
				"storage": map[string]any{
					"backend":         config.Storage.Backend,
					"dir":             config.Storage.Dir,
					"keyring_service": config.Storage.KeyringService,
				},
				"http": map[string]any{
					"cert_path":       config.HTTP.CertPath,
					"retry_max":       config.Retries(),
					"timeout_seconds": config.HTTP.TimeoutSeconds,
				},
				"audit": map[string]any{
					"enabled": config.AuditEnabled(),
					"path":    config.Audit.Path,
				},
			}
			data, err := json.MarshalIndent(output, "", "  ")
			if err != nil {
				return reportEarlyError("marshal JSON", err)
			}
			fmt.Println(string(data))
			return nil
		}

		const width = 16
		fmt.Println("Configuration " + ui.Muted.Sprint(path))
		fmt.Println()
		fmt.Println("[storage]")
		fmt.Print(ui.Field("backend", width, config.Storage.Backend))
		if config.Storage.Backend == configs.BackendKeyring {
			fmt.Print(ui.Field("keyring_service", width, config.Storage.KeyringService))
		} else {
			fmt.Print(ui.Field("dir", width, ui.Path.Sprint(config.Storage.Dir)))
		}
		fmt.Println("[http]")
		fmt.Print(ui.Field("cert_path", width, ui.Path.Sprint(config.HTTP.CertPath)))
		fmt.Print(ui.Field("retry_max", width, strconv.Itoa(config.Retries())))
		fmt.Print(ui.Field("timeout_seconds", width, strconv.Itoa(config.HTTP.TimeoutSeconds)))
		fmt.Println("[audit]")
		fmt.Print(ui.Field("enabled", width, strconv.FormatBool(config.AuditEnabled())))
		if config.AuditEnabled() {
			fmt.Print(ui.Field("path", width, ui.Path.Sprint(config.Audit.Path)))
		}
		return nil
	},
}
