package cmd

import (
	"context"

	"github.com/oidcrypt/oidcrypt/internal/crypt"
	"github.com/oidcrypt/oidcrypt/internal/ui"
	"github.com/oidcrypt/oidcrypt/internal/utils"
	"github.com/oidcrypt/oidcrypt/internal/workflows"
	"github.com/spf13/cobra"
)

var addForce bool

func init() {
	accountAddCmd.Flags().BoolVarP(&addForce, "force", "f", false, "overwrite an existing account")
}

var accountAddCmd = &cobra.Command{
	Use:   "add <name> [file]",
	Short: "Encrypt and store an account configuration",
	Long: `Encrypts an account configuration and stores it under <name>.

The configuration is read from [file], or from stdin when no file is given
or the file is "-".`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting account add command")
		name := args[0]
		source := ""
		if len(args) == 2 {
			source = args[1]
		}

		Logger.Debugf("Reading account configuration from %q", source)
		config, err := utils.ReadInput(source)
		if err != nil {
			return reportEarlyError("read account configuration", err)
		}
		defer crypt.Wipe(config)

		password, err := readPassword(true)
		if err != nil {
			return reportEarlyError("read password", err)
		}
		defer crypt.Wipe(password)

		spinner, cleanup := startSpinner("Encrypting account...")
		defer cleanup()

		result, err := workflows.AddAccount(context.Background(), workflows.AddAccountOptions{
			Name:     name,
			Config:   config,
			Password: password,
			Force:    addForce,
		})
		if err != nil {
			return reportError(&spinner.FinalMSG, "store account", err)
		}

		Logger.Infof("Account %s stored in %s backend", result.Name, result.Backend)
		spinner.FinalMSG = ui.SuccessMark() + " Account " + ui.Highlight.Sprint(result.Name) + " stored " +
			ui.Muted.Sprint(result.Backend+", oidcrypt "+result.Version)
		return nil
	},
}
