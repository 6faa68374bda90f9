package cmd

import (
	"context"

	"github.com/oidcrypt/oidcrypt/internal/crypt"
	"github.com/oidcrypt/oidcrypt/internal/envelope"
	"github.com/oidcrypt/oidcrypt/internal/ui"
	"github.com/oidcrypt/oidcrypt/internal/workflows"
	"github.com/spf13/cobra"
)

var migrateDryRun bool

func init() {
	accountMigrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "check the password and format without writing")
}

var accountMigrateCmd = &cobra.Command{
	Use:   "migrate <name>",
	Short: "Re-encrypt a legacy account in the current format",
	Long: `Decrypts a legacy account and stores it again in the current format.

The previous envelope is kept as a backup next to the account. Accounts that
already use the current format are left untouched.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting account migrate command")

		password, err := readPassword(false)
		if err != nil {
			return reportEarlyError("read password", err)
		}
		defer crypt.Wipe(password)

		spinner, cleanup := startSpinner("Migrating account...")
		defer cleanup()

		result, err := workflows.MigrateAccount(context.Background(), workflows.MigrateOptions{
			Name:     args[0],
			Password: password,
			DryRun:   migrateDryRun,
		})
		if err != nil {
			return reportError(&spinner.FinalMSG, "migrate account", err)
		}
		Logger.Debugf("Account %s was %s (version %q)", result.Name, result.FromFormat, result.FromVersion)

		name := ui.Highlight.Sprint(result.Name)
		switch {
		case result.Migrated:
			spinner.FinalMSG = ui.SuccessMark() + " Account " + name + " migrated to the current format\n" +
				ui.HintMark() + " Previous envelope kept at " + ui.Path.Sprint(result.BackupLocation)
		case result.DryRun && result.FromFormat == envelope.FormatLegacy:
			spinner.FinalMSG = ui.Warning.Sprint("[dry-run]") + " Account " + name + " uses the legacy format and can be migrated"
		default:
			spinner.FinalMSG = ui.SuccessMark() + " Account " + name + " already uses the current format"
		}
		return nil
	},
}
