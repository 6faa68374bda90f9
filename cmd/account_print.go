package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/oidcrypt/oidcrypt/internal/crypt"
	"github.com/oidcrypt/oidcrypt/internal/ui"
	"github.com/oidcrypt/oidcrypt/internal/workflows"
	"github.com/spf13/cobra"
)

var accountPrintCmd = &cobra.Command{
	Use:   "print <name>",
	Short: "Decrypt an account and print its configuration",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting account print command")

		password, err := readPassword(false)
		if err != nil {
			return reportEarlyError("read password", err)
		}
		defer crypt.Wipe(password)

		spinner, cleanup := startSpinner("Decrypting account...")
		result, err := workflows.PrintAccount(context.Background(), workflows.PrintAccountOptions{
			Name:     args[0],
			Password: password,
		})
		if err != nil {
			err = reportError(&spinner.FinalMSG, "decrypt account", err)
			cleanup()
			return err
		}
		cleanup()
		defer crypt.Wipe(result.Config)

		Logger.Debugf("Account %s read from %s envelope (version %q)", result.Name, result.Format, result.Version)
		if result.NeedsMigration() {
			fmt.Fprintln(os.Stderr, ui.WarnMark()+" "+ui.Highlight.Sprint(result.Name)+" uses the legacy format. Run "+
				ui.Code.Sprint("oidcrypt account migrate "+result.Name)+" to upgrade it")
		}

		fmt.Print(ui.EnsureNewline(string(result.Config)))
		return nil
	},
}
