package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/oidcrypt/oidcrypt/internal/ui"
	"github.com/oidcrypt/oidcrypt/internal/utils"
	"github.com/oidcrypt/oidcrypt/internal/workflows"
	"github.com/spf13/cobra"
)

var listJSON bool

func init() {
	accountListCmd.Flags().BoolVar(&listJSON, "json", false, "output as JSON array")
}

var accountListCmd = &cobra.Command{
	Use:   "list [pattern...]",
	Short: "List stored accounts and their format",
	Long: `Lists stored accounts with the format of their envelope. No password is
needed.

Patterns are globs matched against account names; "*" matches any run of
characters and "{a,b}" matches either alternative.

Examples:
  oidcrypt account list
  oidcrypt account list 'work-*'
  oidcrypt account list --json`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting account list command")

		result, err := workflows.ListAccounts(context.Background(), workflows.ListAccountsOptions{Patterns: args})
		if err != nil {
			msg := ""
			err = reportError(&msg, "list accounts", err)
			fmt.Println(msg)
			return err
		}
		Logger.Debugf("Found %d accounts in %s backend", len(result.Accounts), result.Backend)

		if listJSON {
			data, err := json.MarshalIndent(result.Accounts, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal accounts to JSON: %w", err)
			}
			fmt.Println(string(data))
			return nil
		}

		if len(result.Accounts) == 0 && len(args) > 0 {
			fmt.Print("No accounts match:\n" + utils.FormatNames(args))
			return nil
		}
		if len(result.Accounts) == 0 {
			fmt.Println("No accounts stored.")
			fmt.Println(ui.HintMark() + " Run " + ui.Code.Sprint("oidcrypt account add <name> <file>") + " to add one")
			return nil
		}

		for _, a := range result.Accounts {
			status := ui.Success.Sprint(string(a.Status))
			switch a.Status {
			case workflows.StatusLegacy:
				status = ui.Warning.Sprint(string(a.Status))
			case workflows.StatusUnreadable:
				status = ui.Error.Sprint(string(a.Status))
			}
			version := a.Version
			if version == "" {
				version = "-"
			}
			fmt.Printf("%-24s  %-10s  %s\n", a.Name, status, ui.Muted.Sprint(version))
		}

		if result.Summary.Legacy > 0 {
			fmt.Println()
			fmt.Println(ui.HintMark() + fmt.Sprintf(" %d account(s) use the legacy format; run ", result.Summary.Legacy) +
				ui.Code.Sprint("oidcrypt account migrate <name>"))
		}
		return nil
	},
}
