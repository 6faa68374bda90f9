package cmd

import (
	"github.com/spf13/cobra"
)

// AccountCmd groups the commands that manage stored account configurations.
var AccountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage encrypted account configurations",
	Long: `Stores account configurations encrypted under a password.

Each account is kept as an envelope: the encrypted configuration followed by
the version of oidcrypt that wrote it. Envelopes written by old versions use
a legacy format and can be upgraded with "account migrate".

The password is read from $OIDCRYPT_PASSWORD when set, otherwise it is
prompted for without echo.

Examples:
  # Store an account from a file
  oidcrypt account add work ./work.json

  # Store an account from stdin
  cat work.json | oidcrypt account add work

  # Decrypt and print an account
  oidcrypt account print work

  # Upgrade a legacy account
  oidcrypt account migrate work`,
}

func init() {
	AccountCmd.AddCommand(accountAddCmd)
	AccountCmd.AddCommand(accountPrintCmd)
	AccountCmd.AddCommand(accountListCmd)
	AccountCmd.AddCommand(accountRemoveCmd)
	AccountCmd.AddCommand(accountMigrateCmd)
}

// resetAccountState resets the account commands' global state for testing.
func resetAccountState() {
	addForce = false
	listJSON = false
	removeYes = false
	migrateDryRun = false
	resetCobraFlagState(AccountCmd)
}
