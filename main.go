package main

import (
	"fmt"
	"os"

	"github.com/oidcrypt/oidcrypt/cmd"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "oidcrypt",
	Short: "oidcrypt - encrypted storage for OIDC account configurations and keys.",
	Long: `oidcrypt stores OIDC account configurations encrypted under a password,
manages RSA signing keys as JWKs and generates random client secrets.

Usage:
  oidcrypt <command> [flags]

Available Commands:
  account    Store, print and migrate encrypted account configurations
  key        Generate, import and use RSA JWKs
  config     Manage the configuration file
  random     Generate a random secret
  log        View the audit log

Run 'oidcrypt help <command>' for more details on a specific command.
`,
	Run: func(c *cobra.Command, args []string) {
		fmt.Println("Welcome to oidcrypt! Run 'oidcrypt --help' to see available commands.")
	},
}

func init() {
	cmd.Register(rootCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !cmd.IsReported(err) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
