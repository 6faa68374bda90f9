package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/oidcrypt/oidcrypt/internal/crypt"
	"github.com/oidcrypt/oidcrypt/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	assertClientID string
	assertAudience string
	assertTTL      time.Duration
)

func init() {
	keyAssertCmd.Flags().StringVar(&assertClientID, "client-id", "", "client id, used as iss and sub")
	keyAssertCmd.Flags().StringVar(&assertAudience, "audience", "", "token endpoint of the issuer")
	keyAssertCmd.Flags().DurationVar(&assertTTL, "ttl", workflows.DefaultAssertionTTL, "assertion lifetime")
	_ = keyAssertCmd.MarkFlagRequired("client-id")
	_ = keyAssertCmd.MarkFlagRequired("audience")
}

var keyAssertCmd = &cobra.Command{
	Use:   "assert <name>",
	Short: "Sign a private_key_jwt client assertion",
	Long: `Signs an RS256 client assertion (RFC 7523) with the key stored as account
<name> by "key generate" and prints the compact token.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting key assert command")

		password, err := readPassword(false)
		if err != nil {
			return reportEarlyError("read password", err)
		}
		defer crypt.Wipe(password)

		spinner, cleanup := startSpinner("Signing assertion...")
		result, err := workflows.SignAssertion(context.Background(), workflows.SignAssertionOptions{
			Name:     args[0],
			Password: password,
			ClientID: assertClientID,
			Audience: assertAudience,
			TTL:      assertTTL,
		})
		if err != nil {
			err = reportError(&spinner.FinalMSG, "sign assertion", err)
			cleanup()
			return err
		}
		cleanup()

		Logger.Infof("Assertion expires at %s", result.ExpiresAt.Format(time.RFC3339))
		fmt.Println(result.Token)
		return nil
	},
}
