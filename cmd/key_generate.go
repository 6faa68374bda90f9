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

var (
	generatePublicOut string
	generateForce     bool
)

func init() {
	keyGenerateCmd.Flags().StringVar(&generatePublicOut, "public-out", "", "write the public JWK to this file instead of stdout")
	keyGenerateCmd.Flags().BoolVarP(&generateForce, "force", "f", false, "overwrite an existing account")
}

var keyGenerateCmd = &cobra.Command{
	Use:   "generate <name>",
	Short: "Generate an RSA signing key",
	Long: `Generates a 2048-bit RSA signing key. The private JWK is encrypted and
stored as account <name>; the public JWK is printed or written to
--public-out.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting key generate command")

		password, err := readPassword(true)
		if err != nil {
			return reportEarlyError("read password", err)
		}
		defer crypt.Wipe(password)

		spinner, cleanup := startSpinner("Generating key...")
		result, err := workflows.GenerateKey(context.Background(), workflows.GenerateKeyOptions{
			Name:     args[0],
			Password: password,
			Force:    generateForce,
		})
		if err != nil {
			err = reportError(&spinner.FinalMSG, "generate key", err)
			cleanup()
			return err
		}

		if generatePublicOut != "" {
			Logger.Debugf("Writing public key to %s", generatePublicOut)
			if err := os.WriteFile(generatePublicOut, []byte(result.PublicJWK+"\n"), 0644); err != nil {
				err = reportError(&spinner.FinalMSG, "write public key", err)
				cleanup()
				return err
			}
		}

		spinner.FinalMSG = ui.SuccessMark() + " Key stored as account " + ui.Highlight.Sprint(result.Name) + "\n" +
			ui.Field("thumbprint", 10, result.Thumbprint)
		if generatePublicOut != "" {
			spinner.FinalMSG += ui.Field("public", 10, ui.Path.Sprint(generatePublicOut))
		}
		cleanup()

		if generatePublicOut == "" {
			fmt.Println(result.PublicJWK)
		}
		return nil
	},
}
