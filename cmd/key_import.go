package cmd

import (
	"context"
	"fmt"

	"github.com/oidcrypt/oidcrypt/internal/crypt"
	"github.com/oidcrypt/oidcrypt/internal/ui"
	"github.com/oidcrypt/oidcrypt/internal/utils"
	"github.com/oidcrypt/oidcrypt/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	importFile    string
	importURI     string
	importCert    string
	importStoreAs string
	importForce   bool
)

func init() {
	keyImportCmd.Flags().StringVar(&importFile, "file", "", "read the JWK from this file (\"-\" for stdin)")
	keyImportCmd.Flags().StringVar(&importURI, "uri", "", "fetch the key from this JWKS uri")
	keyImportCmd.Flags().StringVar(&importCert, "cert", "", "CA certificate file or directory for --uri (default from config)")
	keyImportCmd.Flags().StringVar(&importStoreAs, "store-as", "", "store the private key as this account for \"key assert\"")
	keyImportCmd.Flags().BoolVarP(&importForce, "force", "f", false, "overwrite an existing account with --store-as")
	keyImportCmd.MarkFlagsMutuallyExclusive("file", "uri")
	keyImportCmd.MarkFlagsOneRequired("file", "uri")
}

var keyImportCmd = &cobra.Command{
	Use:   "import (--file path [--store-as name] | --uri url [--cert path])",
	Short: "Import a JWK and print its public part",
	Long: `Parses a JWK from a file or resolves it from a remote JSON Web Key Set and
prints the public part with its RFC 7638 thumbprint.

A file may also hold an unencrypted RSA private key in PEM form (PKCS#1,
PKCS#8 or OpenSSH). With --store-as the private key is encrypted and stored
as an account usable by "key assert".

A remote key set must hold exactly one key.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting key import command")

		opts := workflows.ImportKeyOptions{
			URI:      importURI,
			CertPath: importCert,
			StoreAs:  importStoreAs,
			Force:    importForce,
			Logger:   Logger,
		}
		if importFile != "" {
			data, err := utils.ReadInput(importFile)
			if err != nil {
				return reportEarlyError("read key", err)
			}
			opts.JWK = string(data)
		}
		if importStoreAs != "" {
			password, err := readPassword(true)
			if err != nil {
				return reportEarlyError("read password", err)
			}
			defer crypt.Wipe(password)
			opts.Password = password
		}

		spinner, cleanup := startSpinner("Importing key...")
		result, err := workflows.ImportKey(context.Background(), opts)
		if err != nil {
			err = reportError(&spinner.FinalMSG, "import key", err)
			cleanup()
			return err
		}

		spinner.FinalMSG = ui.SuccessMark() + " Imported " + result.KeyType + " key\n" +
			ui.Field("thumbprint", 10, result.Thumbprint)
		if result.KeyID != "" {
			spinner.FinalMSG += ui.Field("kid", 10, ui.Highlight.Sprint(result.KeyID))
		}
		switch {
		case result.StoredAs != "":
			spinner.FinalMSG += ui.HintMark() + " Private key stored as account " + ui.Highlight.Sprint(result.StoredAs)
		case result.HadPrivate:
			spinner.FinalMSG += ui.WarnMark() + " The input contained private key material; only the public part is shown"
		}
		cleanup()

		fmt.Println(result.PublicJWK)
		return nil
	},
}
