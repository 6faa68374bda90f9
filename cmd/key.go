package cmd

import (
	"github.com/oidcrypt/oidcrypt/internal/workflows"
	"github.com/spf13/cobra"
)

// KeyCmd groups the JWK commands.
var KeyCmd = &cobra.Command{
	Use:   "key",
	Short: "Generate, import and use RSA JSON Web Keys",
	Long: `Handles the RSA keys an OIDC client uses for private_key_jwt
authentication.

Examples:
  # Generate a signing key and store its private half as account "signing"
  oidcrypt key generate signing --public-out signing.pub.jwk

  # Show the public part of a key from a JWKS endpoint
  oidcrypt key import --uri https://issuer.example/jwks

  # Sign a client assertion with a stored key
  oidcrypt key assert signing --client-id my-client --audience https://issuer.example/token`,
}

func init() {
	KeyCmd.AddCommand(keyGenerateCmd)
	KeyCmd.AddCommand(keyImportCmd)
	KeyCmd.AddCommand(keyAssertCmd)
}

// resetKeyState resets the key commands' global state for testing.
func resetKeyState() {
	generatePublicOut = ""
	generateForce = false
	importFile = ""
	importURI = ""
	importCert = ""
	importStoreAs = ""
	importForce = false
	assertClientID = ""
	assertAudience = ""
	assertTTL = workflows.DefaultAssertionTTL
	resetCobraFlagState(KeyCmd)
}
