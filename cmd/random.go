package cmd

import (
	"context"
	"fmt"

	kerrors "github.com/oidcrypt/oidcrypt/internal/errors"
	"github.com/oidcrypt/oidcrypt/internal/workflows"
	"github.com/spf13/cobra"
)

var randomLength int

func init() {
	randomCmd.Flags().IntVarP(&randomLength, "length", "n", workflows.DefaultSecretLength, "number of characters")
}

// resetRandomState resets the random command's global state for testing.
func resetRandomState() {
	randomLength = workflows.DefaultSecretLength
	resetCobraFlagState(randomCmd)
}

var randomCmd = &cobra.Command{
	Use:   "random",
	Short: "Print a random URL-safe secret",
	Long: `Prints a random string from the URL-safe base64 alphabet whose first
character is a letter or digit, suitable as a client secret or nonce.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Debugf("Generating random secret of length %d", randomLength)
		var result *workflows.RandomResult
		var err error
		if randomLength < 1 {
			err = fmt.Errorf("%w: --length must be positive, got %d", kerrors.ErrNilArgument, randomLength)
		} else {
			result, err = workflows.RandomSecret(context.Background(), workflows.RandomOptions{Length: randomLength})
		}
		if err != nil {
			msg := ""
			err = reportError(&msg, "generate secret", err)
			fmt.Println(msg)
			return err
		}
		fmt.Println(result.Value)
		return nil
	},
}
