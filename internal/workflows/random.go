package workflows

import (
	"context"

	"github.com/oidcrypt/oidcrypt/internal/crypt"
)

// DefaultSecretLength is the length of a minted secret when none is given.
const DefaultSecretLength = 32

// RandomOptions configures the random workflow.
type RandomOptions struct {
	// Length of the secret. Zero means DefaultSecretLength.
	Length int
}

// RandomResult contains a minted secret.
type RandomResult struct {
	Value string
}

// RandomSecret mints a URL-safe random string whose first character is
// alphanumeric.
func RandomSecret(ctx context.Context, opts RandomOptions) (*RandomResult, error) {
	n := opts.Length
	if n == 0 {
		n = DefaultSecretLength
	}
	value, err := crypt.RandomString(n)
	if err != nil {
		return nil, err
	}
	return &RandomResult{Value: value}, nil
}
