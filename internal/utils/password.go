package utils

import (
	"bytes"
	"fmt"
	"os"

	"github.com/oidcrypt/oidcrypt/internal/crypt"
	kerrors "github.com/oidcrypt/oidcrypt/internal/errors"
)

// PasswordEnv names the environment variable that supplies the password
// non-interactively.
const PasswordEnv = "OIDCRYPT_PASSWORD"

// PasswordPrompter reads a password without echo. Tests replace it.
var PasswordPrompter = ReadSecret

// ResolvePassword returns the password from PasswordEnv or, when unset,
// prompts for it. With confirm set the prompt is repeated and both entries
// must match.
func ResolvePassword(prompt string, confirm bool) ([]byte, error) {
	if env, ok := os.LookupEnv(PasswordEnv); ok {
		if env == "" {
			return nil, fmt.Errorf("%w: %s is set but empty", kerrors.ErrNilArgument, PasswordEnv)
		}
		return []byte(env), nil
	}

	password, err := PasswordPrompter(prompt)
	if err != nil {
		return nil, err
	}
	if len(password) == 0 {
		return nil, fmt.Errorf("%w: password", kerrors.ErrNilArgument)
	}
	if !confirm {
		return password, nil
	}

	again, err := PasswordPrompter("Confirm password: ")
	if err != nil {
		crypt.Wipe(password)
		return nil, err
	}
	defer crypt.Wipe(again)
	if !bytes.Equal(password, again) {
		crypt.Wipe(password)
		return nil, kerrors.ErrPasswordMismatch
	}
	return password, nil
}
