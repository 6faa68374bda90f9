package cmd

import (
	"errors"
	"fmt"

	kerrors "github.com/oidcrypt/oidcrypt/internal/errors"
	"github.com/oidcrypt/oidcrypt/internal/ui"
)

// formatError turns a workflow error into the message shown to the user.
func formatError(action string, err error) string {
	fail := ui.FailMark() + " "
	hint := "\n" + ui.HintMark() + " "

	switch {
	case errors.Is(err, kerrors.ErrDecryptFailed):
		return fail + "Wrong password, or the stored data is corrupted"
	case errors.Is(err, kerrors.ErrAccountNotFound):
		return fail + "No such account" + hint + "Run " + ui.Code.Sprint("oidcrypt account list") + " to see stored accounts"
	case errors.Is(err, kerrors.ErrAccountExists):
		return fail + "Account already exists" + hint + "Use " + ui.Flag.Sprint("--force") + " to overwrite it"
	case errors.Is(err, kerrors.ErrInvalidAccountName):
		return fail + err.Error() + hint + "Names start with a letter or digit and contain only letters, digits, '.', '_' and '-'"
	case errors.Is(err, kerrors.ErrInvalidConfig):
		return fail + err.Error() + hint + "Run " + ui.Code.Sprint("oidcrypt config show") + " to inspect the configuration"
	case errors.Is(err, kerrors.ErrPasswordMismatch):
		return fail + "Passwords do not match" + hint + "Enter the same password at both prompts, or set " + ui.Code.Sprint("OIDCRYPT_PASSWORD")
	case errors.Is(err, kerrors.ErrAmbiguousKeySet):
		return fail + "The key set holds more than one key; selecting among them is not supported" + hint +
			"Download the key set and import the wanted key with " + ui.Flag.Sprint("--file")
	}

	switch kerrors.KindOf(err) {
	case kerrors.KindArgument:
		return fail + err.Error()
	case kerrors.KindStructural:
		return fail + "Stored data is malformed: " + err.Error()
	case kerrors.KindResolution:
		return fail + "Could not resolve a key: " + err.Error()
	case kerrors.KindTransport:
		return fail + "Could not fetch the key set: " + err.Error()
	}
	return fail + "Failed to " + action + ": " + err.Error()
}

// reportError sets the spinner message for err and returns the error the
// command should exit with. The message is printed once; the returned error
// is marked reported and still wraps err.
func reportError(finalMSG *string, action string, err error) error {
	Logger.Infof("Failed to %s: %v", action, err)
	*finalMSG = formatError(action, err)
	return fmt.Errorf("%w: %w", errReported, err)
}

// reportEarlyError is reportError for failures hit before the spinner starts.
func reportEarlyError(action string, err error) error {
	var msg string
	err = reportError(&msg, action, err)
	fmt.Print(ui.EnsureNewline(msg))
	return err
}
