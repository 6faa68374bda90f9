// Package workflows provides high-level orchestration for oidcrypt commands.
//
// Workflows coordinate the configs, store, envelope, jwk and audit packages
// to implement complete user-facing features. Each workflow handles a single
// command's business logic, independent of CLI concerns like flag parsing,
// password prompts, spinners and output formatting.
//
// # Design Philosophy
//
// The cmd/ package should be a thin layer that:
//   - Parses command-line flags and arguments
//   - Obtains the password
//   - Calls the appropriate workflow function
//   - Formats the result for display
//
// Workflows handle everything else:
//   - Loading configuration and opening the configured store
//   - Validating account names
//   - Encoding and decoding envelopes
//   - Recording audit trail entries
//
// # Available Workflows
//
//   - AddAccount / PrintAccount / RemoveAccount / ListAccounts
//   - MigrateAccount: re-encrypts a legacy envelope in the current format
//   - GenerateKey / ImportKey / SignAssertion: JWK handling
//   - RandomSecret: mints a random string
//   - Log: reads and filters the audit trail
//
// # Error Handling
//
// Workflows return errors wrapping the sentinels of internal/errors so the
// CLI layer can choose a message with errors.Is or errors.KindOf:
//
//	result, err := workflows.PrintAccount(ctx, opts)
//	if errors.Is(err, kerrors.ErrDecryptFailed) {
//	    // wrong password
//	}
//
// # Context Usage
//
// All workflow functions accept a context.Context as their first parameter.
// It bounds the remote key set fetch in ImportKey.
package workflows
