// Package errors provides typed error values for oidcrypt.
//
// Sentinel errors let callers handle specific failure conditions with
// errors.Is() instead of matching strings. Every sentinel belongs to exactly
// one Kind, so code above the core can branch on the broad category without
// knowing every individual value.
//
// # Error Categories
//
//   - Argument errors: a required input is absent or invalid (ErrNilArgument)
//   - Structural errors: an envelope or cipher is malformed (ErrMalformedCipher)
//   - Crypto errors: authentication or encryption failed (ErrDecryptFailed)
//   - Key material errors: JWK generation, export or import failed
//   - Resolution errors: a remote key set did not yield exactly one key
//   - Storage and transport errors: account files, config, HTTPS fetches
//
// # Usage
//
// Wrap a sentinel with a diagnostic message:
//
//	return nil, fmt.Errorf("%w: cipher length %d does not match", errors.ErrMalformedCipher, n)
//
// Branch on the category in the CLI layer:
//
//	if kerrors.KindOf(err) == kerrors.KindCrypto {
//	    // wrong password or corrupted data
//	}
package errors
