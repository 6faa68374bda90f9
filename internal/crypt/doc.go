// Package crypt provides password-based authenticated encryption for
// account configurations and the random strings used as secrets.
//
// # Formats
//
// The current format is a single base64 token:
//
//	base64(salt[16] || nonce[24] || secretbox(plaintext))
//
// The secretbox key is derived from the password and salt with Argon2id.
//
// The legacy format, written before version 2.1.0, is a colon separated
// tuple of hex fields:
//
//	<cipher length>:<salt hex>:<nonce hex>:<cipher hex>
//
// Its key is derived with Argon2i. DecryptHex reads it; EncryptHex only
// exists to reproduce old data and is never used to persist new secrets.
//
// # Failure modes
//
// Malformed input fails with ErrMalformedCipher. Authentication failures,
// caused by a wrong password or modified ciphertext, fail with
// ErrDecryptFailed and never return partial plaintext.
//
// Derived keys are wiped with memguard as soon as they are no longer needed.
package crypt
