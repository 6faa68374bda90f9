package errors

import "errors"

// Argument errors indicate a required input is absent or unusable.
var (
	// ErrNilArgument indicates a required argument was empty or nil.
	ErrNilArgument = errors.New("required argument is missing")

	// ErrInvalidURI indicates a URI is malformed or does not use https.
	ErrInvalidURI = errors.New("invalid or non-https uri")

	// ErrInvalidAccountName indicates an account name cannot be used as a storage key.
	ErrInvalidAccountName = errors.New("invalid account name")

	// ErrInvalidUse indicates a JWK use other than "sig" or "enc".
	ErrInvalidUse = errors.New("invalid jwk use")

	// ErrInvalidVersion indicates a version that cannot be written into an envelope.
	ErrInvalidVersion = errors.New("invalid envelope version")

	// ErrInvalidDateFormat indicates a date filter is not in YYYY-MM-DD format.
	ErrInvalidDateFormat = errors.New("invalid date format")

	// ErrInvalidPattern indicates an account name glob cannot be parsed.
	ErrInvalidPattern = errors.New("invalid name pattern")

	// ErrPasswordMismatch indicates the password and its confirmation differ.
	ErrPasswordMismatch = errors.New("passwords do not match")
)

// Structural errors indicate encoded data is missing fields or is inconsistent.
var (
	// ErrMalformedCipher indicates a cipher token or legacy tuple could not be parsed.
	ErrMalformedCipher = errors.New("malformed cipher")

	// ErrMalformedEnvelope indicates the envelope text has no usable cipher line.
	ErrMalformedEnvelope = errors.New("malformed envelope")
)

// Cryptographic errors indicate failures in the symmetric primitive or entropy source.
var (
	// ErrDecryptFailed indicates authentication failed: wrong password or corrupted data.
	ErrDecryptFailed = errors.New("decryption failed")

	// ErrEncryptFailed indicates encryption could not be performed.
	ErrEncryptFailed = errors.New("encryption failed")

	// ErrInvalidSignature indicates a signed assertion failed verification.
	ErrInvalidSignature = errors.New("invalid signature")

	// ErrRandomExhausted indicates random string generation hit its attempt cap.
	ErrRandomExhausted = errors.New("random string generation exhausted")
)

// Key material errors indicate failures in the asymmetric key primitive.
var (
	// ErrKeyGeneration indicates an RSA key pair could not be generated.
	ErrKeyGeneration = errors.New("key generation failed")

	// ErrJWKExport indicates a key could not be serialized as JWK.
	ErrJWKExport = errors.New("jwk export failed")

	// ErrJWKImport indicates JWK text could not be parsed into a key.
	ErrJWKImport = errors.New("jwk import failed")
)

// Resolution errors indicate a remote key set could not be reduced to one key.
var (
	// ErrNoMatchingKey indicates the key set contained no usable key.
	ErrNoMatchingKey = errors.New("no matching key in key set")

	// ErrAmbiguousKeySet indicates the key set contained more than one candidate.
	// Selecting among several keys is not implemented.
	ErrAmbiguousKeySet = errors.New("not implemented: key set has more than one candidate")
)

// Storage errors indicate issues with persisted accounts or configuration.
var (
	// ErrAccountNotFound indicates no envelope is stored under the account name.
	ErrAccountNotFound = errors.New("account not found")

	// ErrAccountExists indicates an envelope already exists for the account name.
	ErrAccountExists = errors.New("account already exists")

	// ErrInvalidConfig indicates the configuration file is malformed or has bad values.
	ErrInvalidConfig = errors.New("configuration is invalid")
)

// Transport errors indicate failures talking to remote endpoints.
var (
	// ErrFetchFailed indicates an HTTPS request failed or returned a non-200 status.
	ErrFetchFailed = errors.New("https fetch failed")
)
