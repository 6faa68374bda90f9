package errors

import "errors"

// Kind is the broad category of an error returned by oidcrypt.
type Kind int

const (
	KindUnknown Kind = iota
	KindArgument
	KindStructural
	KindCrypto
	KindKeyMaterial
	KindResolution
	KindStorage
	KindTransport
)

var kindNames = map[Kind]string{
	KindUnknown:     "unknown",
	KindArgument:    "argument",
	KindStructural:  "structural",
	KindCrypto:      "crypto",
	KindKeyMaterial: "key-material",
	KindResolution:  "resolution",
	KindStorage:     "storage",
	KindTransport:   "transport",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return kindNames[KindUnknown]
}

var sentinelKinds = []struct {
	err  error
	kind Kind
}{
	{ErrNilArgument, KindArgument},
	{ErrInvalidURI, KindArgument},
	{ErrInvalidAccountName, KindArgument},
	{ErrInvalidUse, KindArgument},
	{ErrInvalidVersion, KindArgument},
	{ErrInvalidDateFormat, KindArgument},
	{ErrInvalidPattern, KindArgument},
	{ErrPasswordMismatch, KindArgument},
	{ErrMalformedCipher, KindStructural},
	{ErrMalformedEnvelope, KindStructural},
	{ErrDecryptFailed, KindCrypto},
	{ErrEncryptFailed, KindCrypto},
	{ErrInvalidSignature, KindCrypto},
	{ErrRandomExhausted, KindCrypto},
	{ErrKeyGeneration, KindKeyMaterial},
	{ErrJWKExport, KindKeyMaterial},
	{ErrJWKImport, KindKeyMaterial},
	{ErrNoMatchingKey, KindResolution},
	{ErrAmbiguousKeySet, KindResolution},
	{ErrAccountNotFound, KindStorage},
	{ErrAccountExists, KindStorage},
	{ErrInvalidConfig, KindStorage},
	{ErrFetchFailed, KindTransport},
}

// KindOf reports the category of err. The first sentinel found in the
// error chain decides; errors wrapping no sentinel are KindUnknown.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	for _, sk := range sentinelKinds {
		if errors.Is(err, sk.err) {
			return sk.kind
		}
	}
	return KindUnknown
}
