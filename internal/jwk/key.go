package jwk

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/big"
	"strings"

	jose "github.com/go-jose/go-jose/v4"
	kerrors "github.com/oidcrypt/oidcrypt/internal/errors"
)

// RSAKeyBits is the modulus size of generated keys. The public exponent is
// always 65537.
const RSAKeyBits = 2048

// Use is the purpose recorded in an exported JWK.
type Use string

const (
	UseSig Use = "sig"
	UseEnc Use = "enc"
)

func (u Use) valid() bool {
	return u == UseSig || u == UseEnc
}

// Key wraps a single JWK.
type Key struct {
	jwk *jose.JSONWebKey
}

// KeySet holds the exported private and public halves of one generated key.
type KeySet struct {
	Private string
	Public  string
}

// GenerateRSAKey creates a new RSA key pair.
func GenerateRSAKey() (*Key, error) {
	priv, err := rsa.GenerateKey(rand.Reader, RSAKeyBits)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrKeyGeneration, err)
	}
	return &Key{jwk: &jose.JSONWebKey{Key: priv}}, nil
}

// GenerateSigningKeySet creates a key pair, exports both halves tagged
// "sig" and releases the key. On any failure no KeySet is returned.
func GenerateSigningKeySet() (*KeySet, error) {
	key, err := GenerateRSAKey()
	if err != nil {
		return nil, err
	}
	defer key.Release()

	priv, err := ExportSig(key, true)
	if err != nil {
		return nil, err
	}
	pub, err := ExportSig(key, false)
	if err != nil {
		return nil, err
	}
	return &KeySet{Private: priv, Public: pub}, nil
}

// Export serializes key as JWK JSON with its "use" member set to use.
func Export(key *Key, withPrivate bool, use Use) (string, error) {
	if key == nil || key.jwk == nil {
		return "", fmt.Errorf("%w: key", kerrors.ErrNilArgument)
	}
	if !use.valid() {
		return "", fmt.Errorf("%w: %q", kerrors.ErrInvalidUse, use)
	}

	jwk := *key.jwk
	if !withPrivate {
		jwk = key.jwk.Public()
		if jwk.Key == nil {
			return "", fmt.Errorf("%w: key has no public part", kerrors.ErrJWKExport)
		}
	}

	raw, err := jwk.MarshalJSON()
	if err != nil {
		return "", fmt.Errorf("%w: %v", kerrors.ErrJWKExport, err)
	}

	var members map[string]any
	if err := json.Unmarshal(raw, &members); err != nil {
		return "", fmt.Errorf("%w: %v", kerrors.ErrJWKExport, err)
	}
	members["use"] = string(use)

	out, err := json.Marshal(members)
	if err != nil {
		return "", fmt.Errorf("%w: %v", kerrors.ErrJWKExport, err)
	}
	return string(out), nil
}

// ExportSig exports key with use "sig".
func ExportSig(key *Key, withPrivate bool) (string, error) {
	return Export(key, withPrivate, UseSig)
}

// ExportEnc exports key with use "enc".
func ExportEnc(key *Key, withPrivate bool) (string, error) {
	return Export(key, withPrivate, UseEnc)
}

// Import parses JWK JSON into a key.
func Import(text string) (*Key, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: jwk", kerrors.ErrNilArgument)
	}

	var jwk jose.JSONWebKey
	if err := jwk.UnmarshalJSON([]byte(text)); err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrJWKImport, err)
	}
	if !jwk.Valid() {
		return nil, fmt.Errorf("%w: key material is not valid", kerrors.ErrJWKImport)
	}
	return &Key{jwk: &jwk}, nil
}

// KeyType returns the JWK "kty" of the key, or "" for a released key.
func (k *Key) KeyType() string {
	if k == nil || k.jwk == nil {
		return ""
	}
	switch k.jwk.Key.(type) {
	case *rsa.PrivateKey, *rsa.PublicKey:
		return "RSA"
	case *ecdsa.PrivateKey, *ecdsa.PublicKey:
		return "EC"
	case ed25519.PrivateKey, ed25519.PublicKey:
		return "OKP"
	case []byte:
		return "oct"
	}
	return ""
}

// IsPublic reports whether the key holds no private material.
func (k *Key) IsPublic() bool {
	return k != nil && k.jwk != nil && k.jwk.IsPublic()
}

// KeyID returns the "kid" member, which may be empty.
func (k *Key) KeyID() string {
	if k == nil || k.jwk == nil {
		return ""
	}
	return k.jwk.KeyID
}

// Thumbprint returns the RFC 7638 SHA-256 thumbprint, base64url encoded.
func Thumbprint(key *Key) (string, error) {
	if key == nil || key.jwk == nil {
		return "", fmt.Errorf("%w: key", kerrors.ErrNilArgument)
	}
	sum, err := key.jwk.Thumbprint(crypto.SHA256)
	if err != nil {
		return "", fmt.Errorf("%w: %v", kerrors.ErrJWKExport, err)
	}
	return base64.RawURLEncoding.EncodeToString(sum), nil
}

// Release wipes private key material. The key cannot be used afterwards.
func (k *Key) Release() {
	if k == nil || k.jwk == nil {
		return
	}
	if priv, ok := k.jwk.Key.(*rsa.PrivateKey); ok {
		wipeRSA(priv)
	}
	k.jwk = nil
}

func wipeRSA(priv *rsa.PrivateKey) {
	if priv.D != nil {
		priv.D.SetInt64(0)
	}
	for _, p := range priv.Primes {
		p.SetInt64(0)
	}
	for _, v := range []*big.Int{priv.Precomputed.Dp, priv.Precomputed.Dq, priv.Precomputed.Qinv} {
		if v != nil {
			v.SetInt64(0)
		}
	}
}
