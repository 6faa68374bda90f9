package jwk

import (
	"crypto/rsa"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	kerrors "github.com/oidcrypt/oidcrypt/internal/errors"
	"github.com/stretchr/testify/require"
)

var privateMembers = []string{"d", "p", "q", "dp", "dq", "qi"}

var (
	sharedOnce sync.Once
	sharedSet  *KeySet
	sharedErr  error
)

// testKeySet generates one signing key set for the whole package; RSA
// generation is too slow to repeat in every test.
func testKeySet(t *testing.T) *KeySet {
	t.Helper()
	sharedOnce.Do(func() {
		sharedSet, sharedErr = GenerateSigningKeySet()
	})
	require.NoError(t, sharedErr)
	return sharedSet
}

func members(t *testing.T, jwkJSON string) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(jwkJSON), &m))
	return m
}

func TestGenerateSigningKeySet(t *testing.T) {
	set := testKeySet(t)

	priv := members(t, set.Private)
	pub := members(t, set.Public)

	require.Equal(t, "RSA", priv["kty"])
	require.Equal(t, "sig", priv["use"])
	require.Equal(t, "sig", pub["use"])
	require.Equal(t, "AQAB", pub["e"], "public exponent must be 65537")
	require.Equal(t, priv["n"], pub["n"])
	require.Equal(t, priv["e"], pub["e"])

	for _, m := range privateMembers {
		require.Contains(t, priv, m)
		require.NotContains(t, pub, m)
	}
}

func TestGeneratedModulusSize(t *testing.T) {
	key, err := Import(testKeySet(t).Private)
	require.NoError(t, err)
	defer key.Release()

	priv, ok := key.jwk.Key.(*rsa.PrivateKey)
	require.True(t, ok)
	require.Equal(t, RSAKeyBits, priv.N.BitLen())
	require.Equal(t, 65537, priv.E)
}

func TestExportPurityAndUse(t *testing.T) {
	key, err := Import(testKeySet(t).Private)
	require.NoError(t, err)
	defer key.Release()

	for _, use := range []Use{UseSig, UseEnc} {
		pubJSON, err := Export(key, false, use)
		require.NoError(t, err)
		privJSON, err := Export(key, true, use)
		require.NoError(t, err)

		pub := members(t, pubJSON)
		priv := members(t, privJSON)
		require.Equal(t, string(use), pub["use"])
		require.Equal(t, string(use), priv["use"])

		for k, v := range pub {
			require.Equal(t, v, priv[k], "private export must contain public member %q", k)
		}
		for _, m := range privateMembers {
			require.NotContains(t, pub, m)
			require.Contains(t, priv, m)
		}
	}
}

func TestExportOverwritesExistingUse(t *testing.T) {
	pub := members(t, testKeySet(t).Public)
	pub["use"] = "enc"
	raw, err := json.Marshal(pub)
	require.NoError(t, err)

	key, err := Import(string(raw))
	require.NoError(t, err)
	defer key.Release()

	out, err := ExportSig(key, false)
	require.NoError(t, err)
	require.Equal(t, "sig", members(t, out)["use"])

	out, err = ExportEnc(key, false)
	require.NoError(t, err)
	require.Equal(t, "enc", members(t, out)["use"])
}

func TestExportPublicKeyWithPrivateFlag(t *testing.T) {
	key, err := Import(testKeySet(t).Public)
	require.NoError(t, err)
	defer key.Release()

	require.True(t, key.IsPublic())
	out, err := Export(key, true, UseSig)
	require.NoError(t, err)
	for _, m := range privateMembers {
		require.NotContains(t, members(t, out), m)
	}
}

func TestExportArgumentErrors(t *testing.T) {
	_, err := Export(nil, false, UseSig)
	require.True(t, errors.Is(err, kerrors.ErrNilArgument))

	key, err := Import(testKeySet(t).Public)
	require.NoError(t, err)
	_, err = Export(key, false, Use("wrap"))
	require.True(t, errors.Is(err, kerrors.ErrInvalidUse))

	key.Release()
	_, err = Export(key, false, UseSig)
	require.True(t, errors.Is(err, kerrors.ErrNilArgument), "released key must not export")
}

func TestImportErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
		want error
	}{
		{"empty", "", kerrors.ErrNilArgument},
		{"blank", "   ", kerrors.ErrNilArgument},
		{"not json", "not json", kerrors.ErrJWKImport},
		{"unknown kty", `{"kty":"XYZ","n":"AQAB"}`, kerrors.ErrJWKImport},
		{"rsa without modulus", `{"kty":"RSA","e":"AQAB"}`, kerrors.ErrJWKImport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := Import(tt.text)
			require.Nil(t, key)
			require.True(t, errors.Is(err, tt.want), "expected %v, got %v", tt.want, err)
		})
	}
}

func TestImportKeepsKeyID(t *testing.T) {
	pub := members(t, testKeySet(t).Public)
	pub["kid"] = "key-1"
	raw, err := json.Marshal(pub)
	require.NoError(t, err)

	key, err := Import(string(raw))
	require.NoError(t, err)
	defer key.Release()
	require.Equal(t, "key-1", key.KeyID())
	require.Equal(t, "RSA", key.KeyType())
}

func TestThumbprintMatchesAcrossHalves(t *testing.T) {
	set := testKeySet(t)

	priv, err := Import(set.Private)
	require.NoError(t, err)
	defer priv.Release()
	pub, err := Import(set.Public)
	require.NoError(t, err)
	defer pub.Release()

	a, err := Thumbprint(priv)
	require.NoError(t, err)
	b, err := Thumbprint(pub)
	require.NoError(t, err)
	require.Equal(t, a, b)
	require.Len(t, a, 43)
}

func TestReleaseWipesPrivateKey(t *testing.T) {
	key, err := Import(testKeySet(t).Private)
	require.NoError(t, err)

	priv := key.jwk.Key.(*rsa.PrivateKey)
	key.Release()

	require.Zero(t, priv.D.Sign())
	for _, p := range priv.Primes {
		require.Zero(t, p.Sign())
	}
	require.Equal(t, "", key.KeyType())
	key.Release()
}
