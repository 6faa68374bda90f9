package jwk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	kerrors "github.com/oidcrypt/oidcrypt/internal/errors"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	body     []byte
	err      error
	gotURI   string
	gotCerts string
}

func (f *fakeFetcher) Get(_ context.Context, uri string, _ map[string]string, certPath string) ([]byte, error) {
	f.gotURI = uri
	f.gotCerts = certPath
	return f.body, f.err
}

func keySetBody(keys ...string) []byte {
	raw := make([]json.RawMessage, len(keys))
	for i, k := range keys {
		raw[i] = json.RawMessage(k)
	}
	body, _ := json.Marshal(map[string]any{"keys": raw})
	return body
}

func TestImportFromURISingleKey(t *testing.T) {
	set := testKeySet(t)
	fetcher := &fakeFetcher{body: keySetBody(set.Public)}

	key, err := NewResolver(fetcher).ImportFromURI(context.Background(), "https://issuer.example/jwks", "/etc/ssl/certs")
	require.NoError(t, err)
	defer key.Release()

	require.Equal(t, "https://issuer.example/jwks", fetcher.gotURI)
	require.Equal(t, "/etc/ssl/certs", fetcher.gotCerts)
	require.True(t, key.IsPublic())

	want, err := Import(set.Public)
	require.NoError(t, err)
	defer want.Release()
	a, _ := Thumbprint(key)
	b, _ := Thumbprint(want)
	require.Equal(t, b, a)
}

func TestImportFromURIResolutionFailures(t *testing.T) {
	set := testKeySet(t)

	tests := []struct {
		name string
		body []byte
		want error
	}{
		{"empty set", keySetBody(), kerrors.ErrNoMatchingKey},
		{"two keys", keySetBody(set.Public, set.Public), kerrors.ErrAmbiguousKeySet},
		{"three keys", keySetBody(set.Public, set.Public, set.Public), kerrors.ErrAmbiguousKeySet},
		{"no keys member", []byte(`{"issuer":"x"}`), kerrors.ErrNoMatchingKey},
		{"keys not an array", []byte(`{"keys":"nope"}`), kerrors.ErrNoMatchingKey},
		{"not json", []byte(`<html>`), kerrors.ErrNoMatchingKey},
		{"invalid single key", []byte(`{"keys":[{"kty":"RSA"}]}`), kerrors.ErrJWKImport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := NewResolver(&fakeFetcher{body: tt.body}).ImportFromURI(context.Background(), "https://x/jwks", "/certs")
			require.Nil(t, key)
			require.True(t, errors.Is(err, tt.want), "expected %v, got %v", tt.want, err)
		})
	}
}

func TestEmptyAndAmbiguousAreDistinguishable(t *testing.T) {
	set := testKeySet(t)

	_, errEmpty := NewResolver(&fakeFetcher{body: keySetBody()}).ImportFromURI(context.Background(), "https://x", "/c")
	_, errMany := NewResolver(&fakeFetcher{body: keySetBody(set.Public, set.Public)}).ImportFromURI(context.Background(), "https://x", "/c")

	require.Equal(t, kerrors.KindResolution, kerrors.KindOf(errEmpty))
	require.Equal(t, kerrors.KindResolution, kerrors.KindOf(errMany))
	require.False(t, errors.Is(errEmpty, kerrors.ErrAmbiguousKeySet))
	require.False(t, errors.Is(errMany, kerrors.ErrNoMatchingKey))
}

func TestImportFromURIArguments(t *testing.T) {
	r := NewResolver(&fakeFetcher{})
	_, err := r.ImportFromURI(context.Background(), "", "/certs")
	require.True(t, errors.Is(err, kerrors.ErrNilArgument))
	_, err = r.ImportFromURI(context.Background(), "https://x", "")
	require.True(t, errors.Is(err, kerrors.ErrNilArgument))
	_, err = (&Resolver{}).ImportFromURI(context.Background(), "https://x", "/certs")
	require.True(t, errors.Is(err, kerrors.ErrNilArgument))
}

func TestImportFromURIPropagatesFetchErrors(t *testing.T) {
	fetchErr := fmt.Errorf("%w: status 503", kerrors.ErrFetchFailed)
	_, err := NewResolver(&fakeFetcher{err: fetchErr}).ImportFromURI(context.Background(), "https://x", "/certs")
	require.True(t, errors.Is(err, kerrors.ErrFetchFailed))
}

func TestCustomSelector(t *testing.T) {
	set := testKeySet(t)
	other := members(t, set.Public)
	other["kid"] = "second"
	second, err := json.Marshal(other)
	require.NoError(t, err)

	r := &Resolver{
		Fetcher: &fakeFetcher{body: keySetBody(set.Public, string(second))},
		Selector: SelectorFunc(func(c []json.RawMessage) (json.RawMessage, error) {
			return c[len(c)-1], nil
		}),
	}
	key, err := r.ImportFromURI(context.Background(), "https://x", "/certs")
	require.NoError(t, err)
	defer key.Release()
	require.Equal(t, "second", key.KeyID())
}
