package transport

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"errors"
	"math/big"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	kerrors "github.com/oidcrypt/oidcrypt/internal/errors"
	"github.com/oidcrypt/oidcrypt/internal/jwk"
	"github.com/stretchr/testify/require"
)

var _ jwk.Fetcher = (*Client)(nil)

func writeServerCert(t *testing.T, srv *httptest.Server, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "server.pem")
	block := &pem.Block{Type: "CERTIFICATE", Bytes: srv.Certificate().Raw}
	require.NoError(t, os.WriteFile(path, pem.EncodeToMemory(block), 0600))
	return path
}

func TestGetTrustsCertFile(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "yes", r.Header.Get("X-Test"))
		_, _ = w.Write([]byte(`{"keys":[]}`))
	}))
	defer srv.Close()

	certPath := writeServerCert(t, srv, t.TempDir())
	body, err := (&Client{}).Get(context.Background(), srv.URL, map[string]string{"X-Test": "yes"}, certPath)
	require.NoError(t, err)
	require.JSONEq(t, `{"keys":[]}`, string(body))
}

func TestGetTrustsCertDirectory(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	writeServerCert(t, srv, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README"), []byte("not a cert"), 0600))

	body, err := (&Client{}).Get(context.Background(), srv.URL, nil, dir)
	require.NoError(t, err)
	require.Equal(t, "ok", string(body))
}

func TestGetRejectsUntrustedServer(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	certPath := filepath.Join(t.TempDir(), "ca.pem")
	require.NoError(t, os.WriteFile(certPath, selfSignedPEM(t), 0600))

	_, err := (&Client{RetryMax: 0}).Get(context.Background(), srv.URL, nil, certPath)
	require.True(t, errors.Is(err, kerrors.ErrFetchFailed), "got %v", err)
}

func TestGetNonOKStatus(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	certPath := writeServerCert(t, srv, t.TempDir())
	_, err := (&Client{}).Get(context.Background(), srv.URL, nil, certPath)
	require.True(t, errors.Is(err, kerrors.ErrFetchFailed))
	require.Equal(t, kerrors.KindTransport, kerrors.KindOf(err))
	require.Equal(t, int32(1), calls.Load(), "404 is not retried")
}

func TestGetRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("recovered"))
	}))
	defer srv.Close()

	certPath := writeServerCert(t, srv, t.TempDir())
	body, err := (&Client{RetryMax: 2}).Get(context.Background(), srv.URL, nil, certPath)
	require.NoError(t, err)
	require.Equal(t, "recovered", string(body))
	require.Equal(t, int32(2), calls.Load())
}

func TestGetRejectsOversizedBody(t *testing.T) {
	set, err := jwk.GenerateSigningKeySet()
	require.NoError(t, err)

	padding := strings.Repeat(" ", maxBodyBytes)
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"keys":[` + set.Public + `]}` + padding))
	}))
	defer srv.Close()

	certPath := writeServerCert(t, srv, t.TempDir())
	_, err = jwk.NewResolver(&Client{}).ImportFromURI(context.Background(), srv.URL, certPath)
	require.True(t, errors.Is(err, kerrors.ErrFetchFailed), "got %v", err)
	require.Equal(t, kerrors.KindTransport, kerrors.KindOf(err))
}

func TestGetAcceptsBodyAtCap(t *testing.T) {
	body := strings.Repeat("a", maxBodyBytes)
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	certPath := writeServerCert(t, srv, t.TempDir())
	got, err := (&Client{}).Get(context.Background(), srv.URL, nil, certPath)
	require.NoError(t, err)
	require.Len(t, got, maxBodyBytes)
}

func TestGetURIValidation(t *testing.T) {
	c := &Client{}
	for _, uri := range []string{"http://issuer.example/jwks", "ftp://x/y", "not a uri", ""} {
		_, err := c.Get(context.Background(), uri, nil, "/nonexistent")
		require.True(t, errors.Is(err, kerrors.ErrInvalidURI), "uri %q: %v", uri, err)
	}
}

func TestLoadCertPoolErrors(t *testing.T) {
	_, err := LoadCertPool("")
	require.True(t, errors.Is(err, kerrors.ErrNilArgument))

	_, err = LoadCertPool(filepath.Join(t.TempDir(), "missing.pem"))
	require.True(t, errors.Is(err, kerrors.ErrFetchFailed))

	empty := t.TempDir()
	_, err = LoadCertPool(empty)
	require.True(t, errors.Is(err, kerrors.ErrFetchFailed))
}

func TestResolverOverTLS(t *testing.T) {
	set, err := jwk.GenerateSigningKeySet()
	require.NoError(t, err)

	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"keys":[` + set.Public + `]}`))
	}))
	defer srv.Close()

	certPath := writeServerCert(t, srv, t.TempDir())
	key, err := jwk.NewResolver(&Client{}).ImportFromURI(context.Background(), srv.URL+"/jwks", certPath)
	require.NoError(t, err)
	defer key.Release()
	require.True(t, key.IsPublic())
}

func selfSignedPEM(t *testing.T) []byte {
	t.Helper()
	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	tmpl := &x509.Certificate{
		SerialNumber:          big.NewInt(1),
		Subject:               pkix.Name{CommonName: "unrelated-ca.invalid"},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().Add(time.Hour),
		IsCA:                  true,
		BasicConstraintsValid: true,
		KeyUsage:              x509.KeyUsageCertSign,
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &priv.PublicKey, priv)
	require.NoError(t, err)
	return pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
}
