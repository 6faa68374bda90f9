package transport

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"
	kerrors "github.com/oidcrypt/oidcrypt/internal/errors"
	logger "github.com/oidcrypt/oidcrypt/internal/logging"
)

const (
	DefaultRetryMax = 2
	DefaultTimeout  = 30 * time.Second

	// maxBodyBytes caps a key set response.
	maxBodyBytes = 1 << 20
)

// Client fetches documents over HTTPS. The zero value is usable.
type Client struct {
	RetryMax int
	Timeout  time.Duration
	Logger   logger.Logger
}

// Get performs a GET on uri trusting only the certificates found at certPath.
func (c *Client) Get(ctx context.Context, uri string, headers map[string]string, certPath string) ([]byte, error) {
	u, err := url.Parse(uri)
	if err != nil || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", kerrors.ErrInvalidURI, uri)
	}
	if !strings.EqualFold(u.Scheme, "https") {
		return nil, fmt.Errorf("%w: %q is not https", kerrors.ErrInvalidURI, uri)
	}

	pool, err := LoadCertPool(certPath)
	if err != nil {
		return nil, err
	}

	client := c.newClient(pool)
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrInvalidURI, err)
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	c.Logger.Debugf("GET %s (certs from %s)", uri, certPath)
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned %s", kerrors.ErrFetchFailed, uri, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", kerrors.ErrFetchFailed, err)
	}
	if len(body) > maxBodyBytes {
		return nil, fmt.Errorf("%w: response exceeds %d bytes", kerrors.ErrFetchFailed, maxBodyBytes)
	}
	c.Logger.Debugf("fetched %d bytes from %s", len(body), uri)
	return body, nil
}

func (c *Client) newClient(pool *x509.CertPool) *retryablehttp.Client {
	tr := cleanhttp.DefaultPooledTransport()
	tr.TLSClientConfig = &tls.Config{
		RootCAs:    pool,
		MinVersion: tls.VersionTLS12,
	}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	retryMax := c.RetryMax
	if retryMax < 0 {
		retryMax = 0
	}

	rc := retryablehttp.NewClient()
	rc.HTTPClient = &http.Client{Transport: tr, Timeout: timeout}
	rc.RetryMax = retryMax
	rc.RetryWaitMin = 200 * time.Millisecond
	rc.RetryWaitMax = 2 * time.Second
	rc.Logger = leveledLogger{c.Logger}
	// Hand the last response back instead of a generic "giving up" error so
	// the status code reaches the caller.
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	return rc
}

// LoadCertPool reads PEM certificates from a file or from every regular file
// in a directory.
func LoadCertPool(certPath string) (*x509.CertPool, error) {
	if certPath == "" {
		return nil, fmt.Errorf("%w: cert path", kerrors.ErrNilArgument)
	}

	info, err := os.Stat(certPath)
	if err != nil {
		return nil, fmt.Errorf("%w: cert path: %v", kerrors.ErrFetchFailed, err)
	}

	files := []string{certPath}
	if info.IsDir() {
		entries, err := os.ReadDir(certPath)
		if err != nil {
			return nil, fmt.Errorf("%w: reading cert dir: %v", kerrors.ErrFetchFailed, err)
		}
		files = files[:0]
		for _, e := range entries {
			if e.Type().IsRegular() || e.Type()&os.ModeSymlink != 0 {
				files = append(files, filepath.Join(certPath, e.Name()))
			}
		}
	}

	pool := x509.NewCertPool()
	added := 0
	for _, f := range files {
		pem, err := os.ReadFile(f)
		if err != nil {
			continue
		}
		if pool.AppendCertsFromPEM(pem) {
			added++
		}
	}
	if added == 0 {
		return nil, fmt.Errorf("%w: no certificates found at %s", kerrors.ErrFetchFailed, certPath)
	}
	return pool, nil
}
