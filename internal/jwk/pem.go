package jwk

import (
	"bytes"
	"crypto/rsa"
	"errors"
	"fmt"

	jose "github.com/go-jose/go-jose/v4"
	kerrors "github.com/oidcrypt/oidcrypt/internal/errors"
	"golang.org/x/crypto/ssh"
)

var pemPrefix = []byte("-----BEGIN ")

// IsPEM reports whether data looks like a PEM block rather than JWK JSON.
func IsPEM(data []byte) bool {
	return bytes.HasPrefix(bytes.TrimSpace(data), pemPrefix)
}

// ImportPEM parses an unencrypted RSA private key in PKCS#1, PKCS#8 or
// OpenSSH PEM form.
func ImportPEM(data []byte) (*Key, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: pem", kerrors.ErrNilArgument)
	}

	raw, err := ssh.ParseRawPrivateKey(data)
	if err != nil {
		var missing *ssh.PassphraseMissingError
		if errors.As(err, &missing) {
			return nil, fmt.Errorf("%w: passphrase protected keys are not supported", kerrors.ErrJWKImport)
		}
		return nil, fmt.Errorf("%w: %v", kerrors.ErrJWKImport, err)
	}

	priv, ok := raw.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("%w: only RSA keys are supported, got %T", kerrors.ErrJWKImport, raw)
	}
	return &Key{jwk: &jose.JSONWebKey{Key: priv}}, nil
}
