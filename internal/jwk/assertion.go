package jwk

import (
	"crypto/rsa"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	kerrors "github.com/oidcrypt/oidcrypt/internal/errors"
)

// SignAssertion signs claims with the RSA key in privateJWK using RS256.
// The key's "kid", when present, is copied into the token header.
func SignAssertion(privateJWK string, claims jwt.Claims) (string, error) {
	key, err := Import(privateJWK)
	if err != nil {
		return "", err
	}
	defer key.Release()

	priv, ok := key.jwk.Key.(*rsa.PrivateKey)
	if !ok {
		return "", fmt.Errorf("%w: signing needs an RSA private key, got %s", kerrors.ErrJWKImport, key.KeyType())
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	if kid := key.KeyID(); kid != "" {
		token.Header["kid"] = kid
	}
	signed, err := token.SignedString(priv)
	if err != nil {
		return "", fmt.Errorf("signing assertion: %w", err)
	}
	return signed, nil
}

// VerifyAssertion checks an RS256 token against publicJWK and returns its claims.
func VerifyAssertion(token, publicJWK string) (jwt.MapClaims, error) {
	key, err := Import(publicJWK)
	if err != nil {
		return nil, err
	}
	defer key.Release()

	var pub *rsa.PublicKey
	switch k := key.jwk.Key.(type) {
	case *rsa.PublicKey:
		pub = k
	case *rsa.PrivateKey:
		pub = &k.PublicKey
	default:
		return nil, fmt.Errorf("%w: verification needs an RSA key, got %s", kerrors.ErrJWKImport, key.KeyType())
	}

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return pub, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrInvalidSignature, err)
	}
	return claims, nil
}
