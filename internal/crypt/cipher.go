package crypt

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	kerrors "github.com/oidcrypt/oidcrypt/internal/errors"
	"golang.org/x/crypto/nacl/secretbox"
)

// Encrypt seals plaintext under password and returns the current format token.
func Encrypt(plaintext, password []byte) (string, error) {
	if len(password) == 0 {
		return "", fmt.Errorf("%w: password", kerrors.ErrNilArgument)
	}

	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("%w: generating salt: %v", kerrors.ErrEncryptFailed, err)
	}

	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", fmt.Errorf("%w: generating nonce: %v", kerrors.ErrEncryptFailed, err)
	}

	key := deriveKey(password, salt)
	defer wipeKey(key)

	out := make([]byte, 0, saltSize+nonceSize+len(plaintext)+secretbox.Overhead)
	out = append(out, salt...)
	out = append(out, nonce[:]...)
	out = secretbox.Seal(out, plaintext, &nonce, key)

	return base64.StdEncoding.EncodeToString(out), nil
}

// Decrypt opens a token produced by Encrypt.
func Decrypt(token string, password []byte) ([]byte, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: cipher", kerrors.ErrNilArgument)
	}
	if len(password) == 0 {
		return nil, fmt.Errorf("%w: password", kerrors.ErrNilArgument)
	}

	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(token))
	if err != nil {
		return nil, fmt.Errorf("%w: token is not base64: %v", kerrors.ErrMalformedCipher, err)
	}
	if len(raw) < saltSize+nonceSize+secretbox.Overhead {
		return nil, fmt.Errorf("%w: token too short (%d bytes)", kerrors.ErrMalformedCipher, len(raw))
	}

	salt := raw[:saltSize]
	var nonce [nonceSize]byte
	copy(nonce[:], raw[saltSize:saltSize+nonceSize])
	box := raw[saltSize+nonceSize:]

	key := deriveKey(password, salt)
	defer wipeKey(key)

	plaintext, ok := secretbox.Open(nil, box, &nonce, key)
	if !ok {
		return nil, kerrors.ErrDecryptFailed
	}
	return plaintext, nil
}
