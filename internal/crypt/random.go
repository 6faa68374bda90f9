package crypt

import (
	"crypto/rand"
	"fmt"

	kerrors "github.com/oidcrypt/oidcrypt/internal/errors"
)

const urlSafeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

// maxRandomAttempts bounds how many fresh buffers RandomString draws. With 62
// of 64 symbols alphanumeric, needing a second buffer is already rare.
const maxRandomAttempts = 16

// RandomString returns n characters from the URL-safe base64 alphabet whose
// first character is alphanumeric.
func RandomString(n int) (string, error) {
	if n < 1 {
		return "", fmt.Errorf("%w: length must be positive, got %d", kerrors.ErrNilArgument, n)
	}

	buf := make([]byte, n)
	for attempt := 0; attempt < maxRandomAttempts; attempt++ {
		if err := fillURLSafe(buf); err != nil {
			return "", err
		}
		if alignAlnum(buf) {
			return string(buf), nil
		}
	}
	return "", fmt.Errorf("%w: after %d attempts", kerrors.ErrRandomExhausted, maxRandomAttempts)
}

func fillURLSafe(buf []byte) error {
	if _, err := rand.Read(buf); err != nil {
		return fmt.Errorf("reading entropy: %w", err)
	}
	// 64 symbols, so masking keeps the distribution uniform.
	for i := range buf {
		buf[i] = urlSafeAlphabet[buf[i]&63]
	}
	return nil
}

// alignAlnum rotates buf left until its first byte is alphanumeric, trying
// every rotation at most once. It reports whether it succeeded.
func alignAlnum(buf []byte) bool {
	for shifts := 0; shifts < len(buf); shifts++ {
		if isAlnum(buf[0]) {
			return true
		}
		rotateLeft(buf)
	}
	return false
}

func rotateLeft(buf []byte) {
	if len(buf) < 2 {
		return
	}
	first := buf[0]
	copy(buf, buf[1:])
	buf[len(buf)-1] = first
}

func isAlnum(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9')
}
