package crypt

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"

	kerrors "github.com/oidcrypt/oidcrypt/internal/errors"
	"golang.org/x/crypto/nacl/secretbox"
)

const legacyFieldCount = 4

// EncryptHex produces the pre-2.1.0 hex tuple. Nothing on the write path
// calls it; it reproduces old data for migration and tests.
func EncryptHex(plaintext, password []byte) (string, error) {
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

	key := deriveLegacyKey(password, salt)
	defer wipeKey(key)

	box := secretbox.Seal(nil, plaintext, &nonce, key)
	return fmt.Sprintf("%d:%s:%s:%s", len(box),
		hex.EncodeToString(salt), hex.EncodeToString(nonce[:]), hex.EncodeToString(box)), nil
}

// legacyFields is the parsed form of a hex tuple.
type legacyFields struct {
	cipherLen uint64
	salt      []byte
	nonce     [nonceSize]byte
	box       []byte
}

func parseLegacy(cipher string) (*legacyFields, error) {
	parts := strings.Split(strings.TrimSpace(cipher), ":")
	if len(parts) != legacyFieldCount {
		return nil, fmt.Errorf("%w: expected %d fields, got %d", kerrors.ErrMalformedCipher, legacyFieldCount, len(parts))
	}
	for i, p := range parts {
		if p == "" {
			return nil, fmt.Errorf("%w: field %d is empty", kerrors.ErrMalformedCipher, i+1)
		}
	}

	cipherLen, err := strconv.ParseUint(parts[0], 10, 64)
	if err != nil || cipherLen == 0 {
		return nil, fmt.Errorf("%w: invalid cipher length %q", kerrors.ErrMalformedCipher, parts[0])
	}

	salt, err := hex.DecodeString(parts[1])
	if err != nil || len(salt) != saltSize {
		return nil, fmt.Errorf("%w: invalid salt", kerrors.ErrMalformedCipher)
	}
	nonce, err := hex.DecodeString(parts[2])
	if err != nil || len(nonce) != nonceSize {
		return nil, fmt.Errorf("%w: invalid nonce", kerrors.ErrMalformedCipher)
	}
	box, err := hex.DecodeString(parts[3])
	if err != nil {
		return nil, fmt.Errorf("%w: invalid cipher text", kerrors.ErrMalformedCipher)
	}
	if uint64(len(box)) != cipherLen || len(box) < secretbox.Overhead {
		return nil, fmt.Errorf("%w: cipher length %d does not match declared %d", kerrors.ErrMalformedCipher, len(box), cipherLen)
	}

	f := &legacyFields{cipherLen: cipherLen, salt: salt, box: box}
	copy(f.nonce[:], nonce)
	return f, nil
}

// DecryptHex opens a legacy hex tuple.
func DecryptHex(cipher string, password []byte) ([]byte, error) {
	if cipher == "" {
		return nil, fmt.Errorf("%w: cipher", kerrors.ErrNilArgument)
	}
	if len(password) == 0 {
		return nil, fmt.Errorf("%w: password", kerrors.ErrNilArgument)
	}

	f, err := parseLegacy(cipher)
	if err != nil {
		return nil, err
	}

	key := deriveLegacyKey(password, f.salt)
	defer wipeKey(key)

	plaintext, ok := secretbox.Open(nil, f.box, &f.nonce, key)
	if !ok {
		return nil, kerrors.ErrDecryptFailed
	}
	return plaintext, nil
}

// IsLegacyCipher reports whether cipher is shaped like a hex tuple. It does
// not validate the fields.
func IsLegacyCipher(cipher string) bool {
	return strings.Count(cipher, ":") == legacyFieldCount-1
}
