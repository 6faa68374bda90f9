package crypt

import (
	"golang.org/x/crypto/argon2"
)

const (
	keySize   = 32
	saltSize  = 16
	nonceSize = 24
)

// Argon2id parameters for the current format. They match libsodium's
// interactive limits so older agents and this package agree on the key.
const (
	idTime    = 2
	idMemory  = 64 * 1024
	idThreads = 4
)

// Argon2i parameters for the legacy hex format.
const (
	legacyTime    = 4
	legacyMemory  = 32 * 1024
	legacyThreads = 1
)

func deriveKey(password, salt []byte) *[keySize]byte {
	var key [keySize]byte
	derived := argon2.IDKey(password, salt, idTime, idMemory, idThreads, keySize)
	copy(key[:], derived)
	Wipe(derived)
	return &key
}

func deriveLegacyKey(password, salt []byte) *[keySize]byte {
	var key [keySize]byte
	derived := argon2.Key(password, salt, legacyTime, legacyMemory, legacyThreads, keySize)
	copy(key[:], derived)
	Wipe(derived)
	return &key
}
