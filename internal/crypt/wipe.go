package crypt

import "github.com/awnumar/memguard"

// Wipe overwrites b with zeros. Use it on passwords, derived keys and
// decrypted plaintext once the caller is done with them.
func Wipe(b []byte) {
	if len(b) == 0 {
		return
	}
	memguard.WipeBytes(b)
}

func wipeKey(key *[keySize]byte) {
	Wipe(key[:])
}
