// Package envelope reads and writes the persisted form of an encrypted
// account configuration: a cipher followed by a version line.
//
//	<cipher token>
//	oidcrypt 2.3.0
//
// Text without a version line, or with a version older than
// version.MinBase64, is legacy and holds a hex tuple on its first line.
// Encoding always writes the current format.
package envelope

import (
	"fmt"
	"strings"

	"github.com/oidcrypt/oidcrypt/internal/crypt"
	kerrors "github.com/oidcrypt/oidcrypt/internal/errors"
	"github.com/oidcrypt/oidcrypt/internal/version"
)

// Format selects the decode path for an envelope.
type Format int

const (
	FormatLegacy Format = iota
	FormatCurrent
)

func (f Format) String() string {
	if f == FormatCurrent {
		return "base64"
	}
	return "hex"
}

// Envelope is parsed envelope text. It keeps the original lines and never
// modifies them.
type Envelope struct {
	// Lines holds every non-trailing line, including the version line.
	Lines []string

	// Version is the tag from the version line, nil when there is none.
	Version *version.Tag

	// Format is decided once from Version.
	Format Format
}

// Parse splits envelope text into lines and selects the format. Carriage
// returns and trailing blank lines are ignored.
func Parse(text string) (*Envelope, error) {
	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	normalized = strings.TrimRight(normalized, "\n\t ")
	if strings.TrimSpace(normalized) == "" {
		return nil, fmt.Errorf("%w: no cipher line", kerrors.ErrMalformedEnvelope)
	}

	lines := strings.Split(normalized, "\n")
	env := &Envelope{Lines: lines, Format: FormatLegacy}
	if len(lines) > 1 {
		env.Version = version.FromLine(lines[len(lines)-1])
	}
	if version.AtLeast(env.Version, version.MinBase64Tag()) {
		env.Format = FormatCurrent
	}
	return env, nil
}

// Cipher returns the cipher text handed to the decoder. For the current
// format every line before the version line is joined, which reassembles
// tokens that were wrapped across lines. Legacy envelopes use the first line.
func (e *Envelope) Cipher() string {
	if e.Format == FormatCurrent {
		return strings.Join(e.Lines[:len(e.Lines)-1], "")
	}
	return e.Lines[0]
}

// Decrypt opens the envelope with password.
//
// Returns ErrMalformedEnvelope when there is no cipher before the version line.
func (e *Envelope) Decrypt(password []byte) ([]byte, error) {
	cipher := e.Cipher()
	if strings.TrimSpace(cipher) == "" {
		return nil, fmt.Errorf("%w: empty cipher", kerrors.ErrMalformedEnvelope)
	}
	if e.Format == FormatCurrent {
		return crypt.Decrypt(cipher, password)
	}
	return crypt.DecryptHex(cipher, password)
}

// Decode parses envelope text and decrypts it.
func Decode(text string, password []byte) ([]byte, error) {
	env, err := Parse(text)
	if err != nil {
		return nil, err
	}
	return env.Decrypt(password)
}

// Encode encrypts plaintext and appends the version line of this build.
func Encode(plaintext, password []byte) (string, error) {
	return EncodeWithVersion(plaintext, password, version.CurrentTag())
}

// EncodeWithVersion encrypts plaintext in the current format and appends a
// version line for v. Versions older than version.MinBase64 are rejected
// because the result would be read back as legacy.
func EncodeWithVersion(plaintext, password []byte, v *version.Tag) (string, error) {
	if v == nil {
		return "", fmt.Errorf("%w: version", kerrors.ErrNilArgument)
	}
	if !version.AtLeast(v, version.MinBase64Tag()) {
		return "", fmt.Errorf("%w: %s predates %s", kerrors.ErrInvalidVersion, v, version.MinBase64)
	}

	token, err := crypt.Encrypt(plaintext, password)
	if err != nil {
		return "", err
	}
	return token + "\n" + version.Line(v), nil
}

// DecryptText decrypts a cipher whose producing version is known from
// elsewhere, without any line handling. An empty or unparsable ver means
// the legacy format.
func DecryptText(cipher string, password []byte, ver string) ([]byte, error) {
	if cipher == "" {
		return nil, fmt.Errorf("%w: cipher", kerrors.ErrNilArgument)
	}
	if len(password) == 0 {
		return nil, fmt.Errorf("%w: password", kerrors.ErrNilArgument)
	}

	var tag *version.Tag
	if ver != "" {
		tag, _ = version.Parse(ver)
	}
	if version.AtLeast(tag, version.MinBase64Tag()) {
		return crypt.Decrypt(cipher, password)
	}
	return crypt.DecryptHex(cipher, password)
}
