// Package version handles the producer versions embedded in envelope text.
//
// A version line has the form "<producer> <major>.<minor>.<patch>". Tags are
// compared numerically per component; a missing tag is older than every
// known version.
package version

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

const (
	// Producer is the name written in front of the version on a version line.
	Producer = "oidcrypt"

	// MinBase64 is the first version that writes the base64 cipher token.
	// Anything older, or without a version line, uses the hex format.
	MinBase64 = "2.1.0"
)

// Current is the version written by this build. It is a variable so release
// builds can set it with -ldflags.
var Current = "2.3.0"

// Tag is a three-part version. The zero value is not meaningful; use Parse.
type Tag struct {
	v *semver.Version
}

// Parse reads a version such as "2.1.0", "v2.1" or "2". Prerelease and build
// metadata are dropped so only major.minor.patch takes part in comparisons.
func Parse(s string) (*Tag, error) {
	v, err := semver.NewVersion(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("parsing version %q: %w", s, err)
	}
	return &Tag{v: semver.New(v.Major(), v.Minor(), v.Patch(), "", "")}, nil
}

// MustParse is Parse for constants; it panics on error.
func MustParse(s string) *Tag {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

// CurrentTag returns Current as a Tag.
func CurrentTag() *Tag {
	return MustParse(Current)
}

// MinBase64Tag returns MinBase64 as a Tag.
func MinBase64Tag() *Tag {
	return MustParse(MinBase64)
}

func (t *Tag) String() string {
	if t == nil {
		return ""
	}
	return t.v.String()
}

// Compare returns -1, 0 or 1. A nil tag sorts before every non-nil tag.
func (t *Tag) Compare(o *Tag) int {
	switch {
	case t == nil && o == nil:
		return 0
	case t == nil:
		return -1
	case o == nil:
		return 1
	}
	return t.v.Compare(o.v)
}

// AtLeast reports whether v >= min. A nil v is never at least anything.
func AtLeast(v, min *Tag) bool {
	if v == nil {
		return false
	}
	return v.Compare(min) >= 0
}

// Line renders the version line for t.
func Line(t *Tag) string {
	return Producer + " " + t.String()
}

// FromLine extracts the tag from a version line. The version is the last
// space separated field, so the producer name is not checked. Lines that
// carry no parsable version yield nil.
func FromLine(line string) *Tag {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	t, err := Parse(fields[len(fields)-1])
	if err != nil {
		return nil
	}
	return t
}
