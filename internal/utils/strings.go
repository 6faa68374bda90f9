package utils

import (
	"strings"

	"github.com/oidcrypt/oidcrypt/internal/ui"
)

// FormatNames formats a slice of account names into a readable list.
func FormatNames(names []string) string {
	var b strings.Builder
	for _, name := range names {
		b.WriteString("    - ")
		b.WriteString(ui.Highlight.Sprint(name))
		b.WriteString("\n")
	}
	return b.String()
}
