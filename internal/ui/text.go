package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// Formatter applies semantic formatting to text. Without color the text is
// wrapped in open and close instead.
type Formatter struct {
	color *color.Color
	open  string
	close string
}

func plain(attr color.Attribute) Formatter {
	return Formatter{color: color.New(attr)}
}

func decorated(attr color.Attribute, open, close string) Formatter {
	return Formatter{color: color.New(attr), open: open, close: close}
}

// Sprint formats the arguments and returns the resulting string.
func (f Formatter) Sprint(a ...interface{}) string {
	return f.render(fmt.Sprint(a...))
}

// Sprintf formats according to a format specifier and returns the resulting string.
func (f Formatter) Sprintf(format string, a ...interface{}) string {
	return f.render(fmt.Sprintf(format, a...))
}

func (f Formatter) render(text string) string {
	if noColor() {
		return f.open + text + f.close
	}
	return f.color.Sprint(text)
}

// noColor honors NO_COLOR (https://no-color.org/) and fatih/color's own
// terminal detection.
func noColor() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return true
	}
	return color.NoColor
}

// EnsureNewline ensures the string ends with a newline character.
func EnsureNewline(s string) string {
	if len(s) == 0 || s[len(s)-1] != '\n' {
		return s + "\n"
	}
	return s
}

// Semantic formatters for CLI output.
var (
	Code      = decorated(color.FgYellow, "`", "`")  // runnable commands
	Path      = plain(color.FgYellow)                // files and directories
	Flag      = plain(color.FgYellow)                // --flags
	Success   = plain(color.FgGreen)                 // completed actions
	Error     = plain(color.FgRed)                   // failures
	Warning   = plain(color.FgYellow)                // e.g. legacy format notices
	Info      = plain(color.FgCyan)                  // hints
	Highlight = decorated(color.FgCyan, "'", "'")    // account names, key IDs
	Muted     = decorated(color.FgHiBlack, "(", ")") // secondary details
	Label     = plain(color.Bold)                    // Field labels
)

// SuccessMark, FailMark, WarnMark and HintMark start a line of command output.
func SuccessMark() string { return Success.Sprint("✓") }

func FailMark() string { return Error.Sprint("✗") }

func WarnMark() string { return Warning.Sprint("⚠") }

func HintMark() string { return Info.Sprint("→") }

// Field renders one aligned "label: value" row. width pads the label so
// rows printed together line up.
func Field(label string, width int, value string) string {
	pad := width - len(label)
	if pad < 0 {
		pad = 0
	}
	return fmt.Sprintf("  %s:%*s %s\n", Label.Sprint(label), pad, "", value)
}
