package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Output streams. Nil means the process's current os.Stdout and os.Stderr.
var (
	Stdout io.Writer
	Stderr io.Writer
)

type Logger struct {
	Verbose bool
	Debug   bool
}

type level struct {
	tag   string
	paint func(string, ...interface{}) string
	err   bool
}

var (
	levelInfo  = level{"[info] ", color.GreenString, false}
	levelDebug = level{"[debug] ", color.CyanString, false}
	levelWarn  = level{"[warn] ", color.YellowString, true}
	levelError = level{"[error] ", color.RedString, true}
)

func (lv level) print(msg string, args []any) {
	var w io.Writer = os.Stdout
	if Stdout != nil {
		w = Stdout
	}
	if lv.err {
		w = os.Stderr
		if Stderr != nil {
			w = Stderr
		}
	}
	fmt.Fprintf(w, lv.paint(lv.tag)+msg+"\n", args...)
}

func (l Logger) Infof(msg string, args ...any) {
	if l.Verbose || l.Debug {
		levelInfo.print(msg, args)
	}
}

func (l Logger) Debugf(msg string, args ...any) {
	if l.Debug {
		levelDebug.print(msg, args)
	}
}

// Warnf is shown in verbose or debug mode only.
func (l Logger) Warnf(msg string, args ...any) {
	if l.Verbose || l.Debug {
		levelWarn.print(msg, args)
	}
}

// WarnfAlways is for warnings the user must see regardless of verbosity.
func (l Logger) WarnfAlways(msg string, args ...any) {
	levelWarn.print(msg, args)
}

func (l Logger) Errorf(msg string, args ...any) {
	levelError.print(msg, args)
}

// ErrorfAndReturn logs the message and returns it as an error. A %w verb
// in msg keeps the wrapped error inspectable with errors.Is.
func (l Logger) ErrorfAndReturn(msg string, args ...any) error {
	err := fmt.Errorf(msg, args...)
	levelError.print("%s", []any{err.Error()})
	return err
}
