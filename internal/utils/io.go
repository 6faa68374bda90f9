package utils

import (
	"fmt"
	"io"
	"os"
)

// MaxInputBytes bounds an account configuration or key read by ReadInput.
const MaxInputBytes = 1 << 20

// ReadInput reads path, or stdin when path is "" or "-". Empty input and
// input over MaxInputBytes are errors. Stdin must be piped, not a terminal.
func ReadInput(path string) ([]byte, error) {
	name := path
	var r io.Reader
	if path == "" || path == "-" {
		stat, err := os.Stdin.Stat()
		if err != nil {
			return nil, fmt.Errorf("failed to stat stdin: %w", err)
		}
		if stat.Mode()&os.ModeCharDevice != 0 {
			return nil, fmt.Errorf("no data provided on stdin (hint: pass a file or pipe the input)")
		}
		name, r = "stdin", os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		defer f.Close()
		r = f
	}

	data, err := io.ReadAll(io.LimitReader(r, MaxInputBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	switch {
	case len(data) == 0:
		return nil, fmt.Errorf("%s is empty", name)
	case len(data) > MaxInputBytes:
		return nil, fmt.Errorf("%s is larger than %d bytes", name, MaxInputBytes)
	}
	return data, nil
}
