package utils

import (
	"fmt"
	"os"
	"runtime"

	"golang.org/x/term"
)

// IsTerminal returns true if stdin is a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// ReadSecret prompts on stderr and reads one line without echo. Stdin is
// used when it is a terminal; otherwise the controlling terminal is opened
// so stdin stays free for piped account configurations.
func ReadSecret(prompt string) ([]byte, error) {
	if IsTerminal() {
		return readHidden(int(os.Stdin.Fd()), prompt)
	}

	tty, err := os.Open(ttyPath())
	if err != nil {
		return nil, fmt.Errorf("no terminal for password input (set %s): %w", PasswordEnv, err)
	}
	defer tty.Close()

	if !term.IsTerminal(int(tty.Fd())) {
		return nil, fmt.Errorf("%s is not a terminal (set %s)", tty.Name(), PasswordEnv)
	}
	return readHidden(int(tty.Fd()), prompt)
}

func readHidden(fd int, prompt string) ([]byte, error) {
	fmt.Fprint(os.Stderr, prompt)
	secret, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}
	return secret, nil
}

func ttyPath() string {
	if runtime.GOOS == "windows" {
		return "CON"
	}
	return "/dev/tty"
}
