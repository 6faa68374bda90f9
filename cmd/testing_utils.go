// Package cmd contains testing utilities shared between command tests.
// This file provides common functions for setting up test environments,
// capturing output, and running the CLI in-process.
package cmd

import (
	"bytes"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/oidcrypt/oidcrypt/internal/audit"
	"github.com/oidcrypt/oidcrypt/internal/configs"
	logger "github.com/oidcrypt/oidcrypt/internal/logging"
	"github.com/oidcrypt/oidcrypt/internal/utils"
	"github.com/spf13/cobra"
)

// setupTestEnvironment points settings at a temporary directory, supplies the
// password through the environment and resets command state. It returns the
// temporary directory.
func setupTestEnvironment(t *testing.T, password string) string {
	t.Helper()
	tempDir := t.TempDir()

	oldSettings := *configs.OidcryptSettings
	oldAudit := audit.LogPath()
	configs.OidcryptSettings.ConfigDir = filepath.Join(tempDir, "config")
	configs.OidcryptSettings.DataDir = filepath.Join(tempDir, "data")

	t.Setenv(utils.PasswordEnv, password)
	ResetGlobalState()

	t.Cleanup(func() {
		*configs.OidcryptSettings = oldSettings
		audit.Configure(oldAudit)
		ResetGlobalState()
	})
	return tempDir
}

// captureOutput captures both stdout and stderr during function execution.
func captureOutput(fn func() error) (string, error) {
	// Save original stdout and stderr
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()

	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	stdoutChan := make(chan string, 1)
	stderrChan := make(chan string, 1)

	go func() {
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, stdoutReader); err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		stdoutChan <- buf.String()
	}()

	go func() {
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, stderrReader); err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		stderrChan <- buf.String()
	}()

	err := fn()

	// Close writers to signal EOF
	stdoutWriter.Close()
	stderrWriter.Close()

	os.Stdout = originalStdout
	os.Stderr = originalStderr

	return <-stdoutChan + <-stderrChan, err
}

// createTestCLI creates a complete CLI instance for testing that runs args.
func createTestCLI(args ...string) *cobra.Command {
	Logger = logger.Logger{
		Verbose: verbose,
		Debug:   debug,
	}

	rootCmd := &cobra.Command{
		Use:   "oidcrypt",
		Short: "oidcrypt - encrypted storage for OIDC account configurations and keys.",
	}
	Register(rootCmd)
	rootCmd.SetArgs(args)
	return rootCmd
}

// runCLI executes args against a fresh CLI and returns the combined output.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	output, err := captureOutput(func() error {
		return createTestCLI(args...).Execute()
	})
	resetAccountState()
	resetKeyState()
	resetConfigState()
	resetRandomState()
	resetLogCommandState()
	return output, err
}

// writeInput writes content to a file in dir and returns its path.
func writeInput(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}
