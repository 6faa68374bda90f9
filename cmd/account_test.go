package cmd

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/oidcrypt/oidcrypt/internal/crypt"
	kerrors "github.com/oidcrypt/oidcrypt/internal/errors"
)

const (
	testPassword = "correct-horse"
	testConfig   = `{"name":"work","issuer_url":"https://issuer.example"}`
)

// TestAccountCommands contains integration tests for the `oidcrypt account` commands.
func TestAccountCommands(t *testing.T) {
	t.Run("AddThenPrint", testAccountAddThenPrint)
	t.Run("AddRefusesOverwrite", testAccountAddRefusesOverwrite)
	t.Run("PrintWrongPassword", testAccountPrintWrongPassword)
	t.Run("PrintMissingAccount", testAccountPrintMissing)
	t.Run("AddInvalidName", testAccountAddInvalidName)
	t.Run("AddEmptyPasswordEnv", testAccountAddEmptyPasswordEnv)
	t.Run("ListJSON", testAccountListJSON)
	t.Run("ListEmpty", testAccountListEmpty)
	t.Run("ListPattern", testAccountListPattern)
	t.Run("MigrateLegacy", testAccountMigrateLegacy)
	t.Run("MigrateDryRun", testAccountMigrateDryRun)
	t.Run("Remove", testAccountRemove)
}

func testAccountAddThenPrint(t *testing.T) {
	tempDir := setupTestEnvironment(t, testPassword)
	input := writeInput(t, tempDir, "work.json", testConfig)

	output, err := runCLI(t, "account", "add", "work", input)
	if err != nil {
		t.Fatalf("account add failed: %v\nOutput: %s", err, output)
	}
	if !strings.Contains(output, "✓") || !strings.Contains(output, "work") {
		t.Errorf("Expected success message, got: %s", output)
	}

	output, err = runCLI(t, "account", "print", "work")
	if err != nil {
		t.Fatalf("account print failed: %v\nOutput: %s", err, output)
	}
	if !strings.Contains(output, testConfig) {
		t.Errorf("Expected decrypted configuration in output, got: %s", output)
	}
	if strings.Contains(output, "legacy") {
		t.Errorf("Did not expect a legacy warning, got: %s", output)
	}
}

func testAccountAddEmptyPasswordEnv(t *testing.T) {
	tempDir := setupTestEnvironment(t, "")
	input := writeInput(t, tempDir, "work.json", testConfig)

	output, err := runCLI(t, "account", "add", "work", input)
	if !IsReported(err) {
		t.Fatalf("Expected reported failure, got: %v", err)
	}
	if !errors.Is(err, kerrors.ErrNilArgument) {
		t.Errorf("Expected the cause to stay wrapped, got: %v", err)
	}
	if strings.Count(output, "is set but empty") != 1 {
		t.Errorf("Expected the failure to be printed once, got: %s", output)
	}
	if !strings.Contains(output, "✗") || strings.Contains(output, "[error]") {
		t.Errorf("Expected a single ✗ message, got: %s", output)
	}
}

func testAccountAddRefusesOverwrite(t *testing.T) {
	tempDir := setupTestEnvironment(t, testPassword)
	input := writeInput(t, tempDir, "work.json", testConfig)

	if output, err := runCLI(t, "account", "add", "work", input); err != nil {
		t.Fatalf("account add failed: %v\nOutput: %s", err, output)
	}

	output, err := runCLI(t, "account", "add", "work", input)
	if !IsReported(err) {
		t.Fatalf("Expected reported failure, got: %v", err)
	}
	if !strings.Contains(output, "already exists") || !strings.Contains(output, "--force") {
		t.Errorf("Expected overwrite hint, got: %s", output)
	}

	if output, err := runCLI(t, "account", "add", "work", input, "--force"); err != nil {
		t.Fatalf("account add --force failed: %v\nOutput: %s", err, output)
	}
}

func testAccountPrintWrongPassword(t *testing.T) {
	tempDir := setupTestEnvironment(t, testPassword)
	input := writeInput(t, tempDir, "work.json", testConfig)
	if output, err := runCLI(t, "account", "add", "work", input); err != nil {
		t.Fatalf("account add failed: %v\nOutput: %s", err, output)
	}

	t.Setenv("OIDCRYPT_PASSWORD", "wrong")
	output, err := runCLI(t, "account", "print", "work")
	if !IsReported(err) {
		t.Fatalf("Expected reported failure, got: %v", err)
	}
	if !strings.Contains(output, "Wrong password") {
		t.Errorf("Expected wrong password message, got: %s", output)
	}
	if strings.Contains(output, "issuer_url") {
		t.Errorf("Plaintext must not be printed on failure: %s", output)
	}
}

func testAccountPrintMissing(t *testing.T) {
	setupTestEnvironment(t, testPassword)

	output, err := runCLI(t, "account", "print", "nobody")
	if !IsReported(err) {
		t.Fatalf("Expected reported failure, got: %v", err)
	}
	if !strings.Contains(output, "No such account") {
		t.Errorf("Expected missing account message, got: %s", output)
	}
}

func testAccountAddInvalidName(t *testing.T) {
	tempDir := setupTestEnvironment(t, testPassword)
	input := writeInput(t, tempDir, "work.json", testConfig)

	output, err := runCLI(t, "account", "add", "../escape", input)
	if !IsReported(err) {
		t.Fatalf("Expected reported failure, got: %v", err)
	}
	if !strings.Contains(output, "✗") {
		t.Errorf("Expected failure marker, got: %s", output)
	}
}

func testAccountListJSON(t *testing.T) {
	tempDir := setupTestEnvironment(t, testPassword)
	input := writeInput(t, tempDir, "work.json", testConfig)
	if output, err := runCLI(t, "account", "add", "work", input); err != nil {
		t.Fatalf("account add failed: %v\nOutput: %s", err, output)
	}
	writeLegacyAccount(t, tempDir, "old")

	output, err := runCLI(t, "account", "list", "--json")
	if err != nil {
		t.Fatalf("account list failed: %v\nOutput: %s", err, output)
	}

	var accounts []map[string]any
	if err := json.Unmarshal([]byte(output), &accounts); err != nil {
		t.Fatalf("Output is not a JSON array: %v\nOutput: %s", err, output)
	}
	if len(accounts) != 2 {
		t.Fatalf("Expected 2 accounts, got %d: %s", len(accounts), output)
	}

	output, err = runCLI(t, "account", "list")
	if err != nil {
		t.Fatalf("account list failed: %v\nOutput: %s", err, output)
	}
	if !strings.Contains(output, "oidcrypt account migrate") {
		t.Errorf("Expected migrate hint for the legacy account, got: %s", output)
	}
}

func testAccountListEmpty(t *testing.T) {
	setupTestEnvironment(t, testPassword)

	output, err := runCLI(t, "account", "list")
	if err != nil {
		t.Fatalf("account list failed: %v\nOutput: %s", err, output)
	}
	if !strings.Contains(output, "No accounts stored") {
		t.Errorf("Expected empty message, got: %s", output)
	}
}

func testAccountListPattern(t *testing.T) {
	tempDir := setupTestEnvironment(t, testPassword)
	input := writeInput(t, tempDir, "work.json", testConfig)
	for _, name := range []string{"work-eu", "work-us", "home"} {
		if output, err := runCLI(t, "account", "add", name, input); err != nil {
			t.Fatalf("account add %s failed: %v\nOutput: %s", name, err, output)
		}
	}

	output, err := runCLI(t, "account", "list", "work-*")
	if err != nil {
		t.Fatalf("account list failed: %v\nOutput: %s", err, output)
	}
	if !strings.Contains(output, "work-eu") || !strings.Contains(output, "work-us") || strings.Contains(output, "home") {
		t.Errorf("Expected only work accounts, got: %s", output)
	}

	output, err = runCLI(t, "account", "list", "nothing-*")
	if err != nil {
		t.Fatalf("account list failed: %v\nOutput: %s", err, output)
	}
	if !strings.Contains(output, "No accounts match") {
		t.Errorf("Expected no match message, got: %s", output)
	}
}

func testAccountMigrateLegacy(t *testing.T) {
	tempDir := setupTestEnvironment(t, testPassword)
	path := writeLegacyAccount(t, tempDir, "old")

	output, err := runCLI(t, "account", "print", "old")
	if err != nil {
		t.Fatalf("account print failed: %v\nOutput: %s", err, output)
	}
	if !strings.Contains(output, "legacy format") {
		t.Errorf("Expected legacy warning, got: %s", output)
	}

	output, err = runCLI(t, "account", "migrate", "old")
	if err != nil {
		t.Fatalf("account migrate failed: %v\nOutput: %s", err, output)
	}
	if !strings.Contains(output, "migrated") {
		t.Errorf("Expected migrated message, got: %s", output)
	}
	if _, err := os.Stat(path + ".bak"); err != nil {
		t.Errorf("Expected backup next to the account: %v", err)
	}

	output, err = runCLI(t, "account", "migrate", "old")
	if err != nil {
		t.Fatalf("second migrate failed: %v\nOutput: %s", err, output)
	}
	if !strings.Contains(output, "already uses the current format") {
		t.Errorf("Expected no-op message, got: %s", output)
	}
}

func testAccountMigrateDryRun(t *testing.T) {
	tempDir := setupTestEnvironment(t, testPassword)
	path := writeLegacyAccount(t, tempDir, "old")
	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read account: %v", err)
	}

	output, err := runCLI(t, "account", "migrate", "old", "--dry-run")
	if err != nil {
		t.Fatalf("account migrate --dry-run failed: %v\nOutput: %s", err, output)
	}
	if !strings.Contains(output, "[dry-run]") {
		t.Errorf("Expected dry-run message, got: %s", output)
	}

	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read account: %v", err)
	}
	if string(before) != string(after) {
		t.Errorf("Dry run modified the account")
	}
}

func testAccountRemove(t *testing.T) {
	tempDir := setupTestEnvironment(t, testPassword)
	input := writeInput(t, tempDir, "work.json", testConfig)
	if output, err := runCLI(t, "account", "add", "work", input); err != nil {
		t.Fatalf("account add failed: %v\nOutput: %s", err, output)
	}

	output, err := runCLI(t, "account", "remove", "work", "--yes")
	if err != nil {
		t.Fatalf("account remove failed: %v\nOutput: %s", err, output)
	}
	if !strings.Contains(output, "removed") {
		t.Errorf("Expected removed message, got: %s", output)
	}

	if _, err := runCLI(t, "account", "remove", "work", "--yes"); !IsReported(err) {
		t.Errorf("Expected reported failure removing twice, got: %v", err)
	}
}

// writeLegacyAccount stores a hex envelope without a version line in the
// default file backend and returns its path.
func writeLegacyAccount(t *testing.T, tempDir, name string) string {
	t.Helper()
	legacy, err := crypt.EncryptHex([]byte(testConfig), []byte(testPassword))
	if err != nil {
		t.Fatalf("Failed to encrypt legacy account: %v", err)
	}
	dir := filepath.Join(tempDir, "data", "accounts")
	if err := os.MkdirAll(dir, 0700); err != nil {
		t.Fatalf("Failed to create account dir: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(legacy+"\n"), 0600); err != nil {
		t.Fatalf("Failed to write legacy account: %v", err)
	}
	return path
}
