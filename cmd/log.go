package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/oidcrypt/oidcrypt/internal/audit"
	"github.com/oidcrypt/oidcrypt/internal/ui"
	"github.com/oidcrypt/oidcrypt/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	logLimit     int
	logReverse   bool
	logAccount   string
	logOperation string
	logSince     string
	logUntil     string
	logJSON      bool
)

func init() {
	logCmd.Flags().IntVarP(&logLimit, "number", "n", 0, "limit number of entries shown")
	logCmd.Flags().BoolVar(&logReverse, "reverse", false, "show most recent entries first")
	logCmd.Flags().StringVar(&logAccount, "account", "", "filter by account name")
	logCmd.Flags().StringVar(&logOperation, "operation", "", "filter by operation type (comma-separated)")
	logCmd.Flags().StringVar(&logSince, "since", "", "show entries after date (YYYY-MM-DD)")
	logCmd.Flags().StringVar(&logUntil, "until", "", "show entries before date (YYYY-MM-DD)")
	logCmd.Flags().BoolVar(&logJSON, "json", false, "output as JSON array")
}

// resetLogCommandState resets the log command's global state for testing.
func resetLogCommandState() {
	logLimit = 0
	logReverse = false
	logAccount = ""
	logOperation = ""
	logSince = ""
	logUntil = ""
	logJSON = false
	resetCobraFlagState(logCmd)
}

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "View the audit log",
	Long: `Displays the audit log of account operations.

Examples:
  oidcrypt log                          # View full log
  oidcrypt log -n 10                    # Last 10 entries
  oidcrypt log --reverse                # Most recent first
  oidcrypt log --account work           # Filter by account
  oidcrypt log --operation add,migrate  # Filter by operation
  oidcrypt log --since 2024-01-01       # Filter by date
  oidcrypt log --json                   # JSON output`,
	Args: cobra.NoArgs,
	RunE: runLog,
}

func runLog(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting log command")

	result, err := workflows.Log(context.Background(), workflows.LogOptions{
		Limit:      logLimit,
		Reverse:    logReverse,
		Account:    logAccount,
		Operations: logOperation,
		Since:      logSince,
		Until:      logUntil,
	})
	if err != nil {
		msg := ""
		err = reportError(&msg, "read audit log", err)
		fmt.Println(msg)
		return err
	}

	Logger.Debugf("Parsed %d entries from %s", result.TotalEntriesBeforeFilter, result.Path)
	Logger.Debugf("After filtering: %d entries", len(result.Entries))

	if result.Path == "" {
		fmt.Println(ui.Info.Sprint("ℹ") + " Audit logging is disabled in the configuration.")
		return nil
	}
	if len(result.Entries) == 0 {
		if result.TotalEntriesBeforeFilter == 0 {
			fmt.Println("No audit log entries found.")
		} else {
			fmt.Println("No audit log entries found matching the filters.")
		}
		return nil
	}

	if logJSON {
		data, err := json.MarshalIndent(result.Entries, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal entries to JSON: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	for _, e := range result.Entries {
		fmt.Printf("%-19s  %-12s  %-8s  %-16s  %s\n", formatDateTime(e.Timestamp), e.User, e.Operation, e.Account, formatDetails(e))
	}
	return nil
}

func formatDateTime(ts string) string {
	t, err := time.Parse("2006-01-02T15:04:05.000000Z", ts)
	if err != nil {
		return ts
	}
	return t.Local().Format("2006-01-02 15:04:05")
}

func formatDetails(e audit.Entry) string {
	var parts []string
	if e.FromFormat != "" {
		parts = append(parts, e.FromFormat+" -> "+e.Format)
	} else if e.Format != "" {
		parts = append(parts, e.Format)
	}
	if e.Version != "" {
		parts = append(parts, "v"+e.Version)
	}
	if e.Thumbprint != "" {
		parts = append(parts, "thumbprint="+e.Thumbprint)
	}
	if e.Forced {
		parts = append(parts, "forced")
	}
	return strings.Join(parts, " ")
}
