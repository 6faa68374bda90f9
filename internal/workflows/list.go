package workflows

import (
	"context"
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/oidcrypt/oidcrypt/internal/envelope"
	kerrors "github.com/oidcrypt/oidcrypt/internal/errors"
)

// AccountStatus describes the stored format of an account.
type AccountStatus string

const (
	// StatusCurrent means the envelope uses the current format.
	StatusCurrent AccountStatus = "current"
	// StatusLegacy means the envelope uses the hex format and can be migrated.
	StatusLegacy AccountStatus = "legacy"
	// StatusUnreadable means the stored text is not an envelope.
	StatusUnreadable AccountStatus = "unreadable"
)

// AccountInfo holds what can be learned about an account without its password.
type AccountInfo struct {
	Name    string
	Status  AccountStatus
	Version string
}

// ListSummary holds counts of accounts by status.
type ListSummary struct {
	Current    int
	Legacy     int
	Unreadable int
}

// ListAccountsOptions configures the list workflow.
type ListAccountsOptions struct {
	// Patterns are globs such as "work-*" or "{prod,staging}.*". An account
	// is listed when it matches any of them. Empty means every account.
	Patterns []string
}

// ListAccountsResult contains the stored accounts.
type ListAccountsResult struct {
	Backend  string
	Accounts []AccountInfo
	Summary  ListSummary
}

// Names returns the account names in order.
func (r *ListAccountsResult) Names() []string {
	names := make([]string, len(r.Accounts))
	for i, a := range r.Accounts {
		names[i] = a.Name
	}
	return names
}

// ListAccounts lists stored accounts with their envelope format. No
// password is needed: only the version line is inspected.
//
// Returns ErrInvalidPattern if a pattern is not a valid glob.
func ListAccounts(ctx context.Context, opts ListAccountsOptions) (*ListAccountsResult, error) {
	for _, p := range opts.Patterns {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("%w: %q", kerrors.ErrInvalidPattern, p)
		}
	}

	env, err := loadEnvironment()
	if err != nil {
		return nil, err
	}

	names, err := env.store.List()
	if err != nil {
		return nil, err
	}
	names = matchNames(names, opts.Patterns)

	result := &ListAccountsResult{
		Backend:  env.config.Storage.Backend,
		Accounts: make([]AccountInfo, 0, len(names)),
	}
	for _, name := range names {
		info := AccountInfo{Name: name, Status: StatusUnreadable}

		text, err := env.store.Read(name)
		if err == nil {
			if parsed, err := envelope.Parse(text); err == nil {
				info.Status = StatusLegacy
				if parsed.Format == envelope.FormatCurrent {
					info.Status = StatusCurrent
				}
				if parsed.Version != nil {
					info.Version = parsed.Version.String()
				}
			}
		}

		switch info.Status {
		case StatusCurrent:
			result.Summary.Current++
		case StatusLegacy:
			result.Summary.Legacy++
		default:
			result.Summary.Unreadable++
		}
		result.Accounts = append(result.Accounts, info)
	}

	return result, nil
}

// matchNames keeps the names matching any pattern. Patterns must already be
// validated.
func matchNames(names, patterns []string) []string {
	if len(patterns) == 0 {
		return names
	}
	var matched []string
	for _, name := range names {
		for _, p := range patterns {
			if ok, _ := doublestar.Match(p, name); ok {
				matched = append(matched, name)
				break
			}
		}
	}
	return matched
}
