package payment

import (
	"context"
	"strings"

	"payme-tui/ledger"
)

// Directory is the user-search slice of the ledger client.
type Directory interface {
	LookupUsers(ctx context.Context, query string) ([]ledger.UserSummary, error)
}

// minQueryLen keeps one-character queries off the wire; they match far
// too much to be useful.
const minQueryLen = 2

// Resolver turns free-text queries into candidate recipients.
type Resolver struct {
	dir Directory
}

// NewResolver wraps a directory.
func NewResolver(dir Directory) *Resolver {
	return &Resolver{dir: dir}
}

// Search resolves a query to matching users. Short queries and lookup
// failures both yield an empty result; search is advisory, never fatal.
func (r *Resolver) Search(ctx context.Context, query string) []ledger.UserSummary {
	q := strings.TrimSpace(query)
	if len(q) < minQueryLen {
		return nil
	}
	users, err := r.dir.LookupUsers(ctx, q)
	if err != nil {
		return nil
	}
	return users
}
