package payment

import (
	"context"
	"errors"
	"testing"

	"payme-tui/ledger"
)

type fakeDirectory struct {
	calls   int
	results []ledger.UserSummary
	err     error
}

func (f *fakeDirectory) LookupUsers(_ context.Context, query string) ([]ledger.UserSummary, error) {
	f.calls++
	return f.results, f.err
}

func TestSearchShortQueriesStayLocal(t *testing.T) {
	dir := &fakeDirectory{results: []ledger.UserSummary{{Username: "bob"}}}
	r := NewResolver(dir)

	for _, q := range []string{"", "b", " b ", "  "} {
		if got := r.Search(context.Background(), q); got != nil {
			t.Errorf("Search(%q) = %v, want nil", q, got)
		}
	}
	if dir.calls != 0 {
		t.Errorf("directory called %d times for short queries", dir.calls)
	}
}

func TestSearchReturnsMatches(t *testing.T) {
	dir := &fakeDirectory{results: []ledger.UserSummary{{Username: "bob"}, {Username: "bobby"}}}
	r := NewResolver(dir)

	got := r.Search(context.Background(), " bob ")
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if dir.calls != 1 {
		t.Errorf("directory calls = %d, want 1", dir.calls)
	}
}

func TestSearchSwallowsLookupFailures(t *testing.T) {
	dir := &fakeDirectory{err: errors.New("network down")}
	r := NewResolver(dir)

	if got := r.Search(context.Background(), "bob"); got != nil {
		t.Errorf("Search on failure = %v, want nil", got)
	}
}
