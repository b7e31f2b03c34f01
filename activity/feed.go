// Package activity derives the activity screen from raw ledger data.
// Derivation is pure: same transactions and requests in, same view
// out, so a re-fetch can rebuild the screen wholesale at any time.
package activity

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"payme-tui/ledger"
)

// maxRecentContacts caps the quick-pay row at the top of the feed.
const maxRecentContacts = 4

// Entry is one rendered row of the feed.
type Entry struct {
	ID        string
	Title     string
	Subtitle  string
	Amount    decimal.Decimal
	Fee       decimal.Decimal
	Incoming  bool
	CreatedAt time.Time
}

// View is everything the activity screen shows.
type View struct {
	RecentContacts  []ledger.UserSummary
	PendingRequests []ledger.MoneyRequest
	Entries         []Entry
}

// Derive builds the activity view. Entries come out newest first;
// recent contacts are the last people money moved with, each listed
// once at their most recent interaction.
func Derive(txns []ledger.Transaction, reqs []ledger.MoneyRequest) View {
	return View{
		RecentContacts:  recentContacts(txns),
		PendingRequests: pendingOnly(reqs),
		Entries:         entries(txns),
	}
}

func recentContacts(txns []ledger.Transaction) []ledger.UserSummary {
	type seen struct {
		user ledger.UserSummary
		last time.Time
	}
	byID := make(map[string]*seen)
	for _, tx := range txns {
		u, ok := counterparty(tx)
		if !ok || u.Username == "" {
			continue
		}
		s, exists := byID[u.UserID]
		if !exists {
			byID[u.UserID] = &seen{user: u, last: tx.CreatedAt}
			continue
		}
		if tx.CreatedAt.After(s.last) {
			s.last = tx.CreatedAt
			s.user = u
		}
	}

	all := make([]*seen, 0, len(byID))
	for _, s := range byID {
		all = append(all, s)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].last.Equal(all[j].last) {
			return all[i].last.After(all[j].last)
		}
		return all[i].user.UserID < all[j].user.UserID
	})

	if len(all) > maxRecentContacts {
		all = all[:maxRecentContacts]
	}
	contacts := make([]ledger.UserSummary, len(all))
	for i, s := range all {
		contacts[i] = s.user
	}
	return contacts
}

// counterparty returns the other user on a peer transfer. Funding
// moves and card purchases have no counterparty.
func counterparty(tx ledger.Transaction) (ledger.UserSummary, bool) {
	switch tx.Type {
	case ledger.TypeSend:
		if tx.Recipient != nil {
			return *tx.Recipient, true
		}
	case ledger.TypeReceive:
		if tx.Sender != nil {
			return *tx.Sender, true
		}
	}
	return ledger.UserSummary{}, false
}

// pendingOnly filters to open requests, keeping the server's order.
func pendingOnly(reqs []ledger.MoneyRequest) []ledger.MoneyRequest {
	var pending []ledger.MoneyRequest
	for _, r := range reqs {
		if r.Status == "" || r.Status == "pending" {
			pending = append(pending, r)
		}
	}
	return pending
}

func entries(txns []ledger.Transaction) []Entry {
	out := make([]Entry, 0, len(txns))
	for _, tx := range txns {
		out = append(out, entry(tx))
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func entry(tx ledger.Transaction) Entry {
	e := Entry{
		ID:        tx.ID,
		Amount:    tx.Amount,
		Fee:       tx.Fee,
		CreatedAt: tx.CreatedAt,
	}
	switch tx.Type {
	case ledger.TypeAddFunds:
		e.Title = "Add money"
		e.Subtitle = "Stripe Bank, National Association"
		e.Incoming = true
	case ledger.TypeWithdraw:
		e.Title = "Withdrawal"
		e.Subtitle = "Bank Transfer"
	case ledger.TypeCardPurchase:
		e.Title = strings.TrimPrefix(tx.Description, "Purchase at ")
		if e.Title == "" {
			e.Title = "Card purchase"
		}
		e.Subtitle = "Card Purchase"
	case ledger.TypeReceive:
		e.Title = partyName(tx.Sender)
		e.Subtitle = "PayMe Transfer"
		e.Incoming = true
	default: // send
		e.Title = partyName(tx.Recipient)
		e.Subtitle = "PayMe Transfer"
	}
	return e
}

func partyName(u *ledger.UserSummary) string {
	if u == nil || u.Username == "" {
		return "Unknown"
	}
	return u.Username
}
