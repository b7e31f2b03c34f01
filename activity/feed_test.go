package activity

import (
	"reflect"
	"strconv"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"payme-tui/ledger"
)

func at(h int) time.Time {
	return time.Date(2026, 3, 1, h, 0, 0, 0, time.UTC)
}

func sendTo(id, name string, h int) ledger.Transaction {
	return ledger.Transaction{
		ID:        name + "-" + strconv.Itoa(h),
		Type:      ledger.TypeSend,
		Amount:    decimal.RequireFromString("5.00"),
		Recipient: &ledger.UserSummary{UserID: id, Username: name},
		CreatedAt: at(h),
	}
}

func receiveFrom(id, name string, h int) ledger.Transaction {
	return ledger.Transaction{
		ID:        name + "-rx-" + strconv.Itoa(h),
		Type:      ledger.TypeReceive,
		Amount:    decimal.RequireFromString("5.00"),
		Sender:    &ledger.UserSummary{UserID: id, Username: name},
		CreatedAt: at(h),
	}
}

func TestDeriveEmpty(t *testing.T) {
	v := Derive(nil, nil)
	if len(v.RecentContacts) != 0 || len(v.PendingRequests) != 0 || len(v.Entries) != 0 {
		t.Errorf("empty inputs produced non-empty view: %+v", v)
	}
}

func TestRecentContactsTrackLatestInteraction(t *testing.T) {
	// A at t1, B at t2, A again at t3: A's slot moves to t3, so the
	// order is A then B, with A listed once.
	txns := []ledger.Transaction{
		sendTo("a", "alice", 1),
		sendTo("b", "bob", 2),
		receiveFrom("a", "alice", 3),
	}

	v := Derive(txns, nil)
	got := make([]string, len(v.RecentContacts))
	for i, u := range v.RecentContacts {
		got[i] = u.Username
	}
	if !reflect.DeepEqual(got, []string{"alice", "bob"}) {
		t.Errorf("contacts = %v, want [alice bob]", got)
	}
}

func TestRecentContactsCap(t *testing.T) {
	var txns []ledger.Transaction
	names := []string{"a", "b", "c", "d", "e", "f"}
	for i, n := range names {
		txns = append(txns, sendTo(n, n, i+1))
	}

	v := Derive(txns, nil)
	if len(v.RecentContacts) != 4 {
		t.Fatalf("contacts = %d, want 4", len(v.RecentContacts))
	}
	if v.RecentContacts[0].Username != "f" {
		t.Errorf("newest contact = %q, want f", v.RecentContacts[0].Username)
	}
}

func TestRecentContactsSkipNonPeerMoves(t *testing.T) {
	txns := []ledger.Transaction{
		{ID: "t1", Type: ledger.TypeAddFunds, CreatedAt: at(1)},
		{ID: "t2", Type: ledger.TypeWithdraw, CreatedAt: at(2)},
		{ID: "t3", Type: ledger.TypeCardPurchase, Description: "Purchase at Blue Bottle", CreatedAt: at(3)},
	}
	if v := Derive(txns, nil); len(v.RecentContacts) != 0 {
		t.Errorf("funding moves produced contacts: %v", v.RecentContacts)
	}
}

func TestEntryLabels(t *testing.T) {
	tests := []struct {
		name     string
		tx       ledger.Transaction
		title    string
		subtitle string
		incoming bool
	}{
		{
			"add funds",
			ledger.Transaction{Type: ledger.TypeAddFunds},
			"Add money", "Stripe Bank, National Association", true,
		},
		{
			"withdrawal",
			ledger.Transaction{Type: ledger.TypeWithdraw},
			"Withdrawal", "Bank Transfer", false,
		},
		{
			"card purchase strips prefix",
			ledger.Transaction{Type: ledger.TypeCardPurchase, Description: "Purchase at Blue Bottle"},
			"Blue Bottle", "Card Purchase", false,
		},
		{
			"send shows recipient",
			ledger.Transaction{Type: ledger.TypeSend, Recipient: &ledger.UserSummary{Username: "bob"}},
			"bob", "PayMe Transfer", false,
		},
		{
			"receive shows sender",
			ledger.Transaction{Type: ledger.TypeReceive, Sender: &ledger.UserSummary{Username: "alice"}},
			"alice", "PayMe Transfer", true,
		},
		{
			"missing counterparty",
			ledger.Transaction{Type: ledger.TypeSend},
			"Unknown", "PayMe Transfer", false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := entry(tt.tx)
			if e.Title != tt.title {
				t.Errorf("title = %q, want %q", e.Title, tt.title)
			}
			if e.Subtitle != tt.subtitle {
				t.Errorf("subtitle = %q, want %q", e.Subtitle, tt.subtitle)
			}
			if e.Incoming != tt.incoming {
				t.Errorf("incoming = %v, want %v", e.Incoming, tt.incoming)
			}
		})
	}
}

func TestEntriesNewestFirst(t *testing.T) {
	txns := []ledger.Transaction{
		sendTo("a", "alice", 1),
		sendTo("b", "bob", 3),
		sendTo("c", "carol", 2),
	}
	v := Derive(txns, nil)
	if v.Entries[0].Title != "bob" || v.Entries[2].Title != "alice" {
		t.Errorf("order = [%s %s %s], want newest first", v.Entries[0].Title, v.Entries[1].Title, v.Entries[2].Title)
	}
}

func TestPendingRequestsFiltered(t *testing.T) {
	reqs := []ledger.MoneyRequest{
		{RequestID: "r1", Status: "pending", CreatedAt: at(1)},
		{RequestID: "r2", Status: "fulfilled", CreatedAt: at(2)},
		{RequestID: "r3", Status: "pending", CreatedAt: at(3)},
	}
	v := Derive(nil, reqs)
	if len(v.PendingRequests) != 2 {
		t.Fatalf("pending = %d, want 2", len(v.PendingRequests))
	}
	// Server order is preserved, only non-pending rows drop out.
	if v.PendingRequests[0].RequestID != "r1" || v.PendingRequests[1].RequestID != "r3" {
		t.Errorf("pending = [%s %s], want [r1 r3]", v.PendingRequests[0].RequestID, v.PendingRequests[1].RequestID)
	}
}

func TestDeriveDeterministic(t *testing.T) {
	txns := []ledger.Transaction{
		sendTo("a", "alice", 1),
		receiveFrom("b", "bob", 1), // same timestamp
		sendTo("c", "carol", 2),
	}
	first := Derive(txns, nil)
	for i := 0; i < 50; i++ {
		if got := Derive(txns, nil); !reflect.DeepEqual(got, first) {
			t.Fatalf("derivation not deterministic on run %d", i)
		}
	}
}
