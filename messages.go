package main

import (
	"payme-tui/ledger"
	"payme-tui/payment"
)

// -------------------- TEA MESSAGES --------------------
// All custom message types for The Elm Architecture

// sessionMsg contains the result of a login or registration attempt
type sessionMsg struct {
	session ledger.Session
	err     error
}

// profileLoadedMsg contains the user's profile and balance
type profileLoadedMsg struct {
	profile ledger.Profile
	err     error
}

// transactionsLoadedMsg contains the full transaction history
type transactionsLoadedMsg struct {
	txns []ledger.Transaction
	err  error
}

// requestsLoadedMsg contains money requests addressed to the user
type requestsLoadedMsg struct {
	reqs []ledger.MoneyRequest
	err  error
}

// accountsLoadedMsg contains the linked bank accounts and cards
type accountsLoadedMsg struct {
	accounts []ledger.ConnectedAccount
	err      error
}

// cardLoadedMsg contains the virtual card
type cardLoadedMsg struct {
	card ledger.Card
	err  error
}

// spendingLoadedMsg contains this month's card spending
type spendingLoadedMsg struct {
	spending ledger.CardSpending
	err      error
}

// inviteLoadedMsg contains the referral code and bonus terms
type inviteLoadedMsg struct {
	info ledger.InviteInfo
	err  error
}

// searchDebounceMsg fires after the search input settles
type searchDebounceMsg struct {
	query string
}

// searchResultsMsg contains directory matches for a query
type searchResultsMsg struct {
	query string
	users []ledger.UserSummary
}

// paymentOutcomeMsg contains the result of a send, request, or
// request fulfillment
type paymentOutcomeMsg struct {
	outcome payment.Outcome
	err     error
}

// balanceChangedMsg contains the result of an add-funds or withdrawal
type balanceChangedMsg struct {
	what    string // "add" or "withdraw"
	outcome payment.Outcome
	arrival string
	err     error
}

// accountConnectedMsg signals a finished link-account attempt
type accountConnectedMsg struct {
	err error
}

// cardLockToggledMsg contains the card's lock state after a toggle
type cardLockToggledMsg struct {
	locked  bool
	message string
	err     error
}

// purchaseDoneMsg signals a finished simulated card purchase
type purchaseDoneMsg struct {
	err error
}

// clipboardCopiedMsg indicates clipboard copy completed
type clipboardCopiedMsg struct{}

// logInitMsg signals that log viewport should be initialized
type logInitMsg struct{}
