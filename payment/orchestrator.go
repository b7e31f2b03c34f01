package payment

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/shopspring/decimal"

	"payme-tui/ledger"
)

// Service is the slice of the ledger client the orchestrator drives.
type Service interface {
	SendPayment(ctx context.Context, recipientID string, amount decimal.Decimal, note string) (ledger.PaymentResult, error)
	CreateMoneyRequest(ctx context.Context, requesteeID string, amount decimal.Decimal, note string) (ledger.MoneyRequest, error)
	FulfillMoneyRequest(ctx context.Context, requestID string) (ledger.FulfillResult, error)
	AddFunds(ctx context.Context, amount decimal.Decimal, paymentMethodID string) (ledger.BalanceResult, error)
	Withdraw(ctx context.Context, amount decimal.Decimal, accountID string, speed ledger.TransferSpeed) (ledger.WithdrawResult, error)
}

// Refresh is a bitmask naming the server state an outcome invalidated.
// The caller re-fetches exactly those lists.
type Refresh uint8

const (
	RefreshBalance Refresh = 1 << iota
	RefreshTransactions
	RefreshRequests
)

// Has reports whether the mask includes r.
func (m Refresh) Has(r Refresh) bool { return m&r != 0 }

// Outcome reports a completed submission. NewBalance is only
// meaningful when HasBalance is set; a money request does not move
// money yet.
type Outcome struct {
	Kind       Kind
	Amount     decimal.Decimal
	Recipient  ledger.UserSummary
	Fee        decimal.Decimal
	NewBalance decimal.Decimal
	HasBalance bool
	Refresh    Refresh
}

// Orchestrator owns the in-progress payment composition and submits
// it. Composition state is mutated from the UI loop; submissions run
// on their own goroutines, so a CAS guard keeps them at-most-once.
type Orchestrator struct {
	svc Service

	mu        sync.Mutex
	amount    AmountBuffer
	recipient *ledger.UserSummary
	note      string

	busy atomic.Bool
}

// NewOrchestrator creates an orchestrator with an empty composition.
func NewOrchestrator(svc Service) *Orchestrator {
	return &Orchestrator{
		svc:    svc,
		amount: NewAmountBuffer(),
	}
}

// PressDigit forwards a keypad digit into the amount buffer.
func (o *Orchestrator) PressDigit(d rune) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.amount.PressDigit(d)
}

// PressDecimal forwards the decimal key.
func (o *Orchestrator) PressDecimal() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.amount.PressDecimal()
}

// Backspace removes the last entered character.
func (o *Orchestrator) Backspace() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.amount.Backspace()
}

// AmountDisplay returns the keypad entry as typed.
func (o *Orchestrator) AmountDisplay() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.amount.String()
}

// Amount returns the entered amount as a decimal.
func (o *Orchestrator) Amount() decimal.Decimal {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.amount.Amount()
}

// FeePreview estimates the instant fee for the entered amount.
func (o *Orchestrator) FeePreview() decimal.Decimal {
	return EstimateInstantFee(o.Amount())
}

// SetRecipient pins the counterparty for the next submission.
func (o *Orchestrator) SetRecipient(u ledger.UserSummary) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.recipient = &u
}

// Recipient returns the pinned counterparty, if any.
func (o *Orchestrator) Recipient() (ledger.UserSummary, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.recipient == nil {
		return ledger.UserSummary{}, false
	}
	return *o.recipient, true
}

// SetNote attaches a note to the next submission.
func (o *Orchestrator) SetNote(note string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.note = note
}

// Note returns the current note.
func (o *Orchestrator) Note() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.note
}

// ClearComposition resets amount, recipient, and note.
func (o *Orchestrator) ClearComposition() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.amount.Reset()
	o.recipient = nil
	o.note = ""
}

// Busy reports whether a submission is in flight.
func (o *Orchestrator) Busy() bool { return o.busy.Load() }

// Submit validates the composition and performs the given action.
// Validation runs before the busy guard is taken, so a rejected
// composition never blocks a later attempt. On success the composition
// is cleared.
func (o *Orchestrator) Submit(ctx context.Context, kind Kind) (Outcome, error) {
	o.mu.Lock()
	amount := o.amount.Amount()
	recipient := o.recipient
	note := o.note
	o.mu.Unlock()

	if recipient == nil {
		return Outcome{}, &ValidationError{Field: "recipient", Reason: "Choose who to pay first"}
	}
	if amount.IsZero() {
		return Outcome{}, &ValidationError{Field: "amount", Reason: "Enter an amount first"}
	}

	if !o.busy.CompareAndSwap(false, true) {
		return Outcome{}, ErrBusy
	}
	defer o.busy.Store(false)

	out := Outcome{Kind: kind, Amount: amount, Recipient: *recipient}
	switch kind {
	case KindSend:
		res, err := o.svc.SendPayment(ctx, recipient.UserID, amount, note)
		if err != nil {
			return Outcome{}, err
		}
		out.Fee = res.Fee
		out.NewBalance = res.NewBalance
		out.HasBalance = true
		out.Refresh = RefreshBalance | RefreshTransactions
	case KindRequest:
		if _, err := o.svc.CreateMoneyRequest(ctx, recipient.UserID, amount, note); err != nil {
			return Outcome{}, err
		}
		// No money moved yet, only the request lists change.
		out.Refresh = RefreshRequests
	}

	o.ClearComposition()
	return out, nil
}

// AddFunds loads money from a linked payment method. Shares the busy
// guard with the other money-moving operations.
func (o *Orchestrator) AddFunds(ctx context.Context, amount decimal.Decimal, paymentMethodID string) (Outcome, error) {
	if !amount.IsPositive() {
		return Outcome{}, &ValidationError{Field: "amount", Reason: "Enter an amount first"}
	}
	if !o.busy.CompareAndSwap(false, true) {
		return Outcome{}, ErrBusy
	}
	defer o.busy.Store(false)

	res, err := o.svc.AddFunds(ctx, amount, paymentMethodID)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{
		Amount:     amount,
		NewBalance: res.NewBalance,
		HasBalance: true,
		Refresh:    RefreshBalance | RefreshTransactions,
	}, nil
}

// Withdraw cashes out to a connected account. The balance ceiling is a
// soft check; the server's answer is authoritative.
func (o *Orchestrator) Withdraw(ctx context.Context, amount, balance decimal.Decimal, accountID string, speed ledger.TransferSpeed) (Outcome, string, error) {
	if !amount.IsPositive() {
		return Outcome{}, "", &ValidationError{Field: "amount", Reason: "Enter an amount first"}
	}
	if amount.GreaterThan(balance) {
		return Outcome{}, "", &ValidationError{Field: "amount", Reason: "More than your balance"}
	}
	if !o.busy.CompareAndSwap(false, true) {
		return Outcome{}, "", ErrBusy
	}
	defer o.busy.Store(false)

	res, err := o.svc.Withdraw(ctx, amount, accountID, speed)
	if err != nil {
		return Outcome{}, "", err
	}
	return Outcome{
		Amount:     amount,
		Fee:        res.Fee,
		NewBalance: res.NewBalance,
		HasBalance: true,
		Refresh:    RefreshBalance | RefreshTransactions,
	}, res.EstimatedArrival, nil
}

// PayRequest fulfills a money request received from another user. It
// shares the busy guard with Submit, so mashing the pay key cannot
// settle a request twice from this client.
func (o *Orchestrator) PayRequest(ctx context.Context, req ledger.MoneyRequest) (Outcome, error) {
	if !o.busy.CompareAndSwap(false, true) {
		return Outcome{}, ErrBusy
	}
	defer o.busy.Store(false)

	res, err := o.svc.FulfillMoneyRequest(ctx, req.RequestID)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{
		Kind:       KindSend,
		Amount:     req.Amount,
		Recipient:  req.Requester,
		NewBalance: res.NewBalance,
		HasBalance: true,
		Refresh:    RefreshBalance | RefreshTransactions | RefreshRequests,
	}, nil
}
