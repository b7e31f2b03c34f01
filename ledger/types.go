package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the server-issued transaction kind.
type TransactionType string

const (
	TypeSend         TransactionType = "send"
	TypeReceive      TransactionType = "receive"
	TypeAddFunds     TransactionType = "add_funds"
	TypeWithdraw     TransactionType = "withdraw"
	TypeCardPurchase TransactionType = "card_purchase"
)

// TransferSpeed selects a withdrawal path. Instant carries a
// percentage fee, standard is free.
type TransferSpeed string

const (
	SpeedStandard TransferSpeed = "standard"
	SpeedInstant  TransferSpeed = "instant"
)

// UserSummary is the directory's view of a user: enough to render a
// contact and address a payment.
type UserSummary struct {
	UserID         string `json:"user_id"`
	Username       string `json:"username"`
	Email          string `json:"email,omitempty"`
	ProfilePicture string `json:"profile_picture,omitempty"`
}

// Profile is the authenticated user's own record, balance included.
type Profile struct {
	UserID         string          `json:"user_id"`
	Username       string          `json:"username"`
	Email          string          `json:"email"`
	Phone          string          `json:"phone,omitempty"`
	Balance        decimal.Decimal `json:"balance"`
	ProfilePicture string          `json:"profile_picture,omitempty"`
}

// Transaction is an immutable server-issued ledger record. The client
// never mutates one; views are re-derived from the full list.
type Transaction struct {
	ID          string          `json:"transaction_id"`
	Type        TransactionType `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Fee         decimal.Decimal `json:"fee"`
	Description string          `json:"description,omitempty"`
	Sender      *UserSummary    `json:"sender,omitempty"`
	Recipient   *UserSummary    `json:"recipient,omitempty"`
	IsOutgoing  bool            `json:"is_outgoing"`
	CreatedAt   time.Time       `json:"created_at"`
}

// MoneyRequest is a pending request for money. Status transitions are
// server-driven; the client re-fetches instead of patching it locally.
type MoneyRequest struct {
	RequestID   string          `json:"request_id"`
	Requester   UserSummary     `json:"requester"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Card is the virtual card issued to the user.
type Card struct {
	CardNumber     string `json:"card_number"`
	CardHolderName string `json:"card_holder_name"`
	CVV            string `json:"cvv"`
	ExpiryDate     string `json:"expiry_date"`
	IsLocked       bool   `json:"is_locked"`
}

// CardSpending summarizes card purchases for the current month.
type CardSpending struct {
	MonthlyTotal decimal.Decimal `json:"monthly_total"`
}

// ConnectedAccount is a linked bank account or debit card available
// as a withdrawal destination.
type ConnectedAccount struct {
	AccountID   string `json:"account_id"`
	AccountType string `json:"account_type"`
	AccountName string `json:"account_name"`
	LastFour    string `json:"last_four"`
}

// InviteInfo carries the user's referral code and bonus terms.
type InviteInfo struct {
	InviteCode   string          `json:"invite_code"`
	InviteLink   string          `json:"invite_link"`
	BonusAmount  decimal.Decimal `json:"bonus_amount"`
	InvitedCount int             `json:"invited_count"`
}

// Session is the result of a successful login or registration.
type Session struct {
	Token string  `json:"token"`
	User  Profile `json:"user"`
}

// PaymentResult is the server's answer to a send. The fee here is
// authoritative; any client-side preview is not.
type PaymentResult struct {
	TransactionID string          `json:"transaction_id"`
	Fee           decimal.Decimal `json:"fee"`
	NewBalance    decimal.Decimal `json:"new_balance"`
}

// FulfillResult is the server's answer to paying a money request.
type FulfillResult struct {
	TransactionID string          `json:"transaction_id"`
	NewBalance    decimal.Decimal `json:"new_balance"`
}

// BalanceResult is the server's answer to an add-funds load.
type BalanceResult struct {
	TransactionID string          `json:"transaction_id"`
	NewBalance    decimal.Decimal `json:"new_balance"`
}

// WithdrawResult is the server's answer to a withdrawal.
type WithdrawResult struct {
	TransactionID    string          `json:"transaction_id"`
	Fee              decimal.Decimal `json:"fee"`
	NewBalance       decimal.Decimal `json:"new_balance"`
	EstimatedArrival string          `json:"estimated_arrival"`
}

// CardLockResult reports the card's lock state after a toggle.
type CardLockResult struct {
	IsLocked bool   `json:"is_locked"`
	Message  string `json:"message"`
}
