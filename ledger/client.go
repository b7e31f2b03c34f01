// Package ledger is the client for the remote payments service: the
// system of record for balances, fees, and transactions. The client
// only issues requests and decodes responses; it owns no monetary
// logic of its own.
package ledger

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const defaultTimeout = 12 * time.Second

// Client talks to the ledger/identity service over HTTP. A zero token
// means unauthenticated; Login and Register work without one.
type Client struct {
	BaseURL string
	Token   string

	httpClient *http.Client
}

// NewClient creates a client for the given server base URL.
func NewClient(baseURL, token string) *Client {
	return &Client{
		BaseURL: baseURL,
		Token:   token,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

// WithHTTPClient overrides the underlying HTTP client. Used by tests.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s: %w", path, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request %s: %w", path, err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	if method != http.MethodGet {
		// Correlation id so a retried submission is traceable server-side.
		req.Header.Set("X-Request-ID", uuid.NewString())
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransientError{Op: method + " " + path, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransientError{Op: method + " " + path, Err: err}
	}

	if resp.StatusCode >= 500 {
		return &TransientError{Op: method + " " + path, Err: fmt.Errorf("server error (status %d)", resp.StatusCode)}
	}
	if resp.StatusCode >= 400 {
		var decline struct {
			Detail string `json:"detail"`
		}
		_ = json.Unmarshal(data, &decline)
		return &Rejection{Status: resp.StatusCode, Detail: decline.Detail}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode %s: %w", path, err)
		}
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	return c.do(ctx, http.MethodPost, path, in, out)
}

// -------------------- SESSION --------------------

// Login exchanges credentials for a session. The identifier may be an
// email, phone, or username.
func (c *Client) Login(ctx context.Context, identifier, password string) (Session, error) {
	var s Session
	err := c.post(ctx, "/api/auth/login", map[string]string{
		"identifier": identifier,
		"password":   password,
	}, &s)
	return s, err
}

// Register creates an account and returns the new session.
func (c *Client) Register(ctx context.Context, username, email, phone, password string) (Session, error) {
	var s Session
	err := c.post(ctx, "/api/auth/register", map[string]string{
		"username": username,
		"email":    email,
		"phone":    phone,
		"password": password,
	}, &s)
	return s, err
}

// -------------------- DIRECTORY --------------------

// LookupUsers searches the user directory by username, email, or phone.
func (c *Client) LookupUsers(ctx context.Context, query string) ([]UserSummary, error) {
	var users []UserSummary
	err := c.get(ctx, "/api/user/search?query="+url.QueryEscape(query), &users)
	return users, err
}

// -------------------- PAYMENTS --------------------

// SendPayment moves money to a recipient. Fails with a Rejection on
// insufficient funds or an unknown recipient.
func (c *Client) SendPayment(ctx context.Context, recipientID string, amount decimal.Decimal, note string) (PaymentResult, error) {
	var res PaymentResult
	err := c.post(ctx, "/api/payments/send", map[string]any{
		"recipient_identifier": recipientID,
		"amount":               amount,
		"description":          note,
	}, &res)
	return res, err
}

// CreateMoneyRequest asks another user for money. The server owns the
// request's lifecycle from here.
func (c *Client) CreateMoneyRequest(ctx context.Context, requesteeID string, amount decimal.Decimal, note string) (MoneyRequest, error) {
	var req MoneyRequest
	err := c.post(ctx, "/api/payments/request", map[string]any{
		"requestee_identifier": requesteeID,
		"amount":               amount,
		"description":          note,
	}, &req)
	return req, err
}

// FulfillMoneyRequest pays a request received from another user. Fails
// if the request is already fulfilled or funds are insufficient.
func (c *Client) FulfillMoneyRequest(ctx context.Context, requestID string) (FulfillResult, error) {
	var res FulfillResult
	err := c.post(ctx, "/api/payments/requests/pay", map[string]string{
		"request_id": requestID,
	}, &res)
	return res, err
}

// AddFunds loads money from a linked payment method.
func (c *Client) AddFunds(ctx context.Context, amount decimal.Decimal, paymentMethodID string) (BalanceResult, error) {
	var res BalanceResult
	err := c.post(ctx, "/api/payments/add-funds", map[string]any{
		"amount":            amount,
		"payment_method_id": paymentMethodID,
	}, &res)
	return res, err
}

// Withdraw moves balance out to a connected account.
func (c *Client) Withdraw(ctx context.Context, amount decimal.Decimal, accountID string, speed TransferSpeed) (WithdrawResult, error) {
	var res WithdrawResult
	err := c.post(ctx, "/api/payments/withdraw", map[string]any{
		"amount":         amount,
		"account_id":     accountID,
		"transfer_speed": speed,
	}, &res)
	return res, err
}

// -------------------- READS --------------------
// All reads are full-replace: the server returns the complete current
// list and the client swaps it in wholesale.

// GetProfile fetches the authenticated user's profile and balance.
func (c *Client) GetProfile(ctx context.Context) (Profile, error) {
	var p Profile
	err := c.get(ctx, "/api/user/profile", &p)
	return p, err
}

// ListTransactions fetches the full transaction history.
func (c *Client) ListTransactions(ctx context.Context) ([]Transaction, error) {
	var txns []Transaction
	err := c.get(ctx, "/api/transactions", &txns)
	return txns, err
}

// ListReceivedRequests fetches money requests addressed to the user.
func (c *Client) ListReceivedRequests(ctx context.Context) ([]MoneyRequest, error) {
	var reqs []MoneyRequest
	err := c.get(ctx, "/api/payments/requests/received", &reqs)
	return reqs, err
}

// -------------------- CARD --------------------

// GetCard fetches the user's virtual card.
func (c *Client) GetCard(ctx context.Context) (Card, error) {
	var card Card
	err := c.get(ctx, "/api/card", &card)
	return card, err
}

// GetCardSpending fetches the current month's card spending total.
func (c *Client) GetCardSpending(ctx context.Context) (CardSpending, error) {
	var sp CardSpending
	err := c.get(ctx, "/api/card/spending", &sp)
	return sp, err
}

// ToggleCardLock flips the card's lock state.
func (c *Client) ToggleCardLock(ctx context.Context) (CardLockResult, error) {
	var res CardLockResult
	err := c.post(ctx, "/api/card/lock", nil, &res)
	return res, err
}

// CardPurchase charges the virtual card at a merchant.
func (c *Client) CardPurchase(ctx context.Context, amount decimal.Decimal, merchant, note string) error {
	return c.post(ctx, "/api/card/purchase", map[string]any{
		"amount":      amount,
		"merchant":    merchant,
		"description": note,
	}, nil)
}

// -------------------- ACCOUNTS --------------------

// ListConnectedAccounts fetches linked banks and debit cards.
func (c *Client) ListConnectedAccounts(ctx context.Context) ([]ConnectedAccount, error) {
	var accts []ConnectedAccount
	err := c.get(ctx, "/api/accounts/connected", &accts)
	return accts, err
}

// ConnectAccount links a bank account or debit card. The routing
// number is required for bank accounts only.
func (c *Client) ConnectAccount(ctx context.Context, accountType, accountName, accountNumber, routingNumber string) error {
	return c.post(ctx, "/api/accounts/connect", map[string]string{
		"account_type":   accountType,
		"account_name":   accountName,
		"account_number": accountNumber,
		"routing_number": routingNumber,
	}, nil)
}

// -------------------- INVITES --------------------

// GetInviteInfo fetches the user's referral code and bonus terms.
func (c *Client) GetInviteInfo(ctx context.Context) (InviteInfo, error) {
	var info InviteInfo
	err := c.get(ctx, "/api/user/invite-info", &info)
	return info, err
}
