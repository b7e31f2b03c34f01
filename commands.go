package main

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"payme-tui/config"
	"payme-tui/ledger"
	"payme-tui/payment"
)

// -------------------- COMMAND FUNCTIONS --------------------
// Functions that return tea.Cmd for async operations

// searchDebounce is how long the search input must be quiet before a
// query goes to the server.
const searchDebounce = 300 * time.Millisecond

// initLogViewport initializes the log viewport
func initLogViewport() tea.Cmd {
	return func() tea.Msg {
		return logInitMsg{}
	}
}

// login exchanges credentials for a session
func login(client *ledger.Client, identifier, password string) tea.Cmd {
	return func() tea.Msg {
		s, err := client.Login(context.Background(), identifier, password)
		return sessionMsg{session: s, err: err}
	}
}

// register creates an account and returns the new session
func register(client *ledger.Client, username, email, phone, password string) tea.Cmd {
	return func() tea.Msg {
		s, err := client.Register(context.Background(), username, email, phone, password)
		return sessionMsg{session: s, err: err}
	}
}

// loadProfile fetches the user's profile and balance
func loadProfile(client *ledger.Client) tea.Cmd {
	return func() tea.Msg {
		p, err := client.GetProfile(context.Background())
		return profileLoadedMsg{profile: p, err: err}
	}
}

// loadTransactions fetches the full transaction history
func loadTransactions(client *ledger.Client) tea.Cmd {
	return func() tea.Msg {
		txns, err := client.ListTransactions(context.Background())
		return transactionsLoadedMsg{txns: txns, err: err}
	}
}

// loadRequests fetches money requests addressed to the user
func loadRequests(client *ledger.Client) tea.Cmd {
	return func() tea.Msg {
		reqs, err := client.ListReceivedRequests(context.Background())
		return requestsLoadedMsg{reqs: reqs, err: err}
	}
}

// loadAccounts fetches linked banks and cards
func loadAccounts(client *ledger.Client) tea.Cmd {
	return func() tea.Msg {
		accts, err := client.ListConnectedAccounts(context.Background())
		return accountsLoadedMsg{accounts: accts, err: err}
	}
}

// loadCard fetches the virtual card
func loadCard(client *ledger.Client) tea.Cmd {
	return func() tea.Msg {
		c, err := client.GetCard(context.Background())
		return cardLoadedMsg{card: c, err: err}
	}
}

// loadSpending fetches this month's card spending
func loadSpending(client *ledger.Client) tea.Cmd {
	return func() tea.Msg {
		sp, err := client.GetCardSpending(context.Background())
		return spendingLoadedMsg{spending: sp, err: err}
	}
}

// loadInvite fetches the referral code and bonus terms
func loadInvite(client *ledger.Client) tea.Cmd {
	return func() tea.Msg {
		info, err := client.GetInviteInfo(context.Background())
		return inviteLoadedMsg{info: info, err: err}
	}
}

// debounceSearch waits for the input to settle before searching
func debounceSearch(query string) tea.Cmd {
	return tea.Tick(searchDebounce, func(time.Time) tea.Msg {
		return searchDebounceMsg{query: query}
	})
}

// searchUsers resolves a query against the user directory
func searchUsers(resolver *payment.Resolver, query string) tea.Cmd {
	return func() tea.Msg {
		users := resolver.Search(context.Background(), query)
		return searchResultsMsg{query: query, users: users}
	}
}

// submitPayment performs the composed send or request
func submitPayment(orch *payment.Orchestrator, kind payment.Kind) tea.Cmd {
	return func() tea.Msg {
		out, err := orch.Submit(context.Background(), kind)
		return paymentOutcomeMsg{outcome: out, err: err}
	}
}

// payRequest fulfills a received money request
func payRequest(orch *payment.Orchestrator, req ledger.MoneyRequest) tea.Cmd {
	return func() tea.Msg {
		out, err := orch.PayRequest(context.Background(), req)
		return paymentOutcomeMsg{outcome: out, err: err}
	}
}

// addFunds loads money from a linked payment method
func addFunds(orch *payment.Orchestrator, amount decimal.Decimal, accountID string) tea.Cmd {
	return func() tea.Msg {
		out, err := orch.AddFunds(context.Background(), amount, accountID)
		return balanceChangedMsg{what: "add", outcome: out, err: err}
	}
}

// withdraw cashes out to a connected account
func withdraw(orch *payment.Orchestrator, amount, balance decimal.Decimal, accountID string, speed ledger.TransferSpeed) tea.Cmd {
	return func() tea.Msg {
		out, arrival, err := orch.Withdraw(context.Background(), amount, balance, accountID, speed)
		return balanceChangedMsg{what: "withdraw", outcome: out, arrival: arrival, err: err}
	}
}

// connectAccount links a bank account or debit card
func connectAccount(client *ledger.Client, accountType, name, number, routing string) tea.Cmd {
	return func() tea.Msg {
		err := client.ConnectAccount(context.Background(), accountType, name, number, routing)
		return accountConnectedMsg{err: err}
	}
}

// toggleCardLock flips the card lock state
func toggleCardLock(client *ledger.Client) tea.Cmd {
	return func() tea.Msg {
		res, err := client.ToggleCardLock(context.Background())
		return cardLockToggledMsg{locked: res.IsLocked, message: res.Message, err: err}
	}
}

// cardPurchase simulates a purchase on the virtual card
func cardPurchase(client *ledger.Client, amount decimal.Decimal, merchant, note string) tea.Cmd {
	return func() tea.Msg {
		err := client.CardPurchase(context.Background(), amount, merchant, note)
		return purchaseDoneMsg{err: err}
	}
}

// copyToClipboard copies text to clipboard
func copyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		err := clipboard.WriteAll(text)
		if err == nil {
			return clipboardCopiedMsg{}
		}
		return nil
	}
}

// -------------------- MODEL HELPER METHODS --------------------

// addLog adds a log entry with timestamp and type
func (m *model) addLog(logType, message string) {
	if !m.logEnabled || !m.logReady || m.logger == nil {
		return
	}

	switch logType {
	case "info":
		m.logger.Info(message)
	case "success":
		m.logger.Info("✓", "msg", message)
	case "error":
		m.logger.Error(message)
	case "warning":
		m.logger.Warn(message)
	case "debug":
		m.logger.Debug(message)
	default:
		m.logger.Print(message)
	}

	m.updateLogViewport()
}

// updateLogViewport refreshes the viewport content with log output
func (m *model) updateLogViewport() {
	if !m.logReady || m.logBuffer == nil {
		return
	}

	content := m.logBuffer.String()
	m.logViewport.SetContent(content)
	m.logViewport.GotoBottom()
}

// refreshAfter maps an outcome's refresh mask to reload commands
func (m *model) refreshAfter(mask payment.Refresh) tea.Cmd {
	var cmds []tea.Cmd
	if mask.Has(payment.RefreshBalance) {
		cmds = append(cmds, loadProfile(m.client))
	}
	if mask.Has(payment.RefreshTransactions) {
		cmds = append(cmds, loadTransactions(m.client))
	}
	if mask.Has(payment.RefreshRequests) {
		cmds = append(cmds, loadRequests(m.client))
	}
	return tea.Batch(cmds...)
}

// loadDashboard fires the whole post-login fan-out at once
func (m *model) loadDashboard() tea.Cmd {
	m.profileLoading = true
	m.cardLoading = true
	return tea.Batch(
		loadProfile(m.client),
		loadTransactions(m.client),
		loadRequests(m.client),
		loadAccounts(m.client),
		loadCard(m.client),
		loadSpending(m.client),
	)
}

// saveConfig persists the current session and preferences
func (m *model) saveConfig() {
	m.cfg.Logger = m.logEnabled
	config.Save(m.configPath, m.cfg)
}
