package main

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"

	"payme-tui/activity"
	"payme-tui/config"
	"payme-tui/helpers"
	"payme-tui/ledger"
	"payme-tui/payment"
	"payme-tui/views/auth"
	"payme-tui/views/card"
	"payme-tui/views/money"
	"payme-tui/views/pay"
)

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Window size and log plumbing apply to every screen, auth included
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.w, m.h = msg.Width, msg.Height
		m.logViewport.Width = helpers.Max(0, m.w-6)
		return m, nil

	case logInitMsg:
		if !m.logEnabled {
			return m, nil
		}
		m.logger = log.NewWithOptions(m.logBuffer, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05",
			Prefix:          "",
		})
		m.logger.SetLevel(log.DebugLevel)
		m.logger.SetStyles(&log.Styles{
			Timestamp: lipgloss.NewStyle().Foreground(cMuted),
			Levels: map[log.Level]lipgloss.Style{
				log.DebugLevel: lipgloss.NewStyle().Foreground(cMuted).SetString("DEBUG"),
				log.InfoLevel:  lipgloss.NewStyle().Foreground(cAccent2).SetString("INFO"),
				log.WarnLevel:  lipgloss.NewStyle().Foreground(cWarn).SetString("WARN"),
				log.ErrorLevel: lipgloss.NewStyle().Foreground(cDanger).SetString("ERROR"),
			},
		})
		m.logReady = true
		m.addLog("info", "Logger enabled")
		return m, nil

	case spinner.TickMsg:
		var cmds []tea.Cmd
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		cmds = append(cmds, cmd)
		if m.logEnabled {
			m.logSpinner, cmd = m.logSpinner.Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}

	if !m.authed {
		return m.updateAuth(msg)
	}

	// Modal form on the money/card/pay pages takes the input first
	if m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {

	case sessionMsg:
		// Stale; sessions only arrive through the auth flow
		return m, nil

	case profileLoadedMsg:
		m.profileLoading = false
		if msg.err != nil {
			m.addLog("error", "Profile load failed: "+msg.err.Error())
			if rej, ok := ledger.IsRejection(msg.err); ok && rej.Status == 401 {
				return m, m.logout()
			}
			return m, nil
		}
		m.profile = msg.profile
		return m, nil

	case transactionsLoadedMsg:
		if msg.err != nil {
			m.addLog("error", "Transactions load failed: "+msg.err.Error())
			return m, nil
		}
		m.transactions = msg.txns
		m.feed = activity.Derive(m.transactions, m.requests)
		m.clampSelections()
		return m, nil

	case requestsLoadedMsg:
		if msg.err != nil {
			m.addLog("error", "Requests load failed: "+msg.err.Error())
			return m, nil
		}
		m.requests = msg.reqs
		m.feed = activity.Derive(m.transactions, m.requests)
		m.clampSelections()
		return m, nil

	case accountsLoadedMsg:
		if msg.err != nil {
			m.addLog("error", "Accounts load failed: "+msg.err.Error())
			return m, nil
		}
		m.accounts = msg.accounts
		return m, nil

	case cardLoadedMsg:
		m.cardLoading = false
		if msg.err != nil {
			m.addLog("error", "Card load failed: "+msg.err.Error())
			return m, nil
		}
		m.card = msg.card
		return m, nil

	case spendingLoadedMsg:
		if msg.err == nil {
			m.spending = msg.spending.MonthlyTotal
		}
		return m, nil

	case inviteLoadedMsg:
		if msg.err != nil {
			m.addLog("error", "Invite info load failed: "+msg.err.Error())
			return m, nil
		}
		info := msg.info
		m.invite = &info
		return m, nil

	case searchDebounceMsg:
		// Only search if the input is still what it was when the
		// debounce started
		if msg.query != m.searchInput.Value() {
			return m, nil
		}
		m.searching = true
		m.pendingQuery = msg.query
		return m, searchUsers(m.resolver, msg.query)

	case searchResultsMsg:
		if msg.query != m.pendingQuery {
			return m, nil
		}
		m.searching = false
		m.searchHits = msg.users
		m.selectedHit = 0
		return m, nil

	case paymentOutcomeMsg:
		return m.handleOutcome(msg)

	case balanceChangedMsg:
		if msg.err != nil {
			m.addLog("error", "Transfer failed: "+remoteErrText(msg.err))
			return m, nil
		}
		if msg.outcome.HasBalance {
			m.profile.Balance = msg.outcome.NewBalance
		}
		if msg.what == "withdraw" && msg.arrival != "" {
			m.addLog("success", "Cash out on its way, arriving "+msg.arrival)
		} else {
			m.addLog("success", "Money added")
		}
		return m, m.refreshAfter(msg.outcome.Refresh)

	case accountConnectedMsg:
		if msg.err != nil {
			m.addLog("error", "Could not link account: "+remoteErrText(msg.err))
			return m, nil
		}
		m.addLog("success", "Account linked")
		return m, loadAccounts(m.client)

	case cardLockToggledMsg:
		if msg.err != nil {
			m.addLog("error", "Lock toggle failed: "+remoteErrText(msg.err))
			return m, nil
		}
		m.card.IsLocked = msg.locked
		m.cardStatus = msg.message
		if m.cardStatus == "" {
			m.cardStatus = "Card unlocked"
			if msg.locked {
				m.cardStatus = "Card locked"
			}
		}
		m.cardStatusTime = time.Now()
		return m, nil

	case purchaseDoneMsg:
		if msg.err != nil {
			m.addLog("error", "Purchase failed: "+remoteErrText(msg.err))
			return m, nil
		}
		m.cardStatus = "Purchase complete"
		m.cardStatusTime = time.Now()
		return m, tea.Batch(loadProfile(m.client), loadTransactions(m.client), loadSpending(m.client))

	case clipboardCopiedMsg:
		m.cardStatus = "Card number copied"
		m.cardStatusTime = time.Now()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// -------------------- AUTH FLOW --------------------

func (m *model) updateAuth(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionMsg:
		if msg.err != nil {
			m.authErr = remoteErrText(msg.err)
			switch m.authStage {
			case "login":
				m.authForm = auth.CreateLoginForm()
			case "register":
				m.authForm = auth.CreateRegisterForm()
			default:
				m.authStage = "choice"
				m.authForm = auth.CreateChoiceForm()
			}
			return m, nil
		}
		m.authed = true
		m.authErr = ""
		m.authForm = nil
		m.client.Token = msg.session.Token
		m.profile = msg.session.User
		m.cfg.SessionToken = msg.session.Token
		m.cfg.User = &config.UserSnapshot{
			UserID:   msg.session.User.UserID,
			Username: msg.session.User.Username,
			Email:    msg.session.User.Email,
		}
		m.saveConfig()
		m.addLog("success", "Signed in as "+msg.session.User.Username)
		return m, m.loadDashboard()

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if msg.String() == "esc" {
			if m.authStage == "choice" {
				return m, tea.Quit
			}
			m.authStage = "choice"
			m.authErr = ""
			m.authForm = auth.CreateChoiceForm()
			return m, nil
		}
	}

	if m.authForm == nil {
		return m, nil
	}

	form, cmd := m.authForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.authForm = f

		if m.authForm.State == huh.StateCompleted {
			switch m.authStage {
			case "choice":
				m.authErr = ""
				if auth.TempChoice == "register" {
					m.authStage = "register"
					m.authForm = auth.CreateRegisterForm()
				} else {
					m.authStage = "login"
					m.authForm = auth.CreateLoginForm()
				}
				return m, nil
			case "login":
				m.authForm = nil
				return m, login(m.client, strings.TrimSpace(auth.TempIdentifier), auth.TempPassword)
			case "register":
				m.authForm = nil
				return m, register(m.client,
					strings.TrimSpace(auth.TempUsername),
					strings.TrimSpace(auth.TempEmail),
					strings.TrimSpace(auth.TempPhone),
					auth.TempPassword)
			}
		}

		if m.authForm.State == huh.StateAborted {
			m.authStage = "choice"
			m.authForm = auth.CreateChoiceForm()
			return m, nil
		}
	}
	return m, cmd
}

// -------------------- MODAL FORMS --------------------

func (m *model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Intercept ESC key to cancel form
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
		m.closeForm()
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f

		if m.form.State == huh.StateCompleted {
			return m.completeForm()
		}

		if m.form.State == huh.StateAborted {
			m.closeForm()
			return m, nil
		}
	}
	return m, cmd
}

func (m *model) completeForm() (tea.Model, tea.Cmd) {
	defer m.closeForm()

	switch {
	case m.moneyMode == "add":
		amount, err := decimal.NewFromString(strings.TrimSpace(money.TempAmount))
		if err != nil {
			return m, nil
		}
		m.addLog("info", "Adding "+helpers.FormatUSD(amount))
		return m, addFunds(m.orchestrator, amount, money.TempAccountID)

	case m.moneyMode == "withdraw":
		amount, err := decimal.NewFromString(strings.TrimSpace(money.TempAmount))
		if err != nil {
			return m, nil
		}
		m.addLog("info", "Cashing out "+helpers.FormatUSD(amount))
		return m, withdraw(m.orchestrator, amount, m.profile.Balance, money.TempAccountID, ledger.TransferSpeed(money.TempSpeed))

	case m.moneyMode == "connect":
		return m, connectAccount(m.client,
			money.TempAccountType,
			strings.TrimSpace(money.TempAccountName),
			strings.TrimSpace(money.TempAccountNumber),
			strings.TrimSpace(money.TempRouting))

	case m.cardMode == "purchase":
		amount, err := decimal.NewFromString(strings.TrimSpace(card.TempAmount))
		if err != nil {
			return m, nil
		}
		return m, cardPurchase(m.client, amount, strings.TrimSpace(card.TempMerchant), strings.TrimSpace(card.TempNote))

	case m.payMode == "note":
		m.orchestrator.SetNote(strings.TrimSpace(pay.TempNote))
		return m, nil
	}
	return m, nil
}

func (m *model) closeForm() {
	m.form = nil
	m.moneyMode = ""
	m.cardMode = ""
	m.payMode = ""
}

// -------------------- KEYS --------------------

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// The search page owns plain characters while its input is focused
	if m.activePage == config.PageSearch {
		return m.handleSearchKey(msg)
	}

	switch key {
	case "ctrl+c", "esc":
		return m, tea.Quit
	case "tab":
		m.cyclePage(1)
		return m, nil
	case "shift+tab":
		m.cyclePage(-1)
		return m, nil
	case "L":
		return m, m.toggleLogger()
	}

	switch m.activePage {
	case config.PageMoney:
		return m.handleMoneyKey(key)
	case config.PageActivity:
		return m.handleActivityKey(key)
	case config.PagePayment:
		return m.handlePayKey(key)
	case config.PageCard:
		return m.handleCardKey(key)
	case config.PageProfile:
		return m.handleProfileKey(key)
	}
	return m, nil
}

func (m *model) handleMoneyKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "a":
		if len(m.accounts) == 0 {
			m.addLog("warning", "Link an account first ('c')")
			return m, nil
		}
		m.moneyMode = "add"
		m.form = money.CreateAddFundsForm(m.accounts)
	case "w":
		if len(m.accounts) == 0 {
			m.addLog("warning", "Link an account first ('c')")
			return m, nil
		}
		m.moneyMode = "withdraw"
		m.form = money.CreateWithdrawForm(m.accounts, m.profile.Balance)
	case "c":
		m.moneyMode = "connect"
		m.form = money.CreateConnectForm()
	case "r":
		return m, m.loadDashboard()
	}
	return m, nil
}

func (m *model) handleActivityKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "up", "k":
		if m.selectedReq > 0 {
			m.selectedReq--
		}
	case "down", "j":
		if m.selectedReq < len(m.feed.PendingRequests)-1 {
			m.selectedReq++
		}
	case "p", "enter":
		if m.selectedReq >= 0 && m.selectedReq < len(m.feed.PendingRequests) {
			req := m.feed.PendingRequests[m.selectedReq]
			m.addLog("info", "Paying "+req.Requester.Username+" "+helpers.FormatUSD(req.Amount))
			return m, payRequest(m.orchestrator, req)
		}
	}
	return m, nil
}

func (m *model) handlePayKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "0", "1", "2", "3", "4", "5", "6", "7", "8", "9":
		m.orchestrator.PressDigit(rune(key[0]))
		m.payErr = ""
	case ".":
		m.orchestrator.PressDecimal()
	case "backspace":
		m.orchestrator.Backspace()
	case "r":
		m.activePage = config.PageSearch
		m.searchInput.Focus()
	case "n":
		m.payMode = "note"
		m.form = pay.CreateNoteForm(m.orchestrator.Note())
	case "enter":
		return m, submitPayment(m.orchestrator, payment.KindSend)
	case "q":
		return m, submitPayment(m.orchestrator, payment.KindRequest)
	}
	return m, nil
}

func (m *model) handleCardKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "k":
		return m, toggleCardLock(m.client)
	case "v":
		m.cardRevealed = !m.cardRevealed
	case "y":
		if m.card.CardNumber != "" {
			return m, copyToClipboard(m.card.CardNumber)
		}
	case "p":
		if m.card.IsLocked {
			m.cardStatus = "Card is locked"
			m.cardStatusTime = time.Now()
			return m, nil
		}
		m.cardMode = "purchase"
		m.form = card.CreatePurchaseForm()
	}
	return m, nil
}

func (m *model) handleProfileKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "i":
		m.showInvite = !m.showInvite
		if m.showInvite && m.invite == nil {
			return m, loadInvite(m.client)
		}
	case "o":
		return m, m.logout()
	}
	return m, nil
}

func (m *model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.activePage = config.PagePayment
		return m, nil
	case "tab":
		m.cyclePage(1)
		return m, nil
	case "shift+tab":
		m.cyclePage(-1)
		return m, nil
	case "up":
		if m.selectedHit > 0 {
			m.selectedHit--
		}
		return m, nil
	case "down":
		if m.selectedHit < len(m.searchHits)-1 {
			m.selectedHit++
		}
		return m, nil
	case "enter":
		if m.selectedHit >= 0 && m.selectedHit < len(m.searchHits) {
			u := m.searchHits[m.selectedHit]
			m.orchestrator.SetRecipient(u)
			m.addLog("info", "Recipient set to "+u.Username)
			m.activePage = config.PagePayment
		}
		return m, nil
	}

	var cmd tea.Cmd
	before := m.searchInput.Value()
	m.searchInput, cmd = m.searchInput.Update(msg)
	after := m.searchInput.Value()
	if before == after {
		return m, cmd
	}
	if len(strings.TrimSpace(after)) < 2 {
		m.searchHits = nil
		m.searching = false
		return m, cmd
	}
	return m, tea.Batch(cmd, debounceSearch(after))
}

// -------------------- OUTCOMES --------------------

func (m *model) handleOutcome(msg paymentOutcomeMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if msg.err == payment.ErrBusy {
			return m, nil
		}
		if ve, ok := payment.IsValidation(msg.err); ok {
			m.payErr = ve.Reason
			m.payErrTime = time.Now()
			return m, nil
		}
		if rej, ok := ledger.IsRejection(msg.err); ok {
			m.payErr = rej.Detail
		} else {
			m.payErr = "Something went wrong. Try again."
		}
		m.payErrTime = time.Now()
		m.addLog("error", "Payment failed: "+msg.err.Error())
		return m, nil
	}

	out := msg.outcome
	m.payErr = ""
	switch out.Kind {
	case payment.KindSend:
		m.addLog("success", "Sent "+helpers.FormatUSD(out.Amount)+" to "+out.Recipient.Username)
	case payment.KindRequest:
		m.addLog("success", "Requested "+helpers.FormatUSD(out.Amount)+" from "+out.Recipient.Username)
	}
	if out.HasBalance {
		m.profile.Balance = out.NewBalance
	}
	m.activePage = config.PageActivity
	return m, m.refreshAfter(out.Refresh)
}

// -------------------- SMALL HELPERS --------------------

func (m *model) cyclePage(dir int) {
	pages := config.Pages()
	idx := 0
	for i, p := range pages {
		if p == m.activePage {
			idx = i
			break
		}
	}
	idx = (idx + dir + len(pages)) % len(pages)
	m.activePage = pages[idx]
	if m.activePage == config.PageSearch {
		m.searchInput.Focus()
	} else {
		m.searchInput.Blur()
	}
}

func (m *model) toggleLogger() tea.Cmd {
	m.logEnabled = !m.logEnabled
	m.saveConfig()
	if m.logEnabled && !m.logReady {
		return tea.Batch(initLogViewport(), m.logSpinner.Tick)
	}
	return nil
}

func (m *model) logout() tea.Cmd {
	m.authed = false
	m.authStage = "choice"
	m.authForm = auth.CreateChoiceForm()
	m.client.Token = ""
	m.cfg.SessionToken = ""
	m.cfg.User = nil
	m.saveConfig()
	m.profile = ledger.Profile{}
	m.transactions = nil
	m.requests = nil
	m.feed = activity.View{}
	m.accounts = nil
	m.card = ledger.Card{}
	m.invite = nil
	m.showInvite = false
	m.orchestrator.ClearComposition()
	return nil
}

func (m *model) clampSelections() {
	if m.selectedReq >= len(m.feed.PendingRequests) {
		m.selectedReq = helpers.Max(0, len(m.feed.PendingRequests)-1)
	}
}

// remoteErrText keeps server declines verbatim and flattens everything
// else to a generic retry message.
func remoteErrText(err error) string {
	if rej, ok := ledger.IsRejection(err); ok {
		return rej.Error()
	}
	return "connection trouble, try again"
}
