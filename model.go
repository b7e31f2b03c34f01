package main

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"

	"payme-tui/activity"
	"payme-tui/config"
	"payme-tui/ledger"
	"payme-tui/payment"
	"payme-tui/views/auth"
	"payme-tui/views/search"
)

// -------------------- MODEL --------------------

// model represents the application state following The Elm Architecture
type model struct {
	w, h int

	activePage config.Page
	cfg        config.Config
	configPath string

	client       *ledger.Client
	orchestrator *payment.Orchestrator
	resolver     *payment.Resolver

	// auth flow
	authed    bool
	authStage string // "choice", "login", "register"
	authForm  *huh.Form
	authErr   string

	// dashboard data
	profile        ledger.Profile
	profileLoading bool
	transactions   []ledger.Transaction
	requests       []ledger.MoneyRequest
	feed           activity.View
	selectedReq    int
	accounts       []ledger.ConnectedAccount

	// card page
	card           ledger.Card
	cardLoading    bool
	cardRevealed   bool
	spending       decimal.Decimal
	cardStatus     string
	cardStatusTime time.Time

	// profile page
	invite     *ledger.InviteInfo
	showInvite bool

	// search page
	searchInput  textinput.Model
	searchHits   []ledger.UserSummary
	selectedHit  int
	searching    bool
	pendingQuery string

	// pay page feedback
	payErr     string
	payErrTime time.Time

	// modal forms on the money/card/pay pages
	moneyMode string // "", "add", "withdraw", "connect"
	cardMode  string // "", "purchase"
	payMode   string // "", "note"
	form      *huh.Form

	spin spinner.Model

	// logger panel
	logEnabled  bool
	logger      *log.Logger
	logBuffer   *strings.Builder
	logViewport viewport.Model
	logReady    bool
	logSpinner  spinner.Model
}

// -------------------- INIT --------------------

// newModel creates and initializes a new model with configuration from disk
func newModel() model {
	// config path
	homeDir, _ := os.UserHomeDir()
	configPath := filepath.Join(homeDir, ".payme-config.json")

	cfg := config.LoadOrCreate(configPath)

	client := ledger.NewClient(cfg.ServerURL, cfg.SessionToken)

	// spinner
	sp := spinner.New()
	sp.Spinner = spinner.Line
	sp.Style = lipgloss.NewStyle().Foreground(cAccent2)

	// Initialize log viewport
	vp := viewport.New(0, 20) // Will be resized in Update on first WindowSizeMsg
	vp.Style = lipgloss.NewStyle().
		Foreground(cText).
		Background(cPanel)

	// Initialize log spinner
	logSpin := spinner.New()
	logSpin.Spinner = spinner.Dot
	logSpin.Style = lipgloss.NewStyle().Foreground(cAccent2)

	m := model{
		activePage:   config.PageMoney,
		cfg:          cfg,
		configPath:   configPath,
		client:       client,
		orchestrator: payment.NewOrchestrator(client),
		resolver:     payment.NewResolver(client),
		authed:       cfg.SessionToken != "",
		searchInput:  search.NewInput(),
		spin:         sp,
		logEnabled:   cfg.Logger,
		logViewport:  vp,
		logBuffer:    &strings.Builder{},
		logSpinner:   logSpin,
	}

	if !m.authed {
		m.authStage = "choice"
		m.authForm = auth.CreateChoiceForm()
	}

	return m
}

// Init implements tea.Model interface and returns initial commands
func (m *model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spin.Tick}
	if m.logEnabled {
		cmds = append(cmds, initLogViewport(), m.logSpinner.Tick)
	}
	if m.authed {
		cmds = append(cmds, m.loadDashboard())
	}
	return tea.Batch(cmds...)
}
