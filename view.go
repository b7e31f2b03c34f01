package main

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"payme-tui/config"
	"payme-tui/helpers"
	"payme-tui/ledger"
	"payme-tui/styles"
	"payme-tui/views/activityview"
	"payme-tui/views/auth"
	"payme-tui/views/card"
	"payme-tui/views/logview"
	"payme-tui/views/money"
	"payme-tui/views/pay"
	"payme-tui/views/profile"
	"payme-tui/views/search"
)

// -------------------- VIEW --------------------

func (m *model) globalHeader() string {
	availableWidth := helpers.Max(0, m.w-8) // Account for panel padding

	var userDisplay string
	if m.profile.Username != "" {
		userDisplay = lipgloss.NewStyle().
			Foreground(cAccent2).
			Bold(true).
			Render("@" + m.profile.Username)
	} else {
		userDisplay = lipgloss.NewStyle().
			Foreground(cMuted).
			Render("not signed in")
	}

	// Balance with status dot
	var balanceDisplay string
	if m.authed {
		dot := lipgloss.NewStyle().Foreground(cAccent).Render("●")
		if m.profileLoading {
			dot = m.spin.View()
		}
		balanceDisplay = dot + " " + lipgloss.NewStyle().
			Foreground(cText).
			Bold(true).
			Render(helpers.FormatUSD(m.profile.Balance))
	} else {
		balanceDisplay = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c01c28")).
			Render("○ offline")
	}

	titleText := lipgloss.NewStyle().Bold(true).
		Render(helpers.FadeString("PayMe", "#00D64F", "#79C0FF"))

	userWidth := lipgloss.Width(userDisplay)
	balWidth := lipgloss.Width(balanceDisplay)
	titleWidth := lipgloss.Width(titleText)

	totalOtherWidth := userWidth + balWidth + titleWidth

	var headerLine string
	if totalOtherWidth+4 > availableWidth {
		headerLine = userDisplay + "\n" + titleText + "\n" + balanceDisplay
	} else {
		remainingSpace := availableWidth - totalOtherWidth
		leftPadding := remainingSpace / 2
		rightPadding := remainingSpace - leftPadding

		leftSpacer := strings.Repeat(" ", helpers.Max(1, leftPadding))
		rightSpacer := strings.Repeat(" ", helpers.Max(1, rightPadding))

		headerLine = userDisplay + leftSpacer + titleText + rightSpacer + balanceDisplay
	}

	separator := lipgloss.NewStyle().
		Foreground(cBorder).
		Render(strings.Repeat("─", availableWidth))

	return headerLine + "\n" + separator
}

// pageTabs renders the bottom tab row with the active page highlighted
func (m *model) pageTabs() string {
	var tabs []string
	for _, p := range config.Pages() {
		label := " " + p.String() + " "
		if p == m.activePage {
			tabs = append(tabs, lipgloss.NewStyle().
				Foreground(cBg).
				Background(cAccent).
				Bold(true).
				Render(label))
		} else {
			tabs = append(tabs, hotkeyStyle.Render(label))
		}
	}
	return strings.Join(tabs, " ")
}

func (m *model) View() string {
	if !m.authed {
		content := lipgloss.JoinVertical(lipgloss.Left,
			panelStyle.Width(helpers.Max(0, m.w-2)).Render(auth.Render(m.authForm, m.authErr)),
			auth.Nav(m.w-2),
		)
		return appStyle.Render(content)
	}

	globalHdr := m.globalHeader()
	headerPanel := panelStyle.Width(helpers.Max(0, m.w-2)).Render(globalHdr + "\n" + m.pageTabs())

	var pageContent string
	var nav string

	switch m.activePage {
	case config.PageMoney:
		moneyContent := money.Render(m.profile.Balance, m.profileLoading, m.accounts)
		if m.moneyMode != "" && m.form != nil {
			moneyContent = styles.TitleStyle.Render(moneyFormTitle(m.moneyMode)) + "\n\n" + m.form.View()
		}
		pageContent = panelStyle.Width(helpers.Max(0, m.w-2)).Render(moneyContent)
		nav = money.Nav(m.w - 2)

	case config.PageActivity:
		activityContent := activityview.Render(m.feed, m.selectedReq, time.Now())
		pageContent = panelStyle.Width(helpers.Max(0, m.w-2)).Render(activityContent)
		nav = activityview.Nav(m.w-2, len(m.feed.PendingRequests) > 0)

	case config.PagePayment:
		payErr := ""
		if m.payErr != "" && time.Since(m.payErrTime) < 5*time.Second {
			payErr = m.payErr
		}
		payContent := pay.Render(
			m.orchestrator.AmountDisplay(),
			m.orchestrator.FeePreview(),
			recipientPtr(m),
			m.orchestrator.Note(),
			m.orchestrator.Busy(),
			payErr,
		)
		if m.payMode == "note" && m.form != nil {
			payContent = styles.TitleStyle.Render("Add a note") + "\n\n" + m.form.View()
		}
		pageContent = panelStyle.Width(helpers.Max(0, m.w-2)).Render(payContent)
		nav = pay.Nav(m.w - 2)

	case config.PageCard:
		status := ""
		if m.cardStatus != "" && time.Since(m.cardStatusTime) < 3*time.Second {
			status = m.cardStatus
		}
		cardContent := card.Render(m.card, m.spending, m.cardRevealed, m.cardLoading, status)
		if m.cardMode == "purchase" && m.form != nil {
			cardContent = styles.TitleStyle.Render("Card Purchase") + "\n\n" + m.form.View()
		}
		pageContent = panelStyle.Width(helpers.Max(0, m.w-2)).Render(cardContent)
		nav = card.Nav(m.w-2, m.card.IsLocked)

	case config.PageSearch:
		searchContent := search.Render(m.searchInput, m.searchHits, m.selectedHit, m.searching)
		pageContent = panelStyle.Width(helpers.Max(0, m.w-2)).Render(searchContent)
		nav = search.Nav(m.w - 2)

	case config.PageProfile:
		profileContent := profile.Render(m.profile, m.invite, m.showInvite)
		pageContent = panelStyle.Width(helpers.Max(0, m.w-2)).Render(profileContent)
		nav = profile.Nav(m.w-2, m.showInvite)
	}

	// Render log panel only if enabled
	if m.logEnabled {
		// Ensure viewport height stays in sync with the rendered panel
		reservedHeight := 10
		availableHeight := helpers.Max(5, m.h-reservedHeight)
		maxLogHeight := helpers.Min(m.h/3, 15)
		logPanelHeight := helpers.Min(availableHeight, maxLogHeight)
		m.logViewport.Height = logPanelHeight

		logPanel := logview.Render(m.w, m.h, m.logReady, m.logSpinner.View(), m.logViewport)
		content := lipgloss.JoinVertical(lipgloss.Left, headerPanel, pageContent, nav, logPanel)
		return appStyle.Render(content)
	}

	content := lipgloss.JoinVertical(lipgloss.Left, headerPanel, pageContent, nav)
	return appStyle.Render(content)
}

func recipientPtr(m *model) *ledger.UserSummary {
	if u, ok := m.orchestrator.Recipient(); ok {
		return &u
	}
	return nil
}

func moneyFormTitle(mode string) string {
	switch mode {
	case "add":
		return "Add Money"
	case "withdraw":
		return "Cash Out"
	case "connect":
		return "Link Account"
	}
	return ""
}
