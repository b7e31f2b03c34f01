package money

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"payme-tui/helpers"
	"payme-tui/ledger"
	"payme-tui/styles"
)

// Nav returns the navigation bar for the money view
func Nav(width int) string {
	left := strings.Join([]string{
		styles.Key("a") + " add money",
		styles.Key("w") + " withdraw",
		styles.Key("c") + " connect account",
		styles.Key("Tab") + " next page",
		styles.Key("L") + " debug log",
		styles.Key("Esc") + " quit",
	}, "   ")

	return styles.NavStyle.Width(width).Render(left)
}

// Render renders the money view: the balance panel and the linked
// accounts below it.
func Render(balance decimal.Decimal, loading bool, accounts []ledger.ConnectedAccount) string {
	header := styles.TitleStyle.Render("Money")

	balanceLabel := lipgloss.NewStyle().Foreground(styles.CMuted).Render("Cash balance")
	balanceValue := helpers.FormatUSD(balance)
	if loading {
		balanceValue = "…"
	}
	balancePanel := styles.PanelStyle.Render(
		balanceLabel + "\n" +
			lipgloss.NewStyle().Foreground(styles.CAccent).Bold(true).Render(balanceValue),
	)

	return header + "\n\n" + balancePanel + "\n\n" + renderAccounts(accounts)
}

func renderAccounts(accounts []ledger.ConnectedAccount) string {
	title := lipgloss.NewStyle().Foreground(styles.CMuted).Render("Linked accounts")
	if len(accounts) == 0 {
		return title + "\n" + lipgloss.NewStyle().Foreground(styles.CMuted).Render("No accounts linked yet. Press 'c' to connect one.")
	}

	var rows []string
	for _, a := range accounts {
		kind := "Bank"
		if a.AccountType == "debit_card" {
			kind = "Card"
		}
		rows = append(rows, fmt.Sprintf("%s  %s ···%s",
			lipgloss.NewStyle().Foreground(styles.CAccent2).Render(kind),
			a.AccountName,
			a.LastFour,
		))
	}
	return title + "\n" + strings.Join(rows, "\n")
}
