package card

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"payme-tui/helpers"
	"payme-tui/ledger"
	"payme-tui/styles"
)

// Nav returns the navigation bar for the card view
func Nav(width int, locked bool) string {
	lockLabel := " lock card"
	if locked {
		lockLabel = " unlock card"
	}
	left := strings.Join([]string{
		styles.Key("k") + lockLabel,
		styles.Key("v") + " show number",
		styles.Key("y") + " copy number",
		styles.Key("p") + " purchase",
		styles.Key("Tab") + " next page",
		styles.Key("Esc") + " quit",
	}, "   ")

	return styles.NavStyle.Width(width).Render(left)
}

// Render renders the virtual card and this month's spending.
func Render(c ledger.Card, spending decimal.Decimal, revealed bool, loading bool, statusMsg string) string {
	header := styles.TitleStyle.Render("Card")
	if loading {
		return header + "\n\n" + lipgloss.NewStyle().Foreground(styles.CMuted).Render("Loading card…")
	}

	number := helpers.MaskCardNumber(c.CardNumber)
	cvv := "•••"
	if revealed {
		number = helpers.GroupCardNumber(c.CardNumber)
		cvv = c.CVV
	}

	face := strings.Join([]string{
		helpers.FadeString("PayMe", "#00D64F", "#79C0FF"),
		"",
		lipgloss.NewStyle().Foreground(styles.CText).Bold(true).Render(number),
		"",
		lipgloss.NewStyle().Foreground(styles.CMuted).Render("HOLDER  ") + c.CardHolderName,
		lipgloss.NewStyle().Foreground(styles.CMuted).Render("EXP ") + c.ExpiryDate +
			lipgloss.NewStyle().Foreground(styles.CMuted).Render("   CVV ") + cvv,
	}, "\n")

	panel := styles.PanelStyle.Render(face)
	if c.IsLocked {
		panel += "\n" + lipgloss.NewStyle().Foreground(styles.CWarn).Bold(true).Render("🔒 Card locked")
	}

	spendLine := lipgloss.NewStyle().Foreground(styles.CMuted).Render("Spent this month: ") +
		lipgloss.NewStyle().Foreground(styles.CText).Render(helpers.FormatUSD(spending))

	out := header + "\n\n" + panel + "\n\n" + spendLine
	if statusMsg != "" {
		out += "\n\n" + lipgloss.NewStyle().Foreground(styles.CAccent).Render(statusMsg)
	}
	return out
}
