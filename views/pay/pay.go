package pay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"payme-tui/helpers"
	"payme-tui/ledger"
	"payme-tui/styles"
)

// keypad mirrors the on-screen layout: digits, decimal, backspace.
var keypad = [][]string{
	{"1", "2", "3"},
	{"4", "5", "6"},
	{"7", "8", "9"},
	{".", "0", "⌫"},
}

// Nav returns the navigation bar for the pay view
func Nav(width int) string {
	left := strings.Join([]string{
		styles.Key("0-9 .") + " amount",
		styles.Key("Backspace") + " erase",
		styles.Key("r") + " recipient",
		styles.Key("n") + " note",
		styles.Key("Enter") + " pay",
		styles.Key("q") + " request",
		styles.Key("Tab") + " next page",
		styles.Key("Esc") + " quit",
	}, "   ")

	return styles.NavStyle.Width(width).Render(left)
}

// Render renders the keypad screen. The amount dominates, with the
// pinned recipient and note beneath and the fee preview at the bottom.
func Render(amountDisplay string, fee decimal.Decimal, recipient *ledger.UserSummary, note string, busy bool, errMsg string) string {
	header := styles.TitleStyle.Render("Pay")

	amount := lipgloss.NewStyle().
		Foreground(styles.CAccent).
		Bold(true).
		Render("$" + amountDisplay)

	to := lipgloss.NewStyle().Foreground(styles.CMuted).Render("To: ") + recipientLabel(recipient)
	noteLine := ""
	if note != "" {
		noteLine = lipgloss.NewStyle().Foreground(styles.CMuted).Render("For: ") + note
	}

	feeLine := lipgloss.NewStyle().Foreground(styles.CMuted).
		Render("Instant fee if sent now: " + helpers.FormatUSD(fee))

	status := ""
	if busy {
		status = lipgloss.NewStyle().Foreground(styles.CWarn).Render("Sending…")
	} else if errMsg != "" {
		status = styles.ErrorStyle.Render(errMsg)
	}

	parts := []string{header, "", amount, "", renderKeypad(), "", to}
	if noteLine != "" {
		parts = append(parts, noteLine)
	}
	parts = append(parts, feeLine)
	if status != "" {
		parts = append(parts, "", status)
	}
	return strings.Join(parts, "\n")
}

func recipientLabel(u *ledger.UserSummary) string {
	if u == nil {
		return lipgloss.NewStyle().Foreground(styles.CMuted).Render("nobody yet, press 'r'")
	}
	return lipgloss.NewStyle().Foreground(styles.CAccent2).Bold(true).Render(u.Username)
}

func renderKeypad() string {
	keyStyle := lipgloss.NewStyle().
		Foreground(styles.CText).
		Background(styles.CPanel).
		Padding(0, 2)

	var rows []string
	for _, row := range keypad {
		var keys []string
		for _, k := range row {
			keys = append(keys, keyStyle.Render(k))
		}
		rows = append(rows, strings.Join(keys, " "))
	}
	return strings.Join(rows, "\n")
}
