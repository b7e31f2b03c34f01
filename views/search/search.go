package search

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"payme-tui/helpers"
	"payme-tui/ledger"
	"payme-tui/styles"
)

// NewInput creates the query input box.
func NewInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "Name, @username, email, phone"
	ti.CharLimit = 64
	ti.Width = 40
	ti.Focus()
	return ti
}

// Nav returns the navigation bar for the search view
func Nav(width int) string {
	left := strings.Join([]string{
		styles.Key("type") + " search",
		styles.Key("↑/↓") + " move",
		styles.Key("Enter") + " pick recipient",
		styles.Key("Tab") + " next page",
		styles.Key("Esc") + " quit",
	}, "   ")

	return styles.NavStyle.Width(width).Render(left)
}

// Render renders the search box and the result list.
func Render(input textinput.Model, results []ledger.UserSummary, selectedIdx int, searching bool) string {
	header := styles.TitleStyle.Render("Search")

	var body string
	switch {
	case searching:
		body = lipgloss.NewStyle().Foreground(styles.CMuted).Render("Searching…")
	case len(results) == 0 && len(strings.TrimSpace(input.Value())) >= 2:
		body = lipgloss.NewStyle().Foreground(styles.CMuted).Render("No one found.")
	case len(results) == 0:
		body = lipgloss.NewStyle().Foreground(styles.CMuted).Render("Type at least two characters.")
	default:
		body = renderResults(results, selectedIdx)
	}

	return header + "\n\n" + input.View() + "\n\n" + body
}

func renderResults(results []ledger.UserSummary, selectedIdx int) string {
	var rows []string
	for i, u := range results {
		marker := "  "
		style := lipgloss.NewStyle().Foreground(styles.CText)
		if i == selectedIdx {
			marker = lipgloss.NewStyle().Foreground(styles.CAccent2).Bold(true).Render("▶ ")
			style = style.Foreground(styles.CAccent2).Bold(true)
		}
		avatar := lipgloss.NewStyle().
			Foreground(styles.CBg).
			Background(styles.CAccent).
			Padding(0, 1).
			Render(helpers.Initial(u.Username))
		line := u.Username
		if u.Email != "" {
			line += "  " + lipgloss.NewStyle().Foreground(styles.CMuted).Render(u.Email)
		}
		rows = append(rows, marker+avatar+" "+style.Render(line))
	}
	return strings.Join(rows, "\n")
}
