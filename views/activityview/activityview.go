package activityview

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"payme-tui/activity"
	"payme-tui/helpers"
	"payme-tui/styles"
)

// Nav returns the navigation bar for the activity view
func Nav(width int, hasPending bool) string {
	keys := []string{
		styles.Key("↑/↓") + " move",
	}
	if hasPending {
		keys = append(keys, styles.Key("p")+" pay request")
	}
	keys = append(keys,
		styles.Key("Tab")+" next page",
		styles.Key("L")+" debug log",
		styles.Key("Esc")+" quit",
	)
	return styles.NavStyle.Width(width).Render(strings.Join(keys, "   "))
}

// Render renders the full activity feed: quick-pay contacts, pending
// requests, then the transaction list grouped by day.
func Render(v activity.View, selectedRequest int, now time.Time) string {
	header := styles.TitleStyle.Render("Activity")

	sections := []string{header}
	if len(v.RecentContacts) > 0 {
		sections = append(sections, renderContacts(v))
	}
	if len(v.PendingRequests) > 0 {
		sections = append(sections, renderPending(v, selectedRequest))
	}
	sections = append(sections, renderEntries(v, now))

	return strings.Join(sections, "\n\n")
}

func renderContacts(v activity.View) string {
	title := lipgloss.NewStyle().Foreground(styles.CMuted).Render("Recents")
	var chips []string
	for _, u := range v.RecentContacts {
		avatar := lipgloss.NewStyle().
			Foreground(styles.CBg).
			Background(styles.CAccent).
			Padding(0, 1).
			Render(helpers.Initial(u.Username))
		chips = append(chips, avatar+" "+u.Username)
	}
	return title + "\n" + strings.Join(chips, "    ")
}

func renderPending(v activity.View, selected int) string {
	title := lipgloss.NewStyle().Foreground(styles.CWarn).Render("Requests for you")
	var rows []string
	for i, r := range v.PendingRequests {
		marker := "  "
		style := lipgloss.NewStyle().Foreground(styles.CText)
		if i == selected {
			marker = lipgloss.NewStyle().Foreground(styles.CAccent2).Bold(true).Render("▶ ")
			style = style.Foreground(styles.CAccent2).Bold(true)
		}
		line := r.Requester.Username + " requests " + helpers.FormatUSD(r.Amount)
		if r.Description != "" {
			line += "  ·  " + r.Description
		}
		rows = append(rows, marker+style.Render(line))
	}
	return title + "\n" + strings.Join(rows, "\n")
}

func renderEntries(v activity.View, now time.Time) string {
	if len(v.Entries) == 0 {
		return lipgloss.NewStyle().Foreground(styles.CMuted).Render("No activity yet.")
	}

	var b strings.Builder
	lastDay := ""
	for _, e := range v.Entries {
		day := helpers.RelativeDay(e.CreatedAt, now)
		if day != lastDay {
			if lastDay != "" {
				b.WriteString("\n")
			}
			b.WriteString(lipgloss.NewStyle().Foreground(styles.CMuted).Render(day) + "\n")
			lastDay = day
		}

		amountStyle := styles.AmountOutStyle
		if e.Incoming {
			amountStyle = styles.AmountInStyle
		}
		b.WriteString(e.Title + "\n")
		line := "  " + lipgloss.NewStyle().Foreground(styles.CMuted).Render(e.Subtitle) +
			"  " + amountStyle.Render(helpers.FormatSignedUSD(e.Amount, e.Incoming))
		if e.Fee.IsPositive() {
			line += lipgloss.NewStyle().Foreground(styles.CMuted).
				Render("  (fee " + helpers.FormatUSD(e.Fee) + ")")
		}
		b.WriteString(line + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
