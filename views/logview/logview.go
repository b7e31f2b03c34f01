package logview

import (
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"payme-tui/helpers"
	"payme-tui/styles"
)

// Render renders the debug log panel pinned under the active page.
// The panel takes at most a third of the screen so it never crowds out
// the page content.
func Render(width, height int, ready bool, spinnerView string, vp viewport.Model) string {
	title := lipgloss.NewStyle().
		Foreground(styles.CAccent2).
		Bold(true).
		Render("Debug log")

	// header (3 lines) + tabs + nav + borders eat about 10 rows
	panelHeight := helpers.Min(helpers.Max(5, height-10), helpers.Min(height/3, 15))
	vp.Height = panelHeight

	border := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.CBorder).
		Padding(0, 1).
		Width(helpers.Max(0, width-2)).
		Height(panelHeight + 2) // title row and spacing

	if !ready {
		return border.Render(title + "\n\n" + "starting…\n" + spinnerView)
	}

	scrollInfo := ""
	if vp.TotalLineCount() > vp.Height {
		scrollInfo = lipgloss.NewStyle().
			Foreground(styles.CMuted).
			Render(fmt.Sprintf(" [%d%%]", int(vp.ScrollPercent()*100)))
	}

	return border.Render(title + scrollInfo + "\n\n" + vp.View())
}
