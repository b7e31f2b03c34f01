package profile

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mdp/qrterminal/v3"

	"payme-tui/helpers"
	"payme-tui/ledger"
	"payme-tui/styles"
)

// Nav returns the navigation bar for the profile view
func Nav(width int, showingInvite bool) string {
	keys := []string{styles.Key("i") + " invite friends"}
	if showingInvite {
		keys = []string{styles.Key("i") + " hide invite"}
	}
	keys = append(keys,
		styles.Key("o")+" log out",
		styles.Key("Tab")+" next page",
		styles.Key("Esc")+" quit",
	)
	return styles.NavStyle.Width(width).Render(strings.Join(keys, "   "))
}

// Render renders the profile view, with the invite panel toggled in
// below it.
func Render(p ledger.Profile, invite *ledger.InviteInfo, showInvite bool) string {
	header := styles.TitleStyle.Render("Profile")

	avatar := lipgloss.NewStyle().
		Foreground(styles.CBg).
		Background(styles.CAccent).
		Padding(0, 2).
		Bold(true).
		Render(helpers.Initial(p.Username))

	lines := []string{
		avatar + "  " + lipgloss.NewStyle().Bold(true).Render(p.Username),
		lipgloss.NewStyle().Foreground(styles.CMuted).Render(p.Email),
	}
	if p.Phone != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(styles.CMuted).Render(p.Phone))
	}
	lines = append(lines, "",
		lipgloss.NewStyle().Foreground(styles.CMuted).Render("Balance: ")+
			lipgloss.NewStyle().Foreground(styles.CAccent).Render(helpers.FormatUSD(p.Balance)))

	out := header + "\n\n" + strings.Join(lines, "\n")
	if showInvite && invite != nil {
		out += "\n\n" + renderInvite(*invite)
	}
	return out
}

func renderInvite(info ledger.InviteInfo) string {
	title := lipgloss.NewStyle().Foreground(styles.CAccent).Bold(true).
		Render("Invite friends, get " + helpers.FormatUSD(info.BonusAmount))

	var qr strings.Builder
	qrterminal.GenerateWithConfig(info.InviteLink, qrterminal.Config{
		Level:     qrterminal.L,
		Writer:    &qr,
		QuietZone: 1,
		BlackChar: qrterminal.BLACK,
		WhiteChar: qrterminal.WHITE,
	})

	code := lipgloss.NewStyle().Foreground(styles.CMuted).Render("Code: ") +
		lipgloss.NewStyle().Bold(true).Render(info.InviteCode)
	count := lipgloss.NewStyle().Foreground(styles.CMuted).
		Render("Friends joined so far: ")

	return title + "\n" + code + "\n" + count + strconv.Itoa(info.InvitedCount) + "\n\n" +
		qr.String() + "\n" +
		lipgloss.NewStyle().Foreground(styles.CMuted).Render(info.InviteLink)
}
