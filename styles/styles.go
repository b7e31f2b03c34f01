package styles

import "github.com/charmbracelet/lipgloss"

// Theme colors
var (
	CBg      = lipgloss.Color("#0B0F10") // near-black
	CPanel   = lipgloss.Color("#10181A") // slightly lighter
	CBorder  = lipgloss.Color("#00D64F") // brand green
	CMuted   = lipgloss.Color("#8AA69B")
	CText    = lipgloss.Color("#D9E8E1")
	CAccent  = lipgloss.Color("#00D64F") // brand green
	CAccent2 = lipgloss.Color("#79C0FF") // blue-ish
	CWarn    = lipgloss.Color("#FFA657") // orange
	CDanger  = lipgloss.Color("#FF6B6B") // red-ish
)

// Shared styles
var (
	AppStyle = lipgloss.NewStyle().
			Background(CBg).
			Foreground(CText)

	TitleStyle = lipgloss.NewStyle().
			Foreground(CAccent).
			Bold(true)

	PanelStyle = lipgloss.NewStyle().
			Background(CPanel).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(CBorder).
			Padding(1, 2)

	NavStyle = lipgloss.NewStyle().
			Background(CPanel).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(CBorder).
			Padding(0, 1)

	HotkeyStyle = lipgloss.NewStyle().
			Foreground(CMuted)

	HotkeyKeyStyle = lipgloss.NewStyle().
			Foreground(CAccent).
			Bold(true)

	HelpRightStyle = lipgloss.NewStyle().
			Foreground(CMuted)

	AmountInStyle = lipgloss.NewStyle().
			Foreground(CAccent)

	AmountOutStyle = lipgloss.NewStyle().
			Foreground(CText)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(CDanger)
)

// Key renders a key with accent styling
func Key(s string) string {
	return HotkeyKeyStyle.Render(s)
}
