package helpers

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/gamut"
	"github.com/shopspring/decimal"
)

// FormatUSD renders an amount as dollars with two decimal places.
func FormatUSD(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// FormatSignedUSD renders an amount with its direction, the way the
// activity feed shows it.
func FormatSignedUSD(d decimal.Decimal, incoming bool) string {
	if incoming {
		return "+" + FormatUSD(d)
	}
	return "-" + FormatUSD(d)
}

// Initial returns the avatar letter for a username.
func Initial(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "?"
	}
	return strings.ToUpper(string([]rune(name)[0]))
}

// MaskCardNumber hides all but the last four digits.
func MaskCardNumber(number string) string {
	digits := strings.ReplaceAll(number, " ", "")
	if len(digits) < 4 {
		return number
	}
	return "•••• •••• •••• " + digits[len(digits)-4:]
}

// GroupCardNumber spaces a card number into blocks of four.
func GroupCardNumber(number string) string {
	digits := strings.ReplaceAll(number, " ", "")
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && i%4 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// LoadedAt formats the loaded timestamp
func LoadedAt(t time.Time, loading bool) string {
	if loading {
		return "loading…"
	}
	if t.IsZero() {
		return "never"
	}
	return t.Format("15:04:05")
}

// RelativeDay labels a timestamp the way the feed groups it.
func RelativeDay(t, now time.Time) string {
	y1, m1, d1 := t.Date()
	y2, m2, d2 := now.Date()
	if y1 == y2 && m1 == m2 && d1 == d2 {
		return "Today"
	}
	if y1 == y2 && m1 == m2 && d2-d1 == 1 {
		return "Yesterday"
	}
	return t.Format("Jan 2")
}

// FadeString creates a gradient colored string
func FadeString(s string, firstColor string, lastColor string) string {
	blends := gamut.Blends(lipgloss.Color(firstColor), lipgloss.Color(lastColor), len(s))
	return rainbow(lipgloss.NewStyle(), s, blends)
}

func rainbow(baseStyle lipgloss.Style, str string, colors []color.Color) string {
	var result string
	for i, c := range str {
		col, _ := colorful.MakeColor(colors[i%len(colors)])
		result += baseStyle.Foreground(lipgloss.Color(col.Hex())).Render(string(c))
	}
	return result
}

// Max returns the maximum of two integers
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Min returns the minimum of two integers
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// ToHex converts a color to hex string
func ToHex(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02X%02X%02X", r>>8, g>>8, b>>8)
}
