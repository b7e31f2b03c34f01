package auth

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"

	"payme-tui/helpers"
	"payme-tui/styles"
)

// Form field values, read by the update loop once the form completes.
var (
	TempIdentifier string
	TempPassword   string
	TempUsername   string
	TempEmail      string
	TempPhone      string
	TempChoice     string
)

// CreateChoiceForm asks whether to sign in or create an account.
func CreateChoiceForm() *huh.Form {
	TempChoice = ""

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Options(
					huh.NewOption("Sign in", "login"),
					huh.NewOption("Create account", "register"),
				).
				Title("Welcome to PayMe").
				Description("Send, request, and spend money from your terminal").
				Value(&TempChoice),
		),
	).WithTheme(huh.ThemeCatppuccin())

	form.Init()
	return form
}

// CreateLoginForm creates the sign-in form.
func CreateLoginForm() *huh.Form {
	TempIdentifier = ""
	TempPassword = ""

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email, phone, or @username").
				Value(&TempIdentifier).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&TempPassword).
				Validate(func(s string) error {
					if s == "" {
						return errors.New("required")
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeCatppuccin())

	form.Init()
	return form
}

// CreateRegisterForm creates the account-creation form.
func CreateRegisterForm() *huh.Form {
	TempUsername = ""
	TempEmail = ""
	TempPhone = ""
	TempPassword = ""

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Username").
				Value(&TempUsername).
				Validate(func(s string) error {
					s = strings.TrimSpace(s)
					if len(s) < 3 {
						return errors.New("at least 3 characters")
					}
					if strings.ContainsAny(s, " \t") {
						return errors.New("no spaces")
					}
					return nil
				}),
			huh.NewInput().
				Title("Email").
				Value(&TempEmail).
				Validate(func(s string) error {
					if !strings.Contains(s, "@") {
						return errors.New("not an email address")
					}
					return nil
				}),
			huh.NewInput().
				Title("Phone (optional)").
				Value(&TempPhone),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&TempPassword).
				Validate(func(s string) error {
					if len(s) < 8 {
						return errors.New("at least 8 characters")
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeCatppuccin())

	form.Init()
	return form
}

// Render renders the auth screen: a banner over the active form.
func Render(form *huh.Form, errMsg string) string {
	banner := helpers.FadeString("PayMe", "#00D64F", "#79C0FF")
	body := "Loading..."
	if form != nil {
		body = form.View()
	}
	out := banner + "\n\n" + body
	if errMsg != "" {
		out += "\n" + styles.ErrorStyle.Render(errMsg)
	}
	return out
}

// Nav returns the navigation bar for the auth screen
func Nav(width int) string {
	left := strings.Join([]string{
		styles.Key("↑/↓") + " move",
		styles.Key("Enter") + " confirm",
		styles.Key("Esc") + " quit",
	}, "   ")
	return styles.NavStyle.Width(width).Render(left)
}
