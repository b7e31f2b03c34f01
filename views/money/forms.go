package money

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/shopspring/decimal"

	"payme-tui/helpers"
	"payme-tui/ledger"
	"payme-tui/payment"
)

// Form field values, read by the update loop once a form completes.
var (
	TempAmount    string
	TempAccountID string
	TempSpeed     string

	TempAccountType   string
	TempAccountName   string
	TempAccountNumber string
	TempRouting       string
)

func validAmount(s string) error {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return errors.New("enter a dollar amount")
	}
	if !d.IsPositive() {
		return errors.New("must be more than zero")
	}
	return nil
}

// CreateAddFundsForm builds the add-money form over the linked
// accounts.
func CreateAddFundsForm(accounts []ledger.ConnectedAccount) *huh.Form {
	TempAmount = ""
	TempAccountID = ""

	opts := make([]huh.Option[string], 0, len(accounts))
	for _, a := range accounts {
		opts = append(opts, huh.NewOption(a.AccountName+" ···"+a.LastFour, a.AccountID))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Amount to add").
				Placeholder("25.00").
				Value(&TempAmount).
				Validate(validAmount),
			huh.NewSelect[string]().
				Title("From").
				Options(opts...).
				Value(&TempAccountID),
		),
	).WithTheme(huh.ThemeCatppuccin())

	form.Init()
	return form
}

// CreateWithdrawForm builds the cash-out form. The instant option
// shows its fee estimate inline so the choice is informed before
// submit.
func CreateWithdrawForm(accounts []ledger.ConnectedAccount, balance decimal.Decimal) *huh.Form {
	TempAmount = ""
	TempAccountID = ""
	TempSpeed = string(ledger.SpeedStandard)

	opts := make([]huh.Option[string], 0, len(accounts))
	for _, a := range accounts {
		opts = append(opts, huh.NewOption(a.AccountName+" ···"+a.LastFour, a.AccountID))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Amount to cash out").
				Description("Available: "+helpers.FormatUSD(balance)).
				Value(&TempAmount).
				Validate(func(s string) error {
					if err := validAmount(s); err != nil {
						return err
					}
					d, _ := decimal.NewFromString(strings.TrimSpace(s))
					if d.GreaterThan(balance) {
						return errors.New("more than your balance")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("To").
				Options(opts...).
				Value(&TempAccountID),
			huh.NewSelect[string]().
				Title("Speed").
				Options(
					huh.NewOption("Standard (1-3 business days, free)", string(ledger.SpeedStandard)),
					huh.NewOption("Instant (1.5% fee, min "+helpers.FormatUSD(payment.EstimateInstantFee(decimal.Zero))+")", string(ledger.SpeedInstant)),
				).
				Value(&TempSpeed),
		),
	).WithTheme(huh.ThemeCatppuccin())

	form.Init()
	return form
}

// CreateConnectForm builds the link-account form. Routing number is
// only checked for bank accounts.
func CreateConnectForm() *huh.Form {
	TempAccountType = "bank_account"
	TempAccountName = ""
	TempAccountNumber = ""
	TempRouting = ""

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Account type").
				Options(
					huh.NewOption("Bank account", "bank_account"),
					huh.NewOption("Debit card", "debit_card"),
				).
				Value(&TempAccountType),
			huh.NewInput().
				Title("Nickname").
				Placeholder("Everyday Checking").
				Value(&TempAccountName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Account or card number").
				Value(&TempAccountNumber).
				Validate(func(s string) error {
					s = strings.TrimSpace(s)
					if len(s) < 8 {
						return errors.New("too short")
					}
					for _, r := range s {
						if r < '0' || r > '9' {
							return errors.New("digits only")
						}
					}
					return nil
				}),
			huh.NewInput().
				Title("Routing number (banks only)").
				Value(&TempRouting).
				Validate(func(s string) error {
					s = strings.TrimSpace(s)
					if TempAccountType != "bank_account" {
						return nil
					}
					if len(s) != 9 {
						return errors.New("routing numbers are 9 digits")
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeCatppuccin())

	form.Init()
	return form
}
