package card

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/shopspring/decimal"
)

// Form field values, read by the update loop once the form completes.
var (
	TempAmount   string
	TempMerchant string
	TempNote     string
)

// CreatePurchaseForm builds the simulated card purchase form.
func CreatePurchaseForm() *huh.Form {
	TempAmount = ""
	TempMerchant = ""
	TempNote = ""

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Merchant").
				Placeholder("Blue Bottle Coffee").
				Value(&TempMerchant).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Amount").
				Placeholder("4.75").
				Value(&TempAmount).
				Validate(func(s string) error {
					d, err := decimal.NewFromString(strings.TrimSpace(s))
					if err != nil {
						return errors.New("enter a dollar amount")
					}
					if !d.IsPositive() {
						return errors.New("must be more than zero")
					}
					return nil
				}),
			huh.NewInput().
				Title("Note (optional)").
				Value(&TempNote),
		),
	).WithTheme(huh.ThemeCatppuccin())

	form.Init()
	return form
}
