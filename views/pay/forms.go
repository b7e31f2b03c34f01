package pay

import (
	"github.com/charmbracelet/huh"
)

// TempNote holds the note form value until the form completes.
var TempNote string

// CreateNoteForm builds the "what's it for" prompt.
func CreateNoteForm(current string) *huh.Form {
	TempNote = current

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("What's it for?").
				Placeholder("Dinner, rent, ...").
				CharLimit(80).
				Value(&TempNote),
		),
	).WithTheme(huh.ThemeCatppuccin())

	form.Init()
	return form
}
