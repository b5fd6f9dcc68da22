package cli

import (
	"errors"

	"github.com/charmbracelet/huh"
)

// PromptConfirm asks a yes/no question on the terminal. Aborting the prompt
// counts as no.
func PromptConfirm(title, description string) (bool, error) {
	var confirmed bool
	err := huh.NewConfirm().
		Title(title).
		Description(description).
		Affirmative("Yes").
		Negative("No").
		Value(&confirmed).
		Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	return confirmed, err
}
