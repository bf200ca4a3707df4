package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/worthit/internal/models"
)

// EnumOptions turns an enumeration into select options keyed by its value.
func EnumOptions[T ~string](values []T) []huh.Option[string] {
	opts := make([]huh.Option[string], len(values))
	for i, v := range values {
		opts[i] = huh.NewOption(string(v), string(v))
	}
	return opts
}

// Confirm asks a yes/no question and defaults to no.
func Confirm(title, description string) (bool, error) {
	var ok bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Yes").
				Negative("No").
				Value(&ok),
		),
	).Run()
	if err != nil {
		return false, fmt.Errorf("interactive form error: %w", err)
	}
	return ok, nil
}

// FindMemo resolves a memo on an entry by id or unique id prefix.
func FindMemo(e models.Entry, ref string) (models.Memo, error) {
	var found []models.Memo
	for _, m := range e.Memos {
		if m.ID == ref {
			return m, nil
		}
		if ref != "" && strings.HasPrefix(m.ID, ref) {
			found = append(found, m)
		}
	}
	switch len(found) {
	case 0:
		return models.Memo{}, fmt.Errorf("memo not found: %s", ref)
	case 1:
		return found[0], nil
	default:
		return models.Memo{}, fmt.Errorf("memo id %q is ambiguous (%d matches)", ref, len(found))
	}
}
