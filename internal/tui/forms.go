package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/worthit/internal/cli"
	"github.com/julianstephens/worthit/internal/constants"
	"github.com/julianstephens/worthit/internal/logger"
	"github.com/julianstephens/worthit/internal/models"
	"github.com/julianstephens/worthit/internal/validation"
)

func newEntryForm(fm *EntryFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("What happened?").
				Suggestions(models.QuickPicks).
				Value(&fm.Action).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("action is required")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Did you do it?").
				Options(
					huh.NewOption("I did it", string(models.EntryDidIt)),
					huh.NewOption("I resisted", string(models.EntryResisted)),
					huh.NewOption("Just reflecting", string(models.EntryReflection)),
				).
				Value(&fm.Type),
			huh.NewSelect[string]().
				Title("Category").
				Options(cli.EnumOptions(models.Categories)...).
				Value(&fm.Category),
			huh.NewMultiSelect[string]().
				Title("When?").
				Options(cli.EnumOptions(models.TimesOfDay)...).
				Value(&fm.Context),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("How do you feel physically?").
				Options(cli.EnumOptions(models.PhysicalRatings)...).
				Value(&fm.Rating),
			huh.NewMultiSelect[string]().
				Title("How do you feel emotionally?").
				Options(huh.NewOptions(models.EmotionTags...)...).
				Value(&fm.Tags),
			huh.NewSelect[string]().
				Title("Was it worth it?").
				Options(cli.EnumOptions(models.WorthItOptions)...).
				Value(&fm.WorthIt),
			huh.NewText().
				Title("Note").
				Value(&fm.Note),
		),
	)
}

func newMemoForm(fm *MemoFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("What happened next?").
				Options(cli.EnumOptions(models.MemoOutcomes)...).
				Value(&fm.Outcome),
			huh.NewSelect[string]().
				Title("How do you feel now?").
				Options(cli.EnumOptions(models.PhysicalRatings)...).
				Value(&fm.Feeling),
			huh.NewText().
				Title("Note").
				CharLimit(constants.MemoNoteMaxLen).
				Value(&fm.Note),
		),
	)
}

func (m *Model) startEntryForm() {
	m.entryForm = &EntryFormModel{
		Type:     string(models.EntryDidIt),
		Category: string(models.CategoryOther),
		Rating:   string(models.RatingMeh),
		WorthIt:  string(models.WorthItMeh),
	}
	m.form = newEntryForm(m.entryForm)
	m.formError = ""
	m.previousState = m.state
	m.state = constants.StateAddEntry
}

func (m *Model) startMemoForm(entryID string) {
	m.memoForm = &MemoFormModel{
		EntryID: entryID,
		Outcome: string(models.OutcomeReflecting),
		Feeling: string(models.RatingMeh),
	}
	m.form = newMemoForm(m.memoForm)
	m.formError = ""
	m.previousState = m.state
	m.state = constants.StateAddMemo
}

// saveEntry validates and stores the entry form. It reports whether the form
// can be closed.
func (m *Model) saveEntry() bool {
	in := validation.EntryInput{
		Action:         m.entryForm.Action,
		Category:       m.entryForm.Category,
		Context:        m.entryForm.Context,
		PhysicalRating: m.entryForm.Rating,
		EmotionalTags:  m.entryForm.Tags,
		WorthIt:        m.entryForm.WorthIt,
		EntryType:      m.entryForm.Type,
		Note:           m.entryForm.Note,
	}
	newEntry, err := in.NewEntry()
	if err != nil {
		m.formError = err.Error()
		return false
	}

	entry, err := m.entries.Add(newEntry)
	if err != nil {
		logger.Error("Failed to log entry from TUI", "error", err)
		m.formError = fmt.Sprintf("Error saving entry: %v", err)
		return false
	}

	m.status = fmt.Sprintf("✓ Logged: %s", entry.Action)
	if similar := m.behaviors.FindSimilar(entry.Action, constants.DefaultSimilarityThreshold); len(similar) > 0 {
		m.status += fmt.Sprintf(" (looks like %q, press 'g' under Behaviors to group)", similar[0].Name)
	}
	return true
}

func (m *Model) saveMemo() bool {
	in := validation.MemoInput{
		Outcome: m.memoForm.Outcome,
		Feeling: m.memoForm.Feeling,
		Note:    m.memoForm.Note,
	}
	newMemo, err := in.NewMemo()
	if err != nil {
		m.formError = err.Error()
		return false
	}

	if _, ok, err := m.entries.AddMemo(m.memoForm.EntryID, newMemo); err != nil {
		logger.Error("Failed to add memo from TUI", "error", err)
		m.formError = fmt.Sprintf("Error saving memo: %v", err)
		return false
	} else if !ok {
		m.formError = "Entry no longer exists"
		return false
	}

	m.status = "✓ Memo added"
	return true
}
