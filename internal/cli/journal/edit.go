package journal

import (
	"fmt"

	"github.com/julianstephens/worthit/internal/cli"
	"github.com/julianstephens/worthit/internal/models"
	"github.com/julianstephens/worthit/internal/validation"
)

// confirmDelete asks before an entry is removed; replaced in tests.
var confirmDelete = cli.Confirm

type EditCmd struct {
	ID       string `arg:"" help:"Entry ID (or unique prefix)."`
	Action   string `short:"a" help:"New action text."`
	Type     string `short:"T" help:"New entry type (did-it|resisted|reflection)."`
	Category string `short:"c" help:"New category (food|sleep|habit|social|other)."`
	Context  string `short:"x" help:"New comma-separated times of day."`
	Rating   string `short:"r" help:"New physical rating (fine|meh|bad|awful)."`
	Tags     string `short:"t" help:"New comma-separated emotional tags."`
	WorthIt  string `short:"w" name:"worth-it" help:"New worth-it answer (yes|meh|no)."`
	Note     string `short:"n" help:"New note."`
}

func (c *EditCmd) Validate() error {
	checks := []struct{ tag, value string }{
		{"entry_type", c.Type},
		{"category", c.Category},
		{"rating", c.Rating},
		{"worth_it", c.WorthIt},
	}
	for _, chk := range checks {
		if chk.value == "" {
			continue
		}
		if err := validation.Enum(chk.tag, chk.value); err != nil {
			return err
		}
	}
	for _, ctx := range validation.SplitList(c.Context) {
		if err := validation.Enum("time_of_day", ctx); err != nil {
			return err
		}
	}
	return nil
}

// patch builds the partial update; empty flags are left untouched.
func (c *EditCmd) patch() (models.EntryPatch, bool) {
	var p models.EntryPatch
	changed := false

	if action := validation.SanitizeText(c.Action); action != "" {
		p.Action = &action
		changed = true
	}
	if c.Type != "" {
		t := models.EntryType(c.Type)
		p.EntryType = &t
		changed = true
	}
	if c.Category != "" {
		cat := models.Category(c.Category)
		p.Category = &cat
		changed = true
	}
	if c.Context != "" {
		var ctx []models.TimeOfDay
		for _, v := range validation.SplitList(c.Context) {
			ctx = append(ctx, models.TimeOfDay(v))
		}
		if ctx == nil {
			ctx = []models.TimeOfDay{}
		}
		p.Context = &ctx
		changed = true
	}
	if c.Rating != "" {
		r := models.PhysicalRating(c.Rating)
		p.PhysicalRating = &r
		changed = true
	}
	if c.Tags != "" {
		tags := validation.SplitList(c.Tags)
		p.EmotionalTags = &tags
		changed = true
	}
	if c.WorthIt != "" {
		w := models.WorthIt(c.WorthIt)
		p.WorthIt = &w
		changed = true
	}
	if c.Note != "" {
		note := validation.SanitizeText(c.Note)
		p.Note = &note
		changed = true
	}
	return p, changed
}

func (c *EditCmd) Run(ctx *cli.Context) error {
	entry, err := ctx.FindEntry(c.ID)
	if err != nil {
		return err
	}

	patch, changed := c.patch()
	if !changed {
		return fmt.Errorf("nothing to change; pass at least one field flag")
	}

	if err := ctx.Entries.Update(entry.ID, patch); err != nil {
		return fmt.Errorf("failed to update entry: %w", err)
	}

	fmt.Printf("✓ Updated entry %s\n", cli.ShortID(entry.ID))
	return nil
}

type DeleteCmd struct {
	ID  string `arg:"" help:"Entry ID (or unique prefix)."`
	Yes bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *DeleteCmd) Run(ctx *cli.Context) error {
	entry, err := ctx.FindEntry(c.ID)
	if err != nil {
		return err
	}

	if !c.Yes {
		desc := fmt.Sprintf("%s, logged %s", entry.Action, entry.CreatedAt.Format("2006-01-02"))
		if n := len(entry.Memos); n > 0 {
			desc += fmt.Sprintf(", with %d memo(s)", n)
		}
		ok, err := confirmDelete("Delete this entry?", desc)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Delete cancelled.")
			return nil
		}
	}

	if err := ctx.Entries.Remove(entry.ID); err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}

	fmt.Printf("✓ Deleted entry: %s\n", entry.Action)
	return nil
}
