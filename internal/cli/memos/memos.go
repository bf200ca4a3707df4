package memos

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/worthit/internal/cli"
	"github.com/julianstephens/worthit/internal/constants"
	"github.com/julianstephens/worthit/internal/models"
	"github.com/julianstephens/worthit/internal/validation"
)

var (
	promptMemo  = runMemoForm
	confirmFunc = cli.Confirm
)

type MemoAddCmd struct {
	Entry   string `arg:"" help:"Entry ID (or unique prefix)."`
	Outcome string `short:"o" help:"What happened next (did-again|resisted|reflecting)."`
	Feeling string `short:"f" help:"How you feel about it now (fine|meh|bad|awful)."`
	Note    string `short:"n" help:"Short note (max 150 characters)."`
}

func (c *MemoAddCmd) Run(ctx *cli.Context) error {
	entry, err := ctx.FindEntry(c.Entry)
	if err != nil {
		return err
	}

	in := validation.MemoInput{Outcome: c.Outcome, Feeling: c.Feeling, Note: c.Note}
	if c.Outcome == "" && c.Feeling == "" && c.Note == "" {
		if err := promptMemo(entry, &in); err != nil {
			return err
		}
	}

	newMemo, err := in.NewMemo()
	if err != nil {
		return err
	}

	memo, ok, err := ctx.Entries.AddMemo(entry.ID, newMemo)
	if err != nil {
		return fmt.Errorf("failed to add memo: %w", err)
	}
	if !ok {
		return fmt.Errorf("entry not found: %s", c.Entry)
	}

	fmt.Printf("✓ Memo added to %q (ID: %s)\n", entry.Action, cli.ShortID(memo.ID))
	return nil
}

func runMemoForm(entry models.Entry, in *validation.MemoInput) error {
	in.Outcome = string(models.OutcomeReflecting)
	in.Feeling = string(models.RatingMeh)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(fmt.Sprintf("Follow-up on %q", entry.Action)).
				Options(
					huh.NewOption("Did it again", string(models.OutcomeDidAgain)),
					huh.NewOption("Resisted", string(models.OutcomeResisted)),
					huh.NewOption("Just reflecting", string(models.OutcomeReflecting)),
				).
				Value(&in.Outcome),
			huh.NewSelect[string]().
				Title("How do you feel about it now?").
				Options(cli.EnumOptions(models.PhysicalRatings)...).
				Value(&in.Feeling),
			huh.NewText().
				Title("Note").
				CharLimit(constants.MemoNoteMaxLen).
				Value(&in.Note),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("interactive form error: %w", err)
	}
	return nil
}

type MemoEditCmd struct {
	Entry   string `arg:"" help:"Entry ID (or unique prefix)."`
	Memo    string `arg:"" help:"Memo ID (or unique prefix)."`
	Outcome string `short:"o" help:"New outcome (did-again|resisted|reflecting)."`
	Feeling string `short:"f" help:"New feeling (fine|meh|bad|awful)."`
	Note    string `short:"n" help:"New note (max 150 characters)."`
}

func (c *MemoEditCmd) Run(ctx *cli.Context) error {
	entry, memo, err := resolve(ctx, c.Entry, c.Memo)
	if err != nil {
		return err
	}

	if c.Outcome == "" && c.Feeling == "" && c.Note == "" {
		return fmt.Errorf("nothing to change; pass --outcome, --feeling or --note")
	}
	in := validation.MemoInput{Outcome: c.Outcome, Feeling: c.Feeling, Note: c.Note}
	if err := validation.Struct(in); err != nil {
		return err
	}

	var patch models.MemoPatch
	if c.Outcome != "" {
		o := models.MemoOutcome(c.Outcome)
		patch.Outcome = &o
	}
	if c.Feeling != "" {
		f := models.PhysicalRating(c.Feeling)
		patch.Feeling = &f
	}
	if c.Note != "" {
		note := validation.SanitizeText(c.Note)
		patch.Note = &note
	}

	if err := ctx.Entries.UpdateMemo(entry.ID, memo.ID, patch); err != nil {
		return fmt.Errorf("failed to update memo: %w", err)
	}
	fmt.Printf("✓ Updated memo %s\n", cli.ShortID(memo.ID))
	return nil
}

type MemoDeleteCmd struct {
	Entry string `arg:"" help:"Entry ID (or unique prefix)."`
	Memo  string `arg:"" help:"Memo ID (or unique prefix)."`
	Yes   bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *MemoDeleteCmd) Run(ctx *cli.Context) error {
	entry, memo, err := resolve(ctx, c.Entry, c.Memo)
	if err != nil {
		return err
	}

	if !c.Yes {
		ok, err := confirmFunc("Delete this memo?", cli.FormatMemoLine(memo))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Delete cancelled.")
			return nil
		}
	}

	if err := ctx.Entries.DeleteMemo(entry.ID, memo.ID); err != nil {
		return fmt.Errorf("failed to delete memo: %w", err)
	}
	fmt.Printf("✓ Deleted memo %s\n", cli.ShortID(memo.ID))
	return nil
}

type MemoStarCmd struct {
	Entry string `arg:"" help:"Entry ID (or unique prefix)."`
	Memo  string `arg:"" help:"Memo ID (or unique prefix)."`
}

func (c *MemoStarCmd) Run(ctx *cli.Context) error {
	entry, memo, err := resolve(ctx, c.Entry, c.Memo)
	if err != nil {
		return err
	}
	if err := ctx.Entries.ToggleMemoStar(entry.ID, memo.ID); err != nil {
		return fmt.Errorf("failed to update memo: %w", err)
	}
	if memo.IsStarred {
		fmt.Printf("✓ Unstarred memo %s\n", cli.ShortID(memo.ID))
	} else {
		fmt.Printf("✓ Starred memo %s\n", cli.ShortID(memo.ID))
	}
	return nil
}

type MemoHideCmd struct {
	Entry string `arg:"" help:"Entry ID (or unique prefix)."`
	Memo  string `arg:"" help:"Memo ID (or unique prefix)."`
}

func (c *MemoHideCmd) Run(ctx *cli.Context) error {
	entry, memo, err := resolve(ctx, c.Entry, c.Memo)
	if err != nil {
		return err
	}
	if err := ctx.Entries.ToggleMemoHidden(entry.ID, memo.ID); err != nil {
		return fmt.Errorf("failed to update memo: %w", err)
	}
	if memo.IsHidden {
		fmt.Printf("✓ Memo %s is visible again\n", cli.ShortID(memo.ID))
	} else {
		fmt.Printf("✓ Hid memo %s\n", cli.ShortID(memo.ID))
	}
	return nil
}

type MemoListCmd struct {
	Entry  string `arg:"" help:"Entry ID (or unique prefix)."`
	Hidden bool   `help:"Include hidden memos."`
}

func (c *MemoListCmd) Run(ctx *cli.Context) error {
	entry, err := ctx.FindEntry(c.Entry)
	if err != nil {
		return err
	}

	memos := cli.VisibleMemosFor(entry, c.Hidden)
	if len(memos) == 0 {
		fmt.Printf("No memos on %q.\n", entry.Action)
		return nil
	}
	fmt.Printf("Memos on %q:\n", entry.Action)
	for _, m := range memos {
		fmt.Printf("  %s\n", cli.FormatMemoLine(m))
	}
	return nil
}

func resolve(ctx *cli.Context, entryRef, memoRef string) (models.Entry, models.Memo, error) {
	entry, err := ctx.FindEntry(entryRef)
	if err != nil {
		return models.Entry{}, models.Memo{}, err
	}
	memo, err := cli.FindMemo(entry, memoRef)
	if err != nil {
		return models.Entry{}, models.Memo{}, err
	}
	return entry, memo, nil
}
