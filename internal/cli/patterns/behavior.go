package patterns

import (
	"fmt"

	"github.com/julianstephens/worthit/internal/cli"
	"github.com/julianstephens/worthit/internal/constants"
	"github.com/julianstephens/worthit/internal/models"
	"github.com/julianstephens/worthit/internal/validation"
)

var confirmFunc = cli.Confirm

type BehaviorCreateCmd struct {
	Name     string `arg:"" help:"Behavior name."`
	Category string `short:"c" help:"Category (food|sleep|habit|social|other)." default:"other"`
	Triggers string `short:"t" help:"Comma-separated triggers."`
}

func (c *BehaviorCreateCmd) Run(ctx *cli.Context) error {
	in := validation.BehaviorInput{Name: validation.SanitizeText(c.Name), Category: c.Category}
	if err := validation.Struct(in); err != nil {
		return err
	}
	if existing, ok := ctx.Behaviors.GetByName(in.Name); ok {
		return fmt.Errorf("behavior %q already exists (ID: %s)", existing.Name, cli.ShortID(existing.ID))
	}

	b, err := ctx.Behaviors.Create(in.Name, models.Category(in.Category), validation.SplitList(c.Triggers)...)
	if err != nil {
		return fmt.Errorf("failed to create behavior: %w", err)
	}
	fmt.Printf("✓ Created behavior: %s (ID: %s)\n", b.Name, cli.ShortID(b.ID))
	return nil
}

type BehaviorEditCmd struct {
	Behavior string `arg:"" help:"Behavior ID, prefix or name."`
	Name     string `help:"New name."`
	Category string `short:"c" help:"New category."`
	Triggers string `short:"t" help:"New comma-separated triggers (replaces the old list)."`
}

func (c *BehaviorEditCmd) Run(ctx *cli.Context) error {
	b, err := ctx.FindBehavior(c.Behavior)
	if err != nil {
		return err
	}

	var patch models.BehaviorPatch
	changed := false
	if name := validation.SanitizeText(c.Name); name != "" {
		patch.Name = &name
		changed = true
	}
	if c.Category != "" {
		if err := validation.Enum("category", c.Category); err != nil {
			return err
		}
		cat := models.Category(c.Category)
		patch.Category = &cat
		changed = true
	}
	if c.Triggers != "" {
		triggers := validation.SplitList(c.Triggers)
		patch.Triggers = &triggers
		changed = true
	}
	if !changed {
		return fmt.Errorf("nothing to change; pass --name, --category or --triggers")
	}

	if err := ctx.Behaviors.Update(b.ID, patch); err != nil {
		return fmt.Errorf("failed to update behavior: %w", err)
	}
	fmt.Printf("✓ Updated behavior %s\n", cli.ShortID(b.ID))
	return nil
}

type BehaviorDeleteCmd struct {
	Behavior string `arg:"" help:"Behavior ID, prefix or name."`
	Yes      bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *BehaviorDeleteCmd) Run(ctx *cli.Context) error {
	b, err := ctx.FindBehavior(c.Behavior)
	if err != nil {
		return err
	}
	linked := len(ctx.Behaviors.EntriesFor(b.ID))

	if !c.Yes {
		desc := "No entries are linked to it."
		if linked > 0 {
			desc = fmt.Sprintf("%d linked entries keep their link and show up in 'worthit doctor'.", linked)
		}
		ok, err := confirmFunc(fmt.Sprintf("Delete behavior %q?", b.Name), desc)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Delete cancelled.")
			return nil
		}
	}

	if err := ctx.Behaviors.Remove(b.ID); err != nil {
		return fmt.Errorf("failed to delete behavior: %w", err)
	}
	fmt.Printf("✓ Deleted behavior: %s\n", b.Name)
	if linked > 0 {
		fmt.Printf("  %d entries still reference it\n", linked)
	}
	return nil
}

type BehaviorListCmd struct {
	Active bool `short:"a" help:"Only behaviors with entries, most recently active first."`
}

func (c *BehaviorListCmd) Run(ctx *cli.Context) error {
	var list []models.BehaviorWithStats
	if c.Active {
		list = ctx.Behaviors.RecentlyActive()
	} else {
		list = ctx.Behaviors.WithStats()
	}

	if len(list) == 0 {
		fmt.Println("No behaviors found. Create one with 'worthit behavior create' or try 'worthit behavior autogroup'.")
		return nil
	}

	for _, bs := range list {
		fmt.Printf("%s  %-24s [%s]  %d entries  %3d%%  %s\n",
			cli.ShortID(bs.Behavior.ID),
			bs.Behavior.Name,
			bs.Behavior.Category,
			bs.Stats.TotalEntries,
			bs.Stats.SuccessRate,
			cli.FormatTrend(bs.Stats.Trend),
		)
	}
	return nil
}

type BehaviorShowCmd struct {
	Behavior string `arg:"" help:"Behavior ID, prefix or name."`
	Limit    int    `short:"l" help:"Show at most N entries (0 for all)." default:"10"`
}

func (c *BehaviorShowCmd) Run(ctx *cli.Context) error {
	b, err := ctx.FindBehavior(c.Behavior)
	if err != nil {
		return err
	}

	fmt.Printf("%s\n", b.Name)
	fmt.Printf("  ID:           %s\n", b.ID)
	fmt.Printf("  Category:     %s\n", b.Category)
	if len(b.Triggers) > 0 {
		fmt.Printf("  Triggers:     %v\n", b.Triggers)
	}
	fmt.Printf("  Created:      %s\n", b.CreatedAt.Format(constants.DateFormat))
	fmt.Print(cli.FormatStats(ctx.Behaviors.Stats(b.ID)))

	list := ctx.Behaviors.EntriesFor(b.ID)
	if len(list) == 0 {
		return nil
	}
	if c.Limit > 0 && len(list) > c.Limit {
		list = list[:c.Limit]
	}
	fmt.Println("\nThread:")
	for _, e := range list {
		fmt.Printf("  %s\n", cli.FormatEntryLine(e))
	}
	return nil
}

type BehaviorLinkCmd struct {
	Entry    string `arg:"" help:"Entry ID (or unique prefix)."`
	Behavior string `arg:"" help:"Behavior ID, prefix or name."`
}

func (c *BehaviorLinkCmd) Run(ctx *cli.Context) error {
	entry, err := ctx.FindEntry(c.Entry)
	if err != nil {
		return err
	}
	b, err := ctx.FindBehavior(c.Behavior)
	if err != nil {
		return err
	}

	if err := ctx.Behaviors.Link(entry.ID, b.ID); err != nil {
		return fmt.Errorf("failed to link entry: %w", err)
	}
	fmt.Printf("✓ Linked %q to %s\n", entry.Action, b.Name)
	return nil
}

type BehaviorUnlinkCmd struct {
	Entry string `arg:"" help:"Entry ID (or unique prefix)."`
}

func (c *BehaviorUnlinkCmd) Run(ctx *cli.Context) error {
	entry, err := ctx.FindEntry(c.Entry)
	if err != nil {
		return err
	}
	if !entry.IsLinked() {
		fmt.Printf("%q is not linked to a behavior.\n", entry.Action)
		return nil
	}

	if err := ctx.Behaviors.Unlink(entry.ID); err != nil {
		return fmt.Errorf("failed to unlink entry: %w", err)
	}
	fmt.Printf("✓ Unlinked %q\n", entry.Action)
	return nil
}

type BehaviorSimilarCmd struct {
	Text      string  `arg:"" help:"Text to compare behavior names against."`
	Threshold float64 `help:"Minimum similarity (0-1)." default:"0.5"`
}

func (c *BehaviorSimilarCmd) Validate() error {
	if c.Threshold < 0 || c.Threshold > 1 {
		return fmt.Errorf("threshold must be between 0 and 1")
	}
	return nil
}

func (c *BehaviorSimilarCmd) Run(ctx *cli.Context) error {
	list := ctx.Behaviors.FindSimilar(c.Text, c.Threshold)
	if len(list) == 0 {
		fmt.Printf("No behaviors look like %q.\n", c.Text)
		return nil
	}
	for _, b := range list {
		fmt.Printf("%s  %s\n", cli.ShortID(b.ID), b.Name)
	}
	return nil
}
