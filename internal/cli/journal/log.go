package journal

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/worthit/internal/cli"
	"github.com/julianstephens/worthit/internal/constants"
	"github.com/julianstephens/worthit/internal/models"
	"github.com/julianstephens/worthit/internal/validation"
)

// promptEntry fills the command interactively; replaced in tests.
var promptEntry = (*LogCmd).runForm

type LogCmd struct {
	Action   string `short:"a" help:"What you did, or resisted."`
	Type     string `short:"T" help:"Entry type (did-it|resisted|reflection)." default:"did-it"`
	Category string `short:"c" help:"Category (food|sleep|habit|social|other)." default:"other"`
	Context  string `short:"x" help:"Comma-separated times of day (morning|afternoon|evening|late-night)."`
	Rating   string `short:"r" help:"Physical rating (fine|meh|bad|awful)." default:"meh"`
	Tags     string `short:"t" help:"Comma-separated emotional tags."`
	WorthIt  string `short:"w" name:"worth-it" help:"Was it worth it (yes|meh|no)." default:"meh"`
	Note     string `short:"n" help:"Optional note."`
	Behavior string `short:"b" help:"Behavior id or name to link the entry to."`
}

func (c *LogCmd) Run(ctx *cli.Context) error {
	if strings.TrimSpace(c.Action) == "" {
		if err := promptEntry(c); err != nil {
			return err
		}
	}

	in := validation.EntryInput{
		Action:         c.Action,
		Category:       c.Category,
		Context:        validation.SplitList(c.Context),
		PhysicalRating: c.Rating,
		EmotionalTags:  validation.SplitList(c.Tags),
		WorthIt:        c.WorthIt,
		EntryType:      c.Type,
		Note:           c.Note,
	}
	newEntry, err := in.NewEntry()
	if err != nil {
		return err
	}

	if c.Behavior != "" {
		b, err := ctx.FindBehavior(c.Behavior)
		if err != nil {
			return err
		}
		newEntry.BehaviorID = b.ID
	}

	entry, err := ctx.Entries.Add(newEntry)
	if err != nil {
		return fmt.Errorf("failed to log entry: %w", err)
	}

	fmt.Printf("✓ Logged: %s (ID: %s)\n", entry.Action, cli.ShortID(entry.ID))

	if entry.IsLinked() {
		return nil
	}
	similar := ctx.Behaviors.FindSimilar(entry.Action, constants.DefaultSimilarityThreshold)
	if len(similar) == 0 {
		return nil
	}
	fmt.Println("\nThis looks like a behavior you track:")
	for _, b := range similar {
		fmt.Printf("  %s  %s\n", cli.ShortID(b.ID), b.Name)
	}
	fmt.Printf("Link it with: worthit behavior link %s <behavior>\n", cli.ShortID(entry.ID))
	return nil
}

func (c *LogCmd) runForm() error {
	var context, tags []string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("What happened?").
				Placeholder(models.QuickPicks[0]).
				Suggestions(models.QuickPicks).
				Value(&c.Action).
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
				Value(&c.Type),
			huh.NewSelect[string]().
				Title("Category").
				Options(cli.EnumOptions(models.Categories)...).
				Value(&c.Category),
			huh.NewMultiSelect[string]().
				Title("When?").
				Options(cli.EnumOptions(models.TimesOfDay)...).
				Value(&context),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("How do you feel physically?").
				Options(cli.EnumOptions(models.PhysicalRatings)...).
				Value(&c.Rating),
			huh.NewMultiSelect[string]().
				Title("How do you feel emotionally?").
				Options(huh.NewOptions(models.EmotionTags...)...).
				Value(&tags),
			huh.NewSelect[string]().
				Title("Was it worth it?").
				Options(cli.EnumOptions(models.WorthItOptions)...).
				Value(&c.WorthIt),
			huh.NewText().
				Title("Note").
				Value(&c.Note),
		),
	)

	if err := form.Run(); err != nil {
		return fmt.Errorf("interactive form error: %w", err)
	}

	c.Context = strings.Join(context, ",")
	c.Tags = strings.Join(tags, ",")
	return nil
}
