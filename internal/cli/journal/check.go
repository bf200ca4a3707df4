package journal

import (
	"fmt"

	"github.com/julianstephens/worthit/internal/behaviors"
	"github.com/julianstephens/worthit/internal/cli"
	"github.com/julianstephens/worthit/internal/constants"
	"github.com/julianstephens/worthit/internal/models"
)

// CheckCmd is the decision moment: before doing something again, see how
// it went the last times.
type CheckCmd struct {
	Action    string  `arg:"" help:"What you are about to do."`
	Threshold float64 `help:"Minimum similarity (0-1) for a past entry to count." default:"0.5"`
	Limit     int     `short:"l" help:"Show at most N past entries." default:"5"`
}

func (c *CheckCmd) Validate() error {
	if c.Threshold < 0 || c.Threshold > 1 {
		return fmt.Errorf("threshold must be between 0 and 1")
	}
	return nil
}

// Verdict summarises past outcomes for a set of similar entries.
type Verdict struct {
	Total    int
	WorthIt  map[models.WorthIt]int
	Resisted int
}

func summarize(list []models.Entry) Verdict {
	v := Verdict{Total: len(list), WorthIt: make(map[models.WorthIt]int)}
	for _, e := range list {
		if e.EntryType == models.EntryResisted {
			v.Resisted++
			continue
		}
		v.WorthIt[e.WorthIt]++
	}
	return v
}

func (c *CheckCmd) Run(ctx *cli.Context) error {
	past := ctx.Entries.Similar(c.Action, c.Threshold)
	if len(past) == 0 {
		fmt.Printf("No past entries look like %q.\n", c.Action)
		return nil
	}

	v := summarize(past)
	fmt.Printf("You've logged something like this %d time(s).\n", v.Total)
	if v.Resisted > 0 {
		stats := behaviors.ComputeStats(past)
		fmt.Printf("  Resisted:       %d (%d%% success rate)\n", v.Resisted, stats.SuccessRate)
	}
	for _, w := range models.WorthItOptions {
		if n := v.WorthIt[w]; n > 0 {
			fmt.Printf("  Worth it (%s): %d\n", w, n)
		}
	}

	shown := past
	if c.Limit > 0 && len(shown) > c.Limit {
		shown = shown[:c.Limit]
	}
	fmt.Println("\nMost recent:")
	for _, e := range shown {
		fmt.Printf("  %s\n", cli.FormatEntryLine(e))
		if e.Note != "" {
			fmt.Printf("      %q\n", e.Note)
		}
	}

	for _, b := range ctx.Behaviors.FindSimilar(c.Action, constants.DefaultSimilarityThreshold) {
		stats := ctx.Behaviors.Stats(b.ID)
		fmt.Printf("\nBehavior: %s\n", b.Name)
		fmt.Print(cli.FormatStats(stats))
		if msg := nudge(stats); msg != "" {
			fmt.Printf("  %s\n", msg)
		}
	}
	return nil
}

func nudge(s models.BehaviorStats) string {
	if s.TotalEntries < constants.TrendMinEntries {
		return ""
	}
	switch s.Trend {
	case models.TrendImproving:
		return "You've been resisting this more lately. Keep it going."
	case models.TrendDeclining:
		return "This has been slipping lately."
	}
	return ""
}
