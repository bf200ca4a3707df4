package patterns

import (
	"fmt"

	"github.com/julianstephens/worthit/internal/cli"
	"github.com/julianstephens/worthit/internal/models"
	"github.com/julianstephens/worthit/internal/validation"
)

// AutogroupCmd previews groups of unlinked entries; --commit turns them into
// behaviors.
type AutogroupCmd struct {
	Commit   bool   `help:"Create behaviors and link entries instead of only previewing."`
	Category string `short:"c" help:"Category for new behaviors whose entries have none." default:"other"`
	Singles  bool   `help:"Include groups with a single entry."`
}

func (c *AutogroupCmd) Validate() error {
	return validation.Enum("category", c.Category)
}

func (c *AutogroupCmd) Run(ctx *cli.Context) error {
	groups := ctx.Behaviors.AutoGroup()
	if !c.Singles {
		groups = ctx.Behaviors.Worthwhile(groups)
	}

	if len(groups) == 0 {
		fmt.Println("No groups found among unlinked entries.")
		return nil
	}

	for _, g := range groups {
		label := "new"
		if _, ok := ctx.Behaviors.GetByName(g.Key); ok {
			label = "existing"
		}
		fmt.Printf("%s (%s, %d entries)\n", g.Key, label, len(g.Entries))
		for _, e := range g.Entries {
			fmt.Printf("  %s\n", cli.FormatEntryLine(e))
		}
	}

	if !c.Commit {
		fmt.Println("\nRun with --commit to create these behaviors.")
		return nil
	}

	n, err := ctx.Behaviors.CommitGroups(groups, models.Category(c.Category))
	if err != nil {
		return fmt.Errorf("failed to commit groups (%d entries linked): %w", n, err)
	}
	fmt.Printf("\n✓ Linked %d entries across %d behaviors\n", n, len(groups))
	return nil
}
