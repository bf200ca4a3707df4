package journal

import (
	"fmt"
	"strings"

	"github.com/julianstephens/worthit/internal/cli"
	"github.com/julianstephens/worthit/internal/models"
	"github.com/julianstephens/worthit/internal/validation"
)

type ListCmd struct {
	Limit    int    `short:"l" help:"Show at most N entries (0 for all)." default:"0"`
	Category string `short:"c" help:"Only show entries in this category."`
}

func (c *ListCmd) Validate() error {
	if c.Limit < 0 {
		return fmt.Errorf("limit must not be negative")
	}
	if c.Category != "" {
		return validation.Enum("category", c.Category)
	}
	return nil
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	var list []models.Entry
	switch {
	case c.Category != "":
		list = ctx.Entries.ByCategory(models.Category(c.Category))
		if c.Limit > 0 && len(list) > c.Limit {
			list = list[:c.Limit]
		}
	case c.Limit > 0:
		list = ctx.Entries.Recent(c.Limit)
	default:
		list = ctx.Entries.All()
	}

	if len(list) == 0 {
		fmt.Println("No entries found. Log one with 'worthit log'.")
		return nil
	}

	for _, e := range list {
		fmt.Println(cli.FormatEntryLine(e))
	}
	return nil
}

type ShowCmd struct {
	ID     string `arg:"" help:"Entry ID (or unique prefix)."`
	Hidden bool   `help:"Include hidden memos."`
}

func (c *ShowCmd) Run(ctx *cli.Context) error {
	entry, err := ctx.FindEntry(c.ID)
	if err != nil {
		return err
	}
	cli.PrintEntry(entry, c.Hidden)
	return nil
}

type SearchCmd struct {
	Query string `arg:"" optional:"" help:"Text to look for in actions, notes and tags."`
}

func (c *SearchCmd) Run(ctx *cli.Context) error {
	// An empty query matches everything in the store, which is never what a
	// search from the command line means.
	if strings.TrimSpace(c.Query) == "" {
		return nil
	}

	results := ctx.Entries.Search(c.Query)
	if len(results) == 0 {
		fmt.Printf("No entries match %q.\n", c.Query)
		return nil
	}
	for _, e := range results {
		fmt.Println(cli.FormatEntryLine(e))
	}
	return nil
}
