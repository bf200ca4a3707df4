package system

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/julianstephens/worthit/internal/behaviors"
	"github.com/julianstephens/worthit/internal/cli"
	"github.com/julianstephens/worthit/internal/constants"
	"github.com/julianstephens/worthit/internal/entries"
	"github.com/julianstephens/worthit/internal/export"
	"github.com/julianstephens/worthit/internal/models"
)

var (
	stdout       io.Writer = os.Stdout
	confirmFunc            = cli.Confirm
)

type ExportCmd struct {
	Format string `short:"f" help:"Output format (json|yaml)." default:"json"`
	Output string `short:"o" help:"Write to this file instead of stdout."`
}

func (c *ExportCmd) Validate() error {
	_, err := export.ParseFormat(c.Format)
	return err
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	format, err := export.ParseFormat(c.Format)
	if err != nil {
		return err
	}
	snap := export.NewSnapshot(ctx.Entries.All(), ctx.Behaviors.WithStats(), time.Now())

	if c.Output == "" {
		return export.Write(stdout, format, snap)
	}

	f, err := os.Create(c.Output)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	if err := export.Write(f, format, snap); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}

	fmt.Printf("✓ Exported %d entries and %d behaviors to %s\n", len(snap.Entries), len(snap.Behaviors), c.Output)
	return nil
}

// ImportCmd replaces the journal with the contents of an export file, or with
// the raw entries and behaviors arrays saved by earlier versions.
type ImportCmd struct {
	File      string `arg:"" help:"Export file, or a bare entries array, to read." type:"existingfile"`
	Format    string `short:"f" help:"Input format (json|yaml); defaults to the file extension."`
	Behaviors string `help:"Bare behaviors array to import alongside a bare entries array." type:"existingfile"`
	Yes       bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *ImportCmd) format() (export.Format, error) {
	if c.Format != "" {
		return export.ParseFormat(c.Format)
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(c.File)), ".")
	if ext == "" {
		return export.FormatJSON, nil
	}
	return export.ParseFormat(ext)
}

func (c *ImportCmd) Run(ctx *cli.Context) error {
	format, err := c.format()
	if err != nil {
		return err
	}

	f, err := os.Open(c.File)
	if err != nil {
		return fmt.Errorf("failed to open import file: %w", err)
	}
	defer f.Close()

	snap, err := export.Read(f, format)
	if err != nil {
		return err
	}
	list, err := c.behaviorList(snap)
	if err != nil {
		return err
	}

	if !c.Yes {
		desc := fmt.Sprintf("%d entries and %d behaviors will replace the current %d entries and %d behaviors.",
			len(snap.Entries), len(list), len(ctx.Entries.All()), len(ctx.Behaviors.All()))
		ok, err := confirmFunc("Replace the journal with this export?", desc)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Import cancelled.")
			return nil
		}
	}

	ctx.PerformAutomaticBackup()

	entryData, err := entries.EncodeEntries(snap.Entries)
	if err != nil {
		return err
	}
	behaviorData, err := behaviors.EncodeBehaviors(list)
	if err != nil {
		return err
	}

	if err := ctx.Store.Set(constants.EntriesKey, entryData); err != nil {
		return fmt.Errorf("failed to import entries: %w", err)
	}
	if err := ctx.Store.Set(constants.BehaviorsKey, behaviorData); err != nil {
		return fmt.Errorf("failed to import behaviors: %w", err)
	}
	if err := ctx.LoadData(); err != nil {
		return err
	}

	fmt.Printf("✓ Imported %d entries and %d behaviors\n", len(snap.Entries), len(list))
	return nil
}

func (c *ImportCmd) behaviorList(snap export.Snapshot) ([]models.Behavior, error) {
	if c.Behaviors == "" {
		list := make([]models.Behavior, 0, len(snap.Behaviors))
		for _, bs := range snap.Behaviors {
			list = append(list, bs.Behavior)
		}
		return list, nil
	}
	if !snap.Legacy {
		return nil, fmt.Errorf("--behaviors only applies when importing a bare entries array")
	}

	f, err := os.Open(c.Behaviors)
	if err != nil {
		return nil, fmt.Errorf("failed to open behaviors file: %w", err)
	}
	defer f.Close()
	return export.ReadBehaviors(f)
}
