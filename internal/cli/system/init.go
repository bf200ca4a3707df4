package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/worthit/internal/cli"
	"github.com/julianstephens/worthit/internal/constants"
	"github.com/julianstephens/worthit/internal/storage"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting existing data before initialization."`
	Source string `help:"Source storage path or connection string to copy data from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	} else {
		err := ctx.Store.Load()
		switch {
		case err == nil:
			fmt.Printf("worthit storage already initialized at: %s\n", ctx.Store.GetConfigPath())
		case errors.Is(err, storage.ErrNotInitialized):
			if err := ctx.Store.Init(); err != nil {
				return err
			}
			fmt.Printf("Initialized worthit storage at: %s\n", ctx.Store.GetConfigPath())
		default:
			return err
		}
	}

	if c.Source != "" {
		fmt.Printf("Copying data from: %s\n", c.Source)
		n, err := c.copyFrom(ctx)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		fmt.Printf("Copied %d collection(s).\n", n)
	}

	return ctx.LoadData()
}

// reset wipes the existing journal. File-based stores are deleted and
// recreated; network stores get empty collections.
func (c *InitCmd) reset(ctx *cli.Context) error {
	dbPath := ctx.Store.GetConfigPath()

	if ctx.IsFileBased() {
		// Don't delete if it's the source (user error protection)
		if c.Source != "" {
			absDbPath, err := filepath.Abs(dbPath)
			if err == nil {
				dbPath = absDbPath
			}
			absSource, err := filepath.Abs(c.Source)
			if err == nil && absSource == dbPath {
				return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
			}
		}
		if _, err := os.Stat(dbPath); err == nil {
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			fmt.Printf("Deleted existing database at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}

	if !ctx.IsFileBased() {
		for _, key := range []string{constants.EntriesKey, constants.BehaviorsKey} {
			if err := ctx.Store.Set(key, "[]"); err != nil {
				return fmt.Errorf("failed to reset %s: %w", key, err)
			}
		}
		fmt.Printf("Reset collections at: %s\n", dbPath)
	}

	fmt.Printf("Initialized worthit storage at: %s\n", ctx.Store.GetConfigPath())
	return nil
}

// copyFrom copies every collection from the source store into the current one.
func (c *InitCmd) copyFrom(ctx *cli.Context) (int, error) {
	source, err := cli.OpenStore(c.Source, cli.SourceFlag)
	if err != nil {
		return 0, err
	}
	if err := source.Load(); err != nil {
		return 0, fmt.Errorf("failed to load source storage: %w", err)
	}
	defer source.Close()

	keys := []string{constants.EntriesKey, constants.BehaviorsKey}
	if keyed, ok := source.(storage.Keyed); ok {
		if keys, err = keyed.Keys(); err != nil {
			return 0, fmt.Errorf("failed to list source keys: %w", err)
		}
	}

	copied := 0
	for _, key := range keys {
		value, ok, err := source.Get(key)
		if err != nil {
			return copied, fmt.Errorf("failed to read %s from source: %w", key, err)
		}
		if !ok {
			continue
		}
		if err := ctx.Store.Set(key, value); err != nil {
			return copied, fmt.Errorf("failed to write %s: %w", key, err)
		}
		fmt.Printf("  Copied %s\n", key)
		copied++
	}
	return copied, nil
}
