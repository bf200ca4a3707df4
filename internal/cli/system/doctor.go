package system

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/worthit/internal/behaviors"
	"github.com/julianstephens/worthit/internal/cli"
	"github.com/julianstephens/worthit/internal/constants"
	"github.com/julianstephens/worthit/internal/entries"
	"github.com/julianstephens/worthit/internal/storage"
)

// warning marks a check result that should be reported without failing.
type warning struct{ msg string }

func (w warning) Error() string { return w.msg }

func warnf(format string, args ...any) error {
	return warning{msg: fmt.Sprintf(format, args...)}
}

type check struct {
	name       string
	needsStore bool
	run        func(*cli.Context) error
}

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	checks := []check{
		{name: "Storage reachable", run: checkStoreReachable},
		{name: "Storage file intact", needsStore: true, run: checkStoreRecovered},
		{name: "Schema version", needsStore: true, run: checkSchemaVersion},
		{name: "Migrations complete", needsStore: true, run: checkMigrationsComplete},
		{name: "Backups present", run: checkBackupsPresent},
		{name: "Entries readable", needsStore: true, run: checkEntriesReadable},
		{name: "Behaviors readable", needsStore: true, run: checkBehaviorsReadable},
		{name: "Unique ids", needsStore: true, run: checkUniqueIDs},
		{name: "Behavior references", needsStore: true, run: checkDanglingReferences},
		{name: "Unknown keys", needsStore: true, run: checkUnknownKeys},
		{name: "Clock/timezone", run: func(*cli.Context) error { return checkClockTimezone() }},
	}

	hasError := false
	storeOK := false
	for _, c := range checks {
		if c.needsStore && !storeOK {
			fmt.Printf("⊘ %s: SKIPPED (storage not reachable)\n", c.name)
			continue
		}

		err := c.run(ctx)
		var w warning
		switch {
		case err == nil:
			fmt.Printf("✓ %s: OK\n", c.name)
		case errors.As(err, &w):
			fmt.Printf("⚠ %s: WARNING\n", c.name)
			fmt.Printf("   %v\n", w.msg)
		default:
			fmt.Printf("❌ %s: FAIL\n", c.name)
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		}

		if c.name == "Storage reachable" {
			storeOK = err == nil
		}
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkStoreReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load storage: %w", err)
	}
	if _, _, err := ctx.Store.Get(constants.EntriesKey); err != nil {
		return fmt.Errorf("failed to read storage: %w", err)
	}
	return nil
}

// recoverable is implemented by file stores that start empty when their
// document cannot be parsed.
type recoverable interface {
	Recovered() error
	CorruptPath() string
}

func checkStoreRecovered(ctx *cli.Context) error {
	r, ok := ctx.Store.(recoverable)
	if !ok || r.Recovered() == nil {
		return nil
	}
	return fmt.Errorf("%v; started from an empty journal, the unreadable file was copied to %s", r.Recovered(), r.CorruptPath())
}

func checkSchemaVersion(ctx *cli.Context) error {
	m, ok := ctx.Store.(migrator)
	if !ok {
		return nil
	}

	current, latest, err := m.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	m, ok := ctx.Store.(migrator)
	if !ok {
		return nil
	}

	current, latest, err := m.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d (run 'worthit migrate')", current, latest)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr, err := ctx.BackupManager()
	if err != nil {
		return warnf("%v", err)
	}
	backups, err := mgr.ListBackups()
	if err != nil {
		return warnf("failed to list backups: %v", err)
	}
	if len(backups) == 0 {
		return warnf("no backups found - consider creating one with 'worthit backup create'")
	}
	return nil
}

// Decode failures are not fatal to the app (the collection loads as empty),
// but the next write would discard the stored data.
func checkEntriesReadable(ctx *cli.Context) error {
	raw, ok, err := ctx.Store.Get(constants.EntriesKey)
	if err != nil || !ok {
		return err
	}
	if _, err := entries.DecodeEntries(raw); err != nil {
		return fmt.Errorf("stored entries cannot be decoded and would be replaced on the next write: %w", err)
	}
	return nil
}

func checkBehaviorsReadable(ctx *cli.Context) error {
	raw, ok, err := ctx.Store.Get(constants.BehaviorsKey)
	if err != nil || !ok {
		return err
	}
	if _, err := behaviors.DecodeBehaviors(raw); err != nil {
		return fmt.Errorf("stored behaviors cannot be decoded and would be replaced on the next write: %w", err)
	}
	return nil
}

func checkUniqueIDs(ctx *cli.Context) error {
	if err := ctx.LoadData(); err != nil {
		return err
	}

	seen := make(map[string]bool)
	for _, e := range ctx.Entries.All() {
		if seen[e.ID] {
			return fmt.Errorf("duplicate entry ID found: %s", e.ID)
		}
		seen[e.ID] = true
		memoSeen := make(map[string]bool)
		for _, m := range e.Memos {
			if memoSeen[m.ID] {
				return fmt.Errorf("duplicate memo ID %s on entry %s", m.ID, e.ID)
			}
			memoSeen[m.ID] = true
		}
	}

	seen = make(map[string]bool)
	for _, b := range ctx.Behaviors.All() {
		if seen[b.ID] {
			return fmt.Errorf("duplicate behavior ID found: %s", b.ID)
		}
		seen[b.ID] = true
	}
	return nil
}

func checkDanglingReferences(ctx *cli.Context) error {
	dangling := ctx.Behaviors.DanglingEntries()
	if len(dangling) == 0 {
		return nil
	}
	return warnf("%d entries reference deleted behaviors (first: %s); relink them with 'worthit behavior link' or 'worthit behavior unlink'",
		len(dangling), cli.ShortID(dangling[0].ID))
}

func checkUnknownKeys(ctx *cli.Context) error {
	keyed, ok := ctx.Store.(storage.Keyed)
	if !ok {
		return nil
	}
	keys, err := keyed.Keys()
	if err != nil {
		return fmt.Errorf("failed to list keys: %w", err)
	}

	var unknown []string
	for _, k := range keys {
		if k != constants.EntriesKey && k != constants.BehaviorsKey {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		return warnf("storage holds %d key(s) worthit does not use: %v", len(unknown), unknown)
	}
	return nil
}

func checkClockTimezone() error {
	now := time.Now()

	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}

	return nil
}
