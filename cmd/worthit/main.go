package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/worthit/internal/cli"
	"github.com/julianstephens/worthit/internal/cli/backups"
	"github.com/julianstephens/worthit/internal/cli/journal"
	"github.com/julianstephens/worthit/internal/cli/memos"
	"github.com/julianstephens/worthit/internal/cli/patterns"
	"github.com/julianstephens/worthit/internal/cli/system"
	"github.com/julianstephens/worthit/internal/constants"
	"github.com/julianstephens/worthit/internal/errors"
	"github.com/julianstephens/worthit/internal/logger"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"SQLite path, JSON file, PostgreSQL or Redis connection string. PostgreSQL passwords must NOT be embedded here; use WORTHIT_DB_CONNECTION or the OS keyring instead." env:"WORTHIT_CONFIG"`
	Debug   bool   `help:"Log debug output to stderr."`

	Init    system.InitCmd    `cmd:"" help:"Initialize worthit storage."`
	Migrate system.MigrateCmd `cmd:"" help:"Run database migrations."`
	Doctor  system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	Tui     system.TuiCmd     `cmd:"" help:"Launch the interactive TUI." default:"1"`

	Log    journal.LogCmd    `cmd:"" help:"Log something you did, resisted or are reflecting on."`
	List   journal.ListCmd   `cmd:"" help:"List entries, newest first."`
	Show   journal.ShowCmd   `cmd:"" help:"Show an entry and its memos."`
	Edit   journal.EditCmd   `cmd:"" help:"Edit an entry."`
	Delete journal.DeleteCmd `cmd:"" help:"Delete an entry."`
	Search journal.SearchCmd `cmd:"" help:"Search entries by action, note, category or tag."`
	Check  journal.CheckCmd  `cmd:"" help:"Ask whether something was worth it last time."`

	Memo struct {
		Add    memos.MemoAddCmd    `cmd:"" help:"Add a follow-up memo to an entry."`
		Edit   memos.MemoEditCmd   `cmd:"" help:"Edit a memo."`
		Delete memos.MemoDeleteCmd `cmd:"" help:"Delete a memo."`
		Star   memos.MemoStarCmd   `cmd:"" help:"Toggle a memo's star."`
		Hide   memos.MemoHideCmd   `cmd:"" help:"Toggle whether a memo is hidden."`
		List   memos.MemoListCmd   `cmd:"" help:"List an entry's memos."`
	} `cmd:"" help:"Manage follow-up memos."`
	Behavior struct {
		Create    patterns.BehaviorCreateCmd  `cmd:"" help:"Create a behavior."`
		Edit      patterns.BehaviorEditCmd    `cmd:"" help:"Edit a behavior."`
		Delete    patterns.BehaviorDeleteCmd  `cmd:"" help:"Delete a behavior."`
		List      patterns.BehaviorListCmd    `cmd:"" help:"List behaviors with their stats."`
		Show      patterns.BehaviorShowCmd    `cmd:"" help:"Show a behavior's stats and entries."`
		Link      patterns.BehaviorLinkCmd    `cmd:"" help:"Link an entry to a behavior."`
		Unlink    patterns.BehaviorUnlinkCmd  `cmd:"" help:"Remove an entry's behavior link."`
		Similar   patterns.BehaviorSimilarCmd `cmd:"" help:"Find behaviors similar to some text."`
		Autogroup patterns.AutogroupCmd       `cmd:"" help:"Group unlinked entries into behaviors."`
	} `cmd:"" help:"Manage behaviors."`
	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
	Export system.ExportCmd `cmd:"" help:"Export entries and behaviors as JSON or YAML."`
	Import system.ImportCmd `cmd:"" help:"Replace the journal with an export file."`
	ConfigCmd struct {
		SetConnection    system.ConfigSetConnectionCmd    `cmd:"" help:"Store a database connection string in the OS keyring."`
		DeleteConnection system.ConfigDeleteConnectionCmd `cmd:"" help:"Remove the stored connection string."`
		Status           system.ConfigStatusCmd           `cmd:"" help:"Show where worthit stores its data."`
	} `cmd:"" name:"config" help:"Manage storage configuration."`
}

// managesOwnStore lists commands that open (or never need) storage themselves.
func managesOwnStore(command string) bool {
	return strings.HasPrefix(command, "init") ||
		strings.HasPrefix(command, "doctor") ||
		strings.HasPrefix(command, "config")
}

func options() []kong.Option {
	return []kong.Option{
		kong.Name(constants.AppName),
		kong.Description("A journal for asking whether it was worth it"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	}
}

func main() {
	ctx := kong.Parse(&CLI, options()...)

	config, src := cli.ResolveConfig(CLI.Config)

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: cli.ConfigDir(config, src),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	store, err := cli.OpenStore(config, src)
	if err != nil {
		errors.Fatal(err)
	}
	defer store.Close()

	appCtx := cli.NewContext(store)

	if !managesOwnStore(ctx.Command()) {
		if err := appCtx.Load(); err != nil {
			store.Close()
			errors.Fatal(err)
		}
	}

	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		errors.Fatal(err)
	}
}
