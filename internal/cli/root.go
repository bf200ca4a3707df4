package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/worthit/internal/backup"
	"github.com/julianstephens/worthit/internal/behaviors"
	"github.com/julianstephens/worthit/internal/constants"
	"github.com/julianstephens/worthit/internal/entries"
	"github.com/julianstephens/worthit/internal/keyring"
	"github.com/julianstephens/worthit/internal/logger"
	"github.com/julianstephens/worthit/internal/models"
	"github.com/julianstephens/worthit/internal/storage"
	"github.com/julianstephens/worthit/internal/storage/postgres"
	"github.com/julianstephens/worthit/internal/storage/redis"
	"github.com/julianstephens/worthit/internal/storage/sqlite"
)

var (
	// ErrBackupsUnsupported is returned by backup commands on network backends
	ErrBackupsUnsupported = errors.New("backups are only supported for file-based storage")

	lookupConnection = keyring.GetConnectionString
)

type Context struct {
	Store     storage.Provider
	Entries   *entries.Store
	Behaviors *behaviors.Engine
}

// NewContext wires the entry store and behavior engine to one provider.
func NewContext(store storage.Provider) *Context {
	entryStore := entries.NewStore(store)
	return &Context{
		Store:     store,
		Entries:   entryStore,
		Behaviors: behaviors.NewEngine(store, entryStore),
	}
}

// Load opens the provider and reads both collections.
func (c *Context) Load() error {
	if err := c.Store.Load(); err != nil {
		return err
	}
	return c.LoadData()
}

// LoadData rereads both collections from an already opened provider.
func (c *Context) LoadData() error {
	if err := c.Entries.Load(); err != nil {
		return err
	}
	return c.Behaviors.Load()
}

// IsFileBased reports whether the provider lives in a local file.
func (c *Context) IsFileBased() bool {
	switch c.Store.(type) {
	case *sqlite.Store, *storage.JSONStore:
		return true
	default:
		return false
	}
}

// BackupManager returns a manager for the current store, or
// ErrBackupsUnsupported for network backends.
func (c *Context) BackupManager() (*backup.Manager, error) {
	if !c.IsFileBased() {
		return nil, ErrBackupsUnsupported
	}
	return backup.NewManager(c.Store.GetConfigPath()), nil
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	mgr, err := c.BackupManager()
	if err != nil {
		logger.Debug("Skipping automatic backup", "reason", err)
		return
	}
	if _, err := mgr.CreateBackup(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// FindEntry looks an entry up by id or by a unique id prefix.
func (c *Context) FindEntry(id string) (models.Entry, error) {
	if entry, ok := c.Entries.Get(id); ok {
		return entry, nil
	}
	var found []models.Entry
	if id != "" {
		for _, e := range c.Entries.All() {
			if strings.HasPrefix(e.ID, id) {
				found = append(found, e)
			}
		}
	}
	switch len(found) {
	case 0:
		return models.Entry{}, fmt.Errorf("entry not found: %s", id)
	case 1:
		return found[0], nil
	default:
		return models.Entry{}, fmt.Errorf("entry id %q is ambiguous (%d matches)", id, len(found))
	}
}

// FindBehavior accepts an id, a unique id prefix, or a behavior name.
func (c *Context) FindBehavior(ref string) (models.Behavior, error) {
	if b, ok := c.Behaviors.Get(ref); ok {
		return b, nil
	}
	if b, ok := c.Behaviors.GetByName(ref); ok {
		return b, nil
	}
	var found []models.Behavior
	if ref != "" {
		for _, b := range c.Behaviors.All() {
			if strings.HasPrefix(b.ID, ref) {
				found = append(found, b)
			}
		}
	}
	switch len(found) {
	case 0:
		return models.Behavior{}, fmt.Errorf("behavior not found: %s", ref)
	case 1:
		return found[0], nil
	default:
		return models.Behavior{}, fmt.Errorf("behavior id %q is ambiguous (%d matches)", ref, len(found))
	}
}

// Source records where the storage location came from. Connection strings
// typed on the command line must not carry a password; the environment and
// the keyring are trusted.
type Source int

const (
	SourceFlag Source = iota
	SourceEnv
	SourceKeyring
	SourceDefault
)

// ResolveConfig picks the storage location: an explicit --config value, then
// WORTHIT_DB_CONNECTION, then the keyring, then the default SQLite path.
func ResolveConfig(flag string) (string, Source) {
	if flag != "" {
		return flag, SourceFlag
	}
	if conn := os.Getenv(constants.EnvDBConnection); conn != "" {
		return conn, SourceEnv
	}
	if conn, err := lookupConnection(); err == nil && conn != "" {
		return conn, SourceKeyring
	} else if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		logger.Debug("Keyring lookup failed", "error", err)
	}
	return constants.DefaultConfigPath, SourceDefault
}

// OpenStore builds the provider for a --config value without opening it.
func OpenStore(config string, src Source) (storage.Provider, error) {
	switch {
	case strings.HasPrefix(config, "postgres://"), strings.HasPrefix(config, "postgresql://"), strings.Contains(config, "host="):
		if _, err := postgres.ValidateConnString(config); err != nil {
			if !errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, err
			}
			if src == SourceFlag {
				return nil, fmt.Errorf("PostgreSQL connection strings with embedded credentials are not allowed on the command line; use 'worthit config set-connection' or %s instead", constants.EnvDBConnection)
			}
		}
		return postgres.New(config), nil
	case strings.HasPrefix(config, "redis://"), strings.HasPrefix(config, "rediss://"):
		return redis.New(config), nil
	}

	path, err := ExpandPath(config)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return storage.NewJSONStore(path), nil
	}
	return sqlite.NewStore(path), nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// ConfigDir is the directory holding logs for the given storage location.
// Network backends log under the default config directory.
func ConfigDir(config string, src Source) string {
	if src == SourceFlag || src == SourceDefault {
		if !strings.Contains(config, "://") && !strings.Contains(config, "host=") {
			if path, err := ExpandPath(config); err == nil {
				return filepath.Dir(path)
			}
		}
	}
	path, err := ExpandPath(constants.DefaultConfigPath)
	if err != nil {
		return os.TempDir()
	}
	return filepath.Dir(path)
}
