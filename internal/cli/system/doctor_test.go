package system

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/worthit/internal/cli"
	"github.com/julianstephens/worthit/internal/constants"
	"github.com/julianstephens/worthit/internal/models"
	"github.com/julianstephens/worthit/internal/storage"
	"github.com/julianstephens/worthit/internal/storage/sqlite"
)

func setupTestDoctorDB(t *testing.T) (*cli.Context, *sqlite.Store) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "worthit.db")

	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	ctx := cli.NewContext(store)
	if err := ctx.Load(); err != nil {
		t.Fatalf("failed to load context: %v", err)
	}
	return ctx, store
}

func TestDoctorCmd_HealthyDB(t *testing.T) {
	ctx, _ := setupTestDoctorDB(t)
	if _, err := ctx.Entries.Add(models.NewEntry{Action: "had coffee"}); err != nil {
		t.Fatal(err)
	}

	// Missing backups is a warning, not a failure
	if err := (&DoctorCmd{}).Run(ctx); err != nil {
		t.Errorf("doctor command failed on healthy database: %v", err)
	}
}

func TestDoctorCmd_BrokenSchema(t *testing.T) {
	ctx, store := setupTestDoctorDB(t)

	db := store.GetDB()
	if db == nil {
		t.Fatal("database connection is nil")
	}
	if _, err := db.Exec("DELETE FROM schema_version"); err != nil {
		t.Fatalf("failed to clear schema version: %v", err)
	}
	if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (999)"); err != nil {
		t.Fatalf("failed to set schema version: %v", err)
	}

	if err := (&DoctorCmd{}).Run(ctx); err == nil {
		t.Error("doctor should fail on a schema newer than supported")
	}
}

func TestDoctorCmd_CorruptEntries(t *testing.T) {
	ctx, store := setupTestDoctorDB(t)
	if err := store.Set(constants.EntriesKey, "{not json"); err != nil {
		t.Fatal(err)
	}

	if err := (&DoctorCmd{}).Run(ctx); err == nil {
		t.Error("doctor should fail on undecodable entries")
	}
}

func TestDoctorCmd_DanglingReferenceIsWarning(t *testing.T) {
	ctx, _ := setupTestDoctorDB(t)
	b, err := ctx.Behaviors.Create("Late nights", models.CategorySleep)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ctx.Entries.Add(models.NewEntry{Action: "stayed up late", BehaviorID: b.ID}); err != nil {
		t.Fatal(err)
	}
	if err := ctx.Behaviors.Remove(b.ID); err != nil {
		t.Fatal(err)
	}

	if err := checkDanglingReferences(ctx); err == nil {
		t.Fatal("expected a warning for the dangling reference")
	} else {
		var w warning
		if !errors.As(err, &w) {
			t.Errorf("dangling reference should be a warning, got %v", err)
		}
	}
	if err := (&DoctorCmd{}).Run(ctx); err != nil {
		t.Errorf("warnings should not fail doctor: %v", err)
	}
}

func TestDoctorCmd_UnreachableStore(t *testing.T) {
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "missing.db"))
	ctx := cli.NewContext(store)

	if err := (&DoctorCmd{}).Run(ctx); err == nil {
		t.Error("doctor should fail when storage is not initialized")
	}
}

func TestCheckUnknownKeys(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := cli.NewContext(store)
	if err := checkUnknownKeys(ctx); err != nil {
		t.Errorf("empty store: %v", err)
	}

	store.Set(constants.EntriesKey, "[]")
	store.Set("legacy_settings", "{}")
	err := checkUnknownKeys(ctx)
	var w warning
	if !errors.As(err, &w) {
		t.Errorf("expected warning, got %v", err)
	}
}

func TestDoctorCmd_CorruptJSONDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "worthit.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}
	store := storage.NewJSONStore(path)
	ctx := cli.NewContext(store)
	if err := ctx.Load(); err != nil {
		t.Fatalf("Load() should recover from a corrupt document: %v", err)
	}

	if err := checkStoreRecovered(ctx); err == nil || !strings.Contains(err.Error(), store.CorruptPath()) {
		t.Errorf("checkStoreRecovered() = %v, want it to name %s", err, store.CorruptPath())
	}
	if err := (&DoctorCmd{}).Run(ctx); err == nil {
		t.Error("doctor should fail after a corrupt document was reset")
	}
}
