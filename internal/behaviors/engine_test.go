package behaviors

import (
	"fmt"
	"testing"
	"time"

	"github.com/julianstephens/worthit/internal/constants"
	"github.com/julianstephens/worthit/internal/entries"
	"github.com/julianstephens/worthit/internal/models"
	"github.com/julianstephens/worthit/internal/storage"
)

var baseTime = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

func testClock() func() time.Time {
	n := 0
	return func() time.Time {
		n++
		return baseTime.Add(time.Duration(n) * time.Hour)
	}
}

func seqIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

type fixture struct {
	provider *storage.MemoryStore
	entries  *entries.Store
	engine   *Engine
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	provider := storage.NewMemoryStore()
	clock := testClock()
	es := entries.NewStore(provider, entries.WithClock(clock), entries.WithIDFunc(seqIDs("e")))
	engine := NewEngine(provider, es, WithClock(clock), WithIDFunc(seqIDs("b")))
	if err := es.Load(); err != nil {
		t.Fatal(err)
	}
	if err := engine.Load(); err != nil {
		t.Fatal(err)
	}
	return &fixture{provider: provider, entries: es, engine: engine}
}

func (f *fixture) add(t *testing.T, action string, typ models.EntryType, behaviorID string) models.Entry {
	t.Helper()
	e, err := f.entries.Add(models.NewEntry{
		Action:     action,
		Category:   models.CategoryHabit,
		EntryType:  typ,
		BehaviorID: behaviorID,
	})
	if err != nil {
		t.Fatal(err)
	}
	return e
}

func (f *fixture) create(t *testing.T, name string) models.Behavior {
	t.Helper()
	b, err := f.engine.Create(name, models.CategoryHabit)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestCreateUpdateRemove(t *testing.T) {
	f := newFixture(t)

	b := f.create(t, "late snacking")
	if b.ID == "" || !b.CreatedAt.Equal(b.UpdatedAt) {
		t.Errorf("Create() = %+v", b)
	}
	if b.Triggers == nil {
		t.Error("Triggers should default to an empty list")
	}

	name := "late night snacking"
	triggers := []string{"boredom"}
	if err := f.engine.Update(b.ID, models.BehaviorPatch{Name: &name, Triggers: &triggers}); err != nil {
		t.Fatal(err)
	}
	got, ok := f.engine.Get(b.ID)
	if !ok || got.Name != name || len(got.Triggers) != 1 {
		t.Errorf("Update() result = %+v", got)
	}
	if !got.UpdatedAt.After(got.CreatedAt) {
		t.Error("Update() should refresh UpdatedAt")
	}
	if !got.CreatedAt.Equal(b.CreatedAt) {
		t.Error("Update() must not touch CreatedAt")
	}

	writes := f.provider.Writes
	if err := f.engine.Update("missing", models.BehaviorPatch{Name: &name}); err != nil {
		t.Error(err)
	}
	if err := f.engine.Remove("missing"); err != nil {
		t.Error(err)
	}
	if f.provider.Writes != writes {
		t.Error("unknown ids should not write")
	}

	if err := f.engine.Remove(b.ID); err != nil {
		t.Fatal(err)
	}
	if _, ok := f.engine.Get(b.ID); ok {
		t.Error("behavior still present after Remove")
	}
}

func TestReloadBehaviors(t *testing.T) {
	f := newFixture(t)
	f.create(t, "skip gym")
	f.create(t, "doomscrolling")

	reloaded := NewEngine(f.provider, f.entries)
	if err := reloaded.Load(); err != nil {
		t.Fatal(err)
	}
	all := reloaded.All()
	if len(all) != 2 || all[0].Name != "skip gym" || all[1].Name != "doomscrolling" {
		t.Errorf("reloaded = %+v, want insertion order", all)
	}
}

func TestLoadCorruptBehaviors(t *testing.T) {
	provider := storage.NewMemoryStore()
	_ = provider.Set(constants.BehaviorsKey, `[{"id":1}]`)

	engine := NewEngine(provider, entries.NewStore(provider))
	if err := engine.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(engine.All()) != 0 {
		t.Error("corrupt behaviors should load as empty")
	}
}

func TestRemoveLeavesDanglingReferences(t *testing.T) {
	f := newFixture(t)
	b := f.create(t, "skip gym")
	e := f.add(t, "skip gym", models.EntryDidIt, b.ID)

	if err := f.engine.Remove(b.ID); err != nil {
		t.Fatal(err)
	}

	got, _ := f.entries.Get(e.ID)
	if got.BehaviorID != b.ID {
		t.Errorf("entry behaviorId = %q, want dangling %q kept", got.BehaviorID, b.ID)
	}
	if _, ok := f.engine.Get(b.ID); ok {
		t.Error("Get() should not find a removed behavior")
	}
	if stats := f.engine.Stats(b.ID); stats.TotalEntries != 1 {
		t.Errorf("Stats(removed) TotalEntries = %d, want 1", stats.TotalEntries)
	}
	if dangling := f.engine.DanglingEntries(); len(dangling) != 1 || dangling[0].ID != e.ID {
		t.Errorf("DanglingEntries() = %+v", dangling)
	}
}

func TestEntriesForNewestFirst(t *testing.T) {
	f := newFixture(t)
	b := f.create(t, "coffee")
	other := f.create(t, "cake")

	e1 := f.add(t, "coffee", models.EntryDidIt, b.ID)
	f.add(t, "cake", models.EntryDidIt, other.ID)
	e2 := f.add(t, "more coffee", models.EntryResisted, b.ID)
	f.add(t, "unlinked", models.EntryDidIt, "")

	got := f.engine.EntriesFor(b.ID)
	if len(got) != 2 || got[0].ID != e2.ID || got[1].ID != e1.ID {
		t.Errorf("EntriesFor() = %v, want [%s %s]", entryIDs(got), e2.ID, e1.ID)
	}
}

func TestFindSimilar(t *testing.T) {
	f := newFixture(t)
	f.create(t, "ate junk food late at night")
	f.create(t, "went running")
	f.create(t, "ate junk food")

	t.Run("overlap above threshold", func(t *testing.T) {
		// {ate,junk,food,at,2am} vs {ate,junk,food,late,at,night}: 4/7
		got := names(f.engine.FindSimilar("ate junk food at 2am", 0.5))
		want := []string{"ate junk food late at night", "ate junk food"}
		if fmt.Sprint(got) != fmt.Sprint(want) {
			t.Errorf("FindSimilar() = %v, want %v in collection order", got, want)
		}
	})

	t.Run("higher threshold excludes partial overlap", func(t *testing.T) {
		got := names(f.engine.FindSimilar("ate junk food at 2am", 0.6))
		if fmt.Sprint(got) != "[ate junk food]" {
			t.Errorf("FindSimilar(0.6) = %v", got)
		}
	})

	t.Run("no match", func(t *testing.T) {
		if got := f.engine.FindSimilar("read a book", 0.5); len(got) != 0 {
			t.Errorf("FindSimilar() = %v, want none", names(got))
		}
	})
}

func TestLinkUnlinkAndGetByName(t *testing.T) {
	f := newFixture(t)
	b := f.create(t, "Doomscrolling")
	e := f.add(t, "scrolled social media", models.EntryDidIt, "")

	if got, ok := f.engine.GetByName("doomscrolling"); !ok || got.ID != b.ID {
		t.Errorf("GetByName() = %+v, %v", got, ok)
	}

	if err := f.engine.Link(e.ID, b.ID); err != nil {
		t.Fatal(err)
	}
	if got := f.engine.EntriesFor(b.ID); len(got) != 1 {
		t.Errorf("EntriesFor() after Link = %d entries", len(got))
	}

	if err := f.engine.Unlink(e.ID); err != nil {
		t.Fatal(err)
	}
	if got, _ := f.entries.Get(e.ID); got.IsLinked() {
		t.Error("entry still linked after Unlink")
	}
}

func entryIDs(es []models.Entry) []string {
	out := make([]string, 0, len(es))
	for _, e := range es {
		out = append(out, e.ID)
	}
	return out
}

func names(bs []models.Behavior) []string {
	out := make([]string, 0, len(bs))
	for _, b := range bs {
		out = append(out, b.Name)
	}
	return out
}
