package entries

import (
	"testing"

	"github.com/julianstephens/worthit/internal/models"
)

func TestAddMemo(t *testing.T) {
	store, provider := newTestStore(t)
	e := mustAdd(t, store, models.NewEntry{Action: "stayed up late"})

	first, ok, err := store.AddMemo(e.ID, models.NewMemo{
		Outcome: models.OutcomeDidAgain,
		Feeling: models.RatingAwful,
		Note:    "  again, ugh  ",
	})
	if err != nil || !ok {
		t.Fatalf("AddMemo() = ok %v, err %v", ok, err)
	}
	if first.Note != "again, ugh" {
		t.Errorf("Note = %q, want trimmed", first.Note)
	}
	if first.ID == "" || first.CreatedAt.IsZero() {
		t.Errorf("memo identity not assigned: %+v", first)
	}

	second, _, err := store.AddMemo(e.ID, models.NewMemo{})
	if err != nil {
		t.Fatal(err)
	}
	if second.Outcome != models.OutcomeReflecting || second.Feeling != models.RatingMeh {
		t.Errorf("defaults = %q/%q, want reflecting/meh", second.Outcome, second.Feeling)
	}

	got, _ := store.Get(e.ID)
	if len(got.Memos) != 2 || got.Memos[0].ID != first.ID || got.Memos[1].ID != second.ID {
		t.Errorf("memos = %+v, want insertion order", got.Memos)
	}

	t.Run("unknown entry", func(t *testing.T) {
		writes := provider.Writes
		_, ok, err := store.AddMemo("missing", models.NewMemo{Note: "x"})
		if err != nil || ok {
			t.Errorf("AddMemo(unknown) = ok %v, err %v", ok, err)
		}
		if provider.Writes != writes {
			t.Error("AddMemo(unknown) should not write")
		}
	})
}

func TestUpdateAndDeleteMemo(t *testing.T) {
	store, provider := newTestStore(t)
	e := mustAdd(t, store, models.NewEntry{Action: "ate cake"})
	other := mustAdd(t, store, models.NewEntry{Action: "had coffee"})
	m1, _, _ := store.AddMemo(e.ID, models.NewMemo{Note: "first"})
	m2, _, _ := store.AddMemo(e.ID, models.NewMemo{Note: "second"})

	note := "rewritten"
	if err := store.UpdateMemo(e.ID, m1.ID, models.MemoPatch{Note: &note}); err != nil {
		t.Fatal(err)
	}
	got, _ := store.Get(e.ID)
	if got.Memos[0].Note != "rewritten" || got.Memos[1].Note != "second" {
		t.Errorf("UpdateMemo() memos = %+v", got.Memos)
	}

	writes := provider.Writes
	if err := store.UpdateMemo(e.ID, "missing", models.MemoPatch{Note: &note}); err != nil {
		t.Error(err)
	}
	if err := store.UpdateMemo("missing", m1.ID, models.MemoPatch{Note: &note}); err != nil {
		t.Error(err)
	}
	// Memo ids are scoped to their parent entry.
	if err := store.DeleteMemo(other.ID, m1.ID); err != nil {
		t.Error(err)
	}
	if provider.Writes != writes {
		t.Error("operations on unknown memos should not write")
	}

	if err := store.DeleteMemo(e.ID, m1.ID); err != nil {
		t.Fatal(err)
	}
	got, _ = store.Get(e.ID)
	if len(got.Memos) != 1 || got.Memos[0].ID != m2.ID {
		t.Errorf("DeleteMemo() memos = %+v", got.Memos)
	}
}

func TestToggleMemoFlags(t *testing.T) {
	store, _ := newTestStore(t)
	e := mustAdd(t, store, models.NewEntry{Action: "skipped workout"})
	m, _, _ := store.AddMemo(e.ID, models.NewMemo{Note: "lazy"})

	if err := store.ToggleMemoStar(e.ID, m.ID); err != nil {
		t.Fatal(err)
	}
	if err := store.ToggleMemoHidden(e.ID, m.ID); err != nil {
		t.Fatal(err)
	}
	got, _ := store.Get(e.ID)
	if !got.Memos[0].IsStarred || !got.Memos[0].IsHidden {
		t.Errorf("flags after one toggle = %+v", got.Memos[0])
	}

	if err := store.ToggleMemoStar(e.ID, m.ID); err != nil {
		t.Fatal(err)
	}
	got, _ = store.Get(e.ID)
	if got.Memos[0].IsStarred {
		t.Error("second star toggle should clear the flag")
	}

	if err := store.ToggleMemoStar(e.ID, "missing"); err != nil {
		t.Errorf("toggle of unknown memo error = %v", err)
	}
}

func TestVisibleMemos(t *testing.T) {
	entry := models.Entry{Memos: []models.Memo{
		{ID: "a"},
		{ID: "b", IsHidden: true},
		{ID: "c"},
	}}

	if got := VisibleMemos(entry, false); len(got) != 2 || got[0].ID != "a" || got[1].ID != "c" {
		t.Errorf("VisibleMemos(false) = %+v", got)
	}
	if got := VisibleMemos(entry, true); len(got) != 3 {
		t.Errorf("VisibleMemos(true) = %+v", got)
	}
}
