package memos

import (
	"strings"
	"testing"

	"github.com/julianstephens/worthit/internal/cli"
	"github.com/julianstephens/worthit/internal/models"
	"github.com/julianstephens/worthit/internal/storage"
	"github.com/julianstephens/worthit/internal/validation"
)

func setupTestContext(t *testing.T) (*cli.Context, models.Entry) {
	t.Helper()
	ctx := cli.NewContext(storage.NewMemoryStore())
	if err := ctx.Load(); err != nil {
		t.Fatalf("failed to load context: %v", err)
	}
	entry, err := ctx.Entries.Add(models.NewEntry{
		Action:    "ate junk food",
		Category:  models.CategoryFood,
		EntryType: models.EntryDidIt,
	})
	if err != nil {
		t.Fatalf("failed to add entry: %v", err)
	}
	return ctx, entry
}

func memosOf(t *testing.T, ctx *cli.Context, id string) []models.Memo {
	t.Helper()
	e, ok := ctx.Entries.Get(id)
	if !ok {
		t.Fatalf("entry %s missing", id)
	}
	return e.Memos
}

func TestMemoAddCmd(t *testing.T) {
	ctx, entry := setupTestContext(t)

	cmd := MemoAddCmd{Entry: entry.ID, Outcome: "resisted", Note: "  walked past the shop  "}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("add: %v", err)
	}

	memos := memosOf(t, ctx, entry.ID)
	if len(memos) != 1 {
		t.Fatalf("got %d memos", len(memos))
	}
	m := memos[0]
	if m.Outcome != models.OutcomeResisted || m.Feeling != models.RatingMeh || m.Note != "walked past the shop" {
		t.Errorf("unexpected memo: %+v", m)
	}
}

func TestMemoAddCmd_Validation(t *testing.T) {
	ctx, entry := setupTestContext(t)

	tests := []struct {
		name string
		cmd  MemoAddCmd
	}{
		{"bad outcome", MemoAddCmd{Entry: entry.ID, Outcome: "maybe"}},
		{"bad feeling", MemoAddCmd{Entry: entry.ID, Feeling: "great"}},
		{"long note", MemoAddCmd{Entry: entry.ID, Note: strings.Repeat("a", 151)}},
		{"unknown entry", MemoAddCmd{Entry: "nope", Note: "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cmd.Run(ctx); err == nil {
				t.Error("expected error")
			}
		})
	}
	if n := len(memosOf(t, ctx, entry.ID)); n != 0 {
		t.Errorf("invalid input stored %d memos", n)
	}
}

func TestMemoAddCmd_Prompt(t *testing.T) {
	ctx, entry := setupTestContext(t)
	orig := promptMemo
	t.Cleanup(func() { promptMemo = orig })

	promptMemo = func(_ models.Entry, in *validation.MemoInput) error {
		in.Outcome = "did-again"
		in.Feeling = "awful"
		return nil
	}
	if err := (&MemoAddCmd{Entry: entry.ID}).Run(ctx); err != nil {
		t.Fatalf("add: %v", err)
	}
	m := memosOf(t, ctx, entry.ID)[0]
	if m.Outcome != models.OutcomeDidAgain || m.Feeling != models.RatingAwful {
		t.Errorf("unexpected memo: %+v", m)
	}
}

func addMemo(t *testing.T, ctx *cli.Context, entryID, note string) models.Memo {
	t.Helper()
	m, ok, err := ctx.Entries.AddMemo(entryID, models.NewMemo{Note: note})
	if err != nil || !ok {
		t.Fatalf("AddMemo: ok=%v err=%v", ok, err)
	}
	return m
}

func TestMemoEditCmd(t *testing.T) {
	ctx, entry := setupTestContext(t)
	m := addMemo(t, ctx, entry.ID, "first")

	if err := (&MemoEditCmd{Entry: entry.ID, Memo: m.ID[:8], Feeling: "fine"}).Run(ctx); err != nil {
		t.Fatalf("edit: %v", err)
	}
	got := memosOf(t, ctx, entry.ID)[0]
	if got.Feeling != models.RatingFine || got.Note != "first" || got.Outcome != models.OutcomeReflecting {
		t.Errorf("unexpected memo: %+v", got)
	}

	if err := (&MemoEditCmd{Entry: entry.ID, Memo: m.ID}).Run(ctx); err == nil {
		t.Error("expected edit without flags to fail")
	}
	if err := (&MemoEditCmd{Entry: entry.ID, Memo: "zzz", Note: "x"}).Run(ctx); err == nil {
		t.Error("expected unknown memo to fail")
	}
}

func TestMemoToggleAndDelete(t *testing.T) {
	ctx, entry := setupTestContext(t)
	m := addMemo(t, ctx, entry.ID, "first")
	other := addMemo(t, ctx, entry.ID, "second")

	if err := (&MemoStarCmd{Entry: entry.ID, Memo: m.ID}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if err := (&MemoHideCmd{Entry: entry.ID, Memo: other.ID}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	memos := memosOf(t, ctx, entry.ID)
	if !memos[0].IsStarred || memos[0].IsHidden {
		t.Errorf("first memo flags: %+v", memos[0])
	}
	if memos[1].IsStarred || !memos[1].IsHidden {
		t.Errorf("second memo flags: %+v", memos[1])
	}

	if err := (&MemoListCmd{Entry: entry.ID}).Run(ctx); err != nil {
		t.Errorf("list: %v", err)
	}

	orig := confirmFunc
	t.Cleanup(func() { confirmFunc = orig })
	confirmFunc = func(string, string) (bool, error) { return true, nil }

	if err := (&MemoDeleteCmd{Entry: entry.ID, Memo: m.ID}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	memos = memosOf(t, ctx, entry.ID)
	if len(memos) != 1 || memos[0].ID != other.ID {
		t.Errorf("after delete: %+v", memos)
	}
}
