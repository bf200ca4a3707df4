package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/worthit/internal/cli"
	"github.com/julianstephens/worthit/internal/constants"
	"github.com/julianstephens/worthit/internal/models"
	"github.com/julianstephens/worthit/internal/storage"
	"github.com/julianstephens/worthit/internal/tui/components/behaviorlist"
	"github.com/julianstephens/worthit/internal/tui/components/entrylist"
	"github.com/julianstephens/worthit/internal/tui/components/thread"
)

func setupTestModel(t *testing.T) (Model, *cli.Context) {
	t.Helper()
	ctx := cli.NewContext(storage.NewMemoryStore())
	if err := ctx.Load(); err != nil {
		t.Fatalf("failed to load context: %v", err)
	}
	m := NewModel(ctx.Entries, ctx.Behaviors)
	m = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	return m, ctx
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return model
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func addEntry(t *testing.T, ctx *cli.Context, action, behaviorID string) models.Entry {
	t.Helper()
	e, err := ctx.Entries.Add(models.NewEntry{
		Action:     action,
		Category:   models.CategoryHabit,
		EntryType:  models.EntryDidIt,
		BehaviorID: behaviorID,
	})
	if err != nil {
		t.Fatal(err)
	}
	return e
}

func TestTabCyclesTopLevelViews(t *testing.T) {
	m, _ := setupTestModel(t)
	if m.state != constants.StateEntries {
		t.Fatalf("initial state = %v, want entries", m.state)
	}

	m = send(t, m, keyPress("tab"))
	if m.state != constants.StateBehaviors {
		t.Errorf("after tab state = %v, want behaviors", m.state)
	}
	m = send(t, m, keyPress("tab"))
	if m.state != constants.StateEntries {
		t.Errorf("tab should wrap back to entries, got %v", m.state)
	}
	m = send(t, m, keyPress("shift+tab"))
	if m.state != constants.StateBehaviors {
		t.Errorf("after shift+tab state = %v, want behaviors", m.state)
	}
}

func TestQuit(t *testing.T) {
	m, _ := setupTestModel(t)
	next, cmd := m.Update(keyPress("ctrl+c"))
	if cmd == nil {
		t.Error("ctrl+c should return a quit command")
	}
	if v := next.(Model).View(); v != "" {
		t.Errorf("View after quit = %q, want empty", v)
	}
}

func TestDeleteEntryConfirmation(t *testing.T) {
	m, ctx := setupTestModel(t)
	e := addEntry(t, ctx, "had coffee", "")
	m.refresh()

	t.Run("cancel", func(t *testing.T) {
		m := send(t, m, entrylist.DeleteEntryMsg{ID: e.ID})
		if m.state != constants.StateConfirmDelete {
			t.Fatalf("state = %v, want confirm delete", m.state)
		}
		if !strings.Contains(m.View(), "Are you sure") {
			t.Error("confirmation prompt not shown")
		}
		m = send(t, m, keyPress("n"))
		if m.state != constants.StateEntries {
			t.Errorf("state after cancel = %v, want entries", m.state)
		}
		if _, ok := ctx.Entries.Get(e.ID); !ok {
			t.Error("entry deleted despite cancel")
		}
	})

	t.Run("confirm", func(t *testing.T) {
		m := send(t, m, entrylist.DeleteEntryMsg{ID: e.ID})
		m = send(t, m, keyPress("y"))
		if m.state != constants.StateEntries {
			t.Errorf("state after delete = %v, want entries", m.state)
		}
		if _, ok := ctx.Entries.Get(e.ID); ok {
			t.Error("entry still present after confirmed delete")
		}
		if !strings.Contains(m.status, "deleted") {
			t.Errorf("status = %q", m.status)
		}
	})
}

func TestDeleteKeyEmitsMessageForSelectedEntry(t *testing.T) {
	m, ctx := setupTestModel(t)
	e := addEntry(t, ctx, "had coffee", "")
	m.refresh()

	_, cmd := m.Update(keyPress("d"))
	if cmd == nil {
		t.Fatal("expected a command from the delete key")
	}
	msg, ok := cmd().(entrylist.DeleteEntryMsg)
	if !ok || msg.ID != e.ID {
		t.Errorf("delete key produced %#v, want DeleteEntryMsg for %s", msg, e.ID)
	}
}

func TestDeleteBehaviorKeepsEntryReference(t *testing.T) {
	m, ctx := setupTestModel(t)
	b, err := ctx.Behaviors.Create("Late nights", models.CategorySleep)
	if err != nil {
		t.Fatal(err)
	}
	e := addEntry(t, ctx, "stayed up late", b.ID)
	m.refresh()

	m = send(t, m, keyPress("tab"))
	m = send(t, m, behaviorlist.DeleteBehaviorMsg{ID: b.ID})
	if !strings.Contains(m.View(), "keep their reference") {
		t.Error("behavior delete should warn about linked entries")
	}
	m = send(t, m, keyPress("y"))

	if _, ok := ctx.Behaviors.Get(b.ID); ok {
		t.Error("behavior not deleted")
	}
	got, _ := ctx.Entries.Get(e.ID)
	if got.BehaviorID != b.ID {
		t.Errorf("entry behaviorId = %q, want it kept as %q", got.BehaviorID, b.ID)
	}
	if m.state != constants.StateBehaviors {
		t.Errorf("state = %v, want behaviors", m.state)
	}
}

func TestThreadMemoToggles(t *testing.T) {
	m, ctx := setupTestModel(t)
	b, err := ctx.Behaviors.Create("Coffee", models.CategoryFood)
	if err != nil {
		t.Fatal(err)
	}
	e := addEntry(t, ctx, "had coffee", b.ID)
	memo, _, err := ctx.Entries.AddMemo(e.ID, models.NewMemo{Note: "jittery"})
	if err != nil {
		t.Fatal(err)
	}
	m.refresh()

	m = send(t, m, keyPress("tab"))
	m = send(t, m, behaviorlist.OpenBehaviorMsg{ID: b.ID})
	if m.state != constants.StateThread {
		t.Fatalf("state = %v, want thread", m.state)
	}
	if !strings.Contains(m.View(), "Coffee") {
		t.Error("thread view should show the behavior name")
	}

	m = send(t, m, thread.ToggleStarMsg{EntryID: e.ID, MemoID: memo.ID})
	m = send(t, m, thread.ToggleHiddenMsg{EntryID: e.ID, MemoID: memo.ID})
	got, _ := ctx.Entries.Get(e.ID)
	if !got.Memos[0].IsStarred || !got.Memos[0].IsHidden {
		t.Errorf("memo = %+v, want starred and hidden", got.Memos[0])
	}

	m = send(t, m, thread.BackMsg{})
	if m.state != constants.StateBehaviors {
		t.Errorf("back from thread = %v, want behaviors", m.state)
	}
}

func TestMemoFormFromThreadReturnsToThread(t *testing.T) {
	m, ctx := setupTestModel(t)
	e := addEntry(t, ctx, "had coffee", "")
	m.refresh()

	m = send(t, m, entrylist.OpenEntryMsg{ID: e.ID})
	m = send(t, m, thread.AddMemoMsg{EntryID: e.ID})
	if m.state != constants.StateAddMemo {
		t.Fatalf("state = %v, want add memo", m.state)
	}

	m = send(t, m, keyPress("esc"))
	if m.state != constants.StateThread {
		t.Errorf("esc from memo form = %v, want thread", m.state)
	}
	if m.form != nil {
		t.Error("form should be cleared")
	}

	m = send(t, m, thread.BackMsg{})
	if m.state != constants.StateEntries {
		t.Errorf("back from thread = %v, want entries", m.state)
	}
}

func TestSaveEntry(t *testing.T) {
	m, ctx := setupTestModel(t)
	if _, err := ctx.Behaviors.Create("had coffee", models.CategoryFood); err != nil {
		t.Fatal(err)
	}

	m = send(t, m, entrylist.AddEntryMsg{})
	if m.state != constants.StateAddEntry {
		t.Fatalf("state = %v, want add entry", m.state)
	}

	m.entryForm.Action = "had coffee"
	m.entryForm.Rating = "terrible"
	if m.saveEntry() {
		t.Error("invalid rating should not save")
	}
	if !strings.Contains(m.formError, "rating") {
		t.Errorf("formError = %q", m.formError)
	}

	m.entryForm.Rating = string(models.RatingFine)
	m.entryForm.Context = []string{string(models.TimeMorning)}
	if !m.saveEntry() {
		t.Fatalf("saveEntry failed: %s", m.formError)
	}
	all := ctx.Entries.All()
	if len(all) != 1 || all[0].Action != "had coffee" || all[0].PhysicalRating != models.RatingFine {
		t.Errorf("entries = %+v", all)
	}
	if !strings.Contains(m.status, `looks like "had coffee"`) {
		t.Errorf("status should suggest the similar behavior, got %q", m.status)
	}
}

func TestSaveMemo(t *testing.T) {
	m, ctx := setupTestModel(t)
	e := addEntry(t, ctx, "had coffee", "")
	m.refresh()

	m = send(t, m, entrylist.AddMemoMsg{EntryID: e.ID})

	m.memoForm.Note = strings.Repeat("x", constants.MemoNoteMaxLen+1)
	if m.saveMemo() {
		t.Error("overlong note should not save")
	}

	m.memoForm.Note = "slept fine anyway"
	m.memoForm.Outcome = string(models.OutcomeResisted)
	if !m.saveMemo() {
		t.Fatalf("saveMemo failed: %s", m.formError)
	}
	got, _ := ctx.Entries.Get(e.ID)
	if len(got.Memos) != 1 || got.Memos[0].Outcome != models.OutcomeResisted {
		t.Errorf("memos = %+v", got.Memos)
	}

	m.memoForm.EntryID = "missing"
	if m.saveMemo() {
		t.Error("memo for a missing entry should not save")
	}
}

func TestAutoGroup(t *testing.T) {
	t.Run("nothing to group", func(t *testing.T) {
		m, _ := setupTestModel(t)
		m = send(t, m, keyPress("tab"))
		m = send(t, m, behaviorlist.AutoGroupMsg{})
		if m.state != constants.StateBehaviors {
			t.Errorf("state = %v, want behaviors", m.state)
		}
		if !strings.Contains(m.status, "No groups") {
			t.Errorf("status = %q", m.status)
		}
	})

	t.Run("commit", func(t *testing.T) {
		m, ctx := setupTestModel(t)
		addEntry(t, ctx, "stayed up", "")
		addEntry(t, ctx, "stayed up late", "")
		m.refresh()

		m = send(t, m, keyPress("tab"))
		m = send(t, m, behaviorlist.AutoGroupMsg{})
		if m.state != constants.StateConfirmGroup {
			t.Fatalf("state = %v, want confirm group", m.state)
		}
		if !strings.Contains(m.View(), "stayed up late (new, 2 entries)") {
			t.Errorf("group preview missing:\n%s", m.View())
		}

		m = send(t, m, keyPress("y"))
		if m.state != constants.StateBehaviors {
			t.Errorf("state = %v, want behaviors", m.state)
		}
		if n := len(ctx.Behaviors.All()); n != 1 {
			t.Fatalf("created %d behaviors, want 1", n)
		}
		if !strings.Contains(m.status, "Linked 2 entries") {
			t.Errorf("status = %q", m.status)
		}
	})
}
