package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestJSONStoreLifecycle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "worthit.json")
	store := NewJSONStore(path)

	if err := store.Load(); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("Load() before Init error = %v, want ErrNotInitialized", err)
	}

	if err := store.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if err := store.Init(); err == nil {
		t.Error("second Init() should fail when the file already exists")
	}

	if _, ok, err := store.Get("worthit_entries"); err != nil || ok {
		t.Errorf("Get() on fresh store = (ok=%v, err=%v), want absent", ok, err)
	}

	if err := store.Set("worthit_entries", `[{"id":"a"}]`); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	reopened := NewJSONStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	got, ok, err := reopened.Get("worthit_entries")
	if err != nil || !ok {
		t.Fatalf("Get() after reload = (ok=%v, err=%v)", ok, err)
	}
	if got != `[{"id":"a"}]` {
		t.Errorf("Get() = %q, want stored value", got)
	}

	keys, err := reopened.Keys()
	if err != nil {
		t.Fatalf("Keys() error = %v", err)
	}
	if len(keys) != 1 || keys[0] != "worthit_entries" {
		t.Errorf("Keys() = %v", keys)
	}

	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temporary file should not remain after save")
	}
}

func TestJSONStoreNotLoaded(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "worthit.json"))

	if _, _, err := store.Get("k"); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("Get() error = %v, want ErrNotLoaded", err)
	}
	if err := store.Set("k", "v"); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("Set() error = %v, want ErrNotLoaded", err)
	}
}

func TestJSONStoreCorruptDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "worthit.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}

	store := NewJSONStore(path)
	if err := store.Load(); err != nil {
		t.Fatalf("Load() of a corrupt document error = %v, want recovery", err)
	}
	if store.Recovered() == nil {
		t.Error("Recovered() should report the parse failure")
	}
	if _, ok, err := store.Get("worthit_entries"); err != nil || ok {
		t.Errorf("Get() after recovery = (ok=%v, err=%v), want absent", ok, err)
	}

	saved, err := os.ReadFile(store.CorruptPath())
	if err != nil {
		t.Fatalf("corrupt copy not written: %v", err)
	}
	if string(saved) != "{not json" {
		t.Errorf("corrupt copy = %q", saved)
	}

	if err := store.Set("worthit_entries", "[]"); err != nil {
		t.Fatalf("Set() after recovery error = %v", err)
	}
	reopened := NewJSONStore(path)
	if err := reopened.Load(); err != nil || reopened.Recovered() != nil {
		t.Errorf("reload after write = (%v, recovered %v), want a clean document", err, reopened.Recovered())
	}
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()

	if err := store.Set("b", "2"); err != nil {
		t.Fatal(err)
	}
	if err := store.Set("a", "1"); err != nil {
		t.Fatal(err)
	}

	if v, ok, _ := store.Get("a"); !ok || v != "1" {
		t.Errorf("Get(a) = %q, %v", v, ok)
	}
	if store.Writes != 2 {
		t.Errorf("Writes = %d, want 2", store.Writes)
	}
	keys, _ := store.Keys()
	if len(keys) != 2 || keys[0] != "a" {
		t.Errorf("Keys() = %v, want sorted", keys)
	}
}
