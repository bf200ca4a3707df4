package behaviors

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/worthit/internal/constants"
	"github.com/julianstephens/worthit/internal/entries"
	"github.com/julianstephens/worthit/internal/logger"
	"github.com/julianstephens/worthit/internal/models"
	"github.com/julianstephens/worthit/internal/similarity"
	"github.com/julianstephens/worthit/internal/storage"
)

// Engine owns the behavior collection and reads entries from an entry store.
// Membership lives on the entries; the engine never rewrites it except
// through Link, Unlink and CommitGroups.
type Engine struct {
	provider  storage.Provider
	entries   *entries.Store
	behaviors []models.Behavior
	now       func() time.Time
	newID     func() string
}

type Option func(*Engine)

func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func WithIDFunc(newID func() string) Option {
	return func(e *Engine) { e.newID = newID }
}

func NewEngine(provider storage.Provider, entryStore *entries.Store, opts ...Option) *Engine {
	e := &Engine{
		provider:  provider,
		entries:   entryStore,
		behaviors: []models.Behavior{},
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Load() error {
	raw, ok, err := e.provider.Get(constants.BehaviorsKey)
	if err != nil {
		return fmt.Errorf("failed to load behaviors: %w", err)
	}
	if !ok {
		e.behaviors = []models.Behavior{}
		return nil
	}

	behaviors, err := DecodeBehaviors(raw)
	if err != nil {
		logger.Warn("Discarding unreadable behavior collection", "error", err)
		behaviors = []models.Behavior{}
	}
	e.behaviors = behaviors
	return nil
}

func (e *Engine) save(next []models.Behavior) error {
	data, err := EncodeBehaviors(next)
	if err != nil {
		return err
	}
	if err := e.provider.Set(constants.BehaviorsKey, data); err != nil {
		return fmt.Errorf("failed to save behaviors: %w", err)
	}
	e.behaviors = next
	return nil
}

func (e *Engine) index(id string) int {
	for i := range e.behaviors {
		if e.behaviors[i].ID == id {
			return i
		}
	}
	return -1
}

func (e *Engine) clone() []models.Behavior {
	next := make([]models.Behavior, len(e.behaviors))
	copy(next, e.behaviors)
	return next
}

// Create appends a new behavior.
func (e *Engine) Create(name string, category models.Category, triggers ...string) (models.Behavior, error) {
	if triggers == nil {
		triggers = []string{}
	}
	now := e.now()
	b := models.Behavior{
		ID:        e.newID(),
		Name:      name,
		Category:  category,
		Triggers:  triggers,
		CreatedAt: now,
		UpdatedAt: now,
	}

	next := append(e.clone(), b)
	if err := e.save(next); err != nil {
		return models.Behavior{}, err
	}
	logger.Debug("Created behavior", "id", b.ID, "name", b.Name)
	return b, nil
}

// Update merges patch and refreshes UpdatedAt. Unknown ids are ignored.
func (e *Engine) Update(id string, patch models.BehaviorPatch) error {
	i := e.index(id)
	if i < 0 {
		logger.Debug("Update of unknown behavior ignored", "id", id)
		return nil
	}

	next := e.clone()
	patch.Apply(&next[i])
	next[i].UpdatedAt = e.now()
	return e.save(next)
}

// Remove deletes the behavior. Entries keep their behaviorId.
func (e *Engine) Remove(id string) error {
	i := e.index(id)
	if i < 0 {
		logger.Debug("Remove of unknown behavior ignored", "id", id)
		return nil
	}

	next := make([]models.Behavior, 0, len(e.behaviors)-1)
	next = append(next, e.behaviors[:i]...)
	next = append(next, e.behaviors[i+1:]...)
	return e.save(next)
}

func (e *Engine) All() []models.Behavior {
	return e.clone()
}

func (e *Engine) Get(id string) (models.Behavior, bool) {
	i := e.index(id)
	if i < 0 {
		return models.Behavior{}, false
	}
	return e.behaviors[i], true
}

// GetByName matches names exactly, ignoring case.
func (e *Engine) GetByName(name string) (models.Behavior, bool) {
	for _, b := range e.behaviors {
		if strings.EqualFold(b.Name, name) {
			return b, true
		}
	}
	return models.Behavior{}, false
}

// EntriesFor returns the entries linked to behaviorID, newest first.
func (e *Engine) EntriesFor(behaviorID string) []models.Entry {
	var out []models.Entry
	for _, entry := range e.entries.All() {
		if entry.BehaviorID == behaviorID {
			out = append(out, entry)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// FindSimilar returns behaviors whose name is at least threshold similar to
// text, in collection order.
func (e *Engine) FindSimilar(text string, threshold float64) []models.Behavior {
	var out []models.Behavior
	for _, b := range e.behaviors {
		if similarity.Similar(text, b.Name, threshold) {
			out = append(out, b)
		}
	}
	return out
}

// Link points an entry at a behavior. The behavior is not required to exist.
func (e *Engine) Link(entryID, behaviorID string) error {
	return e.entries.Update(entryID, models.EntryPatch{BehaviorID: &behaviorID})
}

func (e *Engine) Unlink(entryID string) error {
	empty := ""
	return e.entries.Update(entryID, models.EntryPatch{BehaviorID: &empty})
}

// DanglingEntries returns entries whose behaviorId names no behavior.
func (e *Engine) DanglingEntries() []models.Entry {
	var out []models.Entry
	for _, entry := range e.entries.All() {
		if entry.IsLinked() && e.index(entry.BehaviorID) < 0 {
			out = append(out, entry)
		}
	}
	return out
}
