package entries

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/worthit/internal/constants"
	"github.com/julianstephens/worthit/internal/logger"
	"github.com/julianstephens/worthit/internal/models"
	"github.com/julianstephens/worthit/internal/similarity"
	"github.com/julianstephens/worthit/internal/storage"
)

// Store owns the entry collection. Every mutation rewrites the whole
// collection through the provider; the in-memory copy only changes once the
// write succeeds.
type Store struct {
	provider storage.Provider
	entries  []models.Entry
	now      func() time.Time
	newID    func() string
}

type Option func(*Store)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDFunc overrides the id generator.
func WithIDFunc(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

func NewStore(provider storage.Provider, opts ...Option) *Store {
	s := &Store{
		provider: provider,
		entries:  []models.Entry{},
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the in-memory collection with the persisted one. A missing or
// unreadable collection becomes empty; only provider failures are returned.
func (s *Store) Load() error {
	raw, ok, err := s.provider.Get(constants.EntriesKey)
	if err != nil {
		return fmt.Errorf("failed to load entries: %w", err)
	}
	if !ok {
		s.entries = []models.Entry{}
		return nil
	}

	entries, err := DecodeEntries(raw)
	if err != nil {
		logger.Warn("Discarding unreadable entry collection", "error", err)
		entries = []models.Entry{}
	}
	s.entries = entries
	return nil
}

func (s *Store) save(next []models.Entry) error {
	data, err := EncodeEntries(next)
	if err != nil {
		return err
	}
	if err := s.provider.Set(constants.EntriesKey, data); err != nil {
		return fmt.Errorf("failed to save entries: %w", err)
	}
	s.entries = next
	return nil
}

func (s *Store) index(id string) int {
	for i := range s.entries {
		if s.entries[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) clone() []models.Entry {
	next := make([]models.Entry, len(s.entries))
	copy(next, s.entries)
	return next
}

// Add stores a new entry at the front of the collection.
func (s *Store) Add(in models.NewEntry) (models.Entry, error) {
	entry := models.Entry{
		ID:             s.newID(),
		Action:         in.Action,
		Category:       in.Category,
		Context:        in.Context,
		PhysicalRating: in.PhysicalRating,
		EmotionalTags:  in.EmotionalTags,
		WorthIt:        in.WorthIt,
		Note:           in.Note,
		CreatedAt:      s.now(),
		EntryType:      in.EntryType,
		BehaviorID:     in.BehaviorID,
		Memos:          []models.Memo{},
	}
	if entry.Context == nil {
		entry.Context = []models.TimeOfDay{}
	}
	if entry.EmotionalTags == nil {
		entry.EmotionalTags = []string{}
	}
	if entry.EntryType == "" {
		entry.EntryType = models.EntryDidIt
	}

	next := make([]models.Entry, 0, len(s.entries)+1)
	next = append(next, entry)
	next = append(next, s.entries...)
	if err := s.save(next); err != nil {
		return models.Entry{}, err
	}

	logger.Debug("Added entry", "id", entry.ID)
	return entry, nil
}

// Update merges patch into the entry with the given id. Unknown ids are ignored.
func (s *Store) Update(id string, patch models.EntryPatch) error {
	i := s.index(id)
	if i < 0 {
		logger.Debug("Update of unknown entry ignored", "id", id)
		return nil
	}

	next := s.clone()
	patch.Apply(&next[i])
	return s.save(next)
}

// Remove deletes the entry with the given id. Unknown ids are ignored and
// behaviors are never touched.
func (s *Store) Remove(id string) error {
	i := s.index(id)
	if i < 0 {
		logger.Debug("Remove of unknown entry ignored", "id", id)
		return nil
	}

	next := make([]models.Entry, 0, len(s.entries)-1)
	next = append(next, s.entries[:i]...)
	next = append(next, s.entries[i+1:]...)
	return s.save(next)
}

// Search returns entries whose action, note, category or any emotional tag
// contains query, ignoring case. An empty query matches every entry.
func (s *Store) Search(query string) []models.Entry {
	q := strings.ToLower(query)
	var out []models.Entry
	for _, e := range s.entries {
		if matches(e, q) {
			out = append(out, e)
		}
	}
	return out
}

func matches(e models.Entry, q string) bool {
	if strings.Contains(strings.ToLower(e.Action), q) ||
		strings.Contains(strings.ToLower(e.Note), q) ||
		strings.Contains(strings.ToLower(string(e.Category)), q) {
		return true
	}
	for _, tag := range e.EmotionalTags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// Recent returns up to limit entries from the front of the collection.
func (s *Store) Recent(limit int) []models.Entry {
	if limit <= 0 {
		return []models.Entry{}
	}
	if limit > len(s.entries) {
		limit = len(s.entries)
	}
	out := make([]models.Entry, limit)
	copy(out, s.entries[:limit])
	return out
}

// All returns a copy of the collection, newest first.
func (s *Store) All() []models.Entry {
	return s.clone()
}

func (s *Store) Get(id string) (models.Entry, bool) {
	i := s.index(id)
	if i < 0 {
		return models.Entry{}, false
	}
	return s.entries[i], true
}

func (s *Store) ByCategory(category models.Category) []models.Entry {
	var out []models.Entry
	for _, e := range s.entries {
		if e.Category == category {
			out = append(out, e)
		}
	}
	return out
}

// FirstEntryDate returns the oldest createdAt, or nil for an empty collection.
func (s *Store) FirstEntryDate() *time.Time {
	var first *time.Time
	for i := range s.entries {
		t := s.entries[i].CreatedAt
		if first == nil || t.Before(*first) {
			first = &t
		}
	}
	return first
}

// Similar returns past entries whose action is at least threshold similar to
// action, newest first.
func (s *Store) Similar(action string, threshold float64) []models.Entry {
	var out []models.Entry
	for _, e := range s.entries {
		if similarity.Similar(action, e.Action, threshold) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
