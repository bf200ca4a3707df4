package entries

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/worthit/internal/models"
)

// storedEntry mirrors the persisted record. Fields added after the first
// release are optional and backfilled by decodeEntry.
type storedEntry struct {
	ID             string                `json:"id"`
	Action         string                `json:"action"`
	Category       models.Category       `json:"category"`
	Context        []models.TimeOfDay    `json:"context"`
	PhysicalRating models.PhysicalRating `json:"physicalRating"`
	EmotionalTags  []string              `json:"emotionalTags"`
	WorthIt        models.WorthIt        `json:"worthIt"`
	Note           string                `json:"note"`
	CreatedAt      time.Time             `json:"createdAt"`
	EntryType      models.EntryType      `json:"entryType"`
	BehaviorID     string                `json:"behaviorId"`
	Memos          []models.Memo         `json:"memos"`
}

// DecodeEntries parses a serialized entry collection. Records missing
// entryType are treated as did-it and records missing memos get an empty
// list. Any structural mismatch returns an error and no entries.
func DecodeEntries(raw string) ([]models.Entry, error) {
	if strings.TrimSpace(raw) == "" {
		return []models.Entry{}, nil
	}

	var stored []storedEntry
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return []models.Entry{}, fmt.Errorf("failed to decode entries: %w", err)
	}

	out := make([]models.Entry, 0, len(stored))
	for _, s := range stored {
		out = append(out, decodeEntry(s))
	}
	return out, nil
}

func decodeEntry(s storedEntry) models.Entry {
	e := models.Entry{
		ID:             s.ID,
		Action:         s.Action,
		Category:       s.Category,
		Context:        s.Context,
		PhysicalRating: s.PhysicalRating,
		EmotionalTags:  s.EmotionalTags,
		WorthIt:        s.WorthIt,
		Note:           s.Note,
		CreatedAt:      s.CreatedAt,
		EntryType:      s.EntryType,
		BehaviorID:     s.BehaviorID,
		Memos:          s.Memos,
	}
	if e.EntryType == "" {
		e.EntryType = models.EntryDidIt
	}
	if e.Memos == nil {
		e.Memos = []models.Memo{}
	}
	if e.Context == nil {
		e.Context = []models.TimeOfDay{}
	}
	if e.EmotionalTags == nil {
		e.EmotionalTags = []string{}
	}
	return e
}

// EncodeEntries serializes the whole collection.
func EncodeEntries(entries []models.Entry) (string, error) {
	if entries == nil {
		entries = []models.Entry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return "", fmt.Errorf("failed to encode entries: %w", err)
	}
	return string(data), nil
}
