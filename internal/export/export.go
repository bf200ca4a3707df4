package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/worthit/internal/behaviors"
	"github.com/julianstephens/worthit/internal/constants"
	"github.com/julianstephens/worthit/internal/entries"
	"github.com/julianstephens/worthit/internal/models"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Snapshot is the exported view of a journal: every entry with its memos and
// every behavior with its derived stats.
type Snapshot struct {
	Version    string                     `json:"version" yaml:"version"`
	ExportedAt time.Time                  `json:"exportedAt" yaml:"exportedAt"`
	Entries    []models.Entry             `json:"entries" yaml:"entries"`
	Behaviors  []models.BehaviorWithStats `json:"behaviors" yaml:"behaviors"`

	// Legacy is set when the input was a bare entries array as persisted
	// under worthit_entries rather than a snapshot.
	Legacy bool `json:"-" yaml:"-"`
}

// jsonSnapshot defers entry decoding to the entries codec so older records
// get the same backfill as stored ones.
type jsonSnapshot struct {
	Version    string                     `json:"version"`
	ExportedAt time.Time                  `json:"exportedAt"`
	Entries    json.RawMessage            `json:"entries"`
	Behaviors  []models.BehaviorWithStats `json:"behaviors"`
}

func NewSnapshot(entries []models.Entry, behaviors []models.BehaviorWithStats, now time.Time) Snapshot {
	if entries == nil {
		entries = []models.Entry{}
	}
	if behaviors == nil {
		behaviors = []models.BehaviorWithStats{}
	}
	return Snapshot{
		Version:    constants.Version,
		ExportedAt: now,
		Entries:    entries,
		Behaviors:  behaviors,
	}
}

func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJSON, FormatYAML:
		return Format(s), nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported export format: %s (use json or yaml)", s)
	}
}

// Write encodes snap to w in the given format.
func Write(w io.Writer, format Format, snap Snapshot) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(snap); err != nil {
			return fmt.Errorf("failed to encode json export: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(snap); err != nil {
			return fmt.Errorf("failed to encode yaml export: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to finish yaml export: %w", err)
		}
	default:
		return fmt.Errorf("unsupported export format: %s", format)
	}
	return nil
}

// Read decodes a snapshot previously produced by Write. JSON input may also be
// a bare entries array.
func Read(r io.Reader, format Format) (Snapshot, error) {
	switch format {
	case FormatJSON:
		data, err := io.ReadAll(r)
		if err != nil {
			return Snapshot{}, fmt.Errorf("failed to read json export: %w", err)
		}
		return decodeJSON(data)
	case FormatYAML:
		var snap Snapshot
		if err := yaml.NewDecoder(r).Decode(&snap); err != nil {
			return Snapshot{}, fmt.Errorf("failed to decode yaml export: %w", err)
		}
		return snap, nil
	default:
		return Snapshot{}, fmt.Errorf("unsupported export format: %s", format)
	}
}

func decodeJSON(data []byte) (Snapshot, error) {
	data = bytes.TrimSpace(data)
	if bytes.HasPrefix(data, []byte("[")) {
		list, err := entries.DecodeEntries(string(data))
		if err != nil {
			return Snapshot{}, err
		}
		snap := NewSnapshot(list, nil, time.Time{})
		snap.Version = ""
		snap.Legacy = true
		return snap, nil
	}

	var raw jsonSnapshot
	if err := json.Unmarshal(data, &raw); err != nil {
		return Snapshot{}, fmt.Errorf("failed to decode json export: %w", err)
	}
	list, err := entries.DecodeEntries(string(raw.Entries))
	if err != nil {
		return Snapshot{}, err
	}
	for i := range raw.Behaviors {
		if raw.Behaviors[i].Behavior.Triggers == nil {
			raw.Behaviors[i].Behavior.Triggers = []string{}
		}
	}
	snap := NewSnapshot(list, raw.Behaviors, raw.ExportedAt)
	snap.Version = raw.Version
	return snap, nil
}

// ReadBehaviors decodes a bare behaviors array as persisted under
// worthit_behaviors.
func ReadBehaviors(r io.Reader) ([]models.Behavior, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read behaviors file: %w", err)
	}
	return behaviors.DecodeBehaviors(string(data))
}
