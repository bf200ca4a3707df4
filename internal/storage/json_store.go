package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/julianstephens/worthit/internal/logger"
)

type document struct {
	Version int               `json:"version"`
	Values  map[string]string `json:"values"`
}

// JSONStore keeps every key in a single JSON document on disk and rewrites
// the whole file on each Set.
type JSONStore struct {
	path      string
	doc       *document
	recovered error
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.doc = &document{
		Version: 1,
		Values:  make(map[string]string),
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotInitialized
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.recovered = nil
	doc := &document{}
	if err := json.Unmarshal(data, doc); err != nil {
		s.resetCorrupt(data, err)
		return nil
	}
	if doc.Values == nil {
		doc.Values = make(map[string]string)
	}
	s.doc = doc

	return nil
}

// resetCorrupt starts from an empty document after a parse failure. The unreadable
// bytes are copied to CorruptPath first, since the next Set overwrites the file.
func (s *JSONStore) resetCorrupt(data []byte, parseErr error) {
	s.recovered = fmt.Errorf("failed to parse storage: %w", parseErr)
	logger.Warn("Storage file is corrupt, starting empty", "path", s.path, "error", parseErr)
	if err := os.WriteFile(s.CorruptPath(), data, 0600); err != nil {
		logger.Warn("Failed to preserve corrupt storage file", "path", s.CorruptPath(), "error", err)
	}
	s.doc = &document{
		Version: 1,
		Values:  make(map[string]string),
	}
}

// Recovered returns the parse error Load recovered from, or nil.
func (s *JSONStore) Recovered() error {
	return s.recovered
}

func (s *JSONStore) CorruptPath() string {
	return s.path + ".corrupt"
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	// Write to a sibling file and rename so a crash never leaves a torn document.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace storage: %w", err)
	}

	return nil
}

func (s *JSONStore) Get(key string) (string, bool, error) {
	if s.doc == nil {
		return "", false, ErrNotLoaded
	}
	value, ok := s.doc.Values[key]
	return value, ok, nil
}

func (s *JSONStore) Set(key, value string) error {
	if s.doc == nil {
		return ErrNotLoaded
	}
	s.doc.Values[key] = value
	return s.save()
}

func (s *JSONStore) Keys() ([]string, error) {
	if s.doc == nil {
		return nil, ErrNotLoaded
	}
	keys := make([]string, 0, len(s.doc.Values))
	for k := range s.doc.Values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
