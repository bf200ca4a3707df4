package storage

import "sort"

// MemoryStore is an in-process Provider. It backs tests and dry runs.
type MemoryStore struct {
	values map[string]string
	// Writes counts successful Set calls.
	Writes int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (s *MemoryStore) Init() error  { return nil }
func (s *MemoryStore) Load() error  { return nil }
func (s *MemoryStore) Close() error { return nil }

func (s *MemoryStore) Get(key string) (string, bool, error) {
	value, ok := s.values[key]
	return value, ok, nil
}

func (s *MemoryStore) Set(key, value string) error {
	s.values[key] = value
	s.Writes++
	return nil
}

func (s *MemoryStore) Keys() ([]string, error) {
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *MemoryStore) GetConfigPath() string { return ":memory:" }
