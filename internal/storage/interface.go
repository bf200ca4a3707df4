package storage

import "errors"

var (
	// ErrNotInitialized is returned by Load when the backing resource does not exist yet
	ErrNotInitialized = errors.New("storage not initialized")
	// ErrNotLoaded is returned by Get/Set before Init or Load
	ErrNotLoaded = errors.New("storage not loaded")
)

// Provider is a durable key-value store of serialized collections. Each
// collection lives under one key and is always written whole.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Get returns the value stored under key; ok is false when the key is absent.
	Get(key string) (value string, ok bool, err error)
	// Set replaces the value stored under key.
	Set(key, value string) error

	// Utils
	GetConfigPath() string
}

// Keyed is implemented by providers that can enumerate their keys. It is
// used by doctor and by init --source.
type Keyed interface {
	Keys() ([]string, error)
}
