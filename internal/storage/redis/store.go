package redis

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/julianstephens/worthit/internal/constants"
	"github.com/julianstephens/worthit/internal/storage"
)

const (
	keyPrefix = constants.AppName + ":"
	// markerKey is written by Init so Load can tell an empty server from an initialized one.
	markerKey = keyPrefix + "meta:version"

	opTimeout = 5 * time.Second
)

// Store keeps each collection as a single string key under the worthit: prefix.
type Store struct {
	url    string
	client *goredis.Client
}

func New(url string) *Store {
	return &Store{url: url}
}

func (s *Store) connect() error {
	if s.client != nil {
		return nil
	}

	opts, err := goredis.ParseURL(s.url)
	if err != nil {
		return fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	opts.PoolSize = 2
	opts.MaxRetries = 3
	opts.DialTimeout = opTimeout
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := goredis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	s.client = client
	return nil
}

func (s *Store) Init() error {
	if err := s.connect(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	if err := s.client.SetNX(ctx, markerKey, "1", 0).Err(); err != nil {
		return fmt.Errorf("failed to initialize redis storage: %w", err)
	}
	return nil
}

func (s *Store) Load() error {
	if err := s.connect(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	n, err := s.client.Exists(ctx, markerKey).Result()
	if err != nil {
		return fmt.Errorf("failed to check redis storage: %w", err)
	}
	if n == 0 {
		return storage.ErrNotInitialized
	}
	return nil
}

func (s *Store) Close() error {
	if s.client != nil {
		err := s.client.Close()
		s.client = nil
		return err
	}
	return nil
}

func (s *Store) Get(key string) (string, bool, error) {
	if s.client == nil {
		return "", false, storage.ErrNotLoaded
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	value, err := s.client.Get(ctx, keyPrefix+key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return value, true, nil
}

func (s *Store) Set(key, value string) error {
	if s.client == nil {
		return storage.ErrNotLoaded
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	if err := s.client.Set(ctx, keyPrefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (s *Store) Keys() ([]string, error) {
	if s.client == nil {
		return nil, storage.ErrNotLoaded
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var keys []string
	iter := s.client.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		k := iter.Val()
		if k == markerKey {
			continue
		}
		keys = append(keys, strings.TrimPrefix(k, keyPrefix))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *Store) GetConfigPath() string {
	return "redis"
}
