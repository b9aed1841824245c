package score

import (
	"errors"
	"fmt"
	"sync"

	"github.com/quasilyte/gdata/v2"
)

// ErrNotFound is returned by Store.Load when the key has never been saved.
var ErrNotFound = errors.New("key not found")

// Store is a small string-keyed blob store.
type Store interface {
	Load(key string) ([]byte, error)
	Save(key string, data []byte) error
}

// gdataObject groups every key this game saves under one gdata object.
const gdataObject = "flappy"

// GdataStore persists values in the per-user application data directory.
type GdataStore struct {
	m *gdata.Manager
}

// OpenGdataStore opens (or creates) the data directory for appName.
func OpenGdataStore(appName string) (*GdataStore, error) {
	m, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		return nil, fmt.Errorf("open data dir %q: %w", appName, err)
	}
	return &GdataStore{m: m}, nil
}

// Load returns the stored value or ErrNotFound.
func (s *GdataStore) Load(key string) ([]byte, error) {
	if !s.m.ObjectPropExists(gdataObject, key) {
		return nil, ErrNotFound
	}
	data, err := s.m.LoadObjectProp(gdataObject, key)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	return data, nil
}

// Save overwrites the value stored under key.
func (s *GdataStore) Save(key string, data []byte) error {
	if err := s.m.SaveObjectProp(gdataObject, key, data); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// MemoryStore keeps values in memory. Safe for concurrent use.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

// Load returns a copy of the stored value or ErrNotFound.
func (s *MemoryStore) Load(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

// Save stores a copy of data under key.
func (s *MemoryStore) Save(key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = append([]byte(nil), data...)
	return nil
}
