package testutils

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"magicgatherer-api/internal/cache"
	"magicgatherer-api/internal/model"
	"magicgatherer-api/internal/repository"
)

// MockStore is an in-memory cache.Store that counts calls.
type MockStore struct {
	mu      sync.Mutex
	entries map[string][]byte
	ttls    map[string]time.Duration

	GetCalls          atomic.Int32
	SetCalls          atomic.Int32
	DeletePrefixCalls atomic.Int32

	// Fail makes every operation return FailError.
	Fail      atomic.Bool
	FailError error
}

// NewMockStore creates an empty MockStore.
func NewMockStore() *MockStore {
	return &MockStore{
		entries: make(map[string][]byte),
		ttls:    make(map[string]time.Duration),
	}
}

var _ cache.Store = (*MockStore)(nil)

func (m *MockStore) err() error {
	if !m.Fail.Load() {
		return nil
	}
	if m.FailError != nil {
		return m.FailError
	}
	return cache.CacheError("store unavailable")
}

func (m *MockStore) Get(ctx context.Context, key string) ([]byte, error) {
	m.GetCalls.Add(1)
	if err := m.err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.entries[key]
	if !ok {
		return nil, cache.ErrCacheMiss
	}
	return v, nil
}

func (m *MockStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.SetCalls.Add(1)
	if err := m.err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = value
	m.ttls[key] = ttl
	return nil
}

func (m *MockStore) Delete(ctx context.Context, key string) error {
	if err := m.err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	delete(m.ttls, key)
	return nil
}

func (m *MockStore) DeletePrefix(ctx context.Context, prefix string) (int, error) {
	m.DeletePrefixCalls.Add(1)
	if err := m.err(); err != nil {
		return 0, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for k := range m.entries {
		if strings.HasPrefix(k, prefix) {
			delete(m.entries, k)
			delete(m.ttls, k)
			n++
		}
	}
	return n, nil
}

func (m *MockStore) Ping(ctx context.Context) error {
	return m.err()
}

// Keys returns the stored keys.
func (m *MockStore) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.entries))
	for k := range m.entries {
		keys = append(keys, k)
	}
	return keys
}

// Has reports whether key is stored.
func (m *MockStore) Has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.entries[key]
	return ok
}

// TTL returns the ttl key was stored with.
func (m *MockStore) TTL(key string) time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ttls[key]
}

// CountingCards wraps a CardRepository and counts listing queries.
type CountingCards struct {
	repository.CardRepository

	ListCalls atomic.Int32
	GetCalls  atomic.Int32
}

func (c *CountingCards) ListCards(ctx context.Context, q repository.CardQuery) ([]model.Card, int, error) {
	c.ListCalls.Add(1)
	return c.CardRepository.ListCards(ctx, q)
}

func (c *CountingCards) GetCardByID(ctx context.Context, id int64) (*model.Card, error) {
	c.GetCalls.Add(1)
	return c.CardRepository.GetCardByID(ctx, id)
}
