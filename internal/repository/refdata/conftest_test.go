package refdata

import (
	"context"
	"net/url"
	"sync"
	"time"

	"github.com/kailas-cloud/inventory/internal/db"
	"github.com/kailas-cloud/inventory/internal/domain"
)

// mockKVStore implements the consumer interface for tests.
type mockKVStore struct {
	getFn func(ctx context.Context, key string) ([]byte, error)
	setFn func(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

func (m *mockKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockKVStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value, ttl)
	}
	return nil
}

// newCachingStore returns a mockKVStore that keeps what is set.
func newCachingStore() *mockKVStore {
	var (
		mu   sync.Mutex
		data = map[string][]byte{}
	)
	return &mockKVStore{
		getFn: func(_ context.Context, key string) ([]byte, error) {
			mu.Lock()
			defer mu.Unlock()
			v, ok := data[key]
			if !ok {
				return nil, db.ErrKeyNotFound
			}
			return v, nil
		},
		setFn: func(_ context.Context, key string, value []byte, _ time.Duration) error {
			mu.Lock()
			defer mu.Unlock()
			data[key] = value
			return nil
		},
	}
}

// mockLister serves fixed pages per path and counts calls.
type mockLister struct {
	mu      sync.Mutex
	calls   map[string]int
	pages   map[string]domain.Page
	errs    map[string]error
	release chan struct{}
}

func newMockLister() *mockLister {
	return &mockLister{
		calls: map[string]int{},
		pages: map[string]domain.Page{},
		errs:  map[string]error{},
	}
}

func (m *mockLister) List(ctx context.Context, path, _ string, _ url.Values) (domain.Page, error) {
	m.mu.Lock()
	m.calls[path]++
	release := m.release
	m.mu.Unlock()

	if release != nil {
		select {
		case <-release:
		case <-ctx.Done():
			return domain.Page{}, ctx.Err()
		}
	}
	if err := m.errs[path]; err != nil {
		return domain.Page{}, err
	}
	return m.pages[path], nil
}

func (m *mockLister) callCount(path string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[path]
}
