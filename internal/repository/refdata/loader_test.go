package refdata

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"

	"github.com/kailas-cloud/inventory/internal/domain"
	domref "github.com/kailas-cloud/inventory/internal/domain/refdata"
)

func seededLister() *mockLister {
	m := newMockLister()
	m.pages["identifier-types"] = domain.Page{Records: []domain.Record{
		{"id": "isbn-id", "name": "ISBN"},
		{"id": "issn-id", "name": "ISSN"},
		{"name": "no id is skipped"},
	}}
	m.pages["contributor-types"] = domain.Page{Records: []domain.Record{{"id": "ct1", "name": "Author"}}}
	m.pages["instance-relationship-types"] = domain.Page{Records: []domain.Record{{"id": "rt1", "name": "multipart"}}}
	m.pages["locations"] = domain.Page{Records: []domain.Record{{"id": "loc1", "name": "Main Library"}}}
	return m
}

func newCounter() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{Name: "test_refdata_cache_total"}, []string{"result"})
}

func TestLoad_CacheMissFetchesAndCaches(t *testing.T) {
	lister := seededLister()
	var cached []byte
	var cachedTTL time.Duration
	store := &mockKVStore{setFn: func(_ context.Context, key string, value []byte, ttl time.Duration) error {
		if key != "inventory:refdata" {
			t.Errorf("key = %q", key)
		}
		cached, cachedTTL = value, ttl
		return nil
	}}
	counter := newCounter()
	l := New(lister, store, Config{KeyPrefix: "inventory:", TTL: time.Minute}, counter, zap.NewNop())

	tables, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(tables.IdentifierTypes) != 2 || tables.IdentifierTypes.IDOf("ISSN") != "issn-id" {
		t.Errorf("identifier types = %v", tables.IdentifierTypes)
	}
	if tables.Locations.IDOf("main library") != "loc1" {
		t.Errorf("locations = %v", tables.Locations)
	}
	if cached == nil || cachedTTL != time.Minute {
		t.Fatalf("expected cache write with TTL, got %q / %v", cached, cachedTTL)
	}
	if testutil.ToFloat64(counter.WithLabelValues("miss")) != 1 {
		t.Error("expected one miss")
	}
}

func TestLoad_CacheHitSkipsBackend(t *testing.T) {
	lister := seededLister()
	data, _ := json.Marshal(domref.Tables{Locations: domref.Table{{ID: "c1", Name: "Cached"}}})
	store := &mockKVStore{getFn: func(context.Context, string) ([]byte, error) { return data, nil }}
	counter := newCounter()
	l := New(lister, store, Config{}, counter, zap.NewNop())

	tables, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tables.Locations.IDOf("Cached") != "c1" {
		t.Errorf("tables = %+v", tables)
	}
	if lister.callCount("locations") != 0 {
		t.Error("backend should not be called on cache hit")
	}
	if testutil.ToFloat64(counter.WithLabelValues("hit")) != 1 {
		t.Error("expected one hit")
	}
}

func TestLoad_CorruptCacheRefetches(t *testing.T) {
	lister := seededLister()
	store := &mockKVStore{getFn: func(context.Context, string) ([]byte, error) { return []byte("{not json"), nil }}
	l := New(lister, store, Config{}, nil, zap.NewNop())

	tables, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(tables.ContributorTypes) != 1 {
		t.Errorf("expected backend data, got %+v", tables)
	}
}

func TestLoad_FailedTableDegradesAndIsNotCached(t *testing.T) {
	lister := seededLister()
	lister.errs["identifier-types"] = domain.ErrFetchFailure
	setCalled := false
	store := &mockKVStore{setFn: func(context.Context, string, []byte, time.Duration) error {
		setCalled = true
		return nil
	}}
	l := New(lister, store, Config{}, nil, zap.NewNop())

	tables, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tables.IdentifierTypes != nil {
		t.Errorf("failed table should be empty, got %v", tables.IdentifierTypes)
	}
	if len(tables.Locations) != 1 {
		t.Error("other tables should still load")
	}
	if setCalled {
		t.Error("partial tables must not be cached")
	}
}

func TestLoad_StoreErrorFallsThrough(t *testing.T) {
	lister := seededLister()
	store := &mockKVStore{getFn: func(context.Context, string) ([]byte, error) { return nil, errors.New("conn reset") }}
	counter := newCounter()
	l := New(lister, store, Config{}, counter, zap.NewNop())

	if _, err := l.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if testutil.ToFloat64(counter.WithLabelValues("error")) != 1 {
		t.Error("expected one error")
	}
}

func TestLoad_ConcurrentCallersShareFetch(t *testing.T) {
	lister := seededLister()
	lister.release = make(chan struct{})
	l := New(lister, &mockKVStore{}, Config{}, nil, zap.NewNop())

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := l.Load(context.Background()); err != nil {
				t.Errorf("Load: %v", err)
			}
		}()
	}

	time.Sleep(50 * time.Millisecond)
	close(lister.release)
	wg.Wait()

	if n := lister.callCount("locations"); n != 1 {
		t.Errorf("locations fetched %d times, want 1", n)
	}
}

func TestLoad_CancelledContext(t *testing.T) {
	lister := seededLister()
	lister.release = make(chan struct{})
	t.Cleanup(func() { close(lister.release) })
	l := New(lister, &mockKVStore{}, Config{}, nil, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := l.Load(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if n := lister.callCount("locations"); n != 0 {
		t.Errorf("a gone caller should not start a load, got %d calls", n)
	}
}

func TestLoad_CancelledCallerDoesNotFailOthers(t *testing.T) {
	lister := seededLister()
	lister.release = make(chan struct{})
	l := New(lister, newCachingStore(), Config{}, nil, zap.NewNop())

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := l.Load(firstCtx)
		firstErr <- err
	}()

	// Wait until the first caller's load is in flight.
	deadline := time.Now().Add(2 * time.Second)
	for lister.callCount("locations") == 0 {
		if time.Now().After(deadline) {
			t.Fatal("shared load never started")
		}
		time.Sleep(time.Millisecond)
	}

	type result struct {
		tables domref.Tables
		err    error
	}
	second := make(chan result, 1)
	go func() {
		tables, err := l.Load(context.Background())
		second <- result{tables, err}
	}()

	cancelFirst()
	if err := <-firstErr; !errors.Is(err, context.Canceled) {
		t.Errorf("first caller err = %v, want context.Canceled", err)
	}

	close(lister.release)
	res := <-second
	if res.err != nil {
		t.Fatalf("second caller err = %v, want nil", res.err)
	}
	if len(res.tables.Locations) == 0 {
		t.Error("second caller should get the loaded tables")
	}
	if n := lister.callCount("locations"); n != 1 {
		t.Errorf("locations fetched %d times, want 1", n)
	}
}

func TestLoad_FetchTimeoutDegrades(t *testing.T) {
	lister := seededLister()
	lister.release = make(chan struct{})
	t.Cleanup(func() { close(lister.release) })
	var cached bool
	st := &mockKVStore{setFn: func(context.Context, string, []byte, time.Duration) error {
		cached = true
		return nil
	}}
	l := New(lister, st, Config{FetchTimeout: 20 * time.Millisecond}, nil, zap.NewNop())

	tables, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(tables.Locations) != 0 || len(tables.IdentifierTypes) != 0 {
		t.Errorf("timed out tables should come back empty, got %+v", tables)
	}
	if cached {
		t.Error("degraded tables must not be cached")
	}
}
