package refdata

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/kailas-cloud/inventory/internal/db"
	"github.com/kailas-cloud/inventory/internal/domain"
	domref "github.com/kailas-cloud/inventory/internal/domain/refdata"
)

const (
	cacheKeySuffix      = "refdata"
	defaultLimit        = 1000
	defaultFetchTimeout = 30 * time.Second
)

// store is the consumer interface for the reference data cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// lister is the consumer interface for backend reads (ISP).
type lister interface {
	List(ctx context.Context, path, recordsKey string, params url.Values) (domain.Page, error)
}

// Config holds loader settings.
type Config struct {
	KeyPrefix string
	TTL       time.Duration
	Limit     int
	// FetchTimeout bounds a shared backend load. It runs detached from the
	// callers' contexts, so one caller leaving does not fail the others.
	FetchTimeout time.Duration
}

// Loader fetches lookup tables from the backend and caches them in the store.
// Concurrent loads share one backend round trip.
type Loader struct {
	backend    lister
	store      store
	key        string
	ttl        time.Duration
	limit      int
	timeout    time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
	group      singleflight.Group
}

// New creates a loader.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"/"error"), passed explicitly.
func New(b lister, s store, cfg Config, cacheTotal *prometheus.CounterVec, logger *zap.Logger) *Loader {
	limit := cfg.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	timeout := cfg.FetchTimeout
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	return &Loader{
		backend:    b,
		store:      s,
		key:        cfg.KeyPrefix + cacheKeySuffix,
		ttl:        cfg.TTL,
		limit:      limit,
		timeout:    timeout,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Load returns the lookup tables. A table the backend fails to serve comes
// back empty; only the caller's own cancelled ctx is an error. Concurrent
// callers share one load, and each stops waiting when its own ctx ends.
func (l *Loader) Load(ctx context.Context) (domref.Tables, error) {
	if t, ok := l.getFromCache(ctx); ok {
		l.incCache("hit")
		return t, nil
	}
	l.incCache("miss")

	if err := ctx.Err(); err != nil {
		return domref.Tables{}, err
	}

	ch := l.group.DoChan(l.key, func() (any, error) {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), l.timeout)
		defer cancel()
		return l.fetchAll(fctx), nil
	})

	select {
	case <-ctx.Done():
		return domref.Tables{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return domref.Tables{}, res.Err
		}
		return res.Val.(domref.Tables), nil
	}
}

func (l *Loader) fetchAll(ctx context.Context) domref.Tables {
	var (
		mu       sync.Mutex
		tables   domref.Tables
		complete = true
	)

	g, gctx := errgroup.WithContext(ctx)
	for _, src := range domref.Sources() {
		g.Go(func() error {
			table, err := l.fetchTable(gctx, src)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				complete = false
				l.logger.Warn("Failed to load reference table",
					zap.String("table", string(src.Kind)), zap.Error(err))
				return nil
			}
			tables.Set(src.Kind, table)
			return nil
		})
	}
	_ = g.Wait()

	if complete {
		l.putToCache(ctx, tables)
	}
	return tables
}

func (l *Loader) fetchTable(ctx context.Context, src domref.Source) (domref.Table, error) {
	params := url.Values{
		"query": {"cql.allRecords=1 sortby name"},
		"limit": {strconv.Itoa(l.limit)},
	}
	page, err := l.backend.List(ctx, src.Path, src.RecordsKey, params)
	if err != nil {
		return nil, err
	}
	table := make(domref.Table, 0, len(page.Records))
	for _, rec := range page.Records {
		if rec.ID() == "" {
			continue
		}
		table = append(table, domref.Entry{ID: rec.ID(), Name: rec.String("name")})
	}
	return table, nil
}

func (l *Loader) incCache(result string) {
	if l.cacheTotal != nil {
		l.cacheTotal.WithLabelValues(result).Inc()
	}
}

func (l *Loader) getFromCache(ctx context.Context) (domref.Tables, bool) {
	data, err := l.store.Get(ctx, l.key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			l.incCache("error")
			l.logger.Warn("Failed to get cached reference data", zap.String("key", l.key), zap.Error(err))
		}
		return domref.Tables{}, false
	}

	var t domref.Tables
	if err := json.Unmarshal(data, &t); err != nil {
		l.logger.Warn("Failed to parse cached reference data", zap.String("key", l.key), zap.Error(err))
		return domref.Tables{}, false
	}
	return t, true
}

func (l *Loader) putToCache(ctx context.Context, t domref.Tables) {
	data, err := json.Marshal(t)
	if err != nil {
		l.logger.Warn("Failed to encode reference data", zap.Error(err))
		return
	}
	if err := l.store.SetWithTTL(ctx, l.key, data, l.ttl); err != nil {
		l.logger.Warn("Failed to cache reference data", zap.String("key", l.key), zap.Error(err))
	}
}
