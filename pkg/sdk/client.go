package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/inventory/internal/db"
	dbMemory "github.com/kailas-cloud/inventory/internal/db/memory"
	dbRedis "github.com/kailas-cloud/inventory/internal/db/redis"
	"github.com/kailas-cloud/inventory/internal/domain"
	"github.com/kailas-cloud/inventory/internal/domain/permission"
	"github.com/kailas-cloud/inventory/internal/domain/query"
	domreport "github.com/kailas-cloud/inventory/internal/domain/report"
	"github.com/kailas-cloud/inventory/internal/i18n"
	recordsrepo "github.com/kailas-cloud/inventory/internal/repository/records"
	refdatarepo "github.com/kailas-cloud/inventory/internal/repository/refdata"
	"github.com/kailas-cloud/inventory/internal/transport/okapi"
	healthuc "github.com/kailas-cloud/inventory/internal/usecase/health"
	listinguc "github.com/kailas-cloud/inventory/internal/usecase/listing"
	reportuc "github.com/kailas-cloud/inventory/internal/usecase/report"
	vocabuc "github.com/kailas-cloud/inventory/internal/usecase/vocab"
	"github.com/kailas-cloud/inventory/internal/version"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultTimeout          = 60 * time.Second
	refDataTTL              = 15 * time.Minute
	keyPrefix               = "inventory-sdk:"
)

// Internal interfaces for substitution in tests.
type listingUseCase interface {
	Search(ctx context.Context, q query.SearchQuery, offset, limit int) (listinguc.SearchPage, error)
	CQL(ctx context.Context, q query.SearchQuery) (string, error)
}

type reportUseCase interface {
	GenerateIDReport(ctx context.Context, q query.SearchQuery, sink reportuc.Sink) (domreport.Outcome, error)
	GenerateInTransitReport(ctx context.Context, sink reportuc.Sink) (domreport.Outcome, error)
	ExportCQL(ctx context.Context, q query.SearchQuery, sink reportuc.Sink) (domreport.Outcome, error)
}

type vocabUseCase interface {
	List(ctx context.Context, tag string, perms permission.Set) (vocabuc.Table, error)
	Create(ctx context.Context, tag string, rec domain.Record) (domain.Record, error)
	Update(ctx context.Context, tag string, perms permission.Set, id string, rec domain.Record) error
	Delete(ctx context.Context, tag string, perms permission.Set, id string) error
}

// Client is the inventory SDK entry point.
type Client struct {
	store     db.Store
	listing   listingUseCase
	reports   reportUseCase
	vocab     vocabUseCase
	healthSvc healthUseCase
	printer   *i18n.Printer
	perms     permission.Set
	obs       *observer
}

// New creates a Client for the configured backend.
// The provided context is used for the store readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		driver:  "memory",
		timeout: defaultTimeout,
		perms:   []string{permission.SettingsListEdit, permission.SettingsListDel},
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.backendURL == "" || cfg.tenant == "" {
		return nil, errors.New("inventory: backend url and tenant required (use WithBackend)")
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	store, err := createStore(cfg)
	if err != nil {
		return nil, err
	}
	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("inventory: store not ready: %w", err)
	}

	c, err := wireClient(store, cfg, obs)
	if err != nil {
		store.Close()
		return nil, err
	}
	return c, nil
}

func createStore(cfg *clientConfig) (db.Store, error) {
	switch cfg.driver {
	case "memory":
		return dbMemory.NewStore(), nil
	case "valkey", "redis":
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.addrs,
			Password: cfg.password,
		})
		if err != nil {
			return nil, fmt.Errorf("inventory: create %s store: %w", cfg.driver, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("inventory: unknown driver %q", cfg.driver)
	}
}

func wireClient(store db.Store, cfg *clientConfig, obs *observer) (*Client, error) {
	// Internals log through zap; SDK callers observe operations via slog.
	nop := zap.NewNop()

	backend, err := okapi.New(&okapi.Config{
		BaseURL:    cfg.backendURL,
		Tenant:     cfg.tenant,
		Token:      cfg.token,
		Timeout:    cfg.timeout,
		RatePerSec: cfg.ratePerSec,
		Burst:      cfg.burst,
		UserAgent:  version.UserAgent(),
		HTTPClient: cfg.httpClient,
		Logger:     nop,
	})
	if err != nil {
		return nil, fmt.Errorf("inventory: %w", err)
	}

	records := recordsrepo.New(backend, cfg.pageSize, cfg.maxRecords)
	ref := refdatarepo.New(backend, store, refdatarepo.Config{KeyPrefix: keyPrefix, TTL: refDataTTL}, nil, nop)

	return &Client{
		store: store,
		// The SDK has no sessions: view-state operations stay on the HTTP API.
		listing: listinguc.New(records, nil, ref, listinguc.Config{}, nop),
		reports: reportuc.New(records.InstanceIDs(), records.ItemsInTransit(), ref,
			reportuc.Config{Env: cfg.env}, nop),
		vocab:     vocabuc.New(records, nop),
		healthSvc: healthuc.New(store, backend),
		printer:   i18n.ForAcceptLanguage(cfg.language),
		perms:     permission.NewSet(cfg.perms...),
		obs:       obs,
	}, nil
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks store connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Reports returns the report service.
func (c *Client) Reports() *ReportService {
	return &ReportService{svc: c.reports, printer: c.printer, obs: c.obs}
}

// Vocabularies returns the controlled vocabulary service.
func (c *Client) Vocabularies() *VocabularyService {
	return &VocabularyService{svc: c.vocab, perms: c.perms, printer: c.printer, obs: c.obs}
}
