package listing

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/inventory/internal/cql"
	"github.com/kailas-cloud/inventory/internal/domain"
	"github.com/kailas-cloud/inventory/internal/domain/instance"
	"github.com/kailas-cloud/inventory/internal/domain/query"
	"github.com/kailas-cloud/inventory/internal/domain/viewstate"
	"github.com/kailas-cloud/inventory/internal/logger"
)

// Paging defaults.
const (
	DefaultInitialResultCount   = 30
	DefaultResultCountIncrement = 30
	DefaultMaxPageSize          = 100
)

// itemsPageLimit bounds the item list of one holdings record.
const itemsPageLimit = 1000

// Config holds result list paging settings.
type Config struct {
	InitialResultCount   int
	ResultCountIncrement int
	MaxPageSize          int
}

// SearchPage is one page of formatted results.
type SearchPage struct {
	Rows         []Row  `json:"rows"`
	TotalRecords int    `json:"totalRecords"`
	Offset       int    `json:"offset"`
	Limit        int    `json:"limit"`
	NextLimit    int    `json:"nextLimit"`
	CQL          string `json:"cql"`
}

// Service orchestrates the instance list view.
type Service struct {
	repo     InstanceRepository
	sessions SessionStore
	ref      RefData
	cfg      Config
	logger   *zap.Logger
}

// New creates a listing service.
func New(repo InstanceRepository, sessions SessionStore, ref RefData, cfg Config, logger *zap.Logger) *Service {
	if cfg.InitialResultCount <= 0 {
		cfg.InitialResultCount = DefaultInitialResultCount
	}
	if cfg.ResultCountIncrement <= 0 {
		cfg.ResultCountIncrement = DefaultResultCountIncrement
	}
	if cfg.MaxPageSize <= 0 {
		cfg.MaxPageSize = DefaultMaxPageSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, sessions: sessions, ref: ref, cfg: cfg, logger: logger}
}

// Limit normalizes a requested page size: 0 means the initial count, and
// nothing exceeds the max page size.
func (s *Service) Limit(requested int) int {
	if requested <= 0 {
		return s.cfg.InitialResultCount
	}
	return min(requested, s.cfg.MaxPageSize)
}

// NextLimit is the page size after one more "load more" click.
func (s *Service) NextLimit(current int) int {
	return min(s.Limit(current)+s.cfg.ResultCountIncrement, s.cfg.MaxPageSize)
}

// CQL renders q with reference data, logging the build at debug level.
func (s *Service) CQL(ctx context.Context, q query.SearchQuery) (string, error) {
	ref, err := s.ref.Load(ctx)
	if err != nil {
		return "", fmt.Errorf("load reference data: %w", err)
	}
	log := logger.FromContextOr(ctx, s.logger)
	return cql.Build(q, ref, cql.Options{Logger: cql.NewZapLogger(log)}), nil
}

// Search returns one page of formatted instances matching q.
func (s *Service) Search(ctx context.Context, q query.SearchQuery, offset, limit int) (SearchPage, error) {
	ref, err := s.ref.Load(ctx)
	if err != nil {
		return SearchPage{}, fmt.Errorf("load reference data: %w", err)
	}
	log := logger.FromContextOr(ctx, s.logger)
	expr := cql.Build(q, ref, cql.Options{Logger: cql.NewZapLogger(log)})

	offset = max(offset, 0)
	limit = s.Limit(limit)

	page, err := s.repo.SearchInstances(ctx, expr, offset, limit)
	if err != nil {
		return SearchPage{}, fmt.Errorf("search instances: %w", err)
	}

	rows := make([]Row, 0, len(page.Records))
	for _, r := range page.Records {
		rows = append(rows, FormatRow(r, ref))
	}
	return SearchPage{
		Rows:         rows,
		TotalRecords: page.TotalRecords,
		Offset:       offset,
		Limit:        limit,
		NextLimit:    s.NextLimit(limit),
		CQL:          expr,
	}, nil
}

// HoldingsItems lists the items of one holdings record.
func (s *Service) HoldingsItems(ctx context.Context, holdingsID string) ([]ItemRow, error) {
	if holdingsID == "" {
		return nil, fmt.Errorf("holdings id is required: %w", domain.ErrInvalidRequest)
	}
	page, err := s.repo.ItemsForHoldings(ctx, holdingsID, 0, itemsPageLimit)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	rows := make([]ItemRow, 0, len(page.Records))
	for _, r := range page.Records {
		rows = append(rows, FormatItem(r))
	}
	return rows, nil
}

// State returns the session's view state.
func (s *Service) State(ctx context.Context, sessionID string) (viewstate.State, error) {
	st, err := s.sessions.Load(ctx, sessionID)
	if err != nil {
		return viewstate.State{}, fmt.Errorf("load view state: %w", err)
	}
	return st, nil
}

// OpenCreateInstance opens the create layer without a staged copy.
func (s *Service) OpenCreateInstance(ctx context.Context, sessionID string) (viewstate.State, error) {
	return s.update(ctx, sessionID, func(st viewstate.State) viewstate.State {
		st.Layer = viewstate.LayerCreate
		return st
	})
}

// CopyInstance stages a copy of the instance id and opens the create layer.
func (s *Service) CopyInstance(ctx context.Context, sessionID, id string) (viewstate.State, error) {
	src, err := s.repo.GetInstance(ctx, id)
	if err != nil {
		return viewstate.State{}, fmt.Errorf("load instance: %w", err)
	}
	draft := instance.PrepareCopy(src)
	return s.update(ctx, sessionID, func(st viewstate.State) viewstate.State {
		return st.StageCopy(draft)
	})
}

// CloseNewInstance closes the create layer and drops any staged copy.
func (s *Service) CloseNewInstance(ctx context.Context, sessionID string) (viewstate.State, error) {
	return s.update(ctx, sessionID, viewstate.State.ClearStaging)
}

// NewRecordInitialValues returns the staged copy, or the defaults of a blank instance.
func (s *Service) NewRecordInitialValues(ctx context.Context, sessionID string) (domain.Record, error) {
	st, err := s.State(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if st.CopiedInstance != nil {
		return st.CopiedInstance, nil
	}
	return instance.Defaults(), nil
}

// CreateInstance marshals form and posts it as a new instance. On success the
// create layer closes; on failure the staged copy stays for another attempt.
func (s *Service) CreateInstance(ctx context.Context, sessionID string, form domain.Record) (domain.Record, error) {
	log := logger.FromContextOr(ctx, s.logger)

	ref, err := s.ref.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load reference data: %w", err)
	}

	created, err := s.repo.CreateInstance(ctx, instance.Marshal(form, ref))
	if err != nil {
		return nil, fmt.Errorf("create instance: %w", err)
	}

	if _, err := s.CloseNewInstance(ctx, sessionID); err != nil {
		return nil, err
	}
	log.Info("Instance created", zap.String("instance_id", created.ID()))
	return created, nil
}

// ToggleFastAddModal flips the fast-add modal.
func (s *Service) ToggleFastAddModal(ctx context.Context, sessionID string) (viewstate.State, error) {
	return s.update(ctx, sessionID, viewstate.State.ToggleFastAdd)
}

// OpenErrorModal opens the session's error modal, e.g. for an empty in-transit report.
func (s *Service) OpenErrorModal(ctx context.Context, sessionID, label, message string) (viewstate.State, error) {
	return s.update(ctx, sessionID, func(st viewstate.State) viewstate.State {
		return st.ShowError(label, message)
	})
}

// CloseErrorModal dismisses the error modal.
func (s *Service) CloseErrorModal(ctx context.Context, sessionID string) (viewstate.State, error) {
	return s.update(ctx, sessionID, viewstate.State.CloseError)
}

func (s *Service) update(ctx context.Context, sessionID string, fn func(viewstate.State) viewstate.State) (viewstate.State, error) {
	st, err := s.sessions.Load(ctx, sessionID)
	if err != nil {
		return viewstate.State{}, fmt.Errorf("load view state: %w", err)
	}
	st = fn(st)
	if err := s.sessions.Save(ctx, sessionID, st); err != nil {
		return viewstate.State{}, fmt.Errorf("save view state: %w", err)
	}
	return st, nil
}
