package inventory

import (
	"context"
	"sync"

	"github.com/kailas-cloud/inventory/internal/domain"
	"github.com/kailas-cloud/inventory/internal/domain/permission"
	"github.com/kailas-cloud/inventory/internal/domain/query"
	domreport "github.com/kailas-cloud/inventory/internal/domain/report"
	healthuc "github.com/kailas-cloud/inventory/internal/usecase/health"
	listinguc "github.com/kailas-cloud/inventory/internal/usecase/listing"
	reportuc "github.com/kailas-cloud/inventory/internal/usecase/report"
	vocabuc "github.com/kailas-cloud/inventory/internal/usecase/vocab"
)

// --- listingUseCase mock ---

type mockListingUC struct {
	searchFn func(ctx context.Context, q query.SearchQuery, offset, limit int) (listinguc.SearchPage, error)
	cqlFn    func(ctx context.Context, q query.SearchQuery) (string, error)
}

func (m *mockListingUC) Search(ctx context.Context, q query.SearchQuery, offset, limit int) (listinguc.SearchPage, error) {
	return m.searchFn(ctx, q, offset, limit)
}

func (m *mockListingUC) CQL(ctx context.Context, q query.SearchQuery) (string, error) {
	return m.cqlFn(ctx, q)
}

// --- reportUseCase mock ---

type mockReportUC struct {
	idsFn       func(ctx context.Context, q query.SearchQuery, sink reportuc.Sink) (domreport.Outcome, error)
	inTransitFn func(ctx context.Context, sink reportuc.Sink) (domreport.Outcome, error)
	cqlFn       func(ctx context.Context, q query.SearchQuery, sink reportuc.Sink) (domreport.Outcome, error)
}

func (m *mockReportUC) GenerateIDReport(ctx context.Context, q query.SearchQuery, sink reportuc.Sink) (domreport.Outcome, error) {
	return m.idsFn(ctx, q, sink)
}

func (m *mockReportUC) GenerateInTransitReport(ctx context.Context, sink reportuc.Sink) (domreport.Outcome, error) {
	return m.inTransitFn(ctx, sink)
}

func (m *mockReportUC) ExportCQL(ctx context.Context, q query.SearchQuery, sink reportuc.Sink) (domreport.Outcome, error) {
	return m.cqlFn(ctx, q, sink)
}

// --- vocabUseCase mock ---

type mockVocabUC struct {
	listFn   func(ctx context.Context, tag string, perms permission.Set) (vocabuc.Table, error)
	createFn func(ctx context.Context, tag string, rec domain.Record) (domain.Record, error)
	updateFn func(ctx context.Context, tag string, perms permission.Set, id string, rec domain.Record) error
	deleteFn func(ctx context.Context, tag string, perms permission.Set, id string) error
}

func (m *mockVocabUC) List(ctx context.Context, tag string, perms permission.Set) (vocabuc.Table, error) {
	return m.listFn(ctx, tag, perms)
}

func (m *mockVocabUC) Create(ctx context.Context, tag string, rec domain.Record) (domain.Record, error) {
	return m.createFn(ctx, tag, rec)
}

func (m *mockVocabUC) Update(ctx context.Context, tag string, perms permission.Set, id string, rec domain.Record) error {
	return m.updateFn(ctx, tag, perms, id, rec)
}

func (m *mockVocabUC) Delete(ctx context.Context, tag string, perms permission.Set, id string) error {
	return m.deleteFn(ctx, tag, perms, id)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(context.Context) healthuc.Report { return m.report }

// --- Sink mock ---

type recordingSink struct {
	mu        sync.Mutex
	artifacts []Artifact
	notices   []Notice
	saveErr   error
}

func (s *recordingSink) Save(_ context.Context, a Artifact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.artifacts = append(s.artifacts, a)
	return nil
}

func (s *recordingSink) Notice(_ context.Context, n Notice) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notices = append(s.notices, n)
}
