package chi

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	gochi "github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/kailas-cloud/inventory/internal/config"
	"github.com/kailas-cloud/inventory/internal/domain"
	"github.com/kailas-cloud/inventory/internal/domain/refdata"
	"github.com/kailas-cloud/inventory/internal/domain/viewstate"
	"github.com/kailas-cloud/inventory/internal/notify"
	healthuc "github.com/kailas-cloud/inventory/internal/usecase/health"
	listinguc "github.com/kailas-cloud/inventory/internal/usecase/listing"
	reportuc "github.com/kailas-cloud/inventory/internal/usecase/report"
	vocabuc "github.com/kailas-cloud/inventory/internal/usecase/vocab"
)

// --- Fakes ---

type fakeInventory struct {
	mu        sync.Mutex
	instances map[string]domain.Record
	results   []domain.Record
	createErr error
	lastCQL   string
}

func (f *fakeInventory) SearchInstances(_ context.Context, cql string, offset, limit int) (domain.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastCQL = cql
	recs := f.results
	if offset >= len(recs) {
		return domain.Page{Records: []domain.Record{}, TotalRecords: len(f.results)}, nil
	}
	recs = recs[offset:]
	if len(recs) > limit {
		recs = recs[:limit]
	}
	return domain.Page{Records: recs, TotalRecords: len(f.results)}, nil
}

func (f *fakeInventory) ItemsForHoldings(_ context.Context, holdingsID string, _, _ int) (domain.Page, error) {
	if holdingsID != "h1" {
		return domain.Page{Records: []domain.Record{}}, nil
	}
	return domain.Page{Records: []domain.Record{
		{"id": "it1", "barcode": "3900", "status": map[string]any{"name": "Available"}},
	}, TotalRecords: 1}, nil
}

func (f *fakeInventory) GetInstance(_ context.Context, id string) (domain.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.instances[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return r, nil
}

func (f *fakeInventory) CreateInstance(_ context.Context, rec domain.Record) (domain.Record, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	out := rec.Clone()
	out["id"] = "created-1"
	return out, nil
}

type fakeSessions struct {
	mu     sync.Mutex
	states map[string]viewstate.State
}

func (f *fakeSessions) Load(_ context.Context, id string) (viewstate.State, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.states[id], nil
}

func (f *fakeSessions) Save(_ context.Context, id string, s viewstate.State) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.states[id] = s
	return nil
}

type fakeRef struct{}

func (fakeRef) Load(context.Context) (refdata.Tables, error) {
	return refdata.Tables{IdentifierTypes: refdata.Table{{ID: "isbn-id", Name: refdata.IdentifierISBN}}}, nil
}

type fakeResource struct {
	mu      sync.Mutex
	records []domain.Record
	err     error
	fetches int
	started chan struct{}
	release chan struct{}
}

func (f *fakeResource) Reset() {}

func (f *fakeResource) Fetch(ctx context.Context, _ url.Values) ([]domain.Record, error) {
	f.mu.Lock()
	f.fetches++
	started, release := f.started, f.release
	f.mu.Unlock()
	if started != nil {
		close(started)
	}
	if release != nil {
		select {
		case <-release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.records, f.err
}

type fakeVocabRepo struct {
	records []domain.Record
}

func (f *fakeVocabRepo) List(context.Context, string, string, string, int, int) (domain.Page, error) {
	return domain.Page{Records: f.records, TotalRecords: len(f.records)}, nil
}

func (f *fakeVocabRepo) Get(_ context.Context, _, id string) (domain.Record, error) {
	for _, r := range f.records {
		if r.ID() == id {
			return r, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeVocabRepo) Create(_ context.Context, _ string, rec domain.Record) (domain.Record, error) {
	out := rec.Clone()
	out["id"] = "v-new"
	return out, nil
}

func (f *fakeVocabRepo) Update(context.Context, string, string, domain.Record) error { return nil }

func (f *fakeVocabRepo) Delete(context.Context, string, string) error { return nil }

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

// --- Fixture ---

type fixture struct {
	inventory *fakeInventory
	sessions  *fakeSessions
	ids       *fakeResource
	inTransit *fakeResource
	hub       *notify.Hub
	logs      *observer.ObservedLogs
	handler   http.Handler
}

func newFixture(t *testing.T, env string) *fixture {
	t.Helper()
	if env == "" {
		env = config.EnvLocal
	}

	f := &fixture{
		inventory: &fakeInventory{instances: map[string]domain.Record{}},
		sessions:  &fakeSessions{states: map[string]viewstate.State{}},
		ids:       &fakeResource{},
		inTransit: &fakeResource{},
		hub:       notify.NewHub(0),
	}

	listing := listinguc.New(f.inventory, f.sessions, fakeRef{}, listinguc.Config{}, nil)
	reports := reportuc.New(f.ids, f.inTransit, fakeRef{}, reportuc.Config{Env: env}, nil)
	vocab := vocabuc.New(&fakeVocabRepo{records: []domain.Record{
		{"id": "n1", "name": "Binding", "source": "folio"},
	}}, nil)
	health := healthuc.New(pinger{}, pinger{})

	core, logs := observer.New(zapcore.WarnLevel)
	f.logs = logs
	server := NewServer(listing, reports, vocab, health, f.hub, zap.New(core))

	r := gochi.NewRouter()
	r.Use(SessionMiddleware(), PermissionsMiddleware(), LocaleMiddleware())
	f.handler = HandlerWithOptions(server, RouterOptions{BaseRouter: r, ErrorHandlerFunc: ParamErrorHandler})
	return f
}

type reqOption func(*http.Request)

func withSession(id string) reqOption {
	return func(r *http.Request) { r.Header.Set(HeaderSessionID, id) }
}

func withPerms(raw string) reqOption {
	return func(r *http.Request) { r.Header.Set(HeaderPermissions, raw) }
}

func withLanguage(lang string) reqOption {
	return func(r *http.Request) { r.Header.Set("Accept-Language", lang) }
}

func (f *fixture) do(method, target, body string, opts ...reqOption) *httptest.ResponseRecorder {
	var rd io.Reader = http.NoBody
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, o := range opts {
		o(req)
	}
	rr := httptest.NewRecorder()
	f.handler.ServeHTTP(rr, req)
	return rr
}
