package listing

import (
	"context"

	"github.com/kailas-cloud/inventory/internal/domain"
	"github.com/kailas-cloud/inventory/internal/domain/refdata"
	"github.com/kailas-cloud/inventory/internal/domain/viewstate"
)

// --- Mocks ---

type searchCall struct {
	cql           string
	offset, limit int
}

type mockRepo struct {
	searchFn   func(ctx context.Context, cql string, offset, limit int) (domain.Page, error)
	itemsFn    func(ctx context.Context, holdingsID string, offset, limit int) (domain.Page, error)
	getFn      func(ctx context.Context, id string) (domain.Record, error)
	createFn   func(ctx context.Context, rec domain.Record) (domain.Record, error)
	searches   []searchCall
	created    []domain.Record
	itemsCalls []string
}

func (m *mockRepo) SearchInstances(ctx context.Context, cql string, offset, limit int) (domain.Page, error) {
	m.searches = append(m.searches, searchCall{cql, offset, limit})
	if m.searchFn != nil {
		return m.searchFn(ctx, cql, offset, limit)
	}
	return domain.Page{}, nil
}

func (m *mockRepo) ItemsForHoldings(ctx context.Context, holdingsID string, offset, limit int) (domain.Page, error) {
	m.itemsCalls = append(m.itemsCalls, holdingsID)
	if m.itemsFn != nil {
		return m.itemsFn(ctx, holdingsID, offset, limit)
	}
	return domain.Page{}, nil
}

func (m *mockRepo) GetInstance(ctx context.Context, id string) (domain.Record, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockRepo) CreateInstance(ctx context.Context, rec domain.Record) (domain.Record, error) {
	m.created = append(m.created, rec)
	if m.createFn != nil {
		return m.createFn(ctx, rec)
	}
	out := rec.Clone()
	out["id"] = "new-id"
	return out, nil
}

type mockSessions struct {
	states  map[string]viewstate.State
	saves   int
	loadErr error
	saveErr error
}

func newMockSessions() *mockSessions {
	return &mockSessions{states: make(map[string]viewstate.State)}
}

func (m *mockSessions) Load(_ context.Context, id string) (viewstate.State, error) {
	if m.loadErr != nil {
		return viewstate.State{}, m.loadErr
	}
	return m.states[id], nil
}

func (m *mockSessions) Save(_ context.Context, id string, s viewstate.State) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.states[id] = s
	return nil
}

type mockRefData struct {
	tables refdata.Tables
	err    error
}

func (m *mockRefData) Load(_ context.Context) (refdata.Tables, error) { return m.tables, m.err }

func testTables() refdata.Tables {
	return refdata.Tables{
		IdentifierTypes: refdata.Table{
			{ID: "isbn-id", Name: refdata.IdentifierISBN},
			{ID: "issn-id", Name: refdata.IdentifierISSN},
		},
		InstanceRelationshipTypes: refdata.Table{
			{ID: "rel-multipart", Name: "multipart monograph"},
			{ID: "rel-series", Name: "monographic series"},
		},
	}
}
