package vocab

import (
	"context"

	"github.com/kailas-cloud/inventory/internal/domain"
)

// --- Mocks ---

type listCall struct {
	path, key, cql string
}

type updateCall struct {
	path, id string
	rec      domain.Record
}

type mockRepo struct {
	records map[string]domain.Record
	listErr error

	lists   []listCall
	created []domain.Record
	updates []updateCall
	deletes []string
}

func newMockRepo(recs ...domain.Record) *mockRepo {
	m := &mockRepo{records: make(map[string]domain.Record)}
	for _, r := range recs {
		m.records[r.ID()] = r
	}
	return m
}

func (m *mockRepo) List(_ context.Context, path, key, cql string, _, _ int) (domain.Page, error) {
	m.lists = append(m.lists, listCall{path, key, cql})
	if m.listErr != nil {
		return domain.Page{}, m.listErr
	}
	out := make([]domain.Record, 0, len(m.records))
	for _, r := range m.records {
		out = append(out, r)
	}
	return domain.Page{Records: out, TotalRecords: len(out)}, nil
}

func (m *mockRepo) Get(_ context.Context, _, id string) (domain.Record, error) {
	r, ok := m.records[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return r, nil
}

func (m *mockRepo) Create(_ context.Context, _ string, rec domain.Record) (domain.Record, error) {
	m.created = append(m.created, rec)
	out := rec.Clone()
	out["id"] = "new"
	return out, nil
}

func (m *mockRepo) Update(_ context.Context, path, id string, rec domain.Record) error {
	m.updates = append(m.updates, updateCall{path, id, rec})
	return nil
}

func (m *mockRepo) Delete(_ context.Context, _, id string) error {
	if _, ok := m.records[id]; !ok {
		return domain.ErrNotFound
	}
	m.deletes = append(m.deletes, id)
	return nil
}
