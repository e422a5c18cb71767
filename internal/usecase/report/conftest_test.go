package report

import (
	"context"
	"net/url"
	"sync"

	"github.com/kailas-cloud/inventory/internal/artifact"
	"github.com/kailas-cloud/inventory/internal/domain"
	"github.com/kailas-cloud/inventory/internal/domain/refdata"
	"github.com/kailas-cloud/inventory/internal/notify"
)

// --- Mocks ---

type mockResource struct {
	mu      sync.Mutex
	resets  int
	fetches int
	params  []url.Values
	fetchFn func(ctx context.Context, params url.Values) ([]domain.Record, error)
}

func (m *mockResource) Reset() {
	m.mu.Lock()
	m.resets++
	m.mu.Unlock()
}

func (m *mockResource) Fetch(ctx context.Context, params url.Values) ([]domain.Record, error) {
	m.mu.Lock()
	m.fetches++
	m.params = append(m.params, params)
	fn := m.fetchFn
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, params)
	}
	return nil, nil
}

func (m *mockResource) fetchCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fetches
}

type mockRefData struct {
	tables refdata.Tables
	err    error
}

func (m *mockRefData) Load(_ context.Context) (refdata.Tables, error) { return m.tables, m.err }

type mockSink struct {
	mu          sync.Mutex
	downloads   []artifact.Artifact
	notes       []notify.Notification
	modals      []notify.Modal
	downloadErr error
	notified    chan struct{}
}

func (m *mockSink) Download(_ context.Context, a artifact.Artifact) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.downloads = append(m.downloads, a)
	return m.downloadErr
}

func (m *mockSink) Notify(_ context.Context, n notify.Notification) {
	m.mu.Lock()
	m.notes = append(m.notes, n)
	ch := m.notified
	m.mu.Unlock()
	if ch != nil {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func (m *mockSink) OpenModal(_ context.Context, md notify.Modal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.modals = append(m.modals, md)
}

func (m *mockSink) notifications() []notify.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]notify.Notification(nil), m.notes...)
}

func isbnTables() refdata.Tables {
	var t refdata.Tables
	t.Set(refdata.KindIdentifierTypes, refdata.Table{{ID: "isbn-id", Name: refdata.IdentifierISBN}})
	return t
}
