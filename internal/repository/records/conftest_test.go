package records

import (
	"context"
	"net/url"
	"strconv"
	"sync"

	"github.com/kailas-cloud/inventory/internal/domain"
)

type listCall struct {
	path       string
	recordsKey string
	params     url.Values
}

// mockBackend implements the consumer interface for tests.
type mockBackend struct {
	mu     sync.Mutex
	calls  []listCall
	listFn func(ctx context.Context, path, key string, params url.Values) (domain.Page, error)

	getFn    func(ctx context.Context, path string) (domain.Record, error)
	postFn   func(ctx context.Context, path string, body any) (domain.Record, error)
	putFn    func(ctx context.Context, path string, body any) error
	deleteFn func(ctx context.Context, path string) error
}

func (m *mockBackend) List(ctx context.Context, path, key string, params url.Values) (domain.Page, error) {
	m.mu.Lock()
	cp := url.Values{}
	for k, v := range params {
		cp[k] = append([]string(nil), v...)
	}
	m.calls = append(m.calls, listCall{path: path, recordsKey: key, params: cp})
	m.mu.Unlock()

	if m.listFn != nil {
		return m.listFn(ctx, path, key, params)
	}
	return domain.Page{Records: []domain.Record{}}, nil
}

func (m *mockBackend) Get(ctx context.Context, path string) (domain.Record, error) {
	if m.getFn != nil {
		return m.getFn(ctx, path)
	}
	return domain.Record{}, nil
}

func (m *mockBackend) Post(ctx context.Context, path string, body any) (domain.Record, error) {
	if m.postFn != nil {
		return m.postFn(ctx, path, body)
	}
	return domain.Record{}, nil
}

func (m *mockBackend) Put(ctx context.Context, path string, body any) error {
	if m.putFn != nil {
		return m.putFn(ctx, path, body)
	}
	return nil
}

func (m *mockBackend) Delete(ctx context.Context, path string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, path)
	}
	return nil
}

// pagedList serves total records of the form {"id": "<n>"} honouring offset and limit.
func pagedList(total int) func(context.Context, string, string, url.Values) (domain.Page, error) {
	list := pagedListWithoutTotal(total)
	return func(ctx context.Context, path, key string, params url.Values) (domain.Page, error) {
		page, err := list(ctx, path, key, params)
		page.TotalRecords, page.TotalKnown = total, true
		return page, err
	}
}

// pagedListWithoutTotal is pagedList for a backend that omits totalRecords.
func pagedListWithoutTotal(total int) func(context.Context, string, string, url.Values) (domain.Page, error) {
	return func(_ context.Context, _, _ string, params url.Values) (domain.Page, error) {
		offset, _ := strconv.Atoi(params.Get("offset"))
		limit, _ := strconv.Atoi(params.Get("limit"))
		var recs []domain.Record
		for i := offset; i < total && i < offset+limit; i++ {
			recs = append(recs, domain.Record{"id": strconv.Itoa(i)})
		}
		return domain.Page{Records: recs, TotalRecords: len(recs)}, nil
	}
}
