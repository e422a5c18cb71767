package records

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/inventory/internal/domain"
)

func TestRepo_SearchInstances(t *testing.T) {
	b := &mockBackend{}
	r := New(b, 1000, 0)

	if _, err := r.SearchInstances(context.Background(), `title all "x"`, 30, 30); err != nil {
		t.Fatalf("SearchInstances: %v", err)
	}
	c := b.calls[0]
	if c.path != PathInstances || c.recordsKey != KeyInstances {
		t.Errorf("call = %+v", c)
	}
	if c.params.Get("query") != `title all "x"` || c.params.Get("offset") != "30" || c.params.Get("limit") != "30" {
		t.Errorf("params = %v", c.params)
	}
}

func TestRepo_ItemsForHoldings(t *testing.T) {
	b := &mockBackend{}
	r := New(b, 1000, 0)

	if _, err := r.ItemsForHoldings(context.Background(), `h"1`, 0, 100); err != nil {
		t.Fatalf("ItemsForHoldings: %v", err)
	}
	if got := b.calls[0].params.Get("query"); got != `holdingsRecordId=="h\"1"` {
		t.Errorf("query = %s", got)
	}
	if b.calls[0].path != PathItems {
		t.Errorf("path = %s", b.calls[0].path)
	}
}

func TestRepo_InstanceIDsResource(t *testing.T) {
	b := &mockBackend{}
	r := New(b, 500, 0)

	if _, err := r.InstanceIDs().Fetch(context.Background(), nil); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	p := b.calls[0].params
	if b.calls[0].path != "record-bulk/ids" || p.Get("field") != "id" || p.Get("recordType") != "INSTANCE" {
		t.Errorf("call = %+v", b.calls[0])
	}
	if p.Get("limit") != "500" {
		t.Errorf("limit = %s", p.Get("limit"))
	}
}

func TestRepo_CRUDPaths(t *testing.T) {
	var paths []string
	b := &mockBackend{
		getFn: func(_ context.Context, p string) (domain.Record, error) {
			paths = append(paths, "GET "+p)
			return domain.Record{"id": "a/b"}, nil
		},
		postFn: func(_ context.Context, p string, _ any) (domain.Record, error) {
			paths = append(paths, "POST "+p)
			return domain.Record{"id": "new"}, nil
		},
		putFn: func(_ context.Context, p string, _ any) error {
			paths = append(paths, "PUT "+p)
			return nil
		},
		deleteFn: func(_ context.Context, p string) error {
			paths = append(paths, "DELETE "+p)
			return domain.ErrNotFound
		},
	}
	r := New(b, 1000, 0)
	ctx := context.Background()

	if _, err := r.GetInstance(ctx, "a/b"); err != nil {
		t.Fatalf("GetInstance: %v", err)
	}
	if rec, err := r.CreateInstance(ctx, domain.Record{}); err != nil || rec.ID() != "new" {
		t.Fatalf("CreateInstance: %v, %v", rec, err)
	}
	if err := r.Update(ctx, "item-note-types", "1", domain.Record{}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if err := r.Delete(ctx, "item-note-types", "1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Delete err = %v", err)
	}

	want := []string{
		"GET inventory/instances/a%2Fb",
		"POST inventory/instances",
		"PUT item-note-types/1",
		"DELETE item-note-types/1",
	}
	for i, w := range want {
		if paths[i] != w {
			t.Errorf("paths[%d] = %q, want %q", i, paths[i], w)
		}
	}
}
