package records

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/kailas-cloud/inventory/internal/domain"
)

// lister is the consumer interface for paged reads (ISP).
type lister interface {
	List(ctx context.Context, path, recordsKey string, params url.Values) (domain.Page, error)
}

// Resource is a reset-then-fetch view over one paged backend list.
// Fetch walks every page from the first one and returns the accumulated records.
type Resource struct {
	backend    lister
	path       string
	recordsKey string
	base       url.Values
	pageSize   int
	maxRecords int
}

// ResourceConfig describes a Resource.
type ResourceConfig struct {
	Path       string
	RecordsKey string
	Params     url.Values
	PageSize   int
	MaxRecords int // 0 = unbounded
}

// NewResource creates a resource over backend.
func NewResource(backend lister, cfg ResourceConfig) *Resource {
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = 1000
	}
	return &Resource{
		backend:    backend,
		path:       cfg.Path,
		recordsKey: cfg.RecordsKey,
		base:       cfg.Params,
		pageSize:   pageSize,
		maxRecords: cfg.MaxRecords,
	}
}

// Path returns the backend path.
func (r *Resource) Path() string { return r.path }

// Reset is a no-op: a Resource keeps nothing between fetches.
func (r *Resource) Reset() {}

// Fetch loads every page matching params on top of the base params.
// It stops on a short page, at the record cap, or at the total when the
// backend reports one.
func (r *Resource) Fetch(ctx context.Context, params url.Values) ([]domain.Record, error) {
	q := url.Values{}
	for k, v := range r.base {
		q[k] = append([]string(nil), v...)
	}
	for k, v := range params {
		q[k] = append([]string(nil), v...)
	}

	var out []domain.Record
	for offset := 0; ; {
		limit := r.pageSize
		if r.maxRecords > 0 && r.maxRecords-len(out) < limit {
			limit = r.maxRecords - len(out)
		}
		q.Set("limit", strconv.Itoa(limit))
		q.Set("offset", strconv.Itoa(offset))

		page, err := r.backend.List(ctx, r.path, r.recordsKey, q)
		if err != nil {
			return nil, fmt.Errorf("fetch %s at offset %d: %w", r.path, offset, err)
		}
		out = append(out, page.Records...)
		offset += len(page.Records)

		if len(page.Records) < limit || (page.TotalKnown && offset >= page.TotalRecords) {
			break
		}
		if r.maxRecords > 0 && len(out) >= r.maxRecords {
			break
		}
	}
	if out == nil {
		out = []domain.Record{}
	}
	return out, nil
}
