package records

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/kailas-cloud/inventory/internal/domain"
)

// Backend paths and record keys.
const (
	PathInstances       = "inventory/instances"
	PathItems           = "inventory/items"
	PathInstanceIDs     = "record-bulk/ids"
	PathItemsInTransit  = "inventory-reports/items-in-transit"
	KeyInstances        = "instances"
	KeyItems            = "items"
	KeyInstanceIDs      = "ids"
	KeyItemsInTransit   = "items"
	recordTypeInstance  = "INSTANCE"
	bulkIDField         = "id"
	holdingsRecordField = "holdingsRecordId"
)

// backend is the consumer interface for the remote record API (ISP).
type backend interface {
	lister
	Get(ctx context.Context, path string) (domain.Record, error)
	Post(ctx context.Context, path string, body any) (domain.Record, error)
	Put(ctx context.Context, path string, body any) error
	Delete(ctx context.Context, path string) error
}

// Repo reads and writes inventory records through the backend.
type Repo struct {
	backend    backend
	pageSize   int
	maxRecords int

	instanceIDs    *Resource
	itemsInTransit *Resource
}

// New creates a records repository. pageSize bounds report page requests and
// maxRecords caps report sizes (0 = unbounded).
func New(b backend, pageSize, maxRecords int) *Repo {
	return &Repo{
		backend:    b,
		pageSize:   pageSize,
		maxRecords: maxRecords,
		instanceIDs: NewResource(b, ResourceConfig{
			Path:       PathInstanceIDs,
			RecordsKey: KeyInstanceIDs,
			Params:     url.Values{"field": {bulkIDField}, "recordType": {recordTypeInstance}},
			PageSize:   pageSize,
			MaxRecords: maxRecords,
		}),
		itemsInTransit: NewResource(b, ResourceConfig{
			Path:       PathItemsInTransit,
			RecordsKey: KeyItemsInTransit,
			PageSize:   pageSize,
			MaxRecords: maxRecords,
		}),
	}
}

// InstanceIDs is the resource behind the instance id report.
func (r *Repo) InstanceIDs() *Resource { return r.instanceIDs }

// ItemsInTransit is the resource behind the in-transit item report.
func (r *Repo) ItemsInTransit() *Resource { return r.itemsInTransit }

// SearchInstances returns one page of instances matching cql.
func (r *Repo) SearchInstances(ctx context.Context, cql string, offset, limit int) (domain.Page, error) {
	return r.List(ctx, PathInstances, KeyInstances, cql, offset, limit)
}

// ItemsForHoldings returns the items of a holdings record.
func (r *Repo) ItemsForHoldings(ctx context.Context, holdingsID string, offset, limit int) (domain.Page, error) {
	cql := holdingsRecordField + `=="` + escape(holdingsID) + `"`
	return r.List(ctx, PathItems, KeyItems, cql, offset, limit)
}

// GetInstance loads one instance.
func (r *Repo) GetInstance(ctx context.Context, id string) (domain.Record, error) {
	return r.Get(ctx, PathInstances, id)
}

// CreateInstance posts a new instance.
func (r *Repo) CreateInstance(ctx context.Context, rec domain.Record) (domain.Record, error) {
	return r.Create(ctx, PathInstances, rec)
}

// List returns one page from path filtered by cql.
func (r *Repo) List(ctx context.Context, path, recordsKey, cql string, offset, limit int) (domain.Page, error) {
	params := url.Values{}
	if cql != "" {
		params.Set("query", cql)
	}
	params.Set("offset", strconv.Itoa(offset))
	params.Set("limit", strconv.Itoa(limit))

	page, err := r.backend.List(ctx, path, recordsKey, params)
	if err != nil {
		return domain.Page{}, fmt.Errorf("list %s: %w", path, err)
	}
	return page, nil
}

// Get loads the record path/id.
func (r *Repo) Get(ctx context.Context, path, id string) (domain.Record, error) {
	rec, err := r.backend.Get(ctx, recordPath(path, id))
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", path, id, err)
	}
	return rec, nil
}

// Create posts rec to path.
func (r *Repo) Create(ctx context.Context, path string, rec domain.Record) (domain.Record, error) {
	created, err := r.backend.Post(ctx, path, rec)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	return created, nil
}

// Update replaces the record path/id.
func (r *Repo) Update(ctx context.Context, path, id string, rec domain.Record) error {
	if err := r.backend.Put(ctx, recordPath(path, id), rec); err != nil {
		return fmt.Errorf("update %s/%s: %w", path, id, err)
	}
	return nil
}

// Delete removes the record path/id.
func (r *Repo) Delete(ctx context.Context, path, id string) error {
	if err := r.backend.Delete(ctx, recordPath(path, id)); err != nil {
		return fmt.Errorf("delete %s/%s: %w", path, id, err)
	}
	return nil
}

func recordPath(path, id string) string {
	return path + "/" + url.PathEscape(id)
}

func escape(v string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(v)
}
