package vocab

import (
	"context"

	"github.com/kailas-cloud/inventory/internal/domain"
)

// Repository is generic record CRUD on a backend path.
type Repository interface {
	List(ctx context.Context, path, recordsKey, cql string, offset, limit int) (domain.Page, error)
	Get(ctx context.Context, path, id string) (domain.Record, error)
	Create(ctx context.Context, path string, rec domain.Record) (domain.Record, error)
	Update(ctx context.Context, path, id string, rec domain.Record) error
	Delete(ctx context.Context, path, id string) error
}
