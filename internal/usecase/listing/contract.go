package listing

import (
	"context"

	"github.com/kailas-cloud/inventory/internal/domain"
	"github.com/kailas-cloud/inventory/internal/domain/refdata"
	"github.com/kailas-cloud/inventory/internal/domain/viewstate"
)

// InstanceRepository reads and creates inventory records.
type InstanceRepository interface {
	SearchInstances(ctx context.Context, cql string, offset, limit int) (domain.Page, error)
	ItemsForHoldings(ctx context.Context, holdingsID string, offset, limit int) (domain.Page, error)
	GetInstance(ctx context.Context, id string) (domain.Record, error)
	CreateInstance(ctx context.Context, rec domain.Record) (domain.Record, error)
}

// SessionStore persists list view state per session.
type SessionStore interface {
	Load(ctx context.Context, sessionID string) (viewstate.State, error)
	Save(ctx context.Context, sessionID string, s viewstate.State) error
}

// RefData loads lookup tables.
type RefData interface {
	Load(ctx context.Context) (refdata.Tables, error)
}
