package report

import (
	"context"
	"net/url"

	"github.com/kailas-cloud/inventory/internal/artifact"
	"github.com/kailas-cloud/inventory/internal/domain"
	"github.com/kailas-cloud/inventory/internal/domain/refdata"
	"github.com/kailas-cloud/inventory/internal/notify"
)

// Resource is a reset-then-fetch backend list.
type Resource interface {
	Reset()
	Fetch(ctx context.Context, params url.Values) ([]domain.Record, error)
}

// RefData loads lookup tables for query building.
type RefData interface {
	Load(ctx context.Context) (refdata.Tables, error)
}

// Sink receives what a report run produces for the user who triggered it.
type Sink interface {
	Download(ctx context.Context, a artifact.Artifact) error
	Notify(ctx context.Context, n notify.Notification)
	OpenModal(ctx context.Context, m notify.Modal)
}
