package health

import "context"

// DBPinger checks key-value store availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// BackendPinger checks inventory backend availability.
type BackendPinger interface {
	Ping(ctx context.Context) error
}
