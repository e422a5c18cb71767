package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/inventory/internal/db"
	"github.com/kailas-cloud/inventory/internal/domain/viewstate"
)

// store is the consumer interface for view state (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// Repo keeps list view state per session. Every save refreshes the TTL.
type Repo struct {
	store  store
	prefix string
	ttl    time.Duration
}

// New creates a session repository.
func New(s store, keyPrefix string, ttl time.Duration) *Repo {
	return &Repo{store: s, prefix: keyPrefix + "session:", ttl: ttl}
}

// Load returns the session's state. Unknown sessions start empty.
func (r *Repo) Load(ctx context.Context, sessionID string) (viewstate.State, error) {
	data, err := r.store.Get(ctx, r.key(sessionID))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return viewstate.State{}, nil
		}
		return viewstate.State{}, fmt.Errorf("load session: %w", err)
	}

	var s viewstate.State
	if err := json.Unmarshal(data, &s); err != nil {
		return viewstate.State{}, fmt.Errorf("decode session: %w", err)
	}
	return s, nil
}

// Save stores the session's state.
func (r *Repo) Save(ctx context.Context, sessionID string, s viewstate.State) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := r.store.SetWithTTL(ctx, r.key(sessionID), data, r.ttl); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Delete drops the session's state.
func (r *Repo) Delete(ctx context.Context, sessionID string) error {
	if err := r.store.Del(ctx, r.key(sessionID)); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (r *Repo) key(sessionID string) string {
	return r.prefix + sessionID
}
