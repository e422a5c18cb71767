// Package action models the list view's action menu as a plain command list.
package action

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/inventory/internal/domain"
)

// Handler runs a command.
type Handler func(ctx context.Context) error

// Command is one entry of an action menu.
type Command struct {
	ID      string  `json:"id"`
	Label   string  `json:"label"`
	Icon    string  `json:"icon,omitempty"`
	Enabled bool    `json:"enabled"`
	Run     Handler `json:"-"`
}

// Bind composes "close the menu, then invoke handler". A nil toggle or handler is skipped.
func Bind(toggle func(), handler Handler) Handler {
	return func(ctx context.Context) error {
		if toggle != nil {
			toggle()
		}
		if handler == nil {
			return nil
		}
		return handler(ctx)
	}
}

// List is an ordered command list built once per render.
type List []Command

// Find returns the command with id.
func (l List) Find(id string) (Command, bool) {
	for _, c := range l {
		if c.ID == id {
			return c, true
		}
	}
	return Command{}, false
}

// Run executes the command with id.
func (l List) Run(ctx context.Context, id string) error {
	c, ok := l.Find(id)
	if !ok {
		return fmt.Errorf("%q: %w", id, domain.ErrUnknownCommand)
	}
	if !c.Enabled {
		return fmt.Errorf("%q: %w", id, domain.ErrCommandDisabled)
	}
	if c.Run == nil {
		return nil
	}
	return c.Run(ctx)
}

// IDs returns command ids in order.
func (l List) IDs() []string {
	out := make([]string, len(l))
	for i, c := range l {
		out[i] = c.ID
	}
	return out
}
