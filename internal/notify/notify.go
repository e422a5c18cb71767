// Package notify keeps recent user notifications for polling clients.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Level is the severity of a notification.
type Level string

// Levels.
const (
	LevelInfo  Level = "info"
	LevelError Level = "error"
)

// Notification is a transient toast.
type Notification struct {
	ID      string    `json:"id"`
	Level   Level     `json:"type"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// Modal is a dialog the user has to dismiss.
type Modal struct {
	Label   string `json:"label"`
	Message string `json:"message"`
}

// DefaultCapacity is the number of notifications kept per session.
const DefaultCapacity = 50

// Hub keeps a bounded ring of recent notifications per session.
type Hub struct {
	mu       sync.Mutex
	capacity int
	rings    map[string]*ring
	now      func() time.Time
}

// NewHub creates a hub keeping capacity notifications per session.
func NewHub(capacity int) *Hub {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Hub{
		capacity: capacity,
		rings:    make(map[string]*ring),
		now:      time.Now,
	}
}

// New stamps a notification with an id and the current time.
func (h *Hub) New(level Level, message string) Notification {
	return Notification{
		ID:      uuid.NewString(),
		Level:   level,
		Message: message,
		At:      h.now().UTC(),
	}
}

// Publish stores n for session, evicting the oldest entry when full.
// Missing id or timestamp are filled in.
func (h *Hub) Publish(session string, n Notification) Notification {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.At.IsZero() {
		n.At = h.now().UTC()
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	r, ok := h.rings[session]
	if !ok {
		r = newRing(h.capacity)
		h.rings[session] = r
	}
	r.push(n)
	return n
}

// Recent returns the session's notifications, oldest first.
func (h *Hub) Recent(session string) []Notification {
	h.mu.Lock()
	defer h.mu.Unlock()

	r, ok := h.rings[session]
	if !ok {
		return []Notification{}
	}
	return r.items()
}

// Since returns notifications newer than t, oldest first.
func (h *Hub) Since(session string, t time.Time) []Notification {
	all := h.Recent(session)
	out := all[:0]
	for _, n := range all {
		if n.At.After(t) {
			out = append(out, n)
		}
	}
	return out
}

// Clear drops the session's notifications.
func (h *Hub) Clear(session string) {
	h.mu.Lock()
	delete(h.rings, session)
	h.mu.Unlock()
}

type ring struct {
	buf   []Notification
	start int
	size  int
}

func newRing(capacity int) *ring {
	return &ring{buf: make([]Notification, capacity)}
}

func (r *ring) push(n Notification) {
	if r.size < len(r.buf) {
		r.buf[(r.start+r.size)%len(r.buf)] = n
		r.size++
		return
	}
	r.buf[r.start] = n
	r.start = (r.start + 1) % len(r.buf)
}

func (r *ring) items() []Notification {
	out := make([]Notification, r.size)
	for i := 0; i < r.size; i++ {
		out[i] = r.buf[(r.start+i)%len(r.buf)]
	}
	return out
}
