package chi

import (
	"context"
	"mime"
	"net/http"
	"strconv"
	"sync"

	"github.com/kailas-cloud/inventory/internal/artifact"
	"github.com/kailas-cloud/inventory/internal/notify"
)

// responseSink collects what a report run produces during one request.
// Notifications also go to the session's hub so pollers see them.
type responseSink struct {
	hub     *notify.Hub
	session string

	mu        sync.Mutex
	artifacts []artifact.Artifact
	notes     []notify.Notification
	modal     *notify.Modal
}

func newResponseSink(hub *notify.Hub, session string) *responseSink {
	return &responseSink{hub: hub, session: session}
}

func (s *responseSink) Download(_ context.Context, a artifact.Artifact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.artifacts = append(s.artifacts, a)
	return nil
}

func (s *responseSink) Notify(_ context.Context, n notify.Notification) {
	if s.hub != nil {
		n = s.hub.Publish(s.session, n)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes = append(s.notes, n)
}

func (s *responseSink) OpenModal(_ context.Context, m notify.Modal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modal = &m
}

func (s *responseSink) artifact() (artifact.Artifact, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.artifacts) == 0 {
		return artifact.Artifact{}, false
	}
	return s.artifacts[len(s.artifacts)-1], true
}

func (s *responseSink) notifications() []notify.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]notify.Notification{}, s.notes...)
}

func (s *responseSink) openModal() *notify.Modal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.modal
}

// writeArtifact sends a as a file attachment.
func writeArtifact(w http.ResponseWriter, a artifact.Artifact) {
	w.Header().Set("Content-Type", a.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": a.Name}))
	w.Header().Set("Content-Length", strconv.Itoa(len(a.Body)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(a.Body)
}
