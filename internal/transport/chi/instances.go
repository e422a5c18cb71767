package chi

import (
	"net/http"
	"time"

	"github.com/kailas-cloud/inventory/internal/domain"
	"github.com/kailas-cloud/inventory/internal/domain/permission"
	"github.com/kailas-cloud/inventory/internal/i18n"
	"github.com/kailas-cloud/inventory/internal/notify"
)

// GetNewInstance handles GET /instances/new.
func (s *Server) GetNewInstance(w http.ResponseWriter, r *http.Request) {
	values, err := s.listing.NewRecordInitialValues(r.Context(), sessionID(r.Context()))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, values)
}

// CloseNewInstance handles DELETE /instances/new.
func (s *Server) CloseNewInstance(w http.ResponseWriter, r *http.Request) {
	st, err := s.listing.CloseNewInstance(r.Context(), sessionID(r.Context()))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// CopyInstance handles POST /instances/{id}/copy.
func (s *Server) CopyInstance(w http.ResponseWriter, r *http.Request, id string) {
	if !permissions(r.Context()).Has(permission.InstanceCreate) {
		s.handleDomainError(w, r, domain.ErrForbidden)
		return
	}
	st, err := s.listing.CopyInstance(r.Context(), sessionID(r.Context()), id)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// CreateInstance handles POST /instances.
func (s *Server) CreateInstance(w http.ResponseWriter, r *http.Request) {
	if !permissions(r.Context()).Has(permission.InstanceCreate) {
		s.handleDomainError(w, r, domain.ErrForbidden)
		return
	}

	var form domain.Record
	if !decodeBody(w, r, &form) {
		return
	}

	sid := sessionID(r.Context())
	created, err := s.listing.CreateInstance(r.Context(), sid, form)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	msg := i18n.FromContext(r.Context()).T(i18n.KeyInstanceCreated, created.String("title"))
	s.hub.Publish(sid, notify.Notification{Level: notify.LevelInfo, Message: msg})

	if id := created.ID(); id != "" {
		w.Header().Set("Location", "/api/v1/instances/"+id)
	}
	writeJSON(w, http.StatusCreated, created)
}

// ToggleFastAdd handles POST /instances/fast-add/toggle.
func (s *Server) ToggleFastAdd(w http.ResponseWriter, r *http.Request) {
	st, err := s.listing.ToggleFastAddModal(r.Context(), sessionID(r.Context()))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// CloseErrorModal handles DELETE /instances/error-modal.
func (s *Server) CloseErrorModal(w http.ResponseWriter, r *http.Request) {
	st, err := s.listing.CloseErrorModal(r.Context(), sessionID(r.Context()))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// GetSession handles GET /session.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	st, err := s.listing.State(r.Context(), sessionID(r.Context()))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// ListHoldingsItems handles GET /holdings/{id}/items.
func (s *Server) ListHoldingsItems(w http.ResponseWriter, r *http.Request, id string) {
	rows, err := s.listing.HoldingsItems(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": rows})
}

// ListNotifications handles GET /notifications.
func (s *Server) ListNotifications(w http.ResponseWriter, r *http.Request, params NotificationsParams) {
	sid := sessionID(r.Context())

	notes := s.hub.Recent(sid)
	if params.Since != nil && *params.Since != "" {
		since, err := time.Parse(time.RFC3339Nano, *params.Since)
		if err != nil {
			writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, "since must be an RFC 3339 timestamp")
			return
		}
		notes = s.hub.Since(sid, since)
	}
	writeJSON(w, http.StatusOK, map[string]any{"notifications": notes})
}
