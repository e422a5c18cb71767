package chi

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/kailas-cloud/inventory/internal/domain"
	"github.com/kailas-cloud/inventory/internal/domain/query"
	domreport "github.com/kailas-cloud/inventory/internal/domain/report"
	"github.com/kailas-cloud/inventory/internal/i18n"
	"github.com/kailas-cloud/inventory/internal/logger"
	"github.com/kailas-cloud/inventory/internal/notify"
)

// reportResponse is the JSON reply of a report run that produced no file.
type reportResponse struct {
	Outcome       domreport.Outcome     `json:"outcome"`
	Code          ErrorCode             `json:"code,omitempty"`
	Message       string                `json:"message,omitempty"`
	Modal         *notify.Modal         `json:"modal,omitempty"`
	Notifications []notify.Notification `json:"notifications"`
}

// GenerateIDReport handles POST /instances/reports/ids.
func (s *Server) GenerateIDReport(w http.ResponseWriter, r *http.Request, params SearchParams) {
	q, ok := s.searchQuery(w, r, string(query.SegmentInstances), params)
	if !ok {
		return
	}
	sink := newResponseSink(s.hub, sessionID(r.Context()))
	outcome, err := s.reports.GenerateIDReport(r.Context(), q, sink)
	s.writeOutcome(w, r, outcome, err, sink)
}

// GenerateInTransitReport handles POST /instances/reports/in-transit.
func (s *Server) GenerateInTransitReport(w http.ResponseWriter, r *http.Request) {
	sid := sessionID(r.Context())
	sink := newResponseSink(s.hub, sid)
	outcome, err := s.reports.GenerateInTransitReport(r.Context(), sink)
	if m := sink.openModal(); m != nil && outcome == domreport.EmptyResult {
		// The modal stays open across requests until DELETE /instances/error-modal.
		if _, serr := s.listing.OpenErrorModal(r.Context(), sid, m.Label, m.Message); serr != nil {
			logger.FromContextOr(r.Context(), s.logger).Warn("Failed to open error modal", zap.Error(serr))
		}
	}
	s.writeOutcome(w, r, outcome, err, sink)
}

// ExportCQL handles POST /instances/reports/cql.
func (s *Server) ExportCQL(w http.ResponseWriter, r *http.Request, params SearchParams) {
	q, ok := s.searchQuery(w, r, string(query.SegmentInstances), params)
	if !ok {
		return
	}
	sink := newResponseSink(s.hub, sessionID(r.Context()))
	outcome, err := s.reports.ExportCQL(r.Context(), q, sink)
	s.writeOutcome(w, r, outcome, err, sink)
}

// writeOutcome maps a report outcome to the reply: the file on success, 200
// JSON for an empty result, 409 for an overlapping trigger, 502 on failure.
// A fetch failure the report hands back is logged here; the reply carries
// only the user notice.
func (s *Server) writeOutcome(w http.ResponseWriter, r *http.Request, outcome domreport.Outcome, err error, sink *responseSink) {
	if err != nil {
		if !errors.Is(err, domain.ErrFetchFailure) {
			s.handleDomainError(w, r, err)
			return
		}
		logger.FromContextOr(r.Context(), s.logger).Error("Report failed",
			zap.String("outcome", string(outcome)), zap.Error(err))
	}

	tr := i18n.FromContext(r.Context())
	resp := reportResponse{
		Outcome:       outcome,
		Modal:         sink.openModal(),
		Notifications: sink.notifications(),
	}

	switch outcome {
	case domreport.Succeeded:
		if a, ok := sink.artifact(); ok {
			writeArtifact(w, a)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	case domreport.EmptyResult:
		writeJSON(w, http.StatusOK, resp)
	case domreport.Ignored:
		resp.Code = ErrorCodeExportInProgress
		resp.Message = tr.T(i18n.KeyExportInProgress)
		writeJSON(w, http.StatusConflict, resp)
	default:
		resp.Code = ErrorCodeBackendError
		resp.Message = safeDomainMessage(domain.ErrFetchFailure)
		if notes := resp.Notifications; len(notes) > 0 {
			resp.Message = notes[len(notes)-1].Message
		}
		writeJSON(w, http.StatusBadGateway, resp)
	}
}
