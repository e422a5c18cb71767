package chi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/kailas-cloud/inventory/internal/domain/query"
	domreport "github.com/kailas-cloud/inventory/internal/domain/report"
	"github.com/kailas-cloud/inventory/internal/domain/viewstate"
	listinguc "github.com/kailas-cloud/inventory/internal/usecase/listing"
)

// GetActionMenu handles GET /instances/actions.
func (s *Server) GetActionMenu(w http.ResponseWriter, r *http.Request, params ActionMenuParams) {
	q, ok := s.searchQuery(w, r, string(query.SegmentInstances), params.SearchParams)
	if !ok {
		return
	}
	empty, err := s.listEmpty(r.Context(), q, params.ListEmpty)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	menu := listinguc.ActionMenu(permissions(r.Context()), empty, listinguc.Handlers{}, nil)
	writeJSON(w, http.StatusOK, map[string]any{"commands": menu})
}

// RunAction handles POST /instances/actions/{action}. Report actions reply
// like the report endpoints; view actions reply with the new view state.
func (s *Server) RunAction(w http.ResponseWriter, r *http.Request, action string, params ActionMenuParams) {
	q, ok := s.searchQuery(w, r, string(query.SegmentInstances), params.SearchParams)
	if !ok {
		return
	}
	empty, err := s.listEmpty(r.Context(), q, params.ListEmpty)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	sid := sessionID(r.Context())
	sink := newResponseSink(s.hub, sid)

	var (
		state     *viewstate.State
		ranReport bool
		outcome   domreport.Outcome
		reportErr error
	)
	viewAction := func(fn func(context.Context, string) (viewstate.State, error)) func(context.Context) error {
		return func(ctx context.Context) error {
			st, err := fn(ctx, sid)
			if err != nil {
				return err
			}
			state = &st
			return nil
		}
	}
	report := func(fn func(context.Context) (domreport.Outcome, error)) func(context.Context) error {
		return func(ctx context.Context) error {
			ranReport = true
			outcome, reportErr = fn(ctx)
			return nil
		}
	}

	menu := listinguc.ActionMenu(permissions(r.Context()), empty, listinguc.Handlers{
		NewInstance: viewAction(s.listing.OpenCreateInstance),
		FastAdd:     viewAction(s.listing.ToggleFastAddModal),
		InTransitReport: report(func(ctx context.Context) (domreport.Outcome, error) {
			return s.reports.GenerateInTransitReport(ctx, sink)
		}),
		IDReport: report(func(ctx context.Context) (domreport.Outcome, error) {
			return s.reports.GenerateIDReport(ctx, q, sink)
		}),
		CQLQuery: report(func(ctx context.Context) (domreport.Outcome, error) {
			return s.reports.ExportCQL(ctx, q, sink)
		}),
	}, nil)

	if err := menu.Run(r.Context(), action); err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	switch {
	case ranReport:
		s.writeOutcome(w, r, outcome, reportErr, sink)
	case state != nil:
		writeJSON(w, http.StatusOK, state)
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

// listEmpty uses the caller's hint when given and otherwise asks the backend.
func (s *Server) listEmpty(ctx context.Context, q query.SearchQuery, hint *bool) (bool, error) {
	if hint != nil {
		return *hint, nil
	}
	page, err := s.listing.Search(ctx, q, 0, 1)
	if err != nil {
		return false, fmt.Errorf("probe result list: %w", err)
	}
	return page.TotalRecords == 0 && len(page.Rows) == 0, nil
}
