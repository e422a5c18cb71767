package chi

import (
	"net/http"
	"strings"

	"github.com/kailas-cloud/inventory/internal/domain/filter"
	"github.com/kailas-cloud/inventory/internal/domain/query"
	listinguc "github.com/kailas-cloud/inventory/internal/usecase/listing"
)

// defaultViewPath is the list view location used when a filter change names none.
const defaultViewPath = "/inventory"

// SearchRecords handles GET /{segment}/search.
func (s *Server) SearchRecords(w http.ResponseWriter, r *http.Request, segment string, params SearchParams) {
	q, ok := s.searchQuery(w, r, segment, params)
	if !ok {
		return
	}

	page, err := s.listing.Search(r.Context(), q, derefInt(params.Offset), derefInt(params.Limit))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// GetCQL handles GET /{segment}/cql.
func (s *Server) GetCQL(w http.ResponseWriter, r *http.Request, segment string, params SearchParams) {
	q, ok := s.searchQuery(w, r, segment, params)
	if !ok {
		return
	}

	expr, err := s.listing.CQL(r.Context(), q)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"cql": expr})
}

// ChangeFilter handles POST /{segment}/filters.
func (s *Server) ChangeFilter(w http.ResponseWriter, r *http.Request, segment string, params SearchParams) {
	if _, ok := s.searchQuery(w, r, segment, params); !ok {
		return
	}

	var req FilterChangeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, "Filter name is required")
		return
	}
	path := req.Path
	if path == "" {
		path = defaultViewPath
	}

	nav := listinguc.FilterChange(path, r.URL.Query(), req.Name, req.Values)
	writeJSON(w, http.StatusOK, map[string]any{
		"path":   nav.Path,
		"params": nav.Params,
		"url":    nav.URL(),
	})
}

// searchQuery assembles the list view query from bound parameters.
func (s *Server) searchQuery(w http.ResponseWriter, _ *http.Request, segment string, params SearchParams) (query.SearchQuery, bool) {
	seg, err := query.ParseSegment(segment)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, err.Error())
		return query.SearchQuery{}, false
	}
	return query.SearchQuery{
		Segment: seg,
		QIndex:  derefString(params.QIndex),
		Query:   strings.TrimSpace(derefString(params.Query)),
		Filters: filter.Parse(derefString(params.Filters)),
		Sort:    derefString(params.Sort),
	}, true
}

func derefString(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func derefInt(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
