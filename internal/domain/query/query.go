// Package query holds the search state of a list view as it travels through navigation URLs.
package query

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/kailas-cloud/inventory/internal/domain/filter"
)

// Segment selects which record type a list view searches.
type Segment string

// Supported segments.
const (
	SegmentInstances Segment = "instances"
	SegmentHoldings  Segment = "holdings"
	SegmentItems     Segment = "items"
)

// Segments lists all segments in navigation order.
func Segments() []Segment {
	return []Segment{SegmentInstances, SegmentHoldings, SegmentItems}
}

// ParseSegment validates a segment name. Empty input means instances.
func ParseSegment(s string) (Segment, error) {
	switch Segment(s) {
	case "":
		return SegmentInstances, nil
	case SegmentInstances, SegmentHoldings, SegmentItems:
		return Segment(s), nil
	default:
		return "", fmt.Errorf("unknown segment %q", s)
	}
}

// URL parameter names.
const (
	ParamSegment = "segment"
	ParamQIndex  = "qindex"
	ParamQuery   = "query"
	ParamFilters = "filters"
	ParamSort    = "sort"
)

// SearchQuery is the free-text search plus active filters of one list view.
type SearchQuery struct {
	Segment Segment
	QIndex  string
	Query   string
	Filters filter.State
	Sort    string
}

// FromValues reads a query from URL parameters. A malformed filters
// parameter yields no filters; an unknown segment is an error.
func FromValues(v url.Values) (SearchQuery, error) {
	seg, err := ParseSegment(v.Get(ParamSegment))
	if err != nil {
		return SearchQuery{}, err
	}
	return SearchQuery{
		Segment: seg,
		QIndex:  v.Get(ParamQIndex),
		Query:   strings.TrimSpace(v.Get(ParamQuery)),
		Filters: filter.Parse(v.Get(ParamFilters)),
		Sort:    v.Get(ParamSort),
	}, nil
}

// Values encodes the query as URL parameters. Empty parts are omitted.
func (q SearchQuery) Values() url.Values {
	v := url.Values{}
	if q.Segment != "" && q.Segment != SegmentInstances {
		v.Set(ParamSegment, string(q.Segment))
	}
	if q.QIndex != "" {
		v.Set(ParamQIndex, q.QIndex)
	}
	if q.Query != "" {
		v.Set(ParamQuery, q.Query)
	}
	if raw := filter.Serialize(q.Filters); raw != "" {
		v.Set(ParamFilters, raw)
	}
	if q.Sort != "" {
		v.Set(ParamSort, q.Sort)
	}
	return v
}

// Encode returns the canonical query string.
func (q SearchQuery) Encode() string {
	return q.Values().Encode()
}

// IsBlank reports whether the query neither searches nor filters.
func (q SearchQuery) IsBlank() bool {
	return q.Query == "" && q.Filters.IsEmpty()
}
