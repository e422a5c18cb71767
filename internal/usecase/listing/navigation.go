package listing

import (
	"net/url"

	"github.com/kailas-cloud/inventory/internal/domain/filter"
	"github.com/kailas-cloud/inventory/internal/domain/query"
)

// Navigation is a target location for the list view.
type Navigation struct {
	Path   string     `json:"path"`
	Params url.Values `json:"params"`
}

// URL renders the navigation as a relative URL.
func (n Navigation) URL() string {
	if len(n.Params) == 0 {
		return n.Path
	}
	return n.Path + "?" + n.Params.Encode()
}

// FilterChange merges one filter group change into the filters parameter of
// params and returns where the view should go next. Other parameters are kept.
// An unreadable filters parameter counts as no filters.
func FilterChange(path string, params url.Values, name string, values []string) Navigation {
	next := url.Values{}
	for k, v := range params {
		next[k] = append([]string(nil), v...)
	}

	current := filter.Parse(params.Get(query.ParamFilters))
	merged := current.Apply(name, values)

	if s := filter.Serialize(merged); s != "" {
		next.Set(query.ParamFilters, s)
	} else {
		next.Del(query.ParamFilters)
	}
	return Navigation{Path: path, Params: next}
}
