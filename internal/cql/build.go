// Package cql turns a list view's search state into a CQL expression for the
// inventory backend. Building is pure: the same input always yields the same
// string and nothing but the supplied Logger observes it.
package cql

import (
	"regexp"
	"strings"
	"time"

	"github.com/kailas-cloud/inventory/internal/domain/query"
	"github.com/kailas-cloud/inventory/internal/domain/refdata"
)

// AllRecords matches every record. It is returned when nothing constrains the search.
const AllRecords = "cql.allRecords=1"

const (
	dateLayout = "2006-01-02"
	descSuffix = "/sort.descending"
)

var (
	valueEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	sortbyRe     = regexp.MustCompile(`(?i)\bsortby\b`)
)

// Options configures a build.
type Options struct {
	// Logger observes the build. Nil means NopLogger.
	Logger Logger
}

// Build renders q as a CQL expression. Missing reference data, unknown
// indexes, filters and sort keys drop the affected clause; Build never fails.
func Build(q query.SearchQuery, ref refdata.Tables, opts Options) string {
	log := opts.Logger
	if log == nil {
		log = NopLogger{}
	}

	seg := q.Segment
	if seg == "" {
		seg = query.SegmentInstances
	}
	cfg, ok := segments[seg]
	if !ok {
		log.Log("cql", "unknown segment", string(seg))
		return AllRecords
	}

	var clauses []string

	qc, rawSort := queryClause(cfg, q, ref, log)
	if qc != "" {
		clauses = append(clauses, "("+qc+")")
	}

	for _, name := range q.Filters.Names() {
		fg, ok := cfg.filter(name)
		if !ok {
			log.Log("cql", "unknown filter omitted", name)
			continue
		}
		if fc := filterClause(fg, q.Filters.Values(name), ref, log); fc != "" {
			clauses = append(clauses, fc)
		}
	}

	expr := AllRecords
	if len(clauses) > 0 {
		expr = strings.Join(clauses, " and ")
	}

	if rawSort != "" {
		expr += " " + rawSort
	} else if sc := sortClause(cfg, q.Sort, log); sc != "" {
		expr += " " + sc
	}

	log.Log("cql", "built", expr)
	return expr
}

// queryClause renders the free-text part. For querySearch it also returns a
// sortby clause found in the raw input so the caller can keep it last.
func queryClause(cfg *segmentConfig, q query.SearchQuery, ref refdata.Tables, log Logger) (string, string) {
	term := strings.TrimSpace(q.Query)
	if term == "" {
		return "", ""
	}

	name := q.QIndex
	if name == "" {
		name = IndexAll
	}
	ix, ok := cfg.index(name)
	if !ok {
		log.Log("cql", "unknown index omitted", name)
		return "", ""
	}

	if ix.name == IndexQuerySearch {
		loc := sortbyRe.FindStringIndex(term)
		if loc == nil {
			return term, ""
		}
		return strings.TrimSpace(term[:loc[0]]), strings.TrimSpace(term[loc[0]:])
	}

	typeID := ""
	if ix.identifierType != "" {
		typeID = ref.IdentifierTypes.IDOf(ix.identifierType)
		if typeID == "" {
			log.Log("cql", "identifier type missing, query omitted", ix.identifierType)
			return "", ""
		}
	}

	r := strings.NewReplacer(phValue, valueEscaper.Replace(term), phTypeID, valueEscaper.Replace(typeID))
	return r.Replace(ix.template), ""
}

func filterClause(fg filterGroup, values []string, ref refdata.Tables, log Logger) string {
	switch fg.kind {
	case filterDateRange:
		from, to, ok := parseRange(values)
		if !ok {
			log.Log("cql", "malformed date range omitted", fg.name, values)
			return ""
		}
		return "(" + fg.field + `>="` + from + `" and ` + fg.field + `<="` + to + `")`
	case filterLookup:
		table := ref.Get(fg.table)
		ids := make([]string, 0, len(values))
		for _, v := range values {
			id := table.IDOf(v)
			if id == "" {
				log.Log("cql", "lookup value omitted", fg.name, v)
				continue
			}
			ids = append(ids, id)
		}
		return anyOf(fg.field, ids)
	default:
		return anyOf(fg.field, values)
	}
}

// anyOf renders (field=="v1" or field=="v2").
func anyOf(field string, values []string) string {
	if len(values) == 0 {
		return ""
	}
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = field + `=="` + valueEscaper.Replace(v) + `"`
	}
	return "(" + strings.Join(parts, " or ") + ")"
}

// parseRange accepts a single "from:to" value of two dates.
func parseRange(values []string) (string, string, bool) {
	if len(values) != 1 {
		return "", "", false
	}
	from, to, ok := strings.Cut(values[0], ":")
	if !ok {
		return "", "", false
	}
	f, err := time.Parse(dateLayout, from)
	if err != nil {
		return "", "", false
	}
	t, err := time.Parse(dateLayout, to)
	if err != nil || t.Before(f) {
		return "", "", false
	}
	return from, to, true
}

// sortClause renders comma-separated sort keys; a leading '-' sorts descending.
func sortClause(cfg *segmentConfig, raw string, log Logger) string {
	if raw == "" {
		return ""
	}
	var fields []string
	for _, key := range strings.Split(raw, ",") {
		key = strings.TrimSpace(key)
		desc := strings.HasPrefix(key, "-")
		key = strings.TrimPrefix(key, "-")
		field, ok := cfg.sorts[key]
		if !ok {
			if key != "" {
				log.Log("cql", "unknown sort key omitted", key)
			}
			continue
		}
		if desc {
			field += descSuffix
		}
		fields = append(fields, field)
	}
	if len(fields) == 0 {
		return ""
	}
	return "sortby " + strings.Join(fields, " ")
}
