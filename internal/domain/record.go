package domain

import "strings"

// Record is a backend record kept as an opaque JSON object so that attributes
// this service does not know about survive a read-modify-write round trip.
type Record map[string]any

// ID returns the record id or "".
func (r Record) ID() string {
	return r.String("id")
}

// String returns a top-level string attribute or "".
func (r Record) String(key string) string {
	if s, ok := r[key].(string); ok {
		return s
	}
	return ""
}

// Bool returns a top-level boolean attribute and whether it was present.
func (r Record) Bool(key string) (bool, bool) {
	b, ok := r[key].(bool)
	return b, ok
}

// Path follows dot-separated keys through nested objects and returns the string at the end.
// Missing keys or non-object intermediates yield "".
func (r Record) Path(path string) string {
	var cur any = map[string]any(r)
	for _, key := range strings.Split(path, ".") {
		m, ok := asObject(cur)
		if !ok {
			return ""
		}
		cur = m[key]
	}
	s, _ := cur.(string)
	return s
}

// Object returns the nested object at key, or an empty record.
func (r Record) Object(key string) Record {
	if m, ok := asObject(r[key]); ok {
		return Record(m)
	}
	return Record{}
}

// Objects returns the list attribute at key as records, skipping non-object elements.
func (r Record) Objects(key string) []Record {
	list, ok := r[key].([]any)
	if !ok {
		if typed, ok := r[key].([]Record); ok {
			return typed
		}
		return nil
	}
	out := make([]Record, 0, len(list))
	for _, el := range list {
		if m, ok := asObject(el); ok {
			out = append(out, Record(m))
		}
	}
	return out
}

// Strings returns the list attribute at key as strings, skipping non-string elements.
func (r Record) Strings(key string) []string {
	list, ok := r[key].([]any)
	if !ok {
		if typed, ok := r[key].([]string); ok {
			return typed
		}
		return nil
	}
	out := make([]string, 0, len(list))
	for _, el := range list {
		if s, ok := el.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Clone returns a shallow copy.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

func asObject(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Record:
		return m, true
	default:
		return nil, false
	}
}

// Page is one page of a backend record list. When the backend omits
// totalRecords, TotalRecords is the page length and TotalKnown is false.
type Page struct {
	Records      []Record `json:"records"`
	TotalRecords int      `json:"totalRecords"`
	TotalKnown   bool     `json:"-"`
}
