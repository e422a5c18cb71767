// Package filter holds the faceted filter state of a list view and its
// compact string encoding used in navigation URLs.
package filter

// State is an ordered mapping of filter name to an ordered set of selected values.
// A name with no values is never stored. The zero value is an empty state.
type State struct {
	names  []string
	values map[string][]string
}

// New builds a state from name/values pairs in order. Pairs with no values are skipped.
func New(pairs ...Pair) State {
	var s State
	for _, p := range pairs {
		s = s.Apply(p.Name, p.Values)
	}
	return s
}

// Pair is one filter name with its selected values.
type Pair struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// Names returns filter names in insertion order.
func (s State) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Values returns the selected values for name in insertion order, or nil.
func (s State) Values(name string) []string {
	vals := s.values[name]
	if len(vals) == 0 {
		return nil
	}
	out := make([]string, len(vals))
	copy(out, vals)
	return out
}

// Has reports whether name constrains the result set.
func (s State) Has(name string) bool {
	return len(s.values[name]) > 0
}

// Len returns the number of active filter names.
func (s State) Len() int { return len(s.names) }

// IsEmpty reports whether no filter is active.
func (s State) IsEmpty() bool { return len(s.names) == 0 }

// Pairs returns the state as an ordered list.
func (s State) Pairs() []Pair {
	out := make([]Pair, 0, len(s.names))
	for _, n := range s.names {
		out = append(out, Pair{Name: n, Values: s.Values(n)})
	}
	return out
}

// Apply returns a copy of s with one filter change merged in.
// Non-empty values replace the entry for name, keeping its position when present.
// Empty values remove the entry entirely.
func (s State) Apply(name string, values []string) State {
	vals := dedupe(values)
	out := s.clone()

	if name == "" {
		return out
	}
	if len(vals) == 0 {
		out.remove(name)
		return out
	}
	if _, ok := out.values[name]; !ok {
		out.names = append(out.names, name)
	}
	out.values[name] = vals
	return out
}

// Equal reports whether both states hold the same names and values in the same order.
func (s State) Equal(other State) bool {
	if len(s.names) != len(other.names) {
		return false
	}
	for i, n := range s.names {
		if other.names[i] != n {
			return false
		}
		a, b := s.values[n], other.values[n]
		if len(a) != len(b) {
			return false
		}
		for j := range a {
			if a[j] != b[j] {
				return false
			}
		}
	}
	return true
}

func (s State) clone() State {
	out := State{
		names:  make([]string, len(s.names), len(s.names)+1),
		values: make(map[string][]string, len(s.values)+1),
	}
	copy(out.names, s.names)
	for k, v := range s.values {
		out.values[k] = v
	}
	return out
}

func (s *State) remove(name string) {
	if _, ok := s.values[name]; !ok {
		return
	}
	delete(s.values, name)
	for i, n := range s.names {
		if n == name {
			s.names = append(s.names[:i], s.names[i+1:]...)
			return
		}
	}
}

// dedupe drops empty strings and repeats, keeping the first occurrence.
func dedupe(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
