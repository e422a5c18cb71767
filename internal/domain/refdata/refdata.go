// Package refdata holds the backend lookup tables the query builder and
// record marshaling resolve names against.
package refdata

import "strings"

// Entry is one row of a lookup table.
type Entry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Table is a lookup table. Nil and partial tables are valid.
type Table []Entry

// ByName finds an entry by case-insensitive name.
func (t Table) ByName(name string) (Entry, bool) {
	for _, e := range t {
		if strings.EqualFold(e.Name, name) {
			return e, true
		}
	}
	return Entry{}, false
}

// ByID finds an entry by id.
func (t Table) ByID(id string) (Entry, bool) {
	for _, e := range t {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// IDOf returns the id for name, or "" when the table lacks it.
func (t Table) IDOf(name string) string {
	e, _ := t.ByName(name)
	return e.ID
}

// Identifier type names the builder and marshaling look up.
const (
	IdentifierISBN = "ISBN"
	IdentifierISSN = "ISSN"
)

// Kind names one lookup table.
type Kind string

// Lookup tables and the backend paths and record keys they load from.
const (
	KindIdentifierTypes           Kind = "identifierTypes"
	KindContributorTypes          Kind = "contributorTypes"
	KindInstanceRelationshipTypes Kind = "instanceRelationshipTypes"
	KindLocations                 Kind = "locations"
)

// Source describes where a table is loaded from.
type Source struct {
	Kind       Kind
	Path       string
	RecordsKey string
}

// Sources lists every table in load order.
func Sources() []Source {
	return []Source{
		{KindIdentifierTypes, "identifier-types", "identifierTypes"},
		{KindContributorTypes, "contributor-types", "contributorTypes"},
		{KindInstanceRelationshipTypes, "instance-relationship-types", "instanceRelationshipTypes"},
		{KindLocations, "locations", "locations"},
	}
}

// Tables bundles every lookup table.
type Tables struct {
	IdentifierTypes           Table `json:"identifierTypes"`
	ContributorTypes          Table `json:"contributorTypes"`
	InstanceRelationshipTypes Table `json:"instanceRelationshipTypes"`
	Locations                 Table `json:"locations"`
}

// Set stores table under kind. Unknown kinds are ignored.
func (t *Tables) Set(kind Kind, table Table) {
	switch kind {
	case KindIdentifierTypes:
		t.IdentifierTypes = table
	case KindContributorTypes:
		t.ContributorTypes = table
	case KindInstanceRelationshipTypes:
		t.InstanceRelationshipTypes = table
	case KindLocations:
		t.Locations = table
	}
}

// Get returns the table stored under kind.
func (t Tables) Get(kind Kind) Table {
	switch kind {
	case KindIdentifierTypes:
		return t.IdentifierTypes
	case KindContributorTypes:
		return t.ContributorTypes
	case KindInstanceRelationshipTypes:
		return t.InstanceRelationshipTypes
	case KindLocations:
		return t.Locations
	default:
		return nil
	}
}
