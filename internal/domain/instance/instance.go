// Package instance shapes instance records for the create-from-copy flow.
package instance

import (
	"github.com/kailas-cloud/inventory/internal/domain"
	"github.com/kailas-cloud/inventory/internal/domain/refdata"
)

// SourceFolio marks a record as catalogued in this system rather than imported.
const SourceFolio = "FOLIO"

// Attribute names touched by copy staging and marshaling.
const (
	FieldID               = "id"
	FieldHRID             = "hrid"
	FieldSource           = "source"
	FieldPrecedingTitles  = "precedingTitles"
	FieldSucceedingTitles = "succeedingTitles"
)

// relationFields maps each ordered title link list to the attribute that names the linked instance.
var relationFields = []struct {
	list     string
	linkedID string
}{
	{FieldPrecedingTitles, "precedingInstanceId"},
	{FieldSucceedingTitles, "succeedingInstanceId"},
}

// PrepareCopy returns a draft of src that can be submitted as a new record.
// Identity fields are dropped from the record and from every title link, list
// order and all other attributes are kept, and source is forced to FOLIO.
// src is not modified.
func PrepareCopy(src domain.Record) domain.Record {
	draft := src.Clone()
	if draft == nil {
		draft = domain.Record{}
	}
	delete(draft, FieldID)
	delete(draft, FieldHRID)

	for _, rel := range relationFields {
		links := src.Objects(rel.list)
		if len(links) == 0 {
			continue
		}
		stripped := make([]any, 0, len(links))
		for _, link := range links {
			c := link.Clone()
			delete(c, FieldID)
			stripped = append(stripped, map[string]any(c))
		}
		draft[rel.list] = stripped
	}

	draft[FieldSource] = SourceFolio
	return draft
}

// Defaults returns the initial values of a blank new-instance form.
func Defaults() domain.Record {
	return domain.Record{
		"discoverySuppress": false,
		"staffSuppress":     false,
		"previouslyHeld":    false,
		FieldSource:         SourceFolio,
	}
}

// Marshal converts form values into the backend create payload. Title links
// carry their linked instance id and isbn/issn values as typed identifiers.
// An identifier whose type is missing from ref is left out.
func Marshal(form domain.Record, ref refdata.Tables) domain.Record {
	out := form.Clone()
	if out == nil {
		out = domain.Record{}
	}

	isbnType := ref.IdentifierTypes.IDOf(refdata.IdentifierISBN)
	issnType := ref.IdentifierTypes.IDOf(refdata.IdentifierISSN)

	for _, rel := range relationFields {
		if _, present := form[rel.list]; !present {
			continue
		}
		links := form.Objects(rel.list)
		marshaled := make([]any, 0, len(links))
		for _, link := range links {
			marshaled = append(marshaled, marshalLink(link, rel.linkedID, isbnType, issnType))
		}
		out[rel.list] = marshaled
	}
	return out
}

func marshalLink(link domain.Record, linkedIDField, isbnType, issnType string) map[string]any {
	m := map[string]any{"title": link.String("title")}
	if hrid := link.String(FieldHRID); hrid != "" {
		m[FieldHRID] = hrid
	}
	if id := link.String(FieldID); id != "" {
		m[linkedIDField] = id
	} else if linked := link.String(linkedIDField); linked != "" {
		m[linkedIDField] = linked
	}

	identifiers := make([]any, 0, 2)
	if v := link.String("isbn"); v != "" && isbnType != "" {
		identifiers = append(identifiers, map[string]any{"identifierTypeId": isbnType, "value": v})
	}
	if v := link.String("issn"); v != "" && issnType != "" {
		identifiers = append(identifiers, map[string]any{"identifierTypeId": issnType, "value": v})
	}
	if len(identifiers) == 0 {
		if existing, ok := link["identifiers"].([]any); ok {
			identifiers = existing
		}
	}
	m["identifiers"] = identifiers
	return m
}
