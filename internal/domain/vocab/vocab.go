// Package vocab describes the controlled vocabularies editable from settings.
// Each vocabulary is a configuration for one generic CRUD table.
package vocab

import (
	"fmt"

	"github.com/kailas-cloud/inventory/internal/domain"
	"github.com/kailas-cloud/inventory/internal/domain/permission"
)

// Tags of supported vocabularies.
const (
	TagHoldingsNoteTypes = "holdingsNoteTypes"
	TagItemNoteTypes     = "itemNoteTypes"
)

// Config describes one controlled vocabulary.
type Config struct {
	ID             string
	Path           string
	RecordsKey     string
	Label          string
	LabelSingular  string
	NameKey        string
	VisibleFields  []string
	ReadOnlyFields []string
	HiddenFields   []string
	ItemTemplate   domain.Record
	SortBy         string
	EditPerm       string
	DeletePerm     string
}

// noteTypes builds the configuration shared by note type vocabularies.
func noteTypes(id, path, label, singular string) Config {
	return Config{
		ID:             id,
		Path:           path,
		RecordsKey:     id,
		Label:          label,
		LabelSingular:  singular,
		NameKey:        "name",
		VisibleFields:  []string{"name", "source"},
		ReadOnlyFields: []string{"source"},
		HiddenFields:   []string{"description", "numberOfObjects"},
		ItemTemplate:   domain.Record{"source": "local"},
		SortBy:         "name",
		EditPerm:       permission.SettingsListEdit,
		DeletePerm:     permission.SettingsListDel,
	}
}

var registry = map[string]Config{
	TagHoldingsNoteTypes: noteTypes(TagHoldingsNoteTypes, "holdings-note-types", "Holdings note types", "Holdings note type"),
	TagItemNoteTypes:     noteTypes(TagItemNoteTypes, "item-note-types", "Item note types", "Item note type"),
}

// Lookup returns the configuration for tag.
func Lookup(tag string) (Config, error) {
	cfg, ok := registry[tag]
	if !ok {
		return Config{}, fmt.Errorf("%q: %w", tag, domain.ErrUnknownVocabulary)
	}
	return cfg, nil
}

// Tags lists supported vocabularies in display order.
func Tags() []string {
	return []string{TagHoldingsNoteTypes, TagItemNoteTypes}
}

// CanEdit reports whether perms allow editing entries.
func (c Config) CanEdit(perms permission.Set) bool {
	return c.EditPerm == "" || perms.Has(c.EditPerm)
}

// CanDelete reports whether perms allow deleting entries.
func (c Config) CanDelete(perms permission.Set) bool {
	return c.DeletePerm == "" || perms.Has(c.DeletePerm)
}

// IsReadOnly reports whether field cannot be set by users.
func (c Config) IsReadOnly(field string) bool {
	for _, f := range c.ReadOnlyFields {
		if f == field {
			return true
		}
	}
	return false
}
