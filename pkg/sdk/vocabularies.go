package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/inventory/internal/domain"
	"github.com/kailas-cloud/inventory/internal/domain/permission"
	"github.com/kailas-cloud/inventory/internal/i18n"
	vocabuc "github.com/kailas-cloud/inventory/internal/usecase/vocab"
)

// VocabularyService edits controlled vocabularies such as "itemNoteTypes".
type VocabularyService struct {
	svc     vocabUseCase
	perms   permission.Set
	printer *i18n.Printer
	obs     *observer
}

// List returns the entries of a vocabulary sorted by name.
func (s *VocabularyService) List(ctx context.Context, tag string) (_ Vocabulary, err error) {
	start := time.Now()
	defer func() { s.obs.observe("vocabulary.list", start, err) }()

	if s.printer != nil {
		ctx = i18n.ContextWithPrinter(ctx, s.printer)
	}
	t, err := s.svc.List(ctx, tag, s.perms)
	if err != nil {
		return Vocabulary{}, fmt.Errorf("list vocabulary: %w", err)
	}
	return fromInternalTable(t), nil
}

// Create adds an entry and returns it as stored.
func (s *VocabularyService) Create(ctx context.Context, tag string, fields map[string]any) (_ map[string]any, err error) {
	start := time.Now()
	defer func() { s.obs.observe("vocabulary.create", start, err) }()

	rec, err := s.svc.Create(ctx, tag, domain.Record(fields))
	if err != nil {
		return nil, fmt.Errorf("create vocabulary entry: %w", err)
	}
	return rec, nil
}

// Update replaces the editable fields of entry id.
func (s *VocabularyService) Update(ctx context.Context, tag, id string, fields map[string]any) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("vocabulary.update", start, err) }()

	if err := s.svc.Update(ctx, tag, s.perms, id, domain.Record(fields)); err != nil {
		return fmt.Errorf("update vocabulary entry: %w", err)
	}
	return nil
}

// Delete removes entry id.
func (s *VocabularyService) Delete(ctx context.Context, tag, id string) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("vocabulary.delete", start, err) }()

	if err := s.svc.Delete(ctx, tag, s.perms, id); err != nil {
		return fmt.Errorf("delete vocabulary entry: %w", err)
	}
	return nil
}

func fromInternalTable(t vocabuc.Table) Vocabulary {
	entries := make([]VocabularyEntry, len(t.Entries))
	for i, e := range t.Entries {
		entries[i] = VocabularyEntry{Fields: e.Record, CanEdit: e.CanEdit, CanDelete: e.CanDelete}
	}
	return Vocabulary{
		ID:       t.ID,
		Label:    t.Label,
		Columns:  t.Columns,
		ReadOnly: t.ReadOnly,
		Entries:  entries,
	}
}
