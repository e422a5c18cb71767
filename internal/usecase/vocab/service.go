package vocab

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/collate"

	"github.com/kailas-cloud/inventory/internal/domain"
	"github.com/kailas-cloud/inventory/internal/domain/permission"
	domvocab "github.com/kailas-cloud/inventory/internal/domain/vocab"
	"github.com/kailas-cloud/inventory/internal/i18n"
	"github.com/kailas-cloud/inventory/internal/logger"
)

// listLimit bounds one vocabulary listing.
const listLimit = 2000

// Entry is one vocabulary row with the actions the caller may take on it.
type Entry struct {
	Record    domain.Record `json:"record"`
	CanEdit   bool          `json:"canEdit"`
	CanDelete bool          `json:"canDelete"`
}

// Table is a vocabulary listing restricted to its visible fields.
type Table struct {
	ID            string   `json:"id"`
	Label         string   `json:"label"`
	LabelSingular string   `json:"labelSingular"`
	Columns       []string `json:"columns"`
	ReadOnly      []string `json:"readOnlyFields"`
	Entries       []Entry  `json:"entries"`
}

// Service edits controlled vocabularies through one generic CRUD flow.
type Service struct {
	repo   Repository
	logger *zap.Logger
}

// New creates a vocabulary service.
func New(repo Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

// List returns the vocabulary tag sorted by its name key in the caller's language.
func (s *Service) List(ctx context.Context, tag string, perms permission.Set) (Table, error) {
	cfg, err := domvocab.Lookup(tag)
	if err != nil {
		return Table{}, err
	}

	cql := "cql.allRecords=1 sortby " + cfg.SortBy
	page, err := s.repo.List(ctx, cfg.Path, cfg.RecordsKey, cql, 0, listLimit)
	if err != nil {
		return Table{}, fmt.Errorf("list %s: %w", tag, err)
	}

	recs := page.Records
	col := collate.New(i18n.FromContext(ctx).Tag(), collate.IgnoreCase)
	slices.SortStableFunc(recs, func(a, b domain.Record) int {
		return col.CompareString(a.String(cfg.NameKey), b.String(cfg.NameKey))
	})

	canEdit, canDelete := cfg.CanEdit(perms), cfg.CanDelete(perms)
	entries := make([]Entry, 0, len(recs))
	for _, r := range recs {
		entries = append(entries, Entry{
			Record:    visible(cfg, r),
			CanEdit:   canEdit,
			CanDelete: canDelete,
		})
	}

	return Table{
		ID:            cfg.ID,
		Label:         cfg.Label,
		LabelSingular: cfg.LabelSingular,
		Columns:       cfg.VisibleFields,
		ReadOnly:      cfg.ReadOnlyFields,
		Entries:       entries,
	}, nil
}

// Create adds an entry. Template values fill the gaps and always win for
// read-only fields.
func (s *Service) Create(ctx context.Context, tag string, rec domain.Record) (domain.Record, error) {
	cfg, err := domvocab.Lookup(tag)
	if err != nil {
		return nil, err
	}
	if err := validate(cfg, rec); err != nil {
		return nil, err
	}

	out := cfg.ItemTemplate.Clone()
	if out == nil {
		out = domain.Record{}
	}
	for k, v := range rec {
		if cfg.IsReadOnly(k) || k == "id" {
			continue
		}
		out[k] = v
	}

	created, err := s.repo.Create(ctx, cfg.Path, out)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", tag, err)
	}
	logger.FromContextOr(ctx, s.logger).Info("Vocabulary entry created",
		zap.String("vocabulary", tag), zap.String("id", created.ID()))
	return created, nil
}

// Update replaces entry id. Read-only fields keep their stored values.
func (s *Service) Update(ctx context.Context, tag string, perms permission.Set, id string, rec domain.Record) error {
	cfg, err := domvocab.Lookup(tag)
	if err != nil {
		return err
	}
	if !cfg.CanEdit(perms) {
		return fmt.Errorf("edit %s: %w", tag, domain.ErrForbidden)
	}
	if err := validate(cfg, rec); err != nil {
		return err
	}

	stored, err := s.repo.Get(ctx, cfg.Path, id)
	if err != nil {
		return fmt.Errorf("load %s/%s: %w", tag, id, err)
	}

	out := rec.Clone()
	for _, f := range cfg.ReadOnlyFields {
		if v, ok := stored[f]; ok {
			out[f] = v
		} else {
			delete(out, f)
		}
	}
	out["id"] = id

	if err := s.repo.Update(ctx, cfg.Path, id, out); err != nil {
		return fmt.Errorf("update %s/%s: %w", tag, id, err)
	}
	return nil
}

// Delete removes entry id.
func (s *Service) Delete(ctx context.Context, tag string, perms permission.Set, id string) error {
	cfg, err := domvocab.Lookup(tag)
	if err != nil {
		return err
	}
	if !cfg.CanDelete(perms) {
		return fmt.Errorf("delete %s: %w", tag, domain.ErrForbidden)
	}
	if err := s.repo.Delete(ctx, cfg.Path, id); err != nil {
		return fmt.Errorf("delete %s/%s: %w", tag, id, err)
	}
	return nil
}

func validate(cfg domvocab.Config, rec domain.Record) error {
	if strings.TrimSpace(rec.String(cfg.NameKey)) == "" {
		return fmt.Errorf("%s is required: %w", cfg.NameKey, domain.ErrInvalidRequest)
	}
	return nil
}

// visible keeps the id and the visible fields of r.
func visible(cfg domvocab.Config, r domain.Record) domain.Record {
	out := domain.Record{"id": r["id"]}
	for _, f := range cfg.VisibleFields {
		if v, ok := r[f]; ok {
			out[f] = v
		}
	}
	return out
}
