package chi

import (
	"net/http"

	"github.com/kailas-cloud/inventory/internal/domain"
)

// ListVocabulary handles GET /settings/{vocab}.
func (s *Server) ListVocabulary(w http.ResponseWriter, r *http.Request, vocab string) {
	table, err := s.vocab.List(r.Context(), vocab, permissions(r.Context()))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, table)
}

// CreateVocabularyEntry handles POST /settings/{vocab}.
func (s *Server) CreateVocabularyEntry(w http.ResponseWriter, r *http.Request, vocab string) {
	var rec domain.Record
	if !decodeBody(w, r, &rec) {
		return
	}
	created, err := s.vocab.Create(r.Context(), vocab, rec)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// UpdateVocabularyEntry handles PUT /settings/{vocab}/{id}.
func (s *Server) UpdateVocabularyEntry(w http.ResponseWriter, r *http.Request, vocab, id string) {
	var rec domain.Record
	if !decodeBody(w, r, &rec) {
		return
	}
	if err := s.vocab.Update(r.Context(), vocab, permissions(r.Context()), id, rec); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteVocabularyEntry handles DELETE /settings/{vocab}/{id}.
func (s *Server) DeleteVocabularyEntry(w http.ResponseWriter, r *http.Request, vocab, id string) {
	if err := s.vocab.Delete(r.Context(), vocab, permissions(r.Context()), id); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
