package inventory

import "github.com/kailas-cloud/inventory/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound          = domain.ErrNotFound
	ErrFetchFailure      = domain.ErrFetchFailure
	ErrForbidden         = domain.ErrForbidden
	ErrInvalidRequest    = domain.ErrInvalidRequest
	ErrUnknownVocabulary = domain.ErrUnknownVocabulary
	ErrExportDisabled    = domain.ErrExportDisabled
)
