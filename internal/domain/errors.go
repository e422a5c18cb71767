package domain

import (
	"errors"
)

var (
	// ErrNotFound signals a missing record.
	ErrNotFound = errors.New("not found")
	// ErrFetchFailure signals a network or backend error talking to the inventory API.
	ErrFetchFailure = errors.New("fetch failure")
	// ErrForbidden signals a missing permission.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidRequest signals malformed client input.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrUnknownVocabulary signals an unsupported controlled vocabulary tag.
	ErrUnknownVocabulary = errors.New("unknown controlled vocabulary")
	// ErrUnknownCommand signals an action id missing from the current command list.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrCommandDisabled signals an attempt to run a disabled command.
	ErrCommandDisabled = errors.New("command disabled")
	// ErrExportDisabled signals that artifact exports are switched off for this environment.
	ErrExportDisabled = errors.New("export disabled")
)
