// Package viewstate holds the per-session state of the instance list view.
package viewstate

import "github.com/kailas-cloud/inventory/internal/domain"

// LayerCreate is the layer of the new-instance form.
const LayerCreate = "create"

// State is what the list view remembers between requests of one session.
type State struct {
	// CopiedInstance is the staged draft for the next create form, or nil.
	CopiedInstance   domain.Record `json:"copiedInstance,omitempty"`
	Layer            string        `json:"layer,omitempty"`
	ShowFastAddModal bool          `json:"showFastAddModal"`
	// ShowErrorModal is the dismissible dialog of an in-transit report that found nothing.
	ShowErrorModal bool   `json:"showErrorModal"`
	ErrorLabel     string `json:"errorLabel,omitempty"`
	ErrorMessage   string `json:"errorMessage,omitempty"`
}

// StageCopy opens the create layer with draft as its initial values.
func (s State) StageCopy(draft domain.Record) State {
	s.CopiedInstance = draft
	s.Layer = LayerCreate
	return s
}

// ClearStaging closes the create layer and drops the staged draft.
func (s State) ClearStaging() State {
	s.CopiedInstance = nil
	s.Layer = ""
	return s
}

// ToggleFastAdd flips the fast-add modal.
func (s State) ToggleFastAdd() State {
	s.ShowFastAddModal = !s.ShowFastAddModal
	return s
}

// ShowError opens the error modal.
func (s State) ShowError(label, message string) State {
	s.ShowErrorModal = true
	s.ErrorLabel = label
	s.ErrorMessage = message
	return s
}

// CloseError dismisses the error modal.
func (s State) CloseError() State {
	s.ShowErrorModal = false
	s.ErrorLabel = ""
	s.ErrorMessage = ""
	return s
}
