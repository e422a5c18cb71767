package chi

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// ErrorCode is a machine-readable error kind.
type ErrorCode string

// Error codes.
const (
	ErrorCodeBadRequest        ErrorCode = "bad_request"
	ErrorCodeUnauthorized      ErrorCode = "unauthorized"
	ErrorCodeForbidden         ErrorCode = "forbidden"
	ErrorCodeNotFound          ErrorCode = "not_found"
	ErrorCodeValidationFailed  ErrorCode = "validation_failed"
	ErrorCodeUnknownVocabulary ErrorCode = "unknown_vocabulary"
	ErrorCodeUnknownAction     ErrorCode = "unknown_action"
	ErrorCodeActionDisabled    ErrorCode = "action_disabled"
	ErrorCodeExportInProgress  ErrorCode = "export_in_progress"
	ErrorCodeExportDisabled    ErrorCode = "export_disabled"
	ErrorCodeBackendError      ErrorCode = "backend_error"
	ErrorCodeInternalError     ErrorCode = "internal_error"
)

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// SearchParams are the query parameters of a list view.
type SearchParams struct {
	QIndex  *string `json:"qindex,omitempty"`
	Query   *string `json:"query,omitempty"`
	Filters *string `json:"filters,omitempty"`
	Sort    *string `json:"sort,omitempty"`
	Offset  *int    `json:"offset,omitempty"`
	Limit   *int    `json:"limit,omitempty"`
}

// ActionMenuParams extend SearchParams with the list state the menu depends on.
type ActionMenuParams struct {
	SearchParams
	ListEmpty *bool `json:"listEmpty,omitempty"`
}

// NotificationsParams select notifications newer than Since (RFC 3339).
type NotificationsParams struct {
	Since *string `json:"since,omitempty"`
}

// FilterChangeRequest is the body of POST /{segment}/filters.
type FilterChangeRequest struct {
	Path   string   `json:"path"`
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// ServerInterface lists every API operation.
type ServerInterface interface {
	// (GET /api/v1/{segment}/search)
	SearchRecords(w http.ResponseWriter, r *http.Request, segment string, params SearchParams)
	// (GET /api/v1/{segment}/cql)
	GetCQL(w http.ResponseWriter, r *http.Request, segment string, params SearchParams)
	// (POST /api/v1/{segment}/filters)
	ChangeFilter(w http.ResponseWriter, r *http.Request, segment string, params SearchParams)
	// (GET /api/v1/instances/actions)
	GetActionMenu(w http.ResponseWriter, r *http.Request, params ActionMenuParams)
	// (POST /api/v1/instances/actions/{action})
	RunAction(w http.ResponseWriter, r *http.Request, action string, params ActionMenuParams)
	// (POST /api/v1/instances/reports/ids)
	GenerateIDReport(w http.ResponseWriter, r *http.Request, params SearchParams)
	// (POST /api/v1/instances/reports/in-transit)
	GenerateInTransitReport(w http.ResponseWriter, r *http.Request)
	// (POST /api/v1/instances/reports/cql)
	ExportCQL(w http.ResponseWriter, r *http.Request, params SearchParams)
	// (GET /api/v1/instances/new)
	GetNewInstance(w http.ResponseWriter, r *http.Request)
	// (DELETE /api/v1/instances/new)
	CloseNewInstance(w http.ResponseWriter, r *http.Request)
	// (POST /api/v1/instances/{id}/copy)
	CopyInstance(w http.ResponseWriter, r *http.Request, id string)
	// (POST /api/v1/instances)
	CreateInstance(w http.ResponseWriter, r *http.Request)
	// (POST /api/v1/instances/fast-add/toggle)
	ToggleFastAdd(w http.ResponseWriter, r *http.Request)
	// (DELETE /api/v1/instances/error-modal)
	CloseErrorModal(w http.ResponseWriter, r *http.Request)
	// (GET /api/v1/session)
	GetSession(w http.ResponseWriter, r *http.Request)
	// (GET /api/v1/holdings/{id}/items)
	ListHoldingsItems(w http.ResponseWriter, r *http.Request, id string)
	// (GET /api/v1/notifications)
	ListNotifications(w http.ResponseWriter, r *http.Request, params NotificationsParams)
	// (GET /api/v1/settings/{vocab})
	ListVocabulary(w http.ResponseWriter, r *http.Request, vocab string)
	// (POST /api/v1/settings/{vocab})
	CreateVocabularyEntry(w http.ResponseWriter, r *http.Request, vocab string)
	// (PUT /api/v1/settings/{vocab}/{id})
	UpdateVocabularyEntry(w http.ResponseWriter, r *http.Request, vocab, id string)
	// (DELETE /api/v1/settings/{vocab}/{id})
	DeleteVocabularyEntry(w http.ResponseWriter, r *http.Request, vocab, id string)
	// (GET /health)
	HealthCheck(w http.ResponseWriter, r *http.Request)
	// (GET /metrics)
	Metrics(w http.ResponseWriter, r *http.Request)
}

// RouterOptions configure HandlerWithOptions.
type RouterOptions struct {
	BaseRouter       chi.Router
	BaseURL          string
	ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

// InvalidParamFormatError reports a parameter that failed to bind.
type InvalidParamFormatError struct {
	ParamName string
	Err       error
}

func (e *InvalidParamFormatError) Error() string {
	return fmt.Sprintf("invalid format for parameter %s: %s", e.ParamName, e.Err.Error())
}

func (e *InvalidParamFormatError) Unwrap() error { return e.Err }

type wrapper struct {
	handler      ServerInterface
	errorHandler func(w http.ResponseWriter, r *http.Request, err error)
}

// HandlerWithOptions mounts every route of si on the base router.
func HandlerWithOptions(si ServerInterface, opts RouterOptions) http.Handler {
	r := opts.BaseRouter
	if r == nil {
		r = chi.NewRouter()
	}
	errorHandler := opts.ErrorHandlerFunc
	if errorHandler == nil {
		errorHandler = func(w http.ResponseWriter, _ *http.Request, err error) {
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
	}
	w := &wrapper{handler: si, errorHandler: errorHandler}
	api := opts.BaseURL + "/api/v1"

	r.Group(func(r chi.Router) {
		r.Get(opts.BaseURL+"/health", si.HealthCheck)
		r.Get(opts.BaseURL+"/metrics", si.Metrics)

		r.Get(api+"/instances/actions", w.getActionMenu)
		r.Post(api+"/instances/actions/{action}", w.runAction)
		r.Post(api+"/instances/reports/ids", w.generateIDReport)
		r.Post(api+"/instances/reports/in-transit", si.GenerateInTransitReport)
		r.Post(api+"/instances/reports/cql", w.exportCQL)
		r.Get(api+"/instances/new", si.GetNewInstance)
		r.Delete(api+"/instances/new", si.CloseNewInstance)
		r.Post(api+"/instances/fast-add/toggle", si.ToggleFastAdd)
		r.Delete(api+"/instances/error-modal", si.CloseErrorModal)
		r.Post(api+"/instances/{id}/copy", w.copyInstance)
		r.Post(api+"/instances", si.CreateInstance)

		r.Get(api+"/{segment}/search", w.searchRecords)
		r.Get(api+"/{segment}/cql", w.getCQL)
		r.Post(api+"/{segment}/filters", w.changeFilter)

		r.Get(api+"/session", si.GetSession)
		r.Get(api+"/holdings/{id}/items", w.listHoldingsItems)
		r.Get(api+"/notifications", w.listNotifications)

		r.Get(api+"/settings/{vocab}", w.listVocabulary)
		r.Post(api+"/settings/{vocab}", w.createVocabularyEntry)
		r.Put(api+"/settings/{vocab}/{id}", w.updateVocabularyEntry)
		r.Delete(api+"/settings/{vocab}/{id}", w.deleteVocabularyEntry)
	})
	return r
}

func (w *wrapper) pathParam(rw http.ResponseWriter, r *http.Request, name string, dest *string) bool {
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), dest,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		w.errorHandler(rw, r, &InvalidParamFormatError{ParamName: name, Err: err})
		return false
	}
	return true
}

func (w *wrapper) searchParams(rw http.ResponseWriter, r *http.Request) (SearchParams, bool) {
	var params SearchParams
	q := r.URL.Query()
	bindings := []struct {
		name string
		dest any
	}{
		{"qindex", &params.QIndex},
		{"query", &params.Query},
		{"filters", &params.Filters},
		{"sort", &params.Sort},
		{"offset", &params.Offset},
		{"limit", &params.Limit},
	}
	for _, b := range bindings {
		if err := runtime.BindQueryParameter("form", true, false, b.name, q, b.dest); err != nil {
			w.errorHandler(rw, r, &InvalidParamFormatError{ParamName: b.name, Err: err})
			return SearchParams{}, false
		}
	}
	return params, true
}

func (w *wrapper) actionMenuParams(rw http.ResponseWriter, r *http.Request) (ActionMenuParams, bool) {
	sp, ok := w.searchParams(rw, r)
	if !ok {
		return ActionMenuParams{}, false
	}
	params := ActionMenuParams{SearchParams: sp}
	if err := runtime.BindQueryParameter("form", true, false, "listEmpty", r.URL.Query(), &params.ListEmpty); err != nil {
		w.errorHandler(rw, r, &InvalidParamFormatError{ParamName: "listEmpty", Err: err})
		return ActionMenuParams{}, false
	}
	return params, true
}

func (w *wrapper) searchRecords(rw http.ResponseWriter, r *http.Request) {
	var segment string
	if !w.pathParam(rw, r, "segment", &segment) {
		return
	}
	if params, ok := w.searchParams(rw, r); ok {
		w.handler.SearchRecords(rw, r, segment, params)
	}
}

func (w *wrapper) getCQL(rw http.ResponseWriter, r *http.Request) {
	var segment string
	if !w.pathParam(rw, r, "segment", &segment) {
		return
	}
	if params, ok := w.searchParams(rw, r); ok {
		w.handler.GetCQL(rw, r, segment, params)
	}
}

func (w *wrapper) changeFilter(rw http.ResponseWriter, r *http.Request) {
	var segment string
	if !w.pathParam(rw, r, "segment", &segment) {
		return
	}
	if params, ok := w.searchParams(rw, r); ok {
		w.handler.ChangeFilter(rw, r, segment, params)
	}
}

func (w *wrapper) getActionMenu(rw http.ResponseWriter, r *http.Request) {
	if params, ok := w.actionMenuParams(rw, r); ok {
		w.handler.GetActionMenu(rw, r, params)
	}
}

func (w *wrapper) runAction(rw http.ResponseWriter, r *http.Request) {
	var action string
	if !w.pathParam(rw, r, "action", &action) {
		return
	}
	if params, ok := w.actionMenuParams(rw, r); ok {
		w.handler.RunAction(rw, r, action, params)
	}
}

func (w *wrapper) generateIDReport(rw http.ResponseWriter, r *http.Request) {
	if params, ok := w.searchParams(rw, r); ok {
		w.handler.GenerateIDReport(rw, r, params)
	}
}

func (w *wrapper) exportCQL(rw http.ResponseWriter, r *http.Request) {
	if params, ok := w.searchParams(rw, r); ok {
		w.handler.ExportCQL(rw, r, params)
	}
}

func (w *wrapper) copyInstance(rw http.ResponseWriter, r *http.Request) {
	var id string
	if w.pathParam(rw, r, "id", &id) {
		w.handler.CopyInstance(rw, r, id)
	}
}

func (w *wrapper) listHoldingsItems(rw http.ResponseWriter, r *http.Request) {
	var id string
	if w.pathParam(rw, r, "id", &id) {
		w.handler.ListHoldingsItems(rw, r, id)
	}
}

func (w *wrapper) listNotifications(rw http.ResponseWriter, r *http.Request) {
	var params NotificationsParams
	if err := runtime.BindQueryParameter("form", true, false, "since", r.URL.Query(), &params.Since); err != nil {
		w.errorHandler(rw, r, &InvalidParamFormatError{ParamName: "since", Err: err})
		return
	}
	w.handler.ListNotifications(rw, r, params)
}

func (w *wrapper) listVocabulary(rw http.ResponseWriter, r *http.Request) {
	var vocab string
	if w.pathParam(rw, r, "vocab", &vocab) {
		w.handler.ListVocabulary(rw, r, vocab)
	}
}

func (w *wrapper) createVocabularyEntry(rw http.ResponseWriter, r *http.Request) {
	var vocab string
	if w.pathParam(rw, r, "vocab", &vocab) {
		w.handler.CreateVocabularyEntry(rw, r, vocab)
	}
}

func (w *wrapper) updateVocabularyEntry(rw http.ResponseWriter, r *http.Request) {
	var vocab, id string
	if w.pathParam(rw, r, "vocab", &vocab) && w.pathParam(rw, r, "id", &id) {
		w.handler.UpdateVocabularyEntry(rw, r, vocab, id)
	}
}

func (w *wrapper) deleteVocabularyEntry(rw http.ResponseWriter, r *http.Request) {
	var vocab, id string
	if w.pathParam(rw, r, "vocab", &vocab) && w.pathParam(rw, r, "id", &id) {
		w.handler.DeleteVocabularyEntry(rw, r, vocab, id)
	}
}
