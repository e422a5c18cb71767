package listing

import (
	"github.com/kailas-cloud/inventory/internal/domain/action"
	"github.com/kailas-cloud/inventory/internal/domain/permission"
)

// Action menu command ids.
const (
	CommandNewInstance     = "clickable-newinventory"
	CommandFastAdd         = "new-fast-add-record"
	CommandInTransitReport = "dropdown-clickable-get-report"
	CommandIDReport        = "dropdown-clickable-get-items-uiids"
	CommandCQLQuery        = "dropdown-clickable-get-cql-query"
	CommandExportMARC      = "dropdown-clickable-export-marc"
	CommandExportJSON      = "dropdown-clickable-export-json"
)

// Handlers are the actions behind the menu entries.
type Handlers struct {
	NewInstance     action.Handler
	FastAdd         action.Handler
	InTransitReport action.Handler
	IDReport        action.Handler
	CQLQuery        action.Handler
}

// ActionMenu builds the list view's action menu. Create entries appear only
// with their permission; the id and CQL exports are disabled while the list
// is empty; MARC and JSON exports are always disabled. Every entry closes the
// menu through toggle before running.
func ActionMenu(perms permission.Set, listEmpty bool, h Handlers, toggle func()) action.List {
	var menu action.List

	if perms.Has(permission.InstanceCreate) {
		menu = append(menu, action.Command{
			ID:      CommandNewInstance,
			Label:   "stripes-smart-components.new",
			Icon:    "plus-sign",
			Enabled: true,
			Run:     action.Bind(toggle, h.NewInstance),
		})
	}
	if perms.Has(permission.FastAddCreate) {
		menu = append(menu, action.Command{
			ID:      CommandFastAdd,
			Label:   "ui-inventory.newFastAddRecord",
			Icon:    "lightning",
			Enabled: true,
			Run:     action.Bind(toggle, h.FastAdd),
		})
	}

	return append(menu,
		action.Command{
			ID:      CommandInTransitReport,
			Label:   "ui-inventory.inTransitReport",
			Icon:    "report",
			Enabled: true,
			Run:     action.Bind(toggle, h.InTransitReport),
		},
		action.Command{
			ID:      CommandIDReport,
			Label:   "ui-inventory.saveInstancesUIIDS",
			Icon:    "save",
			Enabled: !listEmpty,
			Run:     action.Bind(toggle, h.IDReport),
		},
		action.Command{
			ID:      CommandCQLQuery,
			Label:   "ui-inventory.saveInstancesCQLQuery",
			Icon:    "search",
			Enabled: !listEmpty,
			Run:     action.Bind(toggle, h.CQLQuery),
		},
		action.Command{
			ID:    CommandExportMARC,
			Label: "ui-inventory.exportInstancesInMARC",
			Icon:  "download",
			Run:   action.Bind(toggle, nil),
		},
		action.Command{
			ID:    CommandExportJSON,
			Label: "ui-inventory.exportInstancesInJSON",
			Icon:  "download",
			Run:   action.Bind(toggle, nil),
		},
	)
}
