// Package permission holds granted capability names and the ones this service checks.
package permission

// Permission names.
const (
	InstanceCreate   = "ui-inventory.instance.create"
	InstanceView     = "ui-inventory.instance.view"
	FastAddCreate    = "ui-plugin-create-inventory-records.create"
	SettingsListEdit = "ui-inventory.settings.list.edit"
	SettingsListDel  = "ui-inventory.settings.list.delete"
)

// Set is the set of permissions granted to the current user.
type Set map[string]struct{}

// NewSet builds a set from names.
func NewSet(names ...string) Set {
	s := make(Set, len(names))
	for _, n := range names {
		if n != "" {
			s[n] = struct{}{}
		}
	}
	return s
}

// Has reports whether name is granted. A nil set grants nothing.
func (s Set) Has(name string) bool {
	_, ok := s[name]
	return ok
}
