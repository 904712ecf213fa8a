package station

import "fmt"

// BayCount is the number of physical slots in the station grid.
const BayCount = 9

// Status is the lifecycle state of an installed module.
type Status string

// Installed modules are active until a prerequisite they require is removed,
// at which point the cascade flips them inactive. Inactive modules keep their
// physical footprint but stop producing revenue and providing capacity.
const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// InstalledModule is a module occupying one bay of the station grid.
type InstalledModule struct {
	ID     string     `json:"id"`
	Bay    int        `json:"bay"`
	Kind   ModuleKind `json:"kind"`
	Status Status     `json:"status"`
}

// Active reports whether the module is currently operating.
func (m InstalledModule) Active() bool {
	return m.Status == StatusActive
}

// ValidBay reports whether bay identifies one of the station's slots.
func ValidBay(bay int) bool {
	return bay >= 0 && bay < BayCount
}

// ModuleAt returns the module occupying bay, if any.
func ModuleAt(modules []InstalledModule, bay int) (InstalledModule, bool) {
	for _, m := range modules {
		if m.Bay == bay {
			return m, true
		}
	}
	return InstalledModule{}, false
}

// CountKind returns how many installed modules are of the given kind,
// regardless of status.
func CountKind(modules []InstalledModule, kind ModuleKind) int {
	n := 0
	for _, m := range modules {
		if m.Kind == kind {
			n++
		}
	}
	return n
}

// HasActiveKind reports whether at least one module of kind is installed and
// active.
func HasActiveKind(modules []InstalledModule, kind ModuleKind) bool {
	for _, m := range modules {
		if m.Kind == kind && m.Active() {
			return true
		}
	}
	return false
}

// DependentsOf returns the installed modules whose prerequisites include
// kind. Only direct dependents are returned; the cascade is one level deep.
func DependentsOf(modules []InstalledModule, kind ModuleKind) ([]InstalledModule, error) {
	var out []InstalledModule
	for _, m := range modules {
		def, err := Definition(m.Kind)
		if err != nil {
			return nil, err
		}
		for _, req := range def.Requires {
			if req == kind {
				out = append(out, m)
				break
			}
		}
	}
	return out, nil
}

// CloneModules returns a deep copy of the module list.
func CloneModules(modules []InstalledModule) []InstalledModule {
	if modules == nil {
		return nil
	}
	out := make([]InstalledModule, len(modules))
	copy(out, modules)
	return out
}

// NewInstalledModule constructs an active module for the given bay.
func NewInstalledModule(bay int, kind ModuleKind) InstalledModule {
	return InstalledModule{
		ID:     fmt.Sprintf("bay-%d", bay),
		Bay:    bay,
		Kind:   kind,
		Status: StatusActive,
	}
}
