package station

import "time"

// SavedConfiguration is a point-in-time snapshot of the station: the module
// set, the financial knobs, the vehicle choice, and the metrics frozen at
// save time for side-by-side comparison without recomputation. Snapshots
// are never mutated after creation.
type SavedConfiguration struct {
	ID         string              `json:"id"`
	Name       string              `json:"name"`
	CreatedAt  time.Time           `json:"created_at"`
	Modules    []InstalledModule   `json:"modules"`
	Parameters FinancialParameters `json:"parameters"`
	VehicleID  string              `json:"vehicle_id"`
	Metrics    Metrics             `json:"metrics"`
}

// Clone returns a deep copy of the snapshot.
func (c SavedConfiguration) Clone() SavedConfiguration {
	cp := c
	cp.Modules = CloneModules(c.Modules)
	return cp
}

// SnapshotStore is the minimal abstraction over durable snapshot backends.
// The engine must not assume a specific storage medium; implementations
// serialize SavedConfiguration values however suits them.
type SnapshotStore interface {
	Save(cfg SavedConfiguration) error
	Get(id string) (SavedConfiguration, bool)
	Delete(id string) (bool, error)
	List() []SavedConfiguration
}
