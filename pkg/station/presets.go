package station

// PresetModule places one module of a preset into a bay.
type PresetModule struct {
	Kind ModuleKind `json:"kind"`
	Bay  int        `json:"bay"`
}

// Preset is a curated starting configuration. The hub is implicit and not
// listed.
type Preset struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Focus       string         `json:"focus"`
	Modules     []PresetModule `json:"modules"`
}

var presets = []Preset{
	{
		ID:          "research",
		Name:        "Research Station",
		Description: "Zero-G Lab + Health Care + Crew Airlock + Hydroponics",
		Focus:       "Scientific research",
		Modules: []PresetModule{
			{Kind: KindAirlock, Bay: 2},
			{Kind: KindLab, Bay: 0},
			{Kind: KindHealth, Bay: 1},
			{Kind: KindHydro, Bay: 3},
		},
	},
	{
		ID:          "manufacturing",
		Name:        "Manufacturing Hub",
		Description: "2x Manufacturing Fab + Cargo Bay + Power Station",
		Focus:       "ZBLAN production",
		Modules: []PresetModule{
			{Kind: KindPower, Bay: 3},
			{Kind: KindAirlock, Bay: 4},
			{Kind: KindFab, Bay: 0},
			{Kind: KindFab, Bay: 1},
			{Kind: KindCargo, Bay: 2},
		},
	},
	{
		ID:          "data",
		Name:        "Data Fortress",
		Description: "3x Data Center + 2x Power Station",
		Focus:       "Secure computing",
		Modules: []PresetModule{
			{Kind: KindPower, Bay: 3},
			{Kind: KindPower, Bay: 4},
			{Kind: KindData, Bay: 0},
			{Kind: KindData, Bay: 1},
			{Kind: KindData, Bay: 2},
		},
	},
	{
		ID:          "service",
		Name:        "Satellite Servicing",
		Description: "Service Station + Crew Airlock + Power Station + Cargo Bay",
		Focus:       "On-orbit operations",
		Modules: []PresetModule{
			{Kind: KindRepair, Bay: 0},
			{Kind: KindAirlock, Bay: 1},
			{Kind: KindPower, Bay: 2},
			{Kind: KindCargo, Bay: 3},
		},
	},
	{
		ID:          "balanced",
		Name:        "Balanced Commercial",
		Description: "Diverse revenue stream with one of each major module.",
		Focus:       "Revenue diversity",
		Modules: []PresetModule{
			{Kind: KindPower, Bay: 4},
			{Kind: KindPower, Bay: 5},
			{Kind: KindAirlock, Bay: 6},
			{Kind: KindLab, Bay: 0},
			{Kind: KindFab, Bay: 1},
			{Kind: KindData, Bay: 2},
			{Kind: KindQuarters, Bay: 3},
		},
	},
}

// clone detaches the preset from the registry's backing arrays.
func (p Preset) clone() Preset {
	p.Modules = append([]PresetModule(nil), p.Modules...)
	return p
}

// Presets returns the curated configurations. Module lists are ordered so
// prerequisites install before their dependents.
func Presets() []Preset {
	out := make([]Preset, len(presets))
	for i, p := range presets {
		out[i] = p.clone()
	}
	return out
}

// PresetByID looks up a preset.
func PresetByID(id string) (Preset, bool) {
	for _, p := range presets {
		if p.ID == id {
			return p.clone(), true
		}
	}
	return Preset{}, false
}
