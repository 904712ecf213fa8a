package station

import "testing"

func TestPresetByID(t *testing.T) {
	p, ok := PresetByID("research")
	if !ok {
		t.Fatal("research preset missing")
	}
	if p.Name != "Research Station" {
		t.Fatalf("name = %q", p.Name)
	}
	if _, ok := PresetByID("luxury-resort"); ok {
		t.Fatal("unknown preset id resolved")
	}
}

func TestPresetsAreWellFormed(t *testing.T) {
	all := Presets()
	if len(all) == 0 {
		t.Fatal("no presets registered")
	}
	for _, p := range all {
		bays := map[int]bool{}
		installed := map[ModuleKind]bool{}
		for _, pm := range p.Modules {
			if !ValidBay(pm.Bay) {
				t.Fatalf("preset %s: bay %d out of range", p.ID, pm.Bay)
			}
			if bays[pm.Bay] {
				t.Fatalf("preset %s: bay %d assigned twice", p.ID, pm.Bay)
			}
			bays[pm.Bay] = true

			def, err := Definition(pm.Kind)
			if err != nil {
				t.Fatalf("preset %s: %v", p.ID, err)
			}
			// The list is ordered so prerequisites come before dependents.
			for _, req := range def.Requires {
				if !installed[req] {
					t.Fatalf("preset %s: %s listed before its prerequisite %s", p.ID, pm.Kind, req)
				}
			}
			installed[pm.Kind] = true
		}
	}
}

func TestPresetsReturnsCopy(t *testing.T) {
	a := Presets()
	a[0].ID = "mutated"
	a[0].Modules[0] = PresetModule{Kind: KindCargo, Bay: 8}

	b := Presets()
	if b[0].ID == "mutated" {
		t.Fatal("Presets must not expose the registry slice")
	}
	if b[0].Modules[0].Kind == KindCargo {
		t.Fatal("preset module lists must not share backing arrays")
	}
}

func TestPresetByIDReturnsCopy(t *testing.T) {
	p, ok := PresetByID("research")
	if !ok {
		t.Fatal("research preset missing")
	}
	original := p.Modules[0]
	p.Modules[0] = PresetModule{Kind: KindCargo, Bay: 8}

	again, _ := PresetByID("research")
	if again.Modules[0] != original {
		t.Fatalf("module list mutated through lookup: %+v", again.Modules[0])
	}
}
