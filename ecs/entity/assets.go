package entity

import (
	"fmt"
	"log"

	"github.com/milk9111/logicgates/ecs/component"
	"github.com/milk9111/logicgates/ecs/render"
	"github.com/milk9111/logicgates/prefabs"
)

// Assets are the shared resources a level is built from.
type Assets struct {
	Materials *render.Library
	Gates     map[string]*prefabs.GateSpec
}

// DefaultGateTemplates are the prefabs offered by the option menu.
var DefaultGateTemplates = []string{"gate_not", "gate_and", "gate_or"}

// LoadAssets reads materials.yaml and the named gate templates. A template
// that fails to load is logged and left unassigned.
func LoadAssets(templates ...string) (*Assets, error) {
	lib, err := render.LoadLibrary()
	if err != nil {
		return nil, fmt.Errorf("assets: %w", err)
	}
	a := &Assets{Materials: lib, Gates: make(map[string]*prefabs.GateSpec)}
	for _, name := range templates {
		spec, err := prefabs.LoadGateSpec(name)
		if err != nil {
			log.Printf("assets: gate template %q unavailable: %v", name, err)
			continue
		}
		a.Gates[name] = spec
	}
	return a, nil
}

// Gate returns the named template, or nil.
func (a *Assets) Gate(name string) *prefabs.GateSpec {
	if a == nil || name == "" {
		return nil
	}
	return a.Gates[name]
}

// Material returns the named shared material, or nil.
func (a *Assets) Material(name string) *component.Material {
	if a == nil {
		return nil
	}
	return a.Materials.Get(name)
}
