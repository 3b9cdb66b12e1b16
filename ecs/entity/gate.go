package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/logicgates/ecs"
	"github.com/milk9111/logicgates/ecs/component"
	"github.com/milk9111/logicgates/ecs/render"
	"github.com/milk9111/logicgates/prefabs"
)

// NewGate instantiates an occupant from its template at pos/rot.
func NewGate(w *ecs.World, spec *prefabs.GateSpec, materials *render.Library, pos mgl64.Vec3, rot mgl64.Quat) (ecs.Entity, error) {
	if spec == nil {
		return 0, fmt.Errorf("gate: nil template")
	}
	kind, err := component.ParseGateKind(spec.Kind)
	if err != nil {
		return 0, fmt.Errorf("gate %q: %w", spec.Name, err)
	}
	layer := component.LayerGate
	if spec.Layer != "" {
		if layer, err = component.ParseLayer(spec.Layer); err != nil {
			return 0, fmt.Errorf("gate %q: %w", spec.Name, err)
		}
	}

	gate := ecs.CreateEntity(w)
	if err := ecs.Add(w, gate, component.GateComponent.Kind(), &component.Gate{Kind: kind, Template: spec.Name}); err != nil {
		return 0, fmt.Errorf("gate %q: add gate: %w", spec.Name, err)
	}
	if err := ecs.Add(w, gate, component.TransformComponent.Kind(), &component.Transform{Position: pos, Rotation: rot}); err != nil {
		return 0, fmt.Errorf("gate %q: add transform: %w", spec.Name, err)
	}
	if err := ecs.Add(w, gate, component.ColliderComponent.Kind(), &component.Collider{
		HalfExtents: spec.Collider.HalfExtents.Vec3(),
		Offset:      spec.Collider.Offset.Vec3(),
		Layer:       layer,
	}); err != nil {
		return 0, fmt.Errorf("gate %q: add collider: %w", spec.Name, err)
	}
	if err := ecs.Add(w, gate, component.NameComponent.Kind(), &component.Name{Value: spec.Name}); err != nil {
		return 0, fmt.Errorf("gate %q: add name: %w", spec.Name, err)
	}
	if mat := materials.Get(spec.Material); mat != nil {
		if err := ecs.Add(w, gate, component.RendererComponent.Kind(), &component.Renderer{Material: mat}); err != nil {
			return 0, fmt.Errorf("gate %q: add renderer: %w", spec.Name, err)
		}
	}
	return gate, nil
}
