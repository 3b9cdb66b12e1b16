package entity

import (
	"fmt"

	"github.com/milk9111/logicgates/ecs"
	"github.com/milk9111/logicgates/ecs/component"
	"github.com/milk9111/logicgates/levels"
)

// NewBox creates an entity with a transform, an oriented box collider and,
// when a material is named, a renderer. parent may be zero.
func NewBox(w *ecs.World, def levels.BoxDef, assets *Assets, parent ecs.Entity) (ecs.Entity, error) {
	layer := component.LayerDefault
	if def.Layer != "" {
		bits, err := component.ParseLayer(def.Layer)
		if err != nil {
			return 0, fmt.Errorf("box %q: %w", def.Name, err)
		}
		layer = bits
	}

	e := ecs.CreateEntity(w)
	transform := component.NewTransform(def.Position.Vec3(), def.Yaw)
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &transform); err != nil {
		return 0, fmt.Errorf("box %q: add transform: %w", def.Name, err)
	}
	if err := ecs.Add(w, e, component.ColliderComponent.Kind(), &component.Collider{
		HalfExtents: def.HalfExtents.Vec3(),
		Offset:      def.Offset.Vec3(),
		Layer:       layer,
	}); err != nil {
		return 0, fmt.Errorf("box %q: add collider: %w", def.Name, err)
	}
	if def.Name != "" {
		if err := ecs.Add(w, e, component.NameComponent.Kind(), &component.Name{Value: def.Name}); err != nil {
			return 0, fmt.Errorf("box %q: add name: %w", def.Name, err)
		}
	}
	if def.Material != "" {
		mat := assets.Material(def.Material)
		if mat == nil {
			return 0, fmt.Errorf("box %q: unknown material %q", def.Name, def.Material)
		}
		if err := ecs.Add(w, e, component.RendererComponent.Kind(), &component.Renderer{Material: mat}); err != nil {
			return 0, fmt.Errorf("box %q: add renderer: %w", def.Name, err)
		}
	}
	if parent.Valid() {
		if err := ecs.SetParent(w, e, parent); err != nil {
			return 0, fmt.Errorf("box %q: set parent: %w", def.Name, err)
		}
	}
	return e, nil
}

// NewGroup creates an empty named node used to parent other entities.
func NewGroup(w *ecs.World, name string, parent ecs.Entity) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.NameComponent.Kind(), &component.Name{Value: name}); err != nil {
		return 0, fmt.Errorf("group %q: add name: %w", name, err)
	}
	if parent.Valid() {
		if err := ecs.SetParent(w, e, parent); err != nil {
			return 0, fmt.Errorf("group %q: set parent: %w", name, err)
		}
	}
	return e, nil
}
