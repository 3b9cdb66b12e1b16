package entity

import (
	"fmt"

	"github.com/milk9111/logicgates/ecs"
	"github.com/milk9111/logicgates/ecs/component"
	"github.com/milk9111/logicgates/levels"
)

// NewAnchor creates the reference point occupants of slot are spawned at.
func NewAnchor(w *ecs.World, def levels.AnchorDef, slot ecs.Entity) (ecs.Entity, error) {
	anchor := ecs.CreateEntity(w)
	transform := component.NewTransform(def.Position.Vec3(), def.Yaw)
	if err := ecs.Add(w, anchor, component.TransformComponent.Kind(), &transform); err != nil {
		return 0, fmt.Errorf("anchor: add transform: %w", err)
	}
	if err := ecs.Add(w, anchor, component.AnchorTagComponent.Kind(), &component.AnchorTag{}); err != nil {
		return 0, fmt.Errorf("anchor: add tag: %w", err)
	}
	if err := ecs.SetParent(w, anchor, slot); err != nil {
		return 0, fmt.Errorf("anchor: set parent: %w", err)
	}
	return anchor, nil
}
