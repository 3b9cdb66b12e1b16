package entity

import (
	"fmt"

	"github.com/milk9111/logicgates/common"
	"github.com/milk9111/logicgates/ecs"
	"github.com/milk9111/logicgates/ecs/component"
)

// InputID identifies the persistent input entity.
const InputID = "input"

// NewInput creates the pointer input entity. It survives reloads.
func NewInput(w *ecs.World) (ecs.Entity, error) {
	input := ecs.CreateEntity(w)
	if err := ecs.Add(w, input, component.InputComponent.Kind(), &component.Input{
		ScreenW: common.BaseWidth,
		ScreenH: common.BaseHeight,
	}); err != nil {
		return 0, fmt.Errorf("input: add input: %w", err)
	}
	if err := ecs.Add(w, input, component.PersistentComponent.Kind(), &component.Persistent{
		ID:           InputID,
		KeepOnReload: true,
	}); err != nil {
		return 0, fmt.Errorf("input: add persistent: %w", err)
	}
	return input, nil
}
