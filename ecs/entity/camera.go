package entity

import (
	"fmt"

	"github.com/milk9111/logicgates/ecs"
	"github.com/milk9111/logicgates/ecs/component"
	"github.com/milk9111/logicgates/levels"
)

func NewCamera(w *ecs.World, def levels.CameraDef) (ecs.Entity, error) {
	camera := ecs.CreateEntity(w)
	if err := ecs.Add(w, camera, component.TransformComponent.Kind(), &component.Transform{
		Position: def.Position.Vec3(),
	}); err != nil {
		return 0, fmt.Errorf("camera: add transform: %w", err)
	}

	fov := def.FOV
	if fov <= 0 {
		fov = 60
	}
	near := def.Near
	if near <= 0 {
		near = 0.1
	}
	far := def.Far
	if far <= near {
		far = 1000
	}
	if err := ecs.Add(w, camera, component.CameraComponent.Kind(), &component.Camera{
		Target: def.Target.Vec3(),
		FOV:    fov,
		Near:   near,
		Far:    far,
	}); err != nil {
		return 0, fmt.Errorf("camera: add camera component: %w", err)
	}

	return camera, nil
}
