package component

import "github.com/go-gl/mathgl/mgl64"

// Collider is an oriented box attached to the entity transform. It is what
// pointer rays and overlap queries see.
type Collider struct {
	HalfExtents mgl64.Vec3
	// Offset is the box centre in the entity's local frame.
	Offset mgl64.Vec3
	// Layer is the collision category bit set. Zero is treated as LayerDefault.
	Layer uint32
}

func (c Collider) Category() uint32 {
	if c.Layer == 0 {
		return LayerDefault
	}
	return c.Layer
}

var ColliderComponent = NewComponent[Collider]()
