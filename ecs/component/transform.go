package component

import "github.com/go-gl/mathgl/mgl64"

// Transform is a world-space pose. Y is up.
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

// Rot returns the rotation, treating the zero quaternion as identity.
func (t Transform) Rot() mgl64.Quat {
	if t.Rotation == (mgl64.Quat{}) {
		return mgl64.QuatIdent()
	}
	return t.Rotation
}

// NewTransform builds a transform rotated yawDeg degrees about +Y.
func NewTransform(pos mgl64.Vec3, yawDeg float64) Transform {
	return Transform{
		Position: pos,
		Rotation: mgl64.QuatRotate(mgl64.DegToRad(yawDeg), mgl64.Vec3{0, 1, 0}),
	}
}

var TransformComponent = NewComponent[Transform]()
