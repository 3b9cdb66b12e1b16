package component

import "github.com/go-gl/mathgl/mgl64"

// Camera is a perspective camera looking from its Transform position at
// Target.
type Camera struct {
	Target mgl64.Vec3
	// FOV is the vertical field of view in degrees.
	FOV  float64
	Near float64
	Far  float64
}

var CameraComponent = NewComponent[Camera]()
