package common

import "github.com/go-gl/mathgl/mgl64"

const (
	BaseWidth  = 1280
	BaseHeight = 720
)

// Up is the world vertical axis.
var Up = mgl64.Vec3{0, 1, 0}
