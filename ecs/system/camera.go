package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/logicgates/common"
	"github.com/milk9111/logicgates/ecs"
	"github.com/milk9111/logicgates/ecs/component"
)

// View is a camera resolved for one frame.
type View struct {
	Eye        mgl64.Vec3
	ModelView  mgl64.Mat4
	Projection mgl64.Mat4
	Width      int
	Height     int
}

// NewView builds the view and projection matrices for a camera at eye.
func NewView(eye mgl64.Vec3, cam component.Camera, width, height int) View {
	if width <= 0 {
		width = common.BaseWidth
	}
	if height <= 0 {
		height = common.BaseHeight
	}
	return View{
		Eye:        eye,
		ModelView:  mgl64.LookAtV(eye, cam.Target, common.Up),
		Projection: mgl64.Perspective(mgl64.DegToRad(cam.FOV), float64(width)/float64(height), cam.Near, cam.Far),
		Width:      width,
		Height:     height,
	}
}

// FindView resolves the first camera in the world.
func FindView(w *ecs.World, width, height int) (View, bool) {
	camEntity, ok := w.First(component.CameraComponent.Kind())
	if !ok {
		return View{}, false
	}
	cam, ok := ecs.Get(w, camEntity, component.CameraComponent.Kind())
	if !ok {
		return View{}, false
	}
	transform, ok := ecs.Get(w, camEntity, component.TransformComponent.Kind())
	if !ok {
		return View{}, false
	}
	return NewView(transform.Position, *cam, width, height), true
}

// Ray returns a unit ray from the eye through screen point (x, y). Screen
// coordinates are top-left origin, as ebiten reports them.
func (v View) Ray(x, y float64) (origin, dir mgl64.Vec3, ok bool) {
	winY := float64(v.Height) - y
	far, err := mgl64.UnProject(mgl64.Vec3{x, winY, 1}, v.ModelView, v.Projection, 0, 0, v.Width, v.Height)
	if err != nil {
		return mgl64.Vec3{}, mgl64.Vec3{}, false
	}
	d := far.Sub(v.Eye)
	if d.Len() == 0 {
		return mgl64.Vec3{}, mgl64.Vec3{}, false
	}
	return v.Eye, d.Normalize(), true
}

// Project maps a world point to screen coordinates. behind is true when the
// point lies behind the camera.
func (v View) Project(p mgl64.Vec3) (x, y float64, behind bool) {
	eyeSpace := v.ModelView.Mul4x1(p.Vec4(1))
	if eyeSpace.Z() >= 0 {
		return 0, 0, true
	}
	win := mgl64.Project(p, v.ModelView, v.Projection, 0, 0, v.Width, v.Height)
	return win.X(), float64(v.Height) - win.Y(), false
}

// PointerRay resolves the camera and builds the ray under the pointer.
func PointerRay(w *ecs.World, input *component.Input) (origin, dir mgl64.Vec3, ok bool) {
	if input == nil {
		return mgl64.Vec3{}, mgl64.Vec3{}, false
	}
	view, ok := FindView(w, input.ScreenW, input.ScreenH)
	if !ok {
		return mgl64.Vec3{}, mgl64.Vec3{}, false
	}
	return view.Ray(input.PointerX, input.PointerY)
}
