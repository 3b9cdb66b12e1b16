package system

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/logicgates/ecs"
	"github.com/milk9111/logicgates/ecs/component"
	"golang.org/x/image/colornames"
)

// boxEdges lists corner index pairs (see common.OBB.Corners) forming the
// twelve edges of a box.
var boxEdges = [12][2]int{
	{0, 1}, {2, 3}, {4, 5}, {6, 7},
	{0, 2}, {1, 3}, {4, 6}, {5, 7},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// RenderSystem draws every active rendered collider as a wireframe box.
type RenderSystem struct {
	debug   bool
	spatial *SpatialIndexSystem
}

// NewRenderSystem creates the renderer. With debug set it also draws
// unrendered colliders, the broad-phase footprints and slot state.
func NewRenderSystem(debug bool, spatial *SpatialIndexSystem) *RenderSystem {
	return &RenderSystem{debug: debug, spatial: spatial}
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}
	bounds := screen.Bounds()
	view, ok := FindView(w, bounds.Dx(), bounds.Dy())
	if !ok {
		return
	}

	ecs.ForEach2(w, component.TransformComponent.Kind(), component.ColliderComponent.Kind(), func(e ecs.Entity, t *component.Transform, c *component.Collider) {
		if !ecs.IsActive(w, e) {
			return
		}
		renderer, ok := ecs.Get(w, e, component.RendererComponent.Kind())
		if !ok {
			if r.debug {
				drawBox(screen, view, WorldBox(*t, *c).Corners(), colornames.Dimgray)
			}
			return
		}
		drawBox(screen, view, WorldBox(*t, *c).Corners(), renderer.EffectiveColor())
	})

	if r.debug {
		DrawSpatialDebug(r.spatial, view, screen)
		r.drawSlotDebug(w, screen, view)
	}
}

func (r *RenderSystem) drawSlotDebug(w *ecs.World, screen *ebiten.Image, view View) {
	ecs.ForEach3(w, component.SlotComponent.Kind(), component.SlotStateComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, slot *component.Slot, state *component.SlotState, t *component.Transform) {
		if !ecs.IsActive(w, e) {
			return
		}
		x, y, behind := view.Project(t.Position)
		if behind {
			return
		}
		text := fmt.Sprintf("%s\n%s ok=%v x%d", describe(w, e), slot.Rule, state.Correct, state.Rewards)
		if inside, ok := AnchorInsideVolume(w, slot); ok && !inside {
			text += "\nanchor outside volume"
		}
		ebitenutil.DebugPrintAt(screen, text, int(x), int(y))
	})
}

func drawBox(screen *ebiten.Image, view View, corners [8]mgl64.Vec3, clr color.Color) {
	var pts [8][2]float32
	for i, c := range corners {
		x, y, behind := view.Project(c)
		if behind {
			return
		}
		pts[i] = [2]float32{float32(x), float32(y)}
	}
	for _, edge := range boxEdges {
		a, b := pts[edge[0]], pts[edge[1]]
		vector.StrokeLine(screen, a[0], a[1], b[0], b[1], 1.5, clr, true)
	}
}
