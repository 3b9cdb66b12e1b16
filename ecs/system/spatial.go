package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/logicgates/common"
	"github.com/milk9111/logicgates/ecs"
	"github.com/milk9111/logicgates/ecs/component"
)

// RaycastHit is the nearest collider hit by a ray.
type RaycastHit struct {
	Entity   ecs.Entity
	Distance float64
	Point    mgl64.Vec3
}

// SpatialQuery answers ray and box queries against active colliders. A
// collider is seen when its category intersects mask.
type SpatialQuery interface {
	Raycast(origin, dir mgl64.Vec3, maxDist float64, mask uint32) (RaycastHit, bool)
	OverlapBox(center, halfExtents mgl64.Vec3, rot mgl64.Quat, mask uint32) []ecs.Entity
}

// SpatialIndexSystem indexes the ground-plane footprint of every active
// collider in a static chipmunk space and refines candidates against the
// exact oriented boxes. The index is rebuilt from committed transforms each
// time the system runs, so entities created later in the frame are seen on
// the next frame.
type SpatialIndexSystem struct {
	space  *cp.Space
	shapes map[*cp.Shape]ecs.Entity
	boxes  map[ecs.Entity]common.OBB
}

var _ SpatialQuery = (*SpatialIndexSystem)(nil)

func NewSpatialIndexSystem() *SpatialIndexSystem {
	return &SpatialIndexSystem{
		space:  cp.NewSpace(),
		shapes: make(map[*cp.Shape]ecs.Entity),
		boxes:  make(map[ecs.Entity]common.OBB),
	}
}

// Reset drops every indexed collider.
func (s *SpatialIndexSystem) Reset() {
	s.space = cp.NewSpace()
	s.shapes = make(map[*cp.Shape]ecs.Entity)
	s.boxes = make(map[ecs.Entity]common.OBB)
}

// Len is the number of indexed colliders.
func (s *SpatialIndexSystem) Len() int {
	return len(s.boxes)
}

func (s *SpatialIndexSystem) Update(w *ecs.World) {
	s.Reset()
	if w == nil {
		return
	}
	ecs.ForEach2(w, component.TransformComponent.Kind(), component.ColliderComponent.Kind(), func(e ecs.Entity, t *component.Transform, c *component.Collider) {
		if !ecs.IsActive(w, e) {
			return
		}
		s.insert(e, WorldBox(*t, *c), c.Category())
	})
}

func (s *SpatialIndexSystem) insert(e ecs.Entity, box common.OBB, category uint32) {
	min, max := box.Bounds()
	shape := cp.NewBox2(s.space.StaticBody, cp.BB{L: min.X(), B: min.Z(), R: max.X(), T: max.Z()}, 0)
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, uint(category), cp.ALL_CATEGORIES))
	s.space.AddShape(shape)
	s.shapes[shape] = e
	s.boxes[e] = box
}

// candidates returns the entities whose footprint touches bb, in id order.
func (s *SpatialIndexSystem) candidates(bb cp.BB, mask uint32) []ecs.Entity {
	var out []ecs.Entity
	filter := cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, uint(mask))
	s.space.BBQuery(bb, filter, func(shape *cp.Shape, _ interface{}) {
		if e, ok := s.shapes[shape]; ok {
			out = append(out, e)
		}
	}, nil)
	ecs.SortEntities(out)
	return out
}

func (s *SpatialIndexSystem) Raycast(origin, dir mgl64.Vec3, maxDist float64, mask uint32) (RaycastHit, bool) {
	if dir.Len() == 0 || maxDist <= 0 {
		return RaycastHit{}, false
	}
	dir = dir.Normalize()
	end := origin.Add(dir.Mul(maxDist))
	bb := cp.BB{
		L: math.Min(origin.X(), end.X()),
		B: math.Min(origin.Z(), end.Z()),
		R: math.Max(origin.X(), end.X()),
		T: math.Max(origin.Z(), end.Z()),
	}

	best := RaycastHit{Distance: math.Inf(1)}
	found := false
	for _, e := range s.candidates(bb, mask) {
		t, ok := s.boxes[e].RayHit(origin, dir, maxDist)
		if !ok || t >= best.Distance {
			continue
		}
		best = RaycastHit{Entity: e, Distance: t, Point: origin.Add(dir.Mul(t))}
		found = true
	}
	return best, found
}

func (s *SpatialIndexSystem) OverlapBox(center, halfExtents mgl64.Vec3, rot mgl64.Quat, mask uint32) []ecs.Entity {
	query := common.OBB{Center: center, Half: halfExtents, Rot: rot}
	min, max := query.Bounds()
	var out []ecs.Entity
	for _, e := range s.candidates(cp.BB{L: min.X(), B: min.Z(), R: max.X(), T: max.Z()}, mask) {
		if common.Overlaps(query, s.boxes[e]) {
			out = append(out, e)
		}
	}
	return out
}

// WorldBox places a collider's local box in world space.
func WorldBox(t component.Transform, c component.Collider) common.OBB {
	rot := t.Rot()
	return common.OBB{
		Center: t.Position.Add(rot.Rotate(c.Offset)),
		Half:   c.HalfExtents,
		Rot:    rot,
	}
}
