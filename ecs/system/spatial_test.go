package system

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/logicgates/ecs"
	"github.com/milk9111/logicgates/ecs/component"
)

func TestSpatialRaycast(t *testing.T) {
	f := newFixture(t)
	near := f.box(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 1, 1}, component.LayerSlot, 0)
	far := f.box(mgl64.Vec3{0, -5, 0}, mgl64.Vec3{1, 1, 1}, component.LayerSlot, 0)
	gate := f.box(mgl64.Vec3{0, 3, 0}, mgl64.Vec3{1, 1, 1}, component.LayerGate, 0)
	f.index.Update(f.w)

	down := mgl64.Vec3{0, -1, 0}
	origin := mgl64.Vec3{0.2, 10, 0.2}

	cases := []struct {
		name    string
		mask    uint32
		maxDist float64
		want    ecs.Entity
		dist    float64
	}{
		{"nearest_of_all", component.LayerAll, 100, gate, 6},
		{"mask_skips_gate", component.LayerSlot, 100, near, 9},
		{"too_short", component.LayerSlot, 5, 0, 0},
		{"no_category", component.LayerMenu, 100, 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			hit, ok := f.index.Raycast(origin, down, tc.maxDist, tc.mask)
			if !tc.want.Valid() {
				if ok {
					t.Fatalf("expected no hit, got %+v", hit)
				}
				return
			}
			if !ok || hit.Entity != tc.want {
				t.Fatalf("hit %+v ok=%v, want %s", hit, ok, tc.want)
			}
			if math.Abs(hit.Distance-tc.dist) > 1e-9 {
				t.Fatalf("distance %v, want %v", hit.Distance, tc.dist)
			}
		})
	}
	_ = far
}

func TestSpatialIgnoresInactive(t *testing.T) {
	f := newFixture(t)
	root := ecs.CreateEntity(f.w)
	child := f.box(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 1, 1}, component.LayerSlot, root)
	ecs.SetActive(f.w, root, false)
	f.index.Update(f.w)

	if _, ok := f.index.Raycast(mgl64.Vec3{0, 10, 0}, mgl64.Vec3{0, -1, 0}, 100, component.LayerAll); ok {
		t.Fatalf("inactive subtree was hit")
	}

	ecs.SetActive(f.w, root, true)
	f.index.Update(f.w)
	hit, ok := f.index.Raycast(mgl64.Vec3{0, 10, 0}, mgl64.Vec3{0, -1, 0}, 100, component.LayerAll)
	if !ok || hit.Entity != child {
		t.Fatalf("expected hit on re-activated child, got %+v", hit)
	}
}

func TestSpatialOverlapBox(t *testing.T) {
	f := newFixture(t)
	inside := f.box(mgl64.Vec3{0, 0.5, 0}, mgl64.Vec3{0.2, 0.2, 0.2}, component.LayerGate, 0)
	// Inside the footprint but above the query box.
	above := f.box(mgl64.Vec3{0, 5, 0}, mgl64.Vec3{0.2, 0.2, 0.2}, component.LayerGate, 0)
	other := f.box(mgl64.Vec3{0.3, 0.5, 0}, mgl64.Vec3{0.2, 0.2, 0.2}, component.LayerSlot, 0)
	f.index.Update(f.w)

	got := f.index.OverlapBox(mgl64.Vec3{0, 0.5, 0}, mgl64.Vec3{0.5, 0.5, 0.5}, mgl64.QuatIdent(), component.LayerGate)
	if len(got) != 1 || got[0] != inside {
		t.Fatalf("expected only %s, got %v", inside, got)
	}
	got = f.index.OverlapBox(mgl64.Vec3{0, 0.5, 0}, mgl64.Vec3{0.5, 0.5, 0.5}, mgl64.QuatIdent(), component.LayerAll)
	if len(got) != 2 || got[0] != inside || got[1] != other {
		t.Fatalf("expected [%s %s], got %v", inside, other, got)
	}
	_ = above
}

func TestSpatialOverlapRotated(t *testing.T) {
	f := newFixture(t)
	// Sits diagonally off the corner of an axis-aligned query box but inside
	// the same box turned 45 degrees.
	corner := f.box(mgl64.Vec3{1.3, 0, 0}, mgl64.Vec3{0.1, 0.1, 0.1}, component.LayerGate, 0)
	f.index.Update(f.w)

	half := mgl64.Vec3{1, 1, 1}
	if got := f.index.OverlapBox(mgl64.Vec3{}, half, mgl64.QuatIdent(), component.LayerAll); len(got) != 0 {
		t.Fatalf("axis aligned query should miss, got %v", got)
	}
	rot := mgl64.QuatRotate(mgl64.DegToRad(45), mgl64.Vec3{0, 1, 0})
	if got := f.index.OverlapBox(mgl64.Vec3{}, half, rot, component.LayerAll); len(got) != 1 || got[0] != corner {
		t.Fatalf("rotated query should hit %s, got %v", corner, got)
	}
}

func TestSpatialResetAndStaleness(t *testing.T) {
	f := newFixture(t)
	f.box(mgl64.Vec3{}, mgl64.Vec3{1, 1, 1}, component.LayerSlot, 0)
	f.index.Update(f.w)
	if f.index.Len() != 1 {
		t.Fatalf("indexed %d colliders, want 1", f.index.Len())
	}

	// Created after the rebuild: not visible until the next one.
	late := f.box(mgl64.Vec3{5, 0, 0}, mgl64.Vec3{1, 1, 1}, component.LayerSlot, 0)
	if got := f.index.OverlapBox(mgl64.Vec3{5, 0, 0}, mgl64.Vec3{1, 1, 1}, mgl64.QuatIdent(), component.LayerAll); len(got) != 0 {
		t.Fatalf("late collider visible before rebuild: %v", got)
	}
	f.index.Update(f.w)
	if got := f.index.OverlapBox(mgl64.Vec3{5, 0, 0}, mgl64.Vec3{1, 1, 1}, mgl64.QuatIdent(), component.LayerAll); len(got) != 1 || got[0] != late {
		t.Fatalf("late collider missing after rebuild: %v", got)
	}

	f.index.Reset()
	if f.index.Len() != 0 {
		t.Fatalf("Reset left %d colliders", f.index.Len())
	}
}

func TestWorldBoxAppliesOffset(t *testing.T) {
	tr := component.NewTransform(mgl64.Vec3{1, 0, 0}, 90)
	box := WorldBox(tr, component.Collider{HalfExtents: mgl64.Vec3{1, 1, 1}, Offset: mgl64.Vec3{0, 0, 2}})
	// +Z turned 90 degrees about +Y points along +X.
	if !near(box.Center, mgl64.Vec3{3, 0, 0}, 1e-9) {
		t.Fatalf("centre = %v, want [3 0 0]", box.Center)
	}
}
