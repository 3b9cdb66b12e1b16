package system

import (
	"image/color"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/logicgates/ecs"
	"github.com/milk9111/logicgates/ecs/component"
	"github.com/milk9111/logicgates/ecs/render"
	"github.com/milk9111/logicgates/prefabs"
)

var (
	slotColor  = color.NRGBA{R: 0x40, G: 0x40, B: 0x80, A: 0xff}
	wireOff    = color.NRGBA{R: 0x30, G: 0x30, B: 0x30, A: 0xff}
	wireOn     = color.NRGBA{R: 0xff, G: 0xd0, B: 0x00, A: 0xff}
	hoverColor = color.NRGBA{G: 0xff, A: 0xff}
)

// near compares by distance; mgl64's ApproxEqual is relative and rejects
// rotation noise around zero components.
func near(a, b mgl64.Vec3, tol float64) bool {
	return a.Sub(b).Len() <= tol
}

type fixture struct {
	t         *testing.T
	w         *ecs.World
	index     *SpatialIndexSystem
	validator *SlotValidatorSystem
	lib       *render.Library
	cfg       PuzzleConfig
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	lib := render.NewLibrary()
	lib.Register("slot", slotColor)
	lib.Register("wire_off", wireOff)
	lib.Register("wire_on", wireOn)
	lib.Register("gate", color.NRGBA{R: 0xff, A: 0xff})

	cfg := DefaultPuzzleConfig()
	cfg.HoverColor = hoverColor
	index := NewSpatialIndexSystem()
	return &fixture{
		t:         t,
		w:         ecs.NewWorld(),
		index:     index,
		validator: NewSlotValidatorSystem(index, cfg.GateMask),
		lib:       lib,
		cfg:       cfg,
	}
}

func (f *fixture) add(e ecs.Entity, err error) {
	f.t.Helper()
	if err != nil {
		f.t.Fatalf("add component to %s: %v", e, err)
	}
}

func (f *fixture) box(pos, half mgl64.Vec3, layer uint32, parent ecs.Entity) ecs.Entity {
	f.t.Helper()
	e := ecs.CreateEntity(f.w)
	f.add(e, ecs.Add(f.w, e, component.TransformComponent.Kind(), &component.Transform{Position: pos, Rotation: mgl64.QuatIdent()}))
	f.add(e, ecs.Add(f.w, e, component.ColliderComponent.Kind(), &component.Collider{HalfExtents: half, Layer: layer}))
	if parent.Valid() {
		f.add(e, ecs.SetParent(f.w, e, parent))
	}
	return e
}

func (f *fixture) render(e ecs.Entity, material string) *component.Renderer {
	f.t.Helper()
	r := &component.Renderer{Material: f.lib.Get(material)}
	f.add(e, ecs.Add(f.w, e, component.RendererComponent.Kind(), r))
	return r
}

type testSlot struct {
	entity ecs.Entity
	anchor ecs.Entity
	detect ecs.Entity
	visual ecs.Entity
}

// slot builds a slot at pos with an anchor, a detection volume rising above
// it and one reward visual.
func (f *fixture) slot(rule component.SlotRule, pos mgl64.Vec3) testSlot {
	f.t.Helper()
	s := testSlot{entity: f.box(pos, mgl64.Vec3{0.6, 0.1, 0.6}, component.LayerSlot, 0)}
	f.render(s.entity, "slot")

	s.anchor = ecs.CreateEntity(f.w)
	anchorTransform := component.NewTransform(pos.Add(mgl64.Vec3{0, 0.1, 0}), 0)
	f.add(s.anchor, ecs.Add(f.w, s.anchor, component.TransformComponent.Kind(), &anchorTransform))
	f.add(s.anchor, ecs.Add(f.w, s.anchor, component.AnchorTagComponent.Kind(), &component.AnchorTag{}))
	f.add(s.anchor, ecs.SetParent(f.w, s.anchor, s.entity))

	s.detect = f.box(pos.Add(mgl64.Vec3{0, 0.5, 0}), mgl64.Vec3{0.55, 0.5, 0.55}, component.LayerDefault, s.entity)
	s.visual = f.box(pos.Add(mgl64.Vec3{0, 0, 1.5}), mgl64.Vec3{0.1, 0.05, 0.8}, component.LayerDefault, s.entity)
	f.render(s.visual, "wire_off")

	f.add(s.entity, ecs.Add(f.w, s.entity, component.SlotComponent.Kind(), &component.Slot{
		Rule:           rule,
		Anchor:         uint64(s.anchor),
		DetectVolume:   uint64(s.detect),
		Visuals:        []uint64{uint64(s.visual)},
		SolvedMaterial: f.lib.Get("wire_on"),
	}))
	f.add(s.entity, ecs.Add(f.w, s.entity, component.SlotStateComponent.Kind(), &component.SlotState{}))
	return s
}

func (f *fixture) gate(kind component.GateKind, pos mgl64.Vec3) ecs.Entity {
	f.t.Helper()
	e := f.box(pos.Add(mgl64.Vec3{0, 0.3, 0}), mgl64.Vec3{0.4, 0.3, 0.4}, component.LayerGate, 0)
	f.add(e, ecs.Add(f.w, e, component.GateComponent.Kind(), &component.Gate{Kind: kind}))
	return e
}

func (f *fixture) state(s testSlot) component.SlotState {
	f.t.Helper()
	st, ok := ecs.Get(f.w, s.entity, component.SlotStateComponent.Kind())
	if !ok {
		f.t.Fatalf("slot %s has no state", s.entity)
	}
	return *st
}

// frame rebuilds the spatial index and runs one validation pass.
func (f *fixture) frame() {
	f.index.Update(f.w)
	f.validator.Update(f.w)
}

func gateTemplate(name, kind string) *prefabs.GateSpec {
	return &prefabs.GateSpec{
		Name:     name,
		Kind:     kind,
		Layer:    "gate",
		Material: "gate",
		Collider: prefabs.ColliderSpec{
			HalfExtents: prefabs.Vec3Spec{0.4, 0.3, 0.4},
			Offset:      prefabs.Vec3Spec{0, 0.3, 0},
		},
	}
}

type testMenu struct {
	root    ecs.Entity
	options map[component.GateKind]ecs.Entity
}

// menu builds a hidden option menu offering NOT, AND and OR.
func (f *fixture) menu() testMenu {
	f.t.Helper()
	m := testMenu{root: ecs.CreateEntity(f.w), options: make(map[component.GateKind]ecs.Entity)}
	f.add(m.root, ecs.Add(f.w, m.root, component.MenuTagComponent.Kind(), &component.MenuTag{}))

	for i, kind := range []component.GateKind{component.GateNOT, component.GateAND, component.GateOR} {
		option := f.box(mgl64.Vec3{float64(i-1) * 2.5, 0.5, -4.5}, mgl64.Vec3{0.8, 0.5, 0.5}, component.LayerMenu, m.root)
		f.add(option, ecs.Add(f.w, option, component.PlacementOptionComponent.Kind(), &component.PlacementOption{
			Kind:        kind,
			HoverRegion: uint64(option),
			Template:    gateTemplate("gate_"+kind.String(), kind.String()),
		}))
		m.options[kind] = option
	}
	ecs.SetActive(f.w, m.root, false)
	return m
}

func countGates(w *ecs.World) int {
	return len(w.Query(component.GateComponent.Kind()))
}
