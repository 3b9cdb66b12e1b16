package system

import (
	"image/color"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/logicgates/ecs"
	"github.com/milk9111/logicgates/ecs/component"
)

func effective(t *testing.T, w *ecs.World, e ecs.Entity) color.NRGBA {
	t.Helper()
	r, ok := ecs.Get(w, e, component.RendererComponent.Kind())
	if !ok {
		t.Fatalf("%s has no renderer", e)
	}
	return r.EffectiveColor()
}

func hoveredCount(w *ecs.World) int {
	n := 0
	ecs.ForEach(w, component.RendererComponent.Kind(), func(_ ecs.Entity, r *component.Renderer) {
		if r.EffectiveColor() == hoverColor {
			n++
		}
	})
	return n
}

func TestHoverExclusivity(t *testing.T) {
	f := newFixture(t)
	a := f.slot(component.SlotRule{Required: component.GateAND}, mgl64.Vec3{-2, 0, 0})
	b := f.slot(component.SlotRule{Required: component.GateOR}, mgl64.Vec3{2, 0, 0})
	h := NewHoverSystem(f.index, f.cfg)

	h.Hover(f.w, a.entity)
	if got := effective(t, f.w, a.entity); got != hoverColor {
		t.Fatalf("A colour = %v, want hover", got)
	}

	h.Hover(f.w, b.entity)
	if got := effective(t, f.w, a.entity); got != slotColor {
		t.Fatalf("A colour after moving to B = %v, want original %v", got, slotColor)
	}
	if got := effective(t, f.w, b.entity); got != hoverColor {
		t.Fatalf("B colour = %v, want hover", got)
	}
	if n := hoveredCount(f.w); n != 1 {
		t.Fatalf("%d surfaces hovered, want 1", n)
	}

	h.Hover(f.w, 0)
	if n := hoveredCount(f.w); n != 0 {
		t.Fatalf("%d surfaces hovered after leaving, want 0", n)
	}
	if got := effective(t, f.w, b.entity); got != slotColor {
		t.Fatalf("B colour after leaving = %v, want %v", got, slotColor)
	}
	if f.lib.Get("slot").Color != slotColor {
		t.Fatalf("shared slot material was modified")
	}
}

func TestHoverSameSurfaceReapplies(t *testing.T) {
	f := newFixture(t)
	a := f.slot(component.SlotRule{Required: component.GateAND}, mgl64.Vec3{0, 0, 0})
	h := NewHoverSystem(f.index, f.cfg)

	h.Hover(f.w, a.entity)
	r, _ := ecs.Get(f.w, a.entity, component.RendererComponent.Kind())
	r.Override = color.NRGBA{R: 1, A: 0xff}

	h.Hover(f.w, a.entity)
	if got := r.EffectiveColor(); got != hoverColor {
		t.Fatalf("hover colour not re-applied, got %v", got)
	}
	h.Hover(f.w, 0)
	if got := r.EffectiveColor(); got != slotColor {
		t.Fatalf("restored %v, want remembered %v", got, slotColor)
	}
}

func TestHoverSurfaceResolution(t *testing.T) {
	t.Run("descendant", func(t *testing.T) {
		f := newFixture(t)
		s := f.slot(component.SlotRule{Required: component.GateAND}, mgl64.Vec3{0, 0, 0})
		ecs.Remove(f.w, s.entity, component.RendererComponent.Kind())
		if got := hoverSurface(f.w, s.entity); got != s.visual {
			t.Fatalf("surface = %s, want rendered child %s", got, s.visual)
		}
	})
	t.Run("ancestor", func(t *testing.T) {
		f := newFixture(t)
		parent := f.box(mgl64.Vec3{}, mgl64.Vec3{1, 1, 1}, component.LayerDefault, 0)
		f.render(parent, "slot")
		s := f.slot(component.SlotRule{Required: component.GateAND}, mgl64.Vec3{0, 0, 0})
		ecs.Remove(f.w, s.entity, component.RendererComponent.Kind())
		ecs.Remove(f.w, s.visual, component.RendererComponent.Kind())
		if err := ecs.SetParent(f.w, s.entity, parent); err != nil {
			t.Fatal(err)
		}
		if got := hoverSurface(f.w, s.entity); got != parent {
			t.Fatalf("surface = %s, want rendered ancestor %s", got, parent)
		}
	})
}

func TestHoverIgnoresNonSlots(t *testing.T) {
	f := newFixture(t)
	m := f.menu()
	ecs.SetActive(f.w, m.root, true)
	f.render(m.options[component.GateAND], "gate")
	h := NewHoverSystem(f.index, f.cfg)

	h.Hover(f.w, m.options[component.GateAND])
	if h.Hovered().Valid() || hoveredCount(f.w) != 0 {
		t.Fatalf("menu option should not receive hover feedback")
	}
}

func TestHoverForgetsDestroyedSurface(t *testing.T) {
	f := newFixture(t)
	a := f.slot(component.SlotRule{Required: component.GateAND}, mgl64.Vec3{0, 0, 0})
	b := f.slot(component.SlotRule{Required: component.GateAND}, mgl64.Vec3{3, 0, 0})
	h := NewHoverSystem(f.index, f.cfg)

	h.Hover(f.w, a.entity)
	ecs.DestroyTree(f.w, a.entity)
	h.Hover(f.w, b.entity)
	if h.Hovered() != b.entity {
		t.Fatalf("hovered = %s, want %s", h.Hovered(), b.entity)
	}
}

func TestHoverSetConfigRetints(t *testing.T) {
	f := newFixture(t)
	a := f.slot(component.SlotRule{Required: component.GateAND}, mgl64.Vec3{0, 0, 0})
	h := NewHoverSystem(f.index, f.cfg)

	h.Hover(f.w, a.entity)
	cfg := f.cfg
	cfg.HoverColor = color.NRGBA{R: 0xff, B: 0xff, A: 0xff}
	h.SetConfig(cfg)

	h.Hover(f.w, a.entity)
	if got := effective(t, f.w, a.entity); got != cfg.HoverColor {
		t.Fatalf("colour after config change = %v, want %v", got, cfg.HoverColor)
	}
	h.Hover(f.w, 0)
	if got := effective(t, f.w, a.entity); got != slotColor {
		t.Fatalf("colour after leaving = %v, want original %v", got, slotColor)
	}
}
