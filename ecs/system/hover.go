package system

import (
	"image/color"

	"github.com/milk9111/logicgates/ecs"
	"github.com/milk9111/logicgates/ecs/component"
)

// HoverSystem tints the slot under the pointer through the renderer's
// per-instance override. Shared materials are never touched. At most one
// surface is tinted at a time.
type HoverSystem struct {
	spatial SpatialQuery
	cfg     PuzzleConfig

	hovered      ecs.Entity
	defaultColor color.NRGBA
	block        component.OverrideBlock
	loadSeq      uint64
}

func NewHoverSystem(spatial SpatialQuery, cfg PuzzleConfig) *HoverSystem {
	return &HoverSystem{spatial: spatial, cfg: cfg}
}

// SetConfig swaps the ray settings and hover colour. A surface that stays
// hovered picks up the new colour on the next frame.
func (h *HoverSystem) SetConfig(cfg PuzzleConfig) {
	h.cfg = cfg
}

// Hovered is the surface currently tinted, zero if none.
func (h *HoverSystem) Hovered() ecs.Entity { return h.hovered }

func (h *HoverSystem) Update(w *ecs.World) {
	if h == nil || w == nil {
		return
	}
	if loaded, ok := CurrentLoad(w); ok && loaded.Sequence != h.loadSeq {
		h.loadSeq = loaded.Sequence
		h.hovered = 0
	}

	var target ecs.Entity
	if inputEntity, ok := w.First(component.InputComponent.Kind()); ok {
		input, _ := ecs.Get(w, inputEntity, component.InputComponent.Kind())
		if origin, dir, ok := PointerRay(w, input); ok && h.spatial != nil {
			if hit, ok := h.spatial.Raycast(origin, dir, h.cfg.RayDistance, h.cfg.MouseMask); ok {
				target = hit.Entity
			}
		}
	}
	h.Hover(w, target)
}

// Hover updates the tint for a pointer ray that hit target, or nothing when
// target is zero.
func (h *HoverSystem) Hover(w *ecs.World, target ecs.Entity) {
	var surface ecs.Entity
	if slot, ok := SlotOf(w, target); ok {
		surface = hoverSurface(w, slot)
	}

	if surface.Valid() && surface == h.hovered && w.IsAlive(surface) {
		h.tint(w, surface, h.cfg.HoverColor)
		return
	}

	h.restore(w)
	if !surface.Valid() {
		return
	}
	renderer, ok := ecs.Get(w, surface, component.RendererComponent.Kind())
	if !ok {
		return
	}
	h.hovered = surface
	h.defaultColor = renderer.EffectiveColor()
	h.tint(w, surface, h.cfg.HoverColor)
}

// restore puts the remembered colour back on the hovered surface. A surface
// destroyed since it was hovered is just forgotten.
func (h *HoverSystem) restore(w *ecs.World) {
	if h.hovered.Valid() && w.IsAlive(h.hovered) {
		h.tint(w, h.hovered, h.defaultColor)
	}
	h.hovered = 0
}

func (h *HoverSystem) tint(w *ecs.World, e ecs.Entity, c color.NRGBA) {
	renderer, ok := ecs.Get(w, e, component.RendererComponent.Kind())
	if !ok {
		return
	}
	h.block.Read(renderer)
	h.block.SetColor(c)
	h.block.Write(renderer)
}

// hoverSurface picks the renderer that represents slot: the slot itself, its
// first rendered descendant, or its nearest rendered ancestor.
func hoverSurface(w *ecs.World, slot ecs.Entity) ecs.Entity {
	if ecs.Has(w, slot, component.RendererComponent.Kind()) {
		return slot
	}
	for _, d := range ecs.Descendants(w, slot) {
		if ecs.Has(w, d, component.RendererComponent.Kind()) {
			return d
		}
	}
	for e, ok := ecs.ParentOf(w, slot); ok; e, ok = ecs.ParentOf(w, e) {
		if ecs.Has(w, e, component.RendererComponent.Kind()) {
			return e
		}
	}
	return 0
}
