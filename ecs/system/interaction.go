package system

import (
	"fmt"
	"log"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/logicgates/common"
	"github.com/milk9111/logicgates/ecs"
	"github.com/milk9111/logicgates/ecs/component"
	"github.com/milk9111/logicgates/ecs/entity"
	"github.com/milk9111/logicgates/ecs/render"
	"github.com/milk9111/logicgates/session"
)

const EventGatePlaced = "gate_placed"

// GatePlaced is the payload of EventGatePlaced.
type GatePlaced struct {
	Slot ecs.Entity
	Gate ecs.Entity
	Kind component.GateKind
}

type InteractionState int

const (
	InteractionIdle InteractionState = iota
	InteractionSelecting
)

func (s InteractionState) String() string {
	if s == InteractionSelecting {
		return "selecting"
	}
	return "idle"
}

// InteractionSystem turns primary clicks into slot selection and gate
// placement. It is the only writer of occupants and keeps a ledger of which
// occupant it placed at each slot.
type InteractionSystem struct {
	spatial   SpatialQuery
	session   *session.Session
	materials *render.Library
	cfg       PuzzleConfig

	state    InteractionState
	selected ecs.Entity
	anchor   ecs.Entity
	ledger   map[ecs.Entity]ecs.Entity
	loadSeq  uint64
}

func NewInteractionSystem(spatial SpatialQuery, sess *session.Session, materials *render.Library, cfg PuzzleConfig) *InteractionSystem {
	return &InteractionSystem{
		spatial:   spatial,
		session:   sess,
		materials: materials,
		cfg:       cfg,
		ledger:    make(map[ecs.Entity]ecs.Entity),
	}
}

func (s *InteractionSystem) State() InteractionState { return s.state }

// SetConfig swaps the ray settings. The current selection is kept.
func (s *InteractionSystem) SetConfig(cfg PuzzleConfig) {
	s.cfg = cfg
}

// Selected is the slot awaiting a choice, zero when idle.
func (s *InteractionSystem) Selected() ecs.Entity { return s.selected }

// Occupant returns the gate this controller placed at slot.
func (s *InteractionSystem) Occupant(slot ecs.Entity) (ecs.Entity, bool) {
	gate, ok := s.ledger[slot]
	return gate, ok
}

func (s *InteractionSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	s.syncLoad(w)

	inputEntity, ok := w.First(component.InputComponent.Kind())
	if !ok {
		return
	}
	input, ok := ecs.Get(w, inputEntity, component.InputComponent.Kind())
	if !ok {
		return
	}

	if input.TogglePressed {
		s.ToggleLevelAndReload(w)
		return
	}
	if !input.PrimaryPressed {
		return
	}

	var hit ecs.Entity
	if origin, dir, ok := PointerRay(w, input); ok && s.spatial != nil {
		if rh, ok := s.spatial.Raycast(origin, dir, s.cfg.RayDistance, s.cfg.MouseMask); ok {
			hit = rh.Entity
		}
	}
	s.Click(w, hit)
}

// Click handles a primary press whose ray hit target. A zero target means the
// ray hit nothing.
func (s *InteractionSystem) Click(w *ecs.World, target ecs.Entity) {
	if slot, ok := SlotOf(w, target); ok {
		s.selectSlot(w, slot)
		return
	}
	if s.state == InteractionSelecting {
		if option, ok := s.optionAt(w, target); ok {
			s.confirm(w, option)
			return
		}
	}
	if s.cfg.Debug && s.state == InteractionSelecting {
		log.Printf("interaction: cancelled selection of %s", s.selected)
	}
	s.reset(w)
}

// ToggleLevelAndReload flips the session's level variant and asks for a full
// reload. It returns the new variant.
func (s *InteractionSystem) ToggleLevelAndReload(w *ecs.World) int {
	variant := s.session.Toggle()
	req := ecs.CreateEntity(w)
	if err := ecs.Add(w, req, component.ReloadRequestComponent.Kind(), &component.ReloadRequest{
		Reason: fmt.Sprintf("level variant %d", variant),
	}); err != nil {
		panic("interaction system: add reload request: " + err.Error())
	}
	if s.cfg.Debug {
		log.Printf("interaction: switching to level variant %d", variant)
	}
	return variant
}

func (s *InteractionSystem) selectSlot(w *ecs.World, slot ecs.Entity) {
	s.release(w, slot)
	s.selected = slot
	s.anchor = 0

	var anchor ecs.Entity
	if data, ok := ecs.Get(w, slot, component.SlotComponent.Kind()); ok {
		anchor = ecs.Entity(data.Anchor)
	}
	if anchor.Valid() && w.IsAlive(anchor) && ecs.Has(w, anchor, component.TransformComponent.Kind()) {
		s.anchor = anchor
	} else {
		log.Printf("interaction: slot %s has no anchor; placement disabled", describe(w, slot))
	}

	s.setMenuVisible(w, true)
	if s.cfg.Debug {
		log.Printf("interaction: %s -> selecting %s", s.state, describe(w, slot))
	}
	s.state = InteractionSelecting
}

func (s *InteractionSystem) confirm(w *ecs.World, option *component.PlacementOption) {
	slot := s.selected
	defer s.reset(w)

	if option.Template == nil {
		log.Printf("interaction: option %s has no gate template", option.Kind)
		return
	}
	anchorTransform, ok := ecs.Get(w, s.anchor, component.TransformComponent.Kind())
	if !ok {
		log.Printf("interaction: slot %s has no anchor; nothing placed", describe(w, slot))
		return
	}

	s.release(w, slot)

	rot := anchorTransform.Rot().Mul(mgl64.QuatRotate(math.Pi, common.Up))
	gate, err := entity.NewGate(w, option.Template, s.materials, anchorTransform.Position, rot)
	if err != nil {
		log.Printf("interaction: place %s at %s: %v", option.Kind, describe(w, slot), err)
		return
	}
	s.ledger[slot] = gate
	w.Events().Push(ecs.Event{Type: EventGatePlaced, Data: GatePlaced{Slot: slot, Gate: gate, Kind: option.Kind}})
	if s.cfg.Debug {
		log.Printf("interaction: placed %s %s at %s", option.Kind, gate, describe(w, slot))
	}
}

// release destroys the occupant previously placed at slot, if any.
func (s *InteractionSystem) release(w *ecs.World, slot ecs.Entity) {
	gate, ok := s.ledger[slot]
	if !ok {
		return
	}
	delete(s.ledger, slot)
	if ecs.DestroyTree(w, gate) && s.cfg.Debug {
		log.Printf("interaction: released %s from %s", gate, describe(w, slot))
	}
}

func (s *InteractionSystem) reset(w *ecs.World) {
	s.setMenuVisible(w, false)
	s.state = InteractionIdle
	s.selected = 0
	s.anchor = 0
}

func (s *InteractionSystem) optionAt(w *ecs.World, target ecs.Entity) (*component.PlacementOption, bool) {
	if !target.Valid() {
		return nil, false
	}
	var found *component.PlacementOption
	ecs.ForEach(w, component.PlacementOptionComponent.Kind(), func(e ecs.Entity, option *component.PlacementOption) {
		if found != nil {
			return
		}
		region := ecs.Entity(option.HoverRegion)
		if !region.Valid() {
			region = e
		}
		if ecs.IsActive(w, region) && ecs.IsDescendantOf(w, target, region) {
			found = option
		}
	})
	return found, found != nil
}

func (s *InteractionSystem) setMenuVisible(w *ecs.World, visible bool) {
	menu, ok := w.First(component.MenuTagComponent.Kind())
	if !ok {
		return
	}
	ecs.SetActive(w, menu, visible)
}

// syncLoad drops per-scene state after a reload destroyed the scene.
func (s *InteractionSystem) syncLoad(w *ecs.World) {
	loaded, ok := CurrentLoad(w)
	if !ok || loaded.Sequence == s.loadSeq {
		return
	}
	s.loadSeq = loaded.Sequence
	s.ledger = make(map[ecs.Entity]ecs.Entity)
	s.reset(w)
}

// SlotOf resolves target to the active slot it belongs to: target itself or
// its nearest ancestor carrying a Slot.
func SlotOf(w *ecs.World, target ecs.Entity) (ecs.Entity, bool) {
	e := target
	for depth := 0; e.Valid() && depth < 64; depth++ {
		if ecs.Has(w, e, component.SlotComponent.Kind()) {
			return e, ecs.IsActive(w, e)
		}
		parent, ok := ecs.ParentOf(w, e)
		if !ok {
			break
		}
		e = parent
	}
	return 0, false
}

func describe(w *ecs.World, e ecs.Entity) string {
	if name, ok := ecs.Get(w, e, component.NameComponent.Kind()); ok && name.Value != "" {
		return name.Value
	}
	return e.String()
}

// SetMaterials swaps the library new gates take their materials from.
func (s *InteractionSystem) SetMaterials(materials *render.Library) {
	s.materials = materials
}
