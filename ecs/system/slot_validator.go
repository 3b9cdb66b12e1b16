package system

import (
	"log"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/logicgates/ecs"
	"github.com/milk9111/logicgates/ecs/component"
)

const EventSlotSolved = "slot_solved"

// SlotSolved is the payload of EventSlotSolved.
type SlotSolved struct {
	Slot     ecs.Entity
	Occupant ecs.Entity
	Kind     component.GateKind
}

// SlotValidatorSystem re-evaluates every active slot each frame: it finds the
// occupant inside the slot's detection volume, decides whether its kind
// satisfies the slot rule and applies the reward once per correct run.
type SlotValidatorSystem struct {
	spatial     SpatialQuery
	defaultMask uint32
}

func NewSlotValidatorSystem(spatial SpatialQuery, defaultMask uint32) *SlotValidatorSystem {
	v := &SlotValidatorSystem{spatial: spatial}
	v.SetDefaultMask(defaultMask)
	return v
}

// SetDefaultMask changes the overlap filter for slots without their own mask.
// Zero means every category.
func (v *SlotValidatorSystem) SetDefaultMask(mask uint32) {
	if mask == 0 {
		mask = component.LayerAll
	}
	v.defaultMask = mask
}

func (v *SlotValidatorSystem) Update(w *ecs.World) {
	if v == nil || w == nil {
		return
	}
	ecs.ForEach2(w, component.SlotComponent.Kind(), component.SlotStateComponent.Kind(), func(e ecs.Entity, slot *component.Slot, state *component.SlotState) {
		if !ecs.IsActive(w, e) {
			return
		}
		v.validate(w, e, slot, state)
	})
}

func (v *SlotValidatorSystem) validate(w *ecs.World, e ecs.Entity, slot *component.Slot, state *component.SlotState) {
	volume := ecs.Entity(slot.DetectVolume)
	transform, okT := ecs.Get(w, volume, component.TransformComponent.Kind())
	collider, okC := ecs.Get(w, volume, component.ColliderComponent.Kind())
	if !okT || !okC {
		if !state.Warned {
			log.Printf("slot validator: %s has no detection volume", describe(w, e))
			state.Warned = true
		}
		state.Correct = false
		state.Applied = false
		state.Occupant = 0
		return
	}

	box := WorldBox(*transform, *collider)
	mask := slot.GateMask
	if mask == 0 {
		mask = v.defaultMask
	}

	var (
		occupant ecs.Entity
		kind     component.GateKind
		bestDist float64
	)
	if v.spatial != nil {
		for _, hit := range v.spatial.OverlapBox(box.Center, box.Half, box.Rot, mask) {
			if ecs.IsDescendantOf(w, hit, e) {
				continue
			}
			gate, ok := ecs.Get(w, hit, component.GateComponent.Kind())
			if !ok || !gate.Kind.Valid() {
				continue
			}
			dist := occupantCenter(w, hit).Sub(box.Center).Len()
			if occupant.Valid() && (dist > bestDist || (dist == bestDist && !ecs.Before(hit, occupant))) {
				continue
			}
			occupant, kind, bestDist = hit, gate.Kind, dist
		}
	}

	state.Occupant = uint64(occupant)
	if !occupant.Valid() {
		state.Correct = false
		state.Applied = false
		return
	}

	state.Correct = slot.Rule.Accepts(kind)
	if !state.Correct {
		state.Applied = false
		return
	}
	if state.Applied {
		return
	}

	v.applyReward(w, slot)
	state.Applied = true
	state.Rewards++
	w.Events().Push(ecs.Event{Type: EventSlotSolved, Data: SlotSolved{Slot: e, Occupant: occupant, Kind: kind}})
}

func (v *SlotValidatorSystem) applyReward(w *ecs.World, slot *component.Slot) {
	if slot.SolvedMaterial == nil {
		return
	}
	for _, ref := range slot.Visuals {
		renderer, ok := ecs.Get(w, ecs.Entity(ref), component.RendererComponent.Kind())
		if !ok {
			continue
		}
		renderer.Material = slot.SolvedMaterial
	}
}

func occupantCenter(w *ecs.World, e ecs.Entity) mgl64.Vec3 {
	transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return mgl64.Vec3{}
	}
	if collider, ok := ecs.Get(w, e, component.ColliderComponent.Kind()); ok {
		return WorldBox(*transform, *collider).Center
	}
	return transform.Position
}
