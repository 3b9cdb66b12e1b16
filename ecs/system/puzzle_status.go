package system

import (
	"fmt"
	"log"

	"github.com/milk9111/logicgates/ecs"
	"github.com/milk9111/logicgates/ecs/component"
)

// PuzzleStatus is the per-frame summary shown by the HUD.
type PuzzleStatus struct {
	Variant  int
	Solved   int
	Total    int
	Complete bool
	// Last describes the most recent placement or solve.
	Last string
}

// PuzzleStatusSystem runs last. It consumes the frame's gameplay events and
// tallies the active slots.
type PuzzleStatusSystem struct {
	status  PuzzleStatus
	loadSeq uint64
}

func NewPuzzleStatusSystem() *PuzzleStatusSystem {
	return &PuzzleStatusSystem{}
}

func (s *PuzzleStatusSystem) Status() PuzzleStatus { return s.status }

func (s *PuzzleStatusSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	if loaded, ok := CurrentLoad(w); ok && loaded.Sequence != s.loadSeq {
		s.loadSeq = loaded.Sequence
		s.status = PuzzleStatus{Variant: loaded.Variant}
		checkAnchors(w)
	}

	for _, evt := range w.Events().Drain() {
		switch evt.Type {
		case EventGatePlaced:
			placed, ok := evt.Data.(GatePlaced)
			if !ok {
				continue
			}
			s.status.Last = fmt.Sprintf("%s placed at %s", placed.Kind, describe(w, placed.Slot))
		case EventSlotSolved:
			solved, ok := evt.Data.(SlotSolved)
			if !ok {
				continue
			}
			s.status.Last = fmt.Sprintf("%s solved with %s", describe(w, solved.Slot), solved.Kind)
			log.Printf("puzzle: %s", s.status.Last)
		}
	}

	solved, total := 0, 0
	ecs.ForEach(w, component.SlotStateComponent.Kind(), func(e ecs.Entity, state *component.SlotState) {
		if !ecs.IsActive(w, e) {
			return
		}
		total++
		if state.Correct {
			solved++
		}
	})
	complete := total > 0 && solved == total
	if complete && !s.status.Complete {
		log.Printf("puzzle: level %d complete", s.status.Variant)
	}
	s.status.Solved, s.status.Total, s.status.Complete = solved, total, complete
}

// checkAnchors warns about slots whose anchor lies outside the detection
// volume; gates placed there would never be judged.
func checkAnchors(w *ecs.World) {
	ecs.ForEach(w, component.SlotComponent.Kind(), func(e ecs.Entity, slot *component.Slot) {
		if inside, ok := AnchorInsideVolume(w, slot); ok && !inside {
			log.Printf("puzzle: %s anchor is outside its detection volume", describe(w, e))
		}
	})
}

// AnchorInsideVolume reports whether the slot's anchor point lies in its
// detection box. ok is false when either is missing.
func AnchorInsideVolume(w *ecs.World, slot *component.Slot) (inside, ok bool) {
	anchor, okA := ecs.Get(w, ecs.Entity(slot.Anchor), component.TransformComponent.Kind())
	volume := ecs.Entity(slot.DetectVolume)
	transform, okT := ecs.Get(w, volume, component.TransformComponent.Kind())
	collider, okC := ecs.Get(w, volume, component.ColliderComponent.Kind())
	if !okA || !okT || !okC {
		return false, false
	}
	return WorldBox(*transform, *collider).Contains(anchor.Position), true
}
