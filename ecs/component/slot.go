package component

import (
	"fmt"
	"strings"
)

// SlotRule decides which gate kinds satisfy a slot.
type SlotRule struct {
	Required GateKind
	// AcceptAndOr relaxes the rule: either AND or OR is correct.
	AcceptAndOr bool
}

func (r SlotRule) Accepts(k GateKind) bool {
	if !k.Valid() {
		return false
	}
	if r.AcceptAndOr {
		return k == GateAND || k == GateOR
	}
	return k == r.Required
}

func (r SlotRule) String() string {
	if r.AcceptAndOr {
		return "AND|OR"
	}
	return r.Required.String()
}

// ParseSlotRule accepts a gate kind name, or "AND|OR" for the relaxed rule.
func ParseSlotRule(s string) (SlotRule, error) {
	switch strings.ToUpper(strings.ReplaceAll(s, " ", "")) {
	case "AND|OR", "OR|AND", "ANDOR":
		return SlotRule{Required: GateAND, AcceptAndOr: true}, nil
	}
	kind, err := ParseGateKind(s)
	if err != nil {
		return SlotRule{}, fmt.Errorf("slot rule: %w", err)
	}
	return SlotRule{Required: kind}, nil
}

// Slot is a placement location. Entity references are stored as raw
// ecs.Entity values.
type Slot struct {
	Rule SlotRule
	// Anchor is the child whose pose new occupants copy. Zero if missing.
	Anchor uint64
	// DetectVolume is the entity whose Collider is the detection box.
	DetectVolume uint64
	// GateMask filters the overlap query. Zero defers to the validator default.
	GateMask uint32
	// Visuals receive SolvedMaterial when the slot becomes correct.
	Visuals        []uint64
	SolvedMaterial *Material
}

// SlotState is written only by the slot validator.
type SlotState struct {
	Correct bool
	// Applied latches once the reward is shown for the current correct run.
	Applied bool
	// Rewards counts how many times the reward has been applied.
	Rewards int
	// Occupant is the gate currently judged, zero if none.
	Occupant uint64
	// Warned is set once a configuration warning has been logged.
	Warned bool
}

var SlotComponent = NewComponent[Slot]()
var SlotStateComponent = NewComponent[SlotState]()
