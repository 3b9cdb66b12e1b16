package component

import (
	"fmt"
	"strings"
)

// GateKind classifies an occupant. The zero value is not a recognised gate.
type GateKind uint8

const (
	GateNOT GateKind = iota + 1
	GateAND
	GateOR
)

func (k GateKind) Valid() bool {
	return k >= GateNOT && k <= GateOR
}

func (k GateKind) String() string {
	switch k {
	case GateNOT:
		return "NOT"
	case GateAND:
		return "AND"
	case GateOR:
		return "OR"
	default:
		return fmt.Sprintf("GateKind(%d)", uint8(k))
	}
}

func ParseGateKind(s string) (GateKind, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "NOT":
		return GateNOT, nil
	case "AND":
		return GateAND, nil
	case "OR":
		return GateOR, nil
	}
	return 0, fmt.Errorf("unknown gate kind %q", s)
}

// Gate marks a placed occupant and carries its classification.
type Gate struct {
	Kind GateKind
	// Template is the prefab the occupant was spawned from.
	Template string
}

var GateComponent = NewComponent[Gate]()
