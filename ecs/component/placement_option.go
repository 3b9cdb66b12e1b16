package component

import "github.com/milk9111/logicgates/prefabs"

// PlacementOption is one entry of the contextual gate menu.
type PlacementOption struct {
	Kind GateKind
	// HoverRegion is the clickable menu volume (itself or an ancestor of the
	// collider the pointer hits).
	HoverRegion uint64
	// Template is nil when no prefab was assigned.
	Template *prefabs.GateSpec
}

var PlacementOptionComponent = NewComponent[PlacementOption]()
