package component

import (
	"fmt"
	"strings"
)

// Collision categories. Queries pass a mask of the categories they want to
// see; a collider is visible when its category intersects the mask.
const (
	LayerDefault uint32 = 1 << iota
	LayerSlot
	LayerMenu
	LayerGate

	LayerAll uint32 = ^uint32(0)
)

var layerNames = map[string]uint32{
	"default": LayerDefault,
	"slot":    LayerSlot,
	"menu":    LayerMenu,
	"gate":    LayerGate,
	"all":     LayerAll,
}

// ParseLayer resolves a single layer name.
func ParseLayer(name string) (uint32, error) {
	bits, ok := layerNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("unknown collision layer %q", name)
	}
	return bits, nil
}

// ParseLayerMask ORs the named layers together. An empty list means all layers.
func ParseLayerMask(names []string) (uint32, error) {
	if len(names) == 0 {
		return LayerAll, nil
	}
	var mask uint32
	for _, name := range names {
		bits, err := ParseLayer(name)
		if err != nil {
			return 0, err
		}
		mask |= bits
	}
	return mask, nil
}
