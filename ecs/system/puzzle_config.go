package system

import (
	"fmt"
	"image/color"

	"github.com/milk9111/logicgates/ecs/component"
	"github.com/milk9111/logicgates/prefabs"
	"golang.org/x/image/colornames"
)

// PuzzleConfig is the resolved form of puzzle.yaml shared by the controller
// systems.
type PuzzleConfig struct {
	RayDistance float64
	// MouseMask is what pointer rays can hit. Placed gates are excluded.
	MouseMask uint32
	// GateMask is the validators' default overlap filter.
	GateMask   uint32
	HoverColor color.NRGBA
	Debug      bool
}

func DefaultPuzzleConfig() PuzzleConfig {
	return PuzzleConfig{
		RayDistance: 500,
		MouseMask:   component.LayerSlot | component.LayerMenu,
		GateMask:    component.LayerGate,
		HoverColor:  nrgba(colornames.Lime),
	}
}

func PuzzleConfigFromSpec(spec *prefabs.PuzzleSpec) (PuzzleConfig, error) {
	cfg := DefaultPuzzleConfig()
	if spec == nil {
		return cfg, nil
	}
	if spec.RayDistance > 0 {
		cfg.RayDistance = spec.RayDistance
	}
	if len(spec.MouseMask) > 0 {
		mask, err := component.ParseLayerMask(spec.MouseMask)
		if err != nil {
			return cfg, fmt.Errorf("puzzle: mouse_mask: %w", err)
		}
		cfg.MouseMask = mask
	}
	if len(spec.GateMask) > 0 {
		mask, err := component.ParseLayerMask(spec.GateMask)
		if err != nil {
			return cfg, fmt.Errorf("puzzle: gate_mask: %w", err)
		}
		cfg.GateMask = mask
	}
	cfg.HoverColor = spec.HoverColor.NRGBA(cfg.HoverColor)
	return cfg, nil
}

func nrgba(c color.RGBA) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}
