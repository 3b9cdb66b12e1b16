package entity

import (
	"fmt"
	"log"

	"github.com/milk9111/logicgates/ecs"
	"github.com/milk9111/logicgates/ecs/component"
	"github.com/milk9111/logicgates/levels"
)

// LoadLevelToWorld builds the camera, decor, option menu and every level
// variant subtree. Variant activation is left to the caller.
func LoadLevelToWorld(world *ecs.World, lvl *levels.Level, assets *Assets) error {
	if lvl == nil {
		return fmt.Errorf("level: nil level")
	}
	if _, err := NewCamera(world, lvl.Camera); err != nil {
		return err
	}
	for _, def := range lvl.Decor {
		if _, err := NewBox(world, def, assets, 0); err != nil {
			return fmt.Errorf("level %s: decor: %w", lvl.Name, err)
		}
	}
	if _, err := newMenu(world, lvl.Menu, assets); err != nil {
		return fmt.Errorf("level %s: %w", lvl.Name, err)
	}
	for _, variant := range lvl.Variants {
		if err := newVariant(world, variant, assets); err != nil {
			return fmt.Errorf("level %s: variant %d: %w", lvl.Name, variant.Variant, err)
		}
	}
	return nil
}

// newMenu creates the option menu root with one hover region per option. The
// menu starts hidden.
func newMenu(w *ecs.World, def levels.MenuDef, assets *Assets) (ecs.Entity, error) {
	name := def.Name
	if name == "" {
		name = "menu"
	}
	menu, err := NewGroup(w, name, 0)
	if err != nil {
		return 0, err
	}
	if err := ecs.Add(w, menu, component.MenuTagComponent.Kind(), &component.MenuTag{}); err != nil {
		return 0, fmt.Errorf("menu: add tag: %w", err)
	}
	transform := component.NewTransform(def.Position.Vec3(), 0)
	if err := ecs.Add(w, menu, component.TransformComponent.Kind(), &transform); err != nil {
		return 0, fmt.Errorf("menu: add transform: %w", err)
	}

	for _, opt := range def.Options {
		kind, err := component.ParseGateKind(opt.Kind)
		if err != nil {
			return 0, fmt.Errorf("menu option %q: %w", opt.Name, err)
		}
		region, err := NewBox(w, opt.BoxDef, assets, menu)
		if err != nil {
			return 0, fmt.Errorf("menu option %q: %w", opt.Name, err)
		}
		tmpl := assets.Gate(opt.Template)
		if tmpl == nil {
			log.Printf("level: menu option %q has no gate template", opt.Name)
		}
		if err := ecs.Add(w, region, component.PlacementOptionComponent.Kind(), &component.PlacementOption{
			Kind:        kind,
			HoverRegion: uint64(region),
			Template:    tmpl,
		}); err != nil {
			return 0, fmt.Errorf("menu option %q: add option: %w", opt.Name, err)
		}
	}

	ecs.SetActive(w, menu, false)
	return menu, nil
}

func newVariant(w *ecs.World, def levels.VariantDef, assets *Assets) error {
	name := def.Name
	if name == "" {
		name = fmt.Sprintf("level%d", def.Variant)
	}
	root, err := NewGroup(w, name, 0)
	if err != nil {
		return err
	}
	if err := ecs.Add(w, root, component.LevelRootComponent.Kind(), &component.LevelRoot{Variant: def.Variant}); err != nil {
		return fmt.Errorf("add level root: %w", err)
	}
	for _, decor := range def.Decor {
		if _, err := NewBox(w, decor, assets, root); err != nil {
			return err
		}
	}
	for _, slot := range def.Slots {
		if _, err := NewSlot(w, slot, assets, root); err != nil {
			return err
		}
	}
	return nil
}

// NewSlot creates a placement location with its anchor, detection volume and
// reward visuals as children.
func NewSlot(w *ecs.World, def levels.SlotDef, assets *Assets, parent ecs.Entity) (ecs.Entity, error) {
	rule, err := component.ParseSlotRule(def.Rule)
	if err != nil {
		return 0, fmt.Errorf("slot %q: %w", def.Name, err)
	}
	var mask uint32
	if len(def.GateMask) > 0 {
		if mask, err = component.ParseLayerMask(def.GateMask); err != nil {
			return 0, fmt.Errorf("slot %q: %w", def.Name, err)
		}
	}

	box := def.BoxDef
	if box.Layer == "" {
		box.Layer = "slot"
	}
	slot, err := NewBox(w, box, assets, parent)
	if err != nil {
		return 0, err
	}

	data := component.Slot{Rule: rule, GateMask: mask, DetectVolume: uint64(slot)}
	if def.Anchor != nil {
		anchor, err := NewAnchor(w, *def.Anchor, slot)
		if err != nil {
			return 0, fmt.Errorf("slot %q: %w", def.Name, err)
		}
		data.Anchor = uint64(anchor)
	}
	if def.Detect != nil {
		detect, err := NewBox(w, *def.Detect, assets, slot)
		if err != nil {
			return 0, fmt.Errorf("slot %q: detect: %w", def.Name, err)
		}
		data.DetectVolume = uint64(detect)
	}
	for _, visual := range def.Visuals {
		v, err := NewBox(w, visual, assets, slot)
		if err != nil {
			return 0, fmt.Errorf("slot %q: visual: %w", def.Name, err)
		}
		data.Visuals = append(data.Visuals, uint64(v))
	}
	if def.SolvedMaterial != "" {
		data.SolvedMaterial = assets.Material(def.SolvedMaterial)
		if data.SolvedMaterial == nil {
			log.Printf("level: slot %q: unknown solved material %q", def.Name, def.SolvedMaterial)
		}
	}

	if err := ecs.Add(w, slot, component.SlotComponent.Kind(), &data); err != nil {
		return 0, fmt.Errorf("slot %q: add slot: %w", def.Name, err)
	}
	if err := ecs.Add(w, slot, component.SlotStateComponent.Kind(), &component.SlotState{}); err != nil {
		return 0, fmt.Errorf("slot %q: add slot state: %w", def.Name, err)
	}
	return slot, nil
}
