package system

import (
	"errors"
	"testing"

	"github.com/milk9111/logicgates/ecs"
	"github.com/milk9111/logicgates/ecs/component"
	"github.com/milk9111/logicgates/ecs/entity"
	"github.com/milk9111/logicgates/levels"
	"github.com/milk9111/logicgates/session"
)

type game struct {
	w           *ecs.World
	sess        *session.Session
	index       *SpatialIndexSystem
	persistence *PersistenceSystem
	interaction *InteractionSystem
	scheduler   *ecs.Scheduler
}

// newGame wires the systems the way the game does, on the embedded puzzle.
func newGame(t *testing.T, variant int) *game {
	t.Helper()
	assets, err := entity.LoadAssets(entity.DefaultGateTemplates...)
	if err != nil {
		t.Fatalf("LoadAssets: %v", err)
	}
	sess, err := session.New(variant)
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	cfg := DefaultPuzzleConfig()
	g := &game{w: ecs.NewWorld(), sess: sess, index: NewSpatialIndexSystem()}
	g.persistence = NewPersistenceSystem("puzzle", sess, assets, g.index.Reset)
	g.interaction = NewInteractionSystem(g.index, sess, assets.Materials, cfg)
	g.scheduler = ecs.NewScheduler(
		g.persistence,
		inputStub{},
		g.index,
		NewHoverSystem(g.index, cfg),
		g.interaction,
		NewSlotValidatorSystem(g.index, cfg.GateMask),
	)
	g.scheduler.Update(g.w)
	return g
}

// inputStub stands in for the ebiten poller; tests click directly.
type inputStub struct{}

func (inputStub) Update(*ecs.World) {}

func activeVariants(w *ecs.World) []int {
	var out []int
	ecs.ForEach(w, component.LevelRootComponent.Kind(), func(e ecs.Entity, root *component.LevelRoot) {
		if ecs.IsActive(w, e) {
			out = append(out, root.Variant)
		}
	})
	return out
}

func TestReloadFlagRoundTrip(t *testing.T) {
	g := newGame(t, session.VariantOne)

	if got := activeVariants(g.w); len(got) != 1 || got[0] != session.VariantOne {
		t.Fatalf("initial active subtrees %v, want [1]", got)
	}

	g.interaction.ToggleLevelAndReload(g.w)
	g.scheduler.Update(g.w)
	if got := activeVariants(g.w); len(got) != 1 || got[0] != session.VariantTwo {
		t.Fatalf("after one toggle active subtrees %v, want [2]", got)
	}

	g.interaction.ToggleLevelAndReload(g.w)
	g.scheduler.Update(g.w)
	if got := activeVariants(g.w); len(got) != 1 || got[0] != session.VariantOne {
		t.Fatalf("after two toggles active subtrees %v, want [1]", got)
	}
	if g.persistence.Sequence() != 3 {
		t.Fatalf("load sequence %d, want 3", g.persistence.Sequence())
	}
}

func TestReloadKeepsPersistentInput(t *testing.T) {
	g := newGame(t, session.VariantOne)
	before, ok := g.w.First(component.InputComponent.Kind())
	if !ok {
		t.Fatalf("no input entity after load")
	}

	g.interaction.ToggleLevelAndReload(g.w)
	g.scheduler.Update(g.w)

	inputs := g.w.Query(component.InputComponent.Kind())
	if len(inputs) != 1 || inputs[0] != before {
		t.Fatalf("input entities after reload %v, want [%s]", inputs, before)
	}
	if _, ok := g.w.First(component.ReloadRequestComponent.Kind()); ok {
		t.Fatalf("reload request not consumed")
	}
}

func TestReloadClearsPlacements(t *testing.T) {
	g := newGame(t, session.VariantOne)

	slot := findNamed(t, g.w, "spot_b")
	menu, _ := g.w.First(component.MenuTagComponent.Kind())
	g.interaction.Click(g.w, slot)
	option := optionFor(t, g.w, component.GateAND)
	g.interaction.Click(g.w, option)
	if countGates(g.w) != 1 {
		t.Fatalf("expected one placed gate")
	}

	g.interaction.ToggleLevelAndReload(g.w)
	g.scheduler.Update(g.w)

	if countGates(g.w) != 0 {
		t.Fatalf("gates survived the reload")
	}
	if _, ok := g.interaction.Occupant(slot); ok {
		t.Fatalf("ledger survived the reload")
	}
	if g.w.IsAlive(menu) {
		t.Fatalf("old menu survived the reload")
	}
	newMenu, _ := g.w.First(component.MenuTagComponent.Kind())
	if ecs.IsActive(g.w, newMenu) {
		t.Fatalf("menu visible after reload")
	}
}

func TestPuzzleSolvesThroughScheduler(t *testing.T) {
	g := newGame(t, session.VariantOne)

	solve := map[string]component.GateKind{
		"spot_a": component.GateNOT,
		"spot_b": component.GateOR,
		"spot_c": component.GateAND,
	}
	for name, kind := range solve {
		g.interaction.Click(g.w, findNamed(t, g.w, name))
		g.interaction.Click(g.w, optionFor(t, g.w, kind))
	}
	// One frame for the index to see the new gates.
	g.scheduler.Update(g.w)
	g.scheduler.Update(g.w)

	for name := range solve {
		slot := findNamed(t, g.w, name)
		st, _ := ecs.Get(g.w, slot, component.SlotStateComponent.Kind())
		if !st.Correct || st.Rewards != 1 {
			t.Fatalf("%s state %+v, want solved once", name, st)
		}
	}
}

func findNamed(t *testing.T, w *ecs.World, name string) ecs.Entity {
	t.Helper()
	var found ecs.Entity
	ecs.ForEach(w, component.NameComponent.Kind(), func(e ecs.Entity, n *component.Name) {
		if n.Value == name && ecs.IsActive(w, e) && !found.Valid() {
			found = e
		}
	})
	if !found.Valid() {
		t.Fatalf("no active entity named %q", name)
	}
	return found
}

func optionFor(t *testing.T, w *ecs.World, kind component.GateKind) ecs.Entity {
	t.Helper()
	var found ecs.Entity
	ecs.ForEach(w, component.PlacementOptionComponent.Kind(), func(e ecs.Entity, o *component.PlacementOption) {
		if o.Kind == kind {
			found = e
		}
	})
	if !found.Valid() {
		t.Fatalf("no option for %s", kind)
	}
	return found
}

func TestPersistenceCustomLevel(t *testing.T) {
	lvl := &levels.Level{
		Name:   "tiny",
		Camera: levels.CameraDef{Position: levels.Vec3{0, 10, -10}},
		Variants: []levels.VariantDef{{
			Variant: session.VariantOne,
			Slots: []levels.SlotDef{{
				BoxDef: levels.BoxDef{Name: "only", HalfExtents: levels.Vec3{0.5, 0.1, 0.5}},
				Rule:   "AND|OR",
			}},
		}},
	}
	sess, _ := session.New(session.VariantTwo)
	index := NewSpatialIndexSystem()
	p := NewPersistenceSystem("tiny", sess, nil, index.Reset)
	var requested string
	p.SetLevelLoader(func(name string) (*levels.Level, error) {
		requested = name
		return lvl, nil
	})

	w := ecs.NewWorld()
	p.Update(w)
	if requested != "tiny" {
		t.Fatalf("loader asked for %q", requested)
	}
	if got := activeVariants(w); len(got) != 0 {
		t.Fatalf("no subtree should match variant 2, got %v", got)
	}
	slot := findSlot(t, w)
	data, _ := ecs.Get(w, slot, component.SlotComponent.Kind())
	if !data.Rule.AcceptAndOr || data.DetectVolume != uint64(slot) || data.Anchor != 0 {
		t.Fatalf("unexpected slot defaults %+v", data)
	}
	if loaded, ok := CurrentLoad(w); !ok || loaded.Sequence != 1 || loaded.Variant != session.VariantTwo {
		t.Fatalf("load marker %+v ok=%v", loaded, ok)
	}
}

func TestReloadFailureKeepsScene(t *testing.T) {
	broken := map[string]LevelLoader{
		"unreadable": func(string) (*levels.Level, error) {
			return nil, errors.New("unexpected end of JSON input")
		},
		"bad rule": func(string) (*levels.Level, error) {
			return &levels.Level{
				Name: "puzzle",
				Variants: []levels.VariantDef{{
					Variant: session.VariantOne,
					Slots: []levels.SlotDef{{
						BoxDef: levels.BoxDef{Name: "bad", HalfExtents: levels.Vec3{0.5, 0.1, 0.5}},
						Rule:   "XOR",
					}},
				}},
			}, nil
		},
	}

	for name, loader := range broken {
		t.Run(name, func(t *testing.T) {
			g := newGame(t, session.VariantOne)
			before := g.w.Len()
			slot := findNamed(t, g.w, "spot_b")

			g.persistence.SetLevelLoader(loader)
			req := ecs.CreateEntity(g.w)
			_ = ecs.Add(g.w, req, component.ReloadRequestComponent.Kind(), &component.ReloadRequest{Reason: "edited"})
			g.scheduler.Update(g.w)

			if !ecs.IsAlive(g.w, slot) {
				t.Fatalf("failed reload destroyed the scene")
			}
			if g.w.Len() != before {
				t.Fatalf("entities %d after failed reload, want %d", g.w.Len(), before)
			}
			if g.persistence.Sequence() != 1 {
				t.Fatalf("load sequence %d, want 1", g.persistence.Sequence())
			}
			if _, ok := g.w.First(component.ReloadRequestComponent.Kind()); ok {
				t.Fatalf("reload request not consumed")
			}
		})
	}
}

func TestInitialLoadFailurePanics(t *testing.T) {
	p := NewPersistenceSystem("missing", &session.Session{}, nil, nil)
	p.SetLevelLoader(func(string) (*levels.Level, error) {
		return nil, errors.New("no such level")
	})
	defer func() {
		if recover() == nil {
			t.Fatalf("initial load failure did not panic")
		}
	}()
	p.Update(ecs.NewWorld())
}

func findSlot(t *testing.T, w *ecs.World) ecs.Entity {
	t.Helper()
	e, ok := w.First(component.SlotComponent.Kind())
	if !ok {
		t.Fatalf("no slot loaded")
	}
	return e
}
