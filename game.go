package main

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/logicgates/common"
	"github.com/milk9111/logicgates/ecs"
	"github.com/milk9111/logicgates/ecs/component"
	"github.com/milk9111/logicgates/ecs/entity"
	"github.com/milk9111/logicgates/ecs/system"
	"github.com/milk9111/logicgates/levels"
	"github.com/milk9111/logicgates/prefabs"
	"github.com/milk9111/logicgates/session"
	"golang.org/x/image/colornames"
)

type Options struct {
	Level   string
	Variant int
	Debug   bool
	Watch   bool
}

type Game struct {
	world       *ecs.World
	scheduler   *ecs.Scheduler
	render      *system.RenderSystem
	interaction *system.InteractionSystem
	hover       *system.HoverSystem
	validator   *system.SlotValidatorSystem
	status      *system.PuzzleStatusSystem
	session     *session.Session
	assets      *entity.Assets
	watcher     *prefabs.Watcher
	hud         *HUD
	debug       bool
}

func loadPuzzleConfig(debug bool) (system.PuzzleConfig, error) {
	puzzle, err := prefabs.LoadPuzzleSpec()
	if err != nil {
		return system.PuzzleConfig{}, err
	}
	cfg, err := system.PuzzleConfigFromSpec(puzzle)
	if err != nil {
		return system.PuzzleConfig{}, err
	}
	cfg.Debug = debug
	return cfg, nil
}

func NewGame(opts Options) (*Game, error) {
	sess, err := session.New(opts.Variant)
	if err != nil {
		return nil, err
	}
	assets, err := entity.LoadAssets(entity.DefaultGateTemplates...)
	if err != nil {
		return nil, err
	}
	cfg, err := loadPuzzleConfig(opts.Debug)
	if err != nil {
		return nil, err
	}

	levelName := opts.Level
	if levelName == "" {
		levelName = "puzzle"
	}

	spatial := system.NewSpatialIndexSystem()
	interaction := system.NewInteractionSystem(spatial, sess, assets.Materials, cfg)
	g := &Game{
		world:       ecs.NewWorld(),
		render:      system.NewRenderSystem(opts.Debug, spatial),
		interaction: interaction,
		hover:       system.NewHoverSystem(spatial, cfg),
		validator:   system.NewSlotValidatorSystem(spatial, cfg.GateMask),
		status:      system.NewPuzzleStatusSystem(),
		session:     sess,
		assets:      assets,
		debug:       opts.Debug,
	}
	g.scheduler = ecs.NewScheduler(
		system.NewPersistenceSystem(levelName, sess, assets, spatial.Reset),
		system.NewInputSystem(),
		spatial,
		g.hover,
		interaction,
		g.validator,
		g.status,
	)
	g.hud = NewHUD(func() {
		interaction.ToggleLevelAndReload(g.world)
	})

	if opts.Watch {
		watcher, err := prefabs.NewWatcher(prefabs.Dir, levels.Dir)
		if err != nil {
			log.Printf("hot reload disabled: %v", err)
		} else {
			g.watcher = watcher
		}
	}
	return g, nil
}

func (g *Game) Update() error {
	g.drainWatcher()
	g.hud.UI.Update()
	g.scheduler.Update(g.world)
	g.refreshHUD()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Black)
	g.render.Draw(g.world, screen)
	g.hud.UI.Draw(screen)

	if g.debug {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS: %.2f  entities: %d", ebiten.ActualFPS(), g.world.Len()), 10, common.BaseHeight-20)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

// Close stops the file watcher.
func (g *Game) Close() error {
	if g.watcher == nil {
		return nil
	}
	return g.watcher.Close()
}

// drainWatcher turns file edits into a reload with fresh assets.
func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	changed := ""
	for draining := true; draining; {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			changed = path
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("watcher: %v", err)
		default:
			draining = false
		}
	}
	if changed == "" {
		return
	}

	fresh, err := entity.LoadAssets(entity.DefaultGateTemplates...)
	if err != nil {
		log.Printf("hot reload: %v", err)
		return
	}
	*g.assets = *fresh
	g.interaction.SetMaterials(fresh.Materials)

	if cfg, err := loadPuzzleConfig(g.debug); err != nil {
		log.Printf("hot reload: keeping puzzle config: %v", err)
	} else {
		g.hover.SetConfig(cfg)
		g.interaction.SetConfig(cfg)
		g.validator.SetDefaultMask(cfg.GateMask)
	}

	req := ecs.CreateEntity(g.world)
	_ = ecs.Add(g.world, req, component.ReloadRequestComponent.Kind(), &component.ReloadRequest{Reason: "changed " + changed})
}

func (g *Game) refreshHUD() {
	g.hud.SetStatus(g.status.Status())
}
