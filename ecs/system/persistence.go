package system

import (
	"fmt"
	"log"

	"github.com/milk9111/logicgates/ecs"
	"github.com/milk9111/logicgates/ecs/component"
	"github.com/milk9111/logicgates/ecs/entity"
	"github.com/milk9111/logicgates/levels"
	"github.com/milk9111/logicgates/session"
)

// LevelLoader resolves a level by name.
type LevelLoader func(name string) (*levels.Level, error)

// PersistenceSystem owns the scene lifecycle: the initial load, full reloads
// on ReloadRequest and applying the session's level variant.
type PersistenceSystem struct {
	levelName    string
	session      *session.Session
	assets       *entity.Assets
	loader       LevelLoader
	spatialReset func()
	initialized  bool
	loadSequence uint64
}

func NewPersistenceSystem(levelName string, sess *session.Session, assets *entity.Assets, spatialReset func()) *PersistenceSystem {
	return &PersistenceSystem{
		levelName:    levelName,
		session:      sess,
		assets:       assets,
		loader:       levels.LoadLevel,
		spatialReset: spatialReset,
	}
}

// SetLevelLoader replaces the level source, which defaults to levels.LoadLevel.
func (p *PersistenceSystem) SetLevelLoader(loader LevelLoader) {
	if loader != nil {
		p.loader = loader
	}
}

// Sequence is the number of completed loads.
func (p *PersistenceSystem) Sequence() uint64 {
	return p.loadSequence
}

func (p *PersistenceSystem) Update(w *ecs.World) {
	if p == nil || w == nil {
		return
	}

	if !p.initialized {
		if err := p.reloadWorld(w); err != nil {
			panic("persistence system: initial load failed: " + err.Error())
		}
		p.initialized = true
		return
	}

	if _, ok := ecs.First(w, component.ReloadRequestComponent.Kind()); ok {
		ecs.ForEach(w, component.ReloadRequestComponent.Kind(), func(e ecs.Entity, req *component.ReloadRequest) {
			if req.Reason != "" {
				log.Printf("persistence: reload requested: %s", req.Reason)
			}
			ecs.DestroyEntity(w, e)
		})
		if err := p.reloadWorld(w); err != nil {
			log.Printf("persistence: reload failed, keeping current scene: %v", err)
		}
	}
}

func (p *PersistenceSystem) snapshotPersistentSingletons(w *ecs.World) map[string]ecs.Entity {
	preferred := map[string]ecs.Entity{}
	ecs.ForEach(w, component.PersistentComponent.Kind(), func(e ecs.Entity, persistent *component.Persistent) {
		if persistent == nil || persistent.ID == "" || !persistent.KeepOnReload {
			return
		}
		if _, exists := preferred[persistent.ID]; !exists {
			preferred[persistent.ID] = e
		}
	})
	return preferred
}

func (p *PersistenceSystem) pruneForReload(w *ecs.World) {
	toDestroy := make([]ecs.Entity, 0)
	for _, e := range ecs.Entities(w) {
		persistent, ok := ecs.Get(w, e, component.PersistentComponent.Kind())
		if !ok || persistent == nil || !persistent.KeepOnReload {
			toDestroy = append(toDestroy, e)
		}
	}
	for _, e := range toDestroy {
		ecs.DestroyEntity(w, e)
	}
}

// resolvePersistentSingletons keeps one entity per persistent ID, preferring
// the one that survived the reload.
func (p *PersistenceSystem) resolvePersistentSingletons(w *ecs.World, preferred map[string]ecs.Entity) {
	seen := make(map[string]ecs.Entity)
	toDestroy := make([]ecs.Entity, 0)
	ecs.ForEach(w, component.PersistentComponent.Kind(), func(e ecs.Entity, persistent *component.Persistent) {
		if persistent == nil || persistent.ID == "" {
			return
		}
		if preferredEntity, ok := preferred[persistent.ID]; ok {
			seen[persistent.ID] = preferredEntity
			if e != preferredEntity {
				toDestroy = append(toDestroy, e)
			}
			return
		}
		if existing, ok := seen[persistent.ID]; ok && existing != e {
			toDestroy = append(toDestroy, e)
			return
		}
		seen[persistent.ID] = e
	})
	for _, e := range toDestroy {
		ecs.DestroyEntity(w, e)
	}
}

// reloadWorld replaces the scene with a fresh copy of the level. The level is
// read and test-built before anything is destroyed, so a broken file leaves
// the current scene untouched.
func (p *PersistenceSystem) reloadWorld(w *ecs.World) error {
	level, err := p.loader(p.levelName)
	if err != nil {
		return fmt.Errorf("load level %q: %w", p.levelName, err)
	}
	if p.initialized {
		if err = entity.LoadLevelToWorld(ecs.NewWorld(), level, p.assets); err != nil {
			return fmt.Errorf("build level %q: %w", p.levelName, err)
		}
	}

	preferred := p.snapshotPersistentSingletons(w)
	p.pruneForReload(w)

	if p.spatialReset != nil {
		p.spatialReset()
	}

	if err = entity.LoadLevelToWorld(w, level, p.assets); err != nil {
		return err
	}

	if _, ok := ecs.First(w, component.InputComponent.Kind()); !ok {
		if _, err = entity.NewInput(w); err != nil {
			return err
		}
	}
	p.resolvePersistentSingletons(w, preferred)

	variant := p.session.Variant()
	if n := ApplyLevelVariant(w, variant); n == 0 {
		log.Printf("persistence: level %q has no subtree for variant %d", p.levelName, variant)
	}

	p.loadSequence++
	ent := ecs.CreateEntity(w)
	_ = ecs.Add(w, ent, component.LevelLoadedComponent.Kind(), &component.LevelLoaded{Sequence: p.loadSequence, Variant: variant})
	return nil
}

// ApplyLevelVariant activates the level subtree for variant and deactivates
// the others. It returns the number of subtrees activated.
func ApplyLevelVariant(w *ecs.World, variant int) int {
	active := 0
	ecs.ForEach(w, component.LevelRootComponent.Kind(), func(e ecs.Entity, root *component.LevelRoot) {
		on := root.Variant == variant
		ecs.SetActive(w, e, on)
		if on {
			active++
		}
	})
	return active
}

// CurrentLoad returns the marker written by the most recent load.
func CurrentLoad(w *ecs.World) (component.LevelLoaded, bool) {
	e, ok := ecs.First(w, component.LevelLoadedComponent.Kind())
	if !ok {
		return component.LevelLoaded{}, false
	}
	loaded, ok := ecs.Get(w, e, component.LevelLoadedComponent.Kind())
	if !ok {
		return component.LevelLoaded{}, false
	}
	return *loaded, true
}
