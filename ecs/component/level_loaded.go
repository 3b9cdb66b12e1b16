package component

// LevelLoaded is written by the persistence system after each (re)load.
// Systems that keep per-scene state compare Sequence to notice a reload.
type LevelLoaded struct {
	Sequence uint64
	Variant  int
}

var LevelLoadedComponent = NewComponent[LevelLoaded]()
