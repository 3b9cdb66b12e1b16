package component

// LevelRoot marks one of the mutually exclusive level subtrees.
type LevelRoot struct {
	Variant int
}

var LevelRootComponent = NewComponent[LevelRoot]()
