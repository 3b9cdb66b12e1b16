package component

// Input stores the pointer state polled once per frame.
type Input struct {
	PointerX float64
	PointerY float64
	// PrimaryPressed is true only on the frame the primary button went down.
	PrimaryPressed bool
	// TogglePressed is true on the frame the level-toggle key went down.
	TogglePressed bool
	ScreenW       int
	ScreenH       int
}

var InputComponent = NewComponent[Input]()
