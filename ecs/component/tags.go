package component

type AnchorTag struct{}

var AnchorTagComponent = NewComponent[AnchorTag]()

// MenuTag marks the root of the gate option menu.
type MenuTag struct{}

var MenuTagComponent = NewComponent[MenuTag]()
