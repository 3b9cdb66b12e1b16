package component

// Parent links an entity to its parent. Transforms stay world-space; the link
// only groups entities for activation, ownership and hit resolution.
type Parent struct {
	Entity uint64
}

// Inactive disables an entity and its whole subtree.
type Inactive struct{}

var ParentComponent = NewComponent[Parent]()
var InactiveComponent = NewComponent[Inactive]()
