package component

// Name is the authored entity name, used in logs.
type Name struct {
	Value string
}

var NameComponent = NewComponent[Name]()
