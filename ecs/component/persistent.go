package component

// Persistent entities survive a scene reload.
type Persistent struct {
	ID           string
	KeepOnReload bool
}

var PersistentComponent = NewComponent[Persistent]()
