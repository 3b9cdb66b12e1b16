package component

// ReloadRequest asks the persistence system to rebuild the current level
// from scratch. Any system may spawn a short-lived entity carrying it; all
// pending requests are consumed by a single reload.
type ReloadRequest struct {
	Reason string
}

var ReloadRequestComponent = NewComponent[ReloadRequest]()
