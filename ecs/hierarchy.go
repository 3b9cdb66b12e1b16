package ecs

import "github.com/milk9111/logicgates/ecs/component"

// SetParent links child under parent.
func SetParent(w *World, child, parent Entity) error {
	return Add(w, child, component.ParentComponent.Kind(), &component.Parent{Entity: uint64(parent)})
}

// ParentOf returns e's live parent.
func ParentOf(w *World, e Entity) (Entity, bool) {
	p, ok := Get(w, e, component.ParentComponent.Kind())
	if !ok {
		return 0, false
	}
	parent := Entity(p.Entity)
	if !w.IsAlive(parent) {
		return 0, false
	}
	return parent, true
}

// Children returns the direct children of e in id order.
func Children(w *World, e Entity) []Entity {
	var out []Entity
	ForEach(w, component.ParentComponent.Kind(), func(child Entity, p *component.Parent) {
		if Entity(p.Entity) == e {
			out = append(out, child)
		}
	})
	return out
}

// Descendants returns every entity below e, breadth first.
func Descendants(w *World, e Entity) []Entity {
	var out []Entity
	queue := Children(w, e)
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		out = append(out, next)
		queue = append(queue, Children(w, next)...)
	}
	return out
}

// IsDescendantOf reports whether e is ancestor itself or lies below it.
func IsDescendantOf(w *World, e, ancestor Entity) bool {
	if !ancestor.Valid() {
		return false
	}
	for depth := 0; w.IsAlive(e) && depth < maxHierarchyDepth; depth++ {
		if e == ancestor {
			return true
		}
		parent, ok := ParentOf(w, e)
		if !ok {
			return false
		}
		e = parent
	}
	return false
}

// IsActive reports whether e and all of its ancestors are active.
func IsActive(w *World, e Entity) bool {
	for depth := 0; depth < maxHierarchyDepth; depth++ {
		if !w.IsAlive(e) || Has(w, e, component.InactiveComponent.Kind()) {
			return false
		}
		parent, ok := ParentOf(w, e)
		if !ok {
			return true
		}
		e = parent
	}
	return false
}

// SetActive toggles e's own active flag. Descendants follow through IsActive.
func SetActive(w *World, e Entity, active bool) {
	if active {
		Remove(w, e, component.InactiveComponent.Kind())
		return
	}
	_ = Add(w, e, component.InactiveComponent.Kind(), &component.Inactive{})
}

// DestroyTree destroys e and everything below it.
func DestroyTree(w *World, e Entity) bool {
	if !w.IsAlive(e) {
		return false
	}
	for _, d := range Descendants(w, e) {
		w.DestroyEntity(d)
	}
	return w.DestroyEntity(e)
}

const maxHierarchyDepth = 64
