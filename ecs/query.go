package ecs

import "sort"

// SortEntities orders ents by entity id, ignoring generations.
func SortEntities(ents []Entity) {
	sort.Slice(ents, func(i, j int) bool { return ents[i].id() < ents[j].id() })
}

// Before reports whether a has a lower entity id than b.
func Before(a, b Entity) bool {
	return a.id() < b.id()
}
