package ecs

import "github.com/milk9111/focallock/ecs/component"

// ForEach calls fn for every live entity holding a component of kind. The
// entity list is snapshotted first so fn may add or remove components.
func ForEach[T any](w *World, kind component.ComponentKind[T], fn func(Entity, *T)) {
	s := w.store(kind.ID(), false)
	if s == nil {
		return
	}
	for _, e := range append([]Entity(nil), s.Entities()...) {
		if v, ok := Get(w, e, kind); ok {
			fn(e, v)
		}
	}
}

// ForEach2 visits entities holding both kinds.
func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	for _, e := range intersect(w, ka.ID(), kb.ID()) {
		a, okA := Get(w, e, ka)
		b, okB := Get(w, e, kb)
		if okA && okB {
			fn(e, a, b)
		}
	}
}

// ForEach3 visits entities holding all three kinds.
func ForEach3[A, B, C any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	for _, e := range intersect(w, ka.ID(), kb.ID(), kc.ID()) {
		a, okA := Get(w, e, ka)
		b, okB := Get(w, e, kb)
		c, okC := Get(w, e, kc)
		if okA && okB && okC {
			fn(e, a, b, c)
		}
	}
}

// First returns the first live entity holding kind.
func First[T any](w *World, kind component.ComponentKind[T]) (Entity, bool) {
	s := w.store(kind.ID(), false)
	for _, e := range s.Entities() {
		if IsAlive(w, e) {
			return e, true
		}
	}
	return 0, false
}

// intersect returns entities present in every listed store, iterating the
// smallest one.
func intersect(w *World, ids ...component.ComponentID) []Entity {
	sets := make([]*SparseSet, 0, len(ids))
	for _, id := range ids {
		s := w.store(id, false)
		if s == nil {
			return nil
		}
		sets = append(sets, s)
	}
	if len(sets) == 0 {
		return nil
	}
	smallest := sets[0]
	for _, s := range sets[1:] {
		if s.Len() < smallest.Len() {
			smallest = s
		}
	}
	out := make([]Entity, 0, smallest.Len())
	for _, e := range smallest.Entities() {
		all := true
		for _, s := range sets {
			if !s.Has(e) {
				all = false
				break
			}
		}
		if all {
			out = append(out, e)
		}
	}
	return out
}
