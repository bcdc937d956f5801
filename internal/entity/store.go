package entity

import "golang.org/x/exp/slices"

// Store is a sparse mapping from Entity to a component value of type C.
// Each component kind in the world gets its own Store; stores never share
// state, so the same entity may appear in any subset of them.
type Store[C any] struct {
	values   map[Entity]C
	entities []Entity // dense, kept sorted for stable iteration
}

// NewStore creates an empty component store.
func NewStore[C any]() *Store[C] {
	return &Store[C]{values: make(map[Entity]C)}
}

// Attach inserts or overwrites the component value for e.
func (s *Store[C]) Attach(e Entity, c C) {
	if _, exists := s.values[e]; !exists {
		idx, found := slices.BinarySearch(s.entities, e)
		if !found {
			s.entities = slices.Insert(s.entities, idx, e)
		}
	}
	s.values[e] = c
}

// Detach removes e's component, if any, and returns the prior value.
func (s *Store[C]) Detach(e Entity) (prior C, ok bool) {
	prior, ok = s.values[e]
	if !ok {
		return prior, false
	}
	delete(s.values, e)
	if idx, found := slices.BinarySearch(s.entities, e); found {
		s.entities = slices.Delete(s.entities, idx, idx+1)
	}
	return prior, true
}

// Of returns e's component value by copy.
func (s *Store[C]) Of(e Entity) (c C, ok bool) {
	c, ok = s.values[e]
	return c, ok
}

// Has reports whether e has a component in this store.
func (s *Store[C]) Has(e Entity) bool {
	_, ok := s.values[e]
	return ok
}

// Mutate reads e's current component (zero value if absent), applies fn,
// and writes the result back. It is the store's equivalent of a mutable
// reference lookup, since Go maps cannot hand out safe pointers to values.
func (s *Store[C]) Mutate(e Entity, fn func(c *C)) {
	c := s.values[e]
	fn(&c)
	s.Attach(e, c)
}

// Entities returns every entity present in the store, in ascending order.
func (s *Store[C]) Entities() []Entity {
	out := make([]Entity, len(s.entities))
	copy(out, s.entities)
	return out
}

// Len returns the number of entities currently present.
func (s *Store[C]) Len() int {
	return len(s.entities)
}
