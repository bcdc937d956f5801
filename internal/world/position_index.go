package world

import (
	"github.com/tomz197/pushbots/internal/entity"
	"github.com/tomz197/pushbots/internal/spatial"
)

// positionIndex maintains the Position component store plus its reverse
// index (coordinate -> entity). The reverse index holds one entity per
// coordinate, but Set does not check that the target cell is free: moving
// onto an occupied cell points the reverse index at the newcomer and leaves
// the previous occupant's position record in place, so invariant P1 (no two
// distinct entities at the same coordinate) then no longer holds.
type positionIndex struct {
	store *entity.Store[spatial.Position]
	byPos map[spatial.Position]entity.Entity
}

func newPositionIndex() *positionIndex {
	return &positionIndex{
		store: entity.NewStore[spatial.Position](),
		byPos: make(map[spatial.Position]entity.Entity),
	}
}

// Set attaches or moves e to pos. If e already occupied a different cell,
// that reverse mapping is cleared first so it is never left dangling.
func (idx *positionIndex) Set(e entity.Entity, pos spatial.Position) {
	if old, ok := idx.store.Of(e); ok {
		delete(idx.byPos, old)
	}
	idx.store.Attach(e, pos)
	idx.byPos[pos] = e
}

// Of returns e's current position, if any.
func (idx *positionIndex) Of(e entity.Entity) (spatial.Position, bool) {
	return idx.store.Of(e)
}

// At returns the entity positioned at pos, if any.
func (idx *positionIndex) At(pos spatial.Position) (entity.Entity, bool) {
	e, ok := idx.byPos[pos]
	return e, ok
}

// Detach removes e's position entirely.
func (idx *positionIndex) Detach(e entity.Entity) {
	if pos, ok := idx.store.Detach(e); ok {
		delete(idx.byPos, pos)
	}
}

// Has reports whether e currently has a position.
func (idx *positionIndex) Has(e entity.Entity) bool {
	return idx.store.Has(e)
}
