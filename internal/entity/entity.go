// Package entity provides the opaque entity handle and the generic
// per-component store the world is assembled from.
package entity

import "sync/atomic"

// Entity is an opaque, totally ordered handle. It carries no data of its
// own; all state lives in component stores keyed by Entity.
type Entity uint64

// Factory mints fresh entities, each strictly greater than any previously
// returned handle so ascending order matches creation order.
type Factory struct {
	next atomic.Uint64
}

// New returns a handle never equal to any previously returned one.
func (f *Factory) New() Entity {
	return Entity(f.next.Add(1))
}
