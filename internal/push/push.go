// Package push implements the chained push/drill resolution algorithm: the
// recursive decision of what happens when something tries to enter a
// neighboring cell, given everything positioned behind it.
package push

import (
	"github.com/tomz197/pushbots/internal/config"
	"github.com/tomz197/pushbots/internal/entity"
	"github.com/tomz197/pushbots/internal/metrics"
	"github.com/tomz197/pushbots/internal/spatial"
	"github.com/tomz197/pushbots/internal/world"
)

// Result is the outcome of attempting to enter a cell.
type Result int

const (
	Success Result = iota
	TooHeavy
	DestroysEnterer
)

func (r Result) String() string {
	switch r {
	case Success:
		return "Success"
	case TooHeavy:
		return "TooHeavy"
	case DestroysEnterer:
		return "DestroysEnterer"
	default:
		return "Invalid"
	}
}

const moveCooldown = config.MoveCooldownTicks

// Push asks what happens to the entity that enters target moving in
// direction, accounting for the chain of entities behind it. chain starts
// at 0 for the entity actually attempting to move.
func Push(a *world.Area, target spatial.Position, direction spatial.Direction, chain int) Result {
	e, ok := a.EntityAt(target)
	if !ok {
		return Success
	}

	destination := target.Add(direction.Offset())
	p, ok := a.PushableOf(e)
	if !ok {
		// No pushable component means immovable: the contract treats this
		// as too heavy to budge, even though it should never occur.
		return TooHeavy
	}

	switch p {
	case world.DestroysEnterer:
		return DestroysEnterer

	case world.Squishable:
		if chain > 1 {
			// Two deep in the chain: this bot cannot be pushed, so it acts
			// as the wall the bot in front of it is squished against.
			return TooHeavy
		}
		switch Push(a, destination, direction, chain+1) {
		case Success:
			a.Move(e, destination)
			return Success
		case TooHeavy:
			a.Remove(e) // squished between the enterer and the wall behind it
			metrics.Squishes.Inc()
			return Success
		case DestroysEnterer:
			a.Remove(e) // pushed into the abyss behind it
			metrics.AbyssDeaths.Inc()
			return Success
		default:
			return TooHeavy
		}

	case world.Heavy:
		if chain > 0 {
			// Only one block may be in the chain at a time.
			return TooHeavy
		}
		switch Push(a, destination, direction, chain+1) {
		case Success:
			a.Move(e, destination)
			return Success
		case TooHeavy:
			return TooHeavy
		case DestroysEnterer:
			a.Remove(e) // the block itself falls into the abyss
			metrics.AbyssDeaths.Inc()
			return Success
		default:
			return TooHeavy
		}

	default:
		return TooHeavy
	}
}

// Go attempts to move e one cell in direction, resolving the push chain
// ahead of it.
func Go(a *world.Area, e entity.Entity, direction spatial.Direction) Result {
	here, ok := a.PositionOf(e)
	if !ok {
		// Invariant violation: an actor with no position. Release build
		// policy is a safe no-op.
		return TooHeavy
	}

	dest := here.Add(direction.Offset())
	result := Push(a, dest, direction, 0)
	switch result {
	case Success:
		a.Move(e, dest)
		a.SetCooldown(e, moveCooldown)
	case TooHeavy:
		a.SetCooldown(e, moveCooldown)
	case DestroysEnterer:
		a.Remove(e)
		metrics.AbyssDeaths.Inc()
	}
	metrics.PushResolutions.WithLabelValues("move", result.String()).Inc()
	return result
}
