package push

import (
	"github.com/tomz197/pushbots/internal/config"
	"github.com/tomz197/pushbots/internal/entity"
	"github.com/tomz197/pushbots/internal/metrics"
	"github.com/tomz197/pushbots/internal/spatial"
	"github.com/tomz197/pushbots/internal/world"
)

// DrillResult is the outcome of a Drill command.
type DrillResult int

const (
	DrillSuccess DrillResult = iota
	DrillDestroysEnterer
)

func (r DrillResult) String() string {
	switch r {
	case DrillSuccess:
		return "Success"
	case DrillDestroysEnterer:
		return "DestroysEnterer"
	default:
		return "Invalid"
	}
}

const drillCooldown = config.DrillCooldownTicks

// Drill examines the neighbor cell in direction: an empty cell or a
// Squishable/Heavy occupant is destroyed (if present) and e moves in; a
// DestroysEnterer occupant (an abyss) kills e instead. Drilling into an
// abyss is intended behavior, not a special case to guard against.
func Drill(a *world.Area, e entity.Entity, direction spatial.Direction) DrillResult {
	here, ok := a.PositionOf(e)
	if !ok {
		return DrillSuccess
	}
	neighbor := here.Add(direction.Offset())
	result := drill(a, e, neighbor)
	metrics.PushResolutions.WithLabelValues("drill", result.String()).Inc()
	return result
}

func drill(a *world.Area, e entity.Entity, neighbor spatial.Position) DrillResult {
	target, ok := a.EntityAt(neighbor)
	if !ok {
		a.Move(e, neighbor)
		a.SetCooldown(e, drillCooldown)
		return DrillSuccess
	}

	p, ok := a.PushableOf(target)
	if !ok {
		// No-pushable occupant: treated as destructible (should not occur
		// given every positioned entity carries a Pushable per P4).
		a.Remove(target)
		a.Move(e, neighbor)
		a.SetCooldown(e, drillCooldown)
		return DrillSuccess
	}

	switch p {
	case world.DestroysEnterer:
		a.Remove(e)
		metrics.AbyssDeaths.Inc()
		return DrillDestroysEnterer
	default: // Squishable or Heavy
		a.Remove(target)
		a.Move(e, neighbor)
		a.SetCooldown(e, drillCooldown)
		return DrillSuccess
	}
}
