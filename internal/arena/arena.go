// Package arena generates a fresh Area for a round: an interior square
// scattered with obstacles, framed on every side by a ring of abyss.
package arena

import (
	"math/rand"

	"github.com/tomz197/pushbots/internal/config"
	"github.com/tomz197/pushbots/internal/spatial"
	"github.com/tomz197/pushbots/internal/world"
)

// ObstacleBlocksOnly fixes the interior obstacle choice to Block only. The
// source generator drew its obstacle kind from a range call that always
// returned its lower bound, so abysses were never placed in the interior in
// practice — only at the frame. This constant names that outcome as a
// deliberate policy rather than leaving it as an accident of a broken PRNG
// call.
const ObstacleBlocksOnly = true

// interiorMargin is added to the participant count to size the interior
// square's side.
const interiorMargin = config.InteriorMargin

// Generate builds an Area sized for len(roster) participants: an interior
// square of side 10+N holding the N bots plus a random share of obstacles,
// surrounded by a one-cell-thick abyss frame. Each roster entry is bound to
// a freshly placed bot entity.
func Generate(roster []world.Participant) *world.Area {
	a := world.NewArea()
	n := len(roster)
	side := interiorMargin + n

	interior := spatial.NewRectangle(spatial.Position{X: 0, Y: 0}, spatial.Offset{X: side, Y: side})

	positions := make([]spatial.Position, 0, interior.Area())
	for pos := range interior.Positions() {
		positions = append(positions, pos)
	}
	rand.Shuffle(len(positions), func(i, j int) {
		positions[i], positions[j] = positions[j], positions[i]
	})

	limit := obstacleLimit(interior.Area(), n, len(positions))

	for i, p := range roster {
		e := a.MakeBot(positions[i])
		a.Bind(e, p)
	}
	for i := n; i < limit; i++ {
		placeObstacle(a, positions[i])
	}

	placeFrame(a, interior)
	return a
}

// obstacleLimit draws how many interior cells (bots included) are occupied,
// in [area/4, area*7/8], clamped to fit both the roster and the available
// cells.
func obstacleLimit(area, n, available int) int {
	low, high := area/4, area*7/8
	limit := low
	if high > low {
		limit = low + rand.Intn(high-low+1)
	}
	if limit < n {
		limit = n
	}
	if limit > available {
		limit = available
	}
	return limit
}

func placeObstacle(a *world.Area, pos spatial.Position) {
	if !ObstacleBlocksOnly && rand.Intn(2) == 1 {
		a.MakeAbyss(pos)
		return
	}
	a.MakeBlock(pos)
}

// placeFrame surrounds interior with a one-cell-thick ring of abyss.
func placeFrame(a *world.Area, interior spatial.Rectangle) {
	frame := spatial.NewRectangle(
		spatial.Position{X: interior.Origin.X - 1, Y: interior.Origin.Y - 1},
		spatial.Offset{X: interior.Size.X + 2, Y: interior.Size.Y + 2},
	)
	for pos := range frame.Positions() {
		if interior.Contains(pos) {
			continue
		}
		a.MakeAbyss(pos)
	}
}
