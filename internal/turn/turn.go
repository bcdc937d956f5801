// Package turn drives one bot's turn: cooldown check, YourTurn notification,
// one parsed command, dispatch into the push engine, and the resulting
// notification back to the bot.
package turn

import (
	"io"
	"log"
	"time"

	"github.com/tomz197/pushbots/internal/entity"
	"github.com/tomz197/pushbots/internal/metrics"
	"github.com/tomz197/pushbots/internal/protocol"
	"github.com/tomz197/pushbots/internal/push"
	"github.com/tomz197/pushbots/internal/world"
)

// Act runs one turn for e. If e is still on cooldown, it is decremented and
// the turn is skipped entirely (no notification, no command read).
func Act(a *world.Area, e entity.Entity) {
	if a.HasCooldown(e) {
		remaining := a.CooldownOf(e)
		a.DecrementCooldown(e)
		if remaining > 1 {
			// Still waiting after this tick.
			return
		}
		// remaining == 1: the cooldown clears on this very tick, so the
		// entity is Ready and acts now rather than on the next call.
	}

	out, ok := a.OutputOf(e)
	if !ok {
		return
	}
	if !notify(a, e, out, protocol.Notification{Kind: protocol.YourTurn}) {
		return
	}

	in, ok := a.InputOf(e)
	if !ok {
		return
	}
	cmd := protocol.ParseCommand(in)

	switch cmd.Kind {
	case protocol.LookAt:
		here, ok := a.PositionOf(e)
		if !ok {
			return
		}
		app := a.AppearanceAt(here.Add(cmd.Offset))
		notify(a, e, out, protocol.Notification{Kind: protocol.YouSee, Appearance: appearanceCode(app)})

	case protocol.Move:
		switch push.Go(a, e, cmd.Direction) {
		case push.Success:
			notify(a, e, out, protocol.Notification{Kind: protocol.Success})
		case push.TooHeavy:
			notify(a, e, out, protocol.Notification{Kind: protocol.TooHeavy})
		case push.DestroysEnterer:
			// remove() inside Go already sent YouDied.
		}

	case protocol.Drill:
		switch push.Drill(a, e, cmd.Direction) {
		case push.DrillSuccess:
			notify(a, e, out, protocol.Notification{Kind: protocol.Success})
		case push.DrillDestroysEnterer:
			// remove() inside Drill already sent YouDied.
		}

	case protocol.Malformed, protocol.End:
		a.Disconnect(e)
	}
}

// notify writes n to e's output, disconnecting e and reporting false on
// failure so callers can stop processing this turn.
func notify(a *world.Area, e entity.Entity, out io.Writer, n protocol.Notification) bool {
	if err := protocol.WriteNotification(out, n); err != nil {
		log.Printf("turn: notify %v failed for entity %d: %v", n.Kind, e, err)
		a.Disconnect(e)
		return false
	}
	return true
}

func appearanceCode(app world.Appearance) protocol.AppearanceCode {
	switch app {
	case world.Bot:
		return protocol.CodeBot
	case world.Block:
		return protocol.CodeBlock
	case world.Abyss:
		return protocol.CodeAbyss
	default:
		return protocol.CodeFloor
	}
}

// ActVec runs one turn pass over actors, in the given order. An actor
// removed partway through (squished, drilled into the abyss, disconnected)
// by an earlier actor's turn simply has no component left for its own Act
// call to operate on, and is skipped.
func ActVec(a *world.Area, actors []entity.Entity) {
	for _, e := range actors {
		Act(a, e)
	}
}

// ActAll runs repeated ActVec passes in ascending entity-handle order until
// at most one actor remains, sleeping delay between passes. It returns the
// actors present when the loop ended (the survivor, if any).
func ActAll(a *world.Area, delay time.Duration) []entity.Entity {
	for {
		actors := a.Actors()
		metrics.ActiveBots.Set(float64(len(actors)))
		if len(actors) <= 1 {
			return actors
		}
		ActVec(a, actors)
		if delay > 0 {
			time.Sleep(delay)
		}
	}
}
