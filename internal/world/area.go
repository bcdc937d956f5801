package world

import (
	"io"

	"github.com/tomz197/pushbots/internal/entity"
	"github.com/tomz197/pushbots/internal/metrics"
	"github.com/tomz197/pushbots/internal/protocol"
	"github.com/tomz197/pushbots/internal/spatial"
)

// Area is the composite world for one round: it owns every component store
// and the entity factory, plus the participants waiting to be handed back
// to the lobby once the round ends.
type Area struct {
	factory entity.Factory

	positions   *positionIndex
	appearances *entity.Store[Appearance]
	pushables   *entity.Store[Pushable]
	inputs      *entity.Store[io.Reader]
	outputs     *entity.Store[io.Writer]
	cooldowns   *entity.Store[int]

	waiting []Participant
}

// NewArea creates an empty world.
func NewArea() *Area {
	return &Area{
		positions:   newPositionIndex(),
		appearances: entity.NewStore[Appearance](),
		pushables:   entity.NewStore[Pushable](),
		inputs:      entity.NewStore[io.Reader](),
		outputs:     entity.NewStore[io.Writer](),
		cooldowns:   entity.NewStore[int](),
	}
}

// MakeBot creates a Squishable Bot entity at pos with no streams bound yet.
// Bind attaches the participant's streams once one is assigned to it.
func (a *Area) MakeBot(pos spatial.Position) entity.Entity {
	e := a.factory.New()
	a.positions.Set(e, pos)
	a.appearances.Attach(e, Bot)
	a.pushables.Attach(e, Squishable)
	return e
}

// MakeBlock creates a Heavy Block entity at pos.
func (a *Area) MakeBlock(pos spatial.Position) entity.Entity {
	e := a.factory.New()
	a.positions.Set(e, pos)
	a.appearances.Attach(e, Block)
	a.pushables.Attach(e, Heavy)
	return e
}

// MakeAbyss creates a DestroysEnterer Abyss entity at pos.
func (a *Area) MakeAbyss(pos spatial.Position) entity.Entity {
	e := a.factory.New()
	a.positions.Set(e, pos)
	a.appearances.Attach(e, Abyss)
	a.pushables.Attach(e, DestroysEnterer)
	return e
}

// Bind attaches a participant's streams to an existing bot entity.
func (a *Area) Bind(e entity.Entity, p Participant) {
	a.inputs.Attach(e, p.Input)
	a.outputs.Attach(e, p.Output)
}

// PositionOf returns e's current position.
func (a *Area) PositionOf(e entity.Entity) (spatial.Position, bool) {
	return a.positions.Of(e)
}

// EntityAt returns the entity positioned at pos, if any.
func (a *Area) EntityAt(pos spatial.Position) (entity.Entity, bool) {
	return a.positions.At(pos)
}

// AppearanceOf returns e's Appearance.
func (a *Area) AppearanceOf(e entity.Entity) (Appearance, bool) {
	return a.appearances.Of(e)
}

// AppearanceAt returns Floor if no positioned entity occupies pos, else that
// entity's Appearance (defaulting to Floor if somehow absent).
func (a *Area) AppearanceAt(pos spatial.Position) Appearance {
	e, ok := a.positions.At(pos)
	if !ok {
		return Floor
	}
	app, ok := a.appearances.Of(e)
	if !ok {
		return Floor
	}
	return app
}

// PushableOf returns e's Pushable, and false if e is immovable (no entry).
func (a *Area) PushableOf(e entity.Entity) (Pushable, bool) {
	return a.pushables.Of(e)
}

// Move relocates e's position without any push resolution. Callers
// (internal/push) are responsible for resolving the chain first.
func (a *Area) Move(e entity.Entity, pos spatial.Position) {
	a.positions.Set(e, pos)
}

// InputOf returns e's input stream.
func (a *Area) InputOf(e entity.Entity) (io.Reader, bool) {
	return a.inputs.Of(e)
}

// OutputOf returns e's output stream.
func (a *Area) OutputOf(e entity.Entity) (io.Writer, bool) {
	return a.outputs.Of(e)
}

// HasInput reports whether e currently holds an Input component (i.e. is an
// actor for this round).
func (a *Area) HasInput(e entity.Entity) bool {
	return a.inputs.Has(e)
}

// Actors returns every entity holding an Input, in ascending (stable)
// handle order.
func (a *Area) Actors() []entity.Entity {
	return a.inputs.Entities()
}

// CooldownOf returns e's remaining cooldown ticks, or 0 if absent.
func (a *Area) CooldownOf(e entity.Entity) int {
	n, _ := a.cooldowns.Of(e)
	return n
}

// SetCooldown sets e's remaining cooldown ticks. A value <= 0 clears it.
func (a *Area) SetCooldown(e entity.Entity, ticks int) {
	if ticks <= 0 {
		a.cooldowns.Detach(e)
		return
	}
	a.cooldowns.Attach(e, ticks)
}

// DecrementCooldown reduces e's remaining cooldown by one tick, clearing it
// once it reaches zero.
func (a *Area) DecrementCooldown(e entity.Entity) {
	n, ok := a.cooldowns.Of(e)
	if !ok {
		return
	}
	if n <= 1 {
		a.cooldowns.Detach(e)
		return
	}
	a.cooldowns.Attach(e, n-1)
}

// HasCooldown reports whether e currently has a cooldown entry.
func (a *Area) HasCooldown(e entity.Entity) bool {
	return a.cooldowns.Has(e)
}

// Remove destroys e in-round: sends YouDied best-effort, moves its streams
// into participants-in-waiting for the next round, then detaches every
// component. If e has no Output (e.g. a block or abyss), no notification is
// sent.
func (a *Area) Remove(e entity.Entity) {
	if out, ok := a.outputs.Of(e); ok {
		_ = protocol.WriteNotification(out, protocol.Notification{Kind: protocol.YouDied})
	}
	a.recycle(e)
	a.detachAll(e)
}

// Disconnect detaches every component for e without recycling its streams:
// used when the stream itself is the failure (malformed command, EOF, or a
// write error), so there is nothing usable to hand back to the lobby.
func (a *Area) Disconnect(e entity.Entity) {
	a.detachAll(e)
	metrics.Disconnects.Inc()
}

func (a *Area) recycle(e entity.Entity) {
	in, hasIn := a.inputs.Of(e)
	out, hasOut := a.outputs.Of(e)
	if hasIn && hasOut {
		a.waiting = append(a.waiting, Participant{Input: in, Output: out})
	}
}

func (a *Area) detachAll(e entity.Entity) {
	a.positions.Detach(e)
	a.appearances.Detach(e)
	a.pushables.Detach(e)
	a.inputs.Detach(e)
	a.outputs.Detach(e)
	a.cooldowns.Detach(e)
}

// DrainParticipants collects every remaining bound (input, output) pair
// plus everything already waiting, clearing both, and returns the combined
// list for the lobby to recycle into the next round.
func (a *Area) DrainParticipants() []Participant {
	out := make([]Participant, 0, len(a.waiting)+a.inputs.Len())
	out = append(out, a.waiting...)
	a.waiting = nil

	for _, e := range a.inputs.Entities() {
		in, _ := a.inputs.Of(e)
		o, ok := a.outputs.Of(e)
		if !ok {
			continue
		}
		out = append(out, Participant{Input: in, Output: o})
	}
	return out
}
