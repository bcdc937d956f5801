// Package lobby accumulates Participants and runs rounds one at a time on a
// single background worker, recycling survivors and disconnected streams
// back into the queue between rounds.
package lobby

import (
	"context"
	"log"
	"time"

	"github.com/tomz197/pushbots/internal/arena"
	"github.com/tomz197/pushbots/internal/metrics"
	"github.com/tomz197/pushbots/internal/protocol"
	"github.com/tomz197/pushbots/internal/turn"
	"github.com/tomz197/pushbots/internal/world"
)

// Lobby is the single background worker that turns a stream of incoming
// Participants into a sequence of rounds.
type Lobby struct {
	incoming chan world.Participant
	delay    time.Duration
}

// NewLobby creates a Lobby. delay is the turn-pass throttle handed to
// turn.ActAll; queueCapacity bounds how many participants may be waiting in
// Submit before it blocks.
func NewLobby(delay time.Duration, queueCapacity int) *Lobby {
	return &Lobby{
		incoming: make(chan world.Participant, queueCapacity),
		delay:    delay,
	}
}

// Submit enqueues a participant for the next round it can join. Safe to call
// concurrently with Run from the stream acceptor.
func (l *Lobby) Submit(p world.Participant) {
	l.incoming <- p
	metrics.BotsJoined.Inc()
}

// Close stops accepting new participants. Run's worker exits once it next
// observes the queue closed (any single participant still accumulating at
// that point is dropped along with the rest of the shutdown).
func (l *Lobby) Close() {
	close(l.incoming)
}

// Run drives the accumulate → announce → execute loop until the incoming
// queue is closed, ctx is cancelled, or a NewRound announcement leaves no
// participant. Blocks; callers typically run it in its own goroutine.
func (l *Lobby) Run(ctx context.Context) {
	var carry []world.Participant
	for {
		roster, ok := l.accumulate(ctx, carry)
		if !ok {
			return
		}

		survivors := l.announceNewRound(roster)
		switch len(survivors) {
		case 0:
			return
		case 1:
			carry = survivors
		default:
			carry = l.executeRound(survivors)
		}
	}
}

// accumulate blocks until carry plus newly-received participants reaches at
// least 2, then does a final non-blocking drain to pick up anyone else
// already waiting.
func (l *Lobby) accumulate(ctx context.Context, carry []world.Participant) ([]world.Participant, bool) {
	roster := carry
	for len(roster) < 2 {
		select {
		case <-ctx.Done():
			return nil, false
		case p, ok := <-l.incoming:
			if !ok {
				return nil, false
			}
			roster = append(roster, p)
		}
	}

	for {
		select {
		case p, ok := <-l.incoming:
			if !ok {
				return roster, true
			}
			roster = append(roster, p)
		default:
			return roster, true
		}
	}
}

// announceNewRound sends NewRound to every accumulated participant,
// dropping (with a log) any whose sink fails to write. The returned slice
// reuses roster's backing array.
func (l *Lobby) announceNewRound(roster []world.Participant) []world.Participant {
	survivors := roster[:0]
	for _, p := range roster {
		if err := protocol.WriteNotification(p.Output, protocol.Notification{Kind: protocol.NewRound}); err != nil {
			log.Printf("lobby: dropping participant, NewRound write failed: %v", err)
			continue
		}
		survivors = append(survivors, p)
	}
	return survivors
}

// executeRound generates an arena for roster, runs it to completion, and
// returns every (input, output) pair that must flow back into the lobby.
func (l *Lobby) executeRound(roster []world.Participant) []world.Participant {
	log.Printf("lobby: starting round with %d participants", len(roster))
	metrics.RoundsStarted.Inc()
	a := arena.Generate(roster)
	turn.ActAll(a, l.delay)
	next := a.DrainParticipants()
	log.Printf("lobby: round ended, %d participants recycled", len(next))
	return next
}
