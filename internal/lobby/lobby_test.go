package lobby

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tomz197/pushbots/internal/world"
)

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("write failed")
}

func TestAnnounceNewRoundDropsFailingSink(t *testing.T) {
	l := NewLobby(0, 4)
	var okOut bytes.Buffer
	roster := []world.Participant{
		{Input: bytes.NewReader(nil), Output: &okOut},
		{Input: bytes.NewReader(nil), Output: failingWriter{}},
	}

	survivors := l.announceNewRound(roster)
	if len(survivors) != 1 {
		t.Fatalf("survivors = %d, want 1", len(survivors))
	}
	if !bytes.Equal(okOut.Bytes(), []byte{5}) {
		t.Fatalf("surviving participant output = %v, want NewRound [5]", okOut.Bytes())
	}
}

func TestAccumulateBlocksUntilTwo(t *testing.T) {
	l := NewLobby(0, 4)
	var out1, out2 bytes.Buffer
	l.Submit(world.Participant{Input: bytes.NewReader(nil), Output: &out1})

	done := make(chan []world.Participant, 1)
	go func() {
		roster, ok := l.accumulate(context.Background(), nil)
		if !ok {
			done <- nil
			return
		}
		done <- roster
	}()

	select {
	case <-done:
		t.Fatal("accumulate returned before a second participant arrived")
	case <-time.After(50 * time.Millisecond):
	}

	l.Submit(world.Participant{Input: bytes.NewReader(nil), Output: &out2})

	select {
	case roster := <-done:
		if len(roster) != 2 {
			t.Fatalf("roster len = %d, want 2", len(roster))
		}
	case <-time.After(time.Second):
		t.Fatal("accumulate never returned after the second participant arrived")
	}
}

func TestAccumulateReturnsFalseWhenClosed(t *testing.T) {
	l := NewLobby(0, 4)
	l.Close()

	_, ok := l.accumulate(context.Background(), nil)
	if ok {
		t.Fatal("accumulate should report false once the queue is closed with nothing buffered")
	}
}

func TestRunEndsRoundWhenBothParticipantsDisconnect(t *testing.T) {
	l := NewLobby(0, 4)
	var out1, out2 bytes.Buffer
	l.Submit(world.Participant{Input: bytes.NewReader(nil), Output: &out1})
	l.Submit(world.Participant{Input: bytes.NewReader(nil), Output: &out2})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	runDone := make(chan struct{})
	go func() {
		l.Run(ctx)
		close(runDone)
	}()

	select {
	case <-runDone:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after both participants disconnected")
	}

	for _, out := range []*bytes.Buffer{&out1, &out2} {
		want := []byte{5, 1} // NewRound, YourTurn (then disconnect on End-of-stream)
		if !bytes.Equal(out.Bytes(), want) {
			t.Errorf("output = %v, want %v", out.Bytes(), want)
		}
	}
}
