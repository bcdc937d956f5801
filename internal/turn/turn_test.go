package turn

import (
	"bytes"
	"testing"
	"time"

	"github.com/tomz197/pushbots/internal/entity"
	"github.com/tomz197/pushbots/internal/spatial"
	"github.com/tomz197/pushbots/internal/world"
)

func newActor(a *world.Area, pos spatial.Position, input []byte) (entity.Entity, *bytes.Buffer) {
	e := a.MakeBot(pos)
	var out bytes.Buffer
	a.Bind(e, world.Participant{Input: bytes.NewReader(input), Output: &out})
	return e, &out
}

func TestActEmptyMapMove(t *testing.T) {
	// S1: bot at (0,0), Move East succeeds.
	a := world.NewArea()
	bot, out := newActor(a, spatial.Position{X: 0, Y: 0}, []byte{2, 1})

	Act(a, bot)

	pos, _ := a.PositionOf(bot)
	if pos != (spatial.Position{X: 1, Y: 0}) {
		t.Fatalf("bot position = %v, want (1,0)", pos)
	}
	want := []byte{1, 3} // YourTurn, Success
	if !bytes.Equal(out.Bytes(), want) {
		t.Fatalf("output = %v, want %v", out.Bytes(), want)
	}
}

func TestActMovePushesBlockThenHitsWall(t *testing.T) {
	// S2: bot pushes one block into a second block; both immovable.
	a := world.NewArea()
	bot, out := newActor(a, spatial.Position{X: 0, Y: 0}, []byte{2, 1})
	block1 := a.MakeBlock(spatial.Position{X: 1, Y: 0})
	block2 := a.MakeBlock(spatial.Position{X: 2, Y: 0})

	Act(a, bot)

	if pos, _ := a.PositionOf(bot); pos != (spatial.Position{X: 0, Y: 0}) {
		t.Fatalf("bot should not have moved, got %v", pos)
	}
	if pos, _ := a.PositionOf(block1); pos != (spatial.Position{X: 1, Y: 0}) {
		t.Fatalf("block1 should be unchanged, got %v", pos)
	}
	if pos, _ := a.PositionOf(block2); pos != (spatial.Position{X: 2, Y: 0}) {
		t.Fatalf("block2 should be unchanged, got %v", pos)
	}
	want := []byte{1, 4} // YourTurn, TooHeavy
	if !bytes.Equal(out.Bytes(), want) {
		t.Fatalf("output = %v, want %v", out.Bytes(), want)
	}
}

func TestActSquishesOpposingBotAgainstBlock(t *testing.T) {
	// S3: one ActVec([A,B]) pass. botB is squished during botA's turn and is
	// already detached by the time its own Act would run, so it never gets
	// a YourTurn of its own — only the YouDied notify() fired from inside
	// botA's push resolution.
	a := world.NewArea()
	botA, outA := newActor(a, spatial.Position{X: 0, Y: 0}, []byte{2, 1})
	botB, outB := newActor(a, spatial.Position{X: 1, Y: 0}, nil)
	a.MakeBlock(spatial.Position{X: 2, Y: 0})

	ActVec(a, []entity.Entity{botA, botB})

	if pos, _ := a.PositionOf(botA); pos != (spatial.Position{X: 1, Y: 0}) {
		t.Fatalf("botA position = %v, want (1,0)", pos)
	}
	wantA := []byte{1, 3} // YourTurn, Success
	if !bytes.Equal(outA.Bytes(), wantA) {
		t.Fatalf("botA output = %v, want %v", outA.Bytes(), wantA)
	}
	wantB := []byte{2} // YouDied only; botB was removed before its own Act ran
	if !bytes.Equal(outB.Bytes(), wantB) {
		t.Fatalf("botB output = %v, want %v", outB.Bytes(), wantB)
	}
	if a.HasInput(botB) {
		t.Fatal("botB should have been removed")
	}
}

func TestActWalksIntoAbyss(t *testing.T) {
	// S4: Move North into an abyss.
	a := world.NewArea()
	bot, out := newActor(a, spatial.Position{X: 0, Y: 0}, []byte{2, 0})
	a.MakeAbyss(spatial.Position{X: 0, Y: -1})

	Act(a, bot)

	if a.HasInput(bot) {
		t.Fatal("bot should have been removed")
	}
	want := []byte{1, 2} // YourTurn, YouDied
	if !bytes.Equal(out.Bytes(), want) {
		t.Fatalf("output = %v, want %v", out.Bytes(), want)
	}
}

func TestActLookAtFourDirections(t *testing.T) {
	// S5.
	cases := []struct {
		input []byte
		want  []byte
	}{
		{[]byte{1, 0, 0xFF}, []byte{1, 6, 0}}, // dy=-1: floor
		{[]byte{1, 0, 0}, []byte{1, 6, 1}},    // self: bot
		{[]byte{1, 0xFF, 0}, []byte{1, 6, 2}}, // dx=-1: block
		{[]byte{1, 0, 1}, []byte{1, 6, 3}},    // dy=1: abyss
	}

	for _, c := range cases {
		a := world.NewArea()
		bot, out := newActor(a, spatial.Position{X: 0, Y: 0}, c.input)
		a.MakeAbyss(spatial.Position{X: 0, Y: 1})
		a.MakeBlock(spatial.Position{X: -1, Y: 0})
		a.MakeBlock(spatial.Position{X: -2, Y: 0})

		Act(a, bot)

		if !bytes.Equal(out.Bytes(), c.want) {
			t.Errorf("input %v: output = %v, want %v", c.input, out.Bytes(), c.want)
		}
	}
}

func TestActCooldownAfterMove(t *testing.T) {
	// S6: bot advances at calls 1, 4, 7; two Waiting ticks between each.
	a := world.NewArea()
	bot, _ := newActor(a, spatial.Position{X: 0, Y: 0}, []byte{2, 1, 2, 1, 2, 1})

	positions := make([]spatial.Position, 0, 9)
	for i := 0; i < 9; i++ {
		Act(a, bot)
		pos, _ := a.PositionOf(bot)
		positions = append(positions, pos)
	}

	want := []spatial.Position{
		{X: 1, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 0},
		{X: 2, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 0},
		{X: 3, Y: 0}, {X: 3, Y: 0}, {X: 3, Y: 0},
	}
	for i := range want {
		if positions[i] != want[i] {
			t.Fatalf("after call %d: position = %v, want %v (full trace %v)", i+1, positions[i], want[i], positions)
		}
	}
}

func TestActDisconnectsOnMalformedCommand(t *testing.T) {
	a := world.NewArea()
	bot, out := newActor(a, spatial.Position{X: 0, Y: 0}, []byte{9})

	Act(a, bot)

	if a.HasInput(bot) {
		t.Fatal("bot should have been disconnected")
	}
	// Only YourTurn should have been written; no YouDied on a disconnect.
	want := []byte{1}
	if !bytes.Equal(out.Bytes(), want) {
		t.Fatalf("output = %v, want %v", out.Bytes(), want)
	}
}

func TestActDisconnectsOnEndOfStream(t *testing.T) {
	a := world.NewArea()
	bot, out := newActor(a, spatial.Position{X: 0, Y: 0}, nil)

	Act(a, bot)

	if a.HasInput(bot) {
		t.Fatal("bot should have been disconnected on EOF")
	}
	want := []byte{1}
	if !bytes.Equal(out.Bytes(), want) {
		t.Fatalf("output = %v, want %v", out.Bytes(), want)
	}
}

func TestActAllStopsAtOneSurvivor(t *testing.T) {
	a := world.NewArea()
	newActor(a, spatial.Position{X: 0, Y: 0}, nil)
	newActor(a, spatial.Position{X: 5, Y: 5}, nil)

	survivors := ActAll(a, 0)
	if len(survivors) > 1 {
		t.Fatalf("ActAll should stop once <=1 actor remains, got %d", len(survivors))
	}
}

func TestActAllZeroDelayReturnsPromptly(t *testing.T) {
	a := world.NewArea()
	newActor(a, spatial.Position{X: 0, Y: 0}, nil)
	newActor(a, spatial.Position{X: 5, Y: 5}, nil)

	start := time.Now()
	ActAll(a, 0)
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("ActAll with zero delay took too long: %v", elapsed)
	}
}
