package protocol

import (
	"io"

	"github.com/tomz197/pushbots/internal/spatial"
)

// CommandKind tags the closed set of commands a bot can send.
type CommandKind int

const (
	// End marks a clean or short read: the stream ended before a full
	// command could be parsed.
	End CommandKind = iota
	// Malformed marks an unknown opcode or an out-of-range argument.
	Malformed
	LookAt
	Move
	Drill
)

// Command is one decoded frame from a bot's input stream.
type Command struct {
	Kind      CommandKind
	Offset    spatial.Offset    // valid when Kind == LookAt
	Direction spatial.Direction // valid when Kind == Move or Kind == Drill
}

// ParseCommand reads exactly one command from r, one octet at a time. Any
// short read (including at the very first byte) yields an End command; an
// unrecognized opcode or direction byte yields Malformed. It never returns
// an error — every failure mode is expressed as a Command value so the
// turn engine can treat "stream broke" and "stream said something we don't
// understand" uniformly.
func ParseCommand(r io.Reader) Command {
	op, ok := readByte(r)
	if !ok {
		return Command{Kind: End}
	}

	switch op {
	case 1:
		dx, ok := readByte(r)
		if !ok {
			return Command{Kind: End}
		}
		dy, ok := readByte(r)
		if !ok {
			return Command{Kind: End}
		}
		// dx, dy map directly onto grid X/Y (not through Direction unit
		// offsets): this matches the wire scenarios bots are tested
		// against, e.g. dy=1 looks one cell south.
		return Command{
			Kind:   LookAt,
			Offset: spatial.Offset{X: int(int8(dx)), Y: int(int8(dy))},
		}
	case 2:
		b, ok := readByte(r)
		if !ok {
			return Command{Kind: End}
		}
		d, ok := spatial.DirectionFromCode(b)
		if !ok {
			return Command{Kind: Malformed}
		}
		return Command{Kind: Move, Direction: d}
	case 3:
		b, ok := readByte(r)
		if !ok {
			return Command{Kind: End}
		}
		d, ok := spatial.DirectionFromCode(b)
		if !ok {
			return Command{Kind: Malformed}
		}
		return Command{Kind: Drill, Direction: d}
	default:
		return Command{Kind: Malformed}
	}
}

// Encode serializes c for the wire. Only LookAt, Move and Drill produce a
// frame; any other Kind returns nil since End/Malformed are parser outcomes,
// never something a client sends.
func (c Command) Encode() []byte {
	switch c.Kind {
	case LookAt:
		return []byte{1, byte(int8(c.Offset.X)), byte(int8(c.Offset.Y))}
	case Move:
		return []byte{2, c.Direction.Code()}
	case Drill:
		return []byte{3, c.Direction.Code()}
	default:
		return nil
	}
}

func readByte(r io.Reader) (byte, bool) {
	var buf [1]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, false
	}
	return buf[0], true
}
