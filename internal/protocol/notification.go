package protocol

import "io"

// NotificationKind tags the closed set of messages the server sends a bot.
type NotificationKind int

const (
	YourTurn NotificationKind = iota
	YouDied
	Success
	TooHeavy
	NewRound
	YouSee
)

// AppearanceCode is the wire encoding of a cell's appearance, carried by a
// YouSee notification. It is independent of the world package's Appearance
// type so that protocol has no dependency on world; callers translate.
type AppearanceCode byte

const (
	CodeFloor AppearanceCode = iota
	CodeBot
	CodeBlock
	CodeAbyss
)

// Notification is one message the server sends to a bot's output stream.
type Notification struct {
	Kind       NotificationKind
	Appearance AppearanceCode // valid when Kind == YouSee
}

// Encode serializes n into its wire bytes.
func (n Notification) Encode() []byte {
	switch n.Kind {
	case YourTurn:
		return []byte{1}
	case YouDied:
		return []byte{2}
	case Success:
		return []byte{3}
	case TooHeavy:
		return []byte{4}
	case NewRound:
		return []byte{5}
	case YouSee:
		return []byte{6, byte(n.Appearance)}
	default:
		return nil
	}
}

// WriteNotification serializes n and writes it to w in full.
func WriteNotification(w io.Writer, n Notification) error {
	_, err := w.Write(n.Encode())
	return err
}

// ParseNotification reads one notification from r, for use on the bot side
// of the stream. ok is false on any short read (connection closed or torn
// down mid-frame).
func ParseNotification(r io.Reader) (n Notification, ok bool) {
	op, ok := readByte(r)
	if !ok {
		return Notification{}, false
	}
	switch op {
	case 1:
		return Notification{Kind: YourTurn}, true
	case 2:
		return Notification{Kind: YouDied}, true
	case 3:
		return Notification{Kind: Success}, true
	case 4:
		return Notification{Kind: TooHeavy}, true
	case 5:
		return Notification{Kind: NewRound}, true
	case 6:
		code, ok := readByte(r)
		if !ok {
			return Notification{}, false
		}
		return Notification{Kind: YouSee, Appearance: AppearanceCode(code)}, true
	default:
		return Notification{}, false
	}
}
