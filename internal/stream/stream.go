// Package stream adapts net.Conn-based TCP connections onto the
// world.Participant boundary the engine expects.
package stream

import (
	"context"
	"log"
	"net"
	"time"

	"github.com/tomz197/pushbots/internal/world"
)

// Conn wraps a net.Conn, applying a read deadline before every read so a
// silent bot's turn times out at the stream layer instead of blocking the
// round indefinitely.
type Conn struct {
	conn    net.Conn
	timeout time.Duration
}

// NewConn wraps conn with the given per-read timeout. A non-positive
// timeout disables the deadline.
func NewConn(conn net.Conn, timeout time.Duration) *Conn {
	return &Conn{conn: conn, timeout: timeout}
}

// Read implements io.Reader, refreshing the read deadline first.
func (c *Conn) Read(p []byte) (int, error) {
	if c.timeout > 0 {
		_ = c.conn.SetReadDeadline(time.Now().Add(c.timeout))
	}
	return c.conn.Read(p)
}

// Write implements io.Writer.
func (c *Conn) Write(p []byte) (int, error) {
	return c.conn.Write(p)
}

// Close closes the underlying connection.
func (c *Conn) Close() error {
	return c.conn.Close()
}

// Participant wraps conn as a world.Participant whose Input and Output are
// both backed by the same timed connection.
func Participant(conn net.Conn, readTimeout time.Duration) world.Participant {
	adapted := NewConn(conn, readTimeout)
	return world.Participant{Input: adapted, Output: adapted}
}

// Acceptor accepts TCP connections and hands each one to submit as a
// world.Participant.
type Acceptor struct {
	listener    net.Listener
	submit      func(world.Participant)
	readTimeout time.Duration
}

// NewAcceptor builds an Acceptor over an already-bound listener.
func NewAcceptor(listener net.Listener, readTimeout time.Duration, submit func(world.Participant)) *Acceptor {
	return &Acceptor{listener: listener, readTimeout: readTimeout, submit: submit}
}

// Run accepts connections until ctx is cancelled or the listener fails.
// Cancelling ctx closes the listener to unblock a pending Accept.
func (a *Acceptor) Run(ctx context.Context) error {
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			_ = a.listener.Close()
		case <-stop:
		}
	}()

	for {
		conn, err := a.listener.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
				return err
			}
		}
		log.Printf("stream: accepted connection from %s", conn.RemoteAddr())
		a.submit(Participant(conn, a.readTimeout))
	}
}
