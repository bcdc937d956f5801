// Command bot is an example client: it connects to a pushbots simulation
// port and plays a naive strategy (move in a random direction each turn,
// occasionally drilling instead) purely to exercise the wire protocol.
// A real competitor replaces this decision logic entirely.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net"
	"os"

	"github.com/tomz197/pushbots/internal/protocol"
	"github.com/tomz197/pushbots/internal/spatial"
)

func main() {
	address := flag.String("address", "127.0.0.1:7777", "pushbots simulation server address")
	flag.Parse()

	conn, err := net.Dial("tcp", *address)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect to %s: %v\n", *address, err)
		os.Exit(1)
	}
	defer conn.Close()

	if err := run(bufio.NewReader(conn), conn); err != nil {
		fmt.Fprintf(os.Stderr, "bot error: %v\n", err)
		os.Exit(1)
	}
}

var directions = []spatial.Direction{spatial.North, spatial.East, spatial.South, spatial.West}

func run(r *bufio.Reader, w net.Conn) error {
	for {
		n, ok := protocol.ParseNotification(r)
		if !ok {
			return nil // connection closed, nothing left to play
		}
		switch n.Kind {
		case protocol.NewRound:
			log.Println("bot: new round")
		case protocol.YouDied:
			log.Println("bot: died")
		case protocol.YourTurn:
			cmd := chooseCommand()
			if _, err := w.Write(cmd.Encode()); err != nil {
				return err
			}
		case protocol.Success, protocol.TooHeavy:
			// outcome of the previous command; nothing to react to here
		case protocol.YouSee:
			log.Printf("bot: sees appearance code %d", n.Appearance)
		}
	}
}

// chooseCommand is a placeholder strategy: mostly move randomly, sometimes
// drill, never both in the same turn.
func chooseCommand() protocol.Command {
	d := directions[rand.Intn(len(directions))]
	if rand.Intn(4) == 0 {
		return protocol.Command{Kind: protocol.Drill, Direction: d}
	}
	return protocol.Command{Kind: protocol.Move, Direction: d}
}
