// Command server is the pushbots process entrypoint: it binds the bot-facing
// TCP socket, optionally serves static web assets and Prometheus metrics
// over HTTP, and runs the lobby until shutdown.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/tomz197/pushbots/internal/config"
	"github.com/tomz197/pushbots/internal/lobby"
	"github.com/tomz197/pushbots/internal/stream"
)

func main() {
	cfg := config.Load()

	simulationPort := flag.String("simulation", cfg.SimulationPort, "bot-facing TCP port")
	staticDirectory := flag.String("static-directory", cfg.StaticDirectory, "directory of static web assets to serve (empty disables the static server)")
	simulationExternalPort := flag.String("simulation-external", cfg.SimulationExternalPort, "externally-visible simulation port to display, if different from --simulation")
	flag.Parse()

	cfg.SimulationPort = *simulationPort
	cfg.StaticDirectory = *staticDirectory
	cfg.SimulationExternalPort = *simulationExternalPort

	displayPort := cfg.SimulationPort
	if cfg.SimulationExternalPort != "" {
		displayPort = cfg.SimulationExternalPort
	}
	log.Printf("pushbots config: simulation=%s (external=%s) static=%q metrics=%s tick_delay=%s read_timeout=%s",
		cfg.SimulationPort, displayPort, cfg.StaticDirectory, cfg.MetricsAddr, cfg.TurnDelay, cfg.ReadTimeout)

	listener, err := net.Listen("tcp", net.JoinHostPort("", cfg.SimulationPort))
	if err != nil {
		log.Fatalf("failed to listen on simulation port %s: %v", cfg.SimulationPort, err)
	}

	l := lobby.NewLobby(cfg.TurnDelay, cfg.LobbyQueueCapacity)
	acceptor := stream.NewAcceptor(listener, cfg.ReadTimeout, l.Submit)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		l.Run(groupCtx)
		return nil
	})
	group.Go(func() error {
		err := acceptor.Run(groupCtx)
		l.Close()
		return err
	})

	var httpServer *http.Server
	if cfg.StaticDirectory != "" || cfg.MetricsAddr != "" {
		httpServer = newHTTPServer(cfg)
		group.Go(func() error {
			log.Printf("serving HTTP on %s (static=%q)", cfg.MetricsAddr, cfg.StaticDirectory)
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		group.Go(func() error {
			<-groupCtx.Done()
			return httpServer.Close()
		})
	}

	if err := group.Wait(); err != nil {
		log.Fatalf("server error: %v", err)
	}
	log.Println("pushbots server stopped")
}

func newHTTPServer(cfg config.Config) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	if cfg.StaticDirectory != "" {
		mux.Handle("/", http.FileServer(http.Dir(cfg.StaticDirectory)))
	}
	return &http.Server{
		Addr:    cfg.MetricsAddr,
		Handler: mux,
	}
}
