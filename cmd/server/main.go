// Command server runs the SimChess HTTP/WebSocket server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rumendamyanov/simchess/config"
	"github.com/rumendamyanov/simchess/game"
	"github.com/rumendamyanov/simchess/registry"
	"github.com/rumendamyanov/simchess/transport"
)

func main() {
	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	reg := registry.NewWithRules(game.Rules{
		InitialClockSeconds:    cfg.Rules.InitialClockSeconds,
		OneSidedThreshold:      cfg.Rules.OneSidedThreshold,
		OneSidedPenaltySeconds: cfg.Rules.OneSidedPenaltySeconds,
	})

	srv, err := transport.NewServer(cfg, reg)
	if err != nil {
		log.Fatalf("failed to build server: %v", err)
	}

	httpServer := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      srv.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Printf("simchess server listening on %s", cfg.GetServerAddress())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}
