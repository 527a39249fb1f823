// Dama Voadora server: matchmaking, real-time game channels and lobby
// chat over WebSocket, backed by an embedded Badger store.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/damavoadora/server/internal/auth"
	"github.com/damavoadora/server/internal/config"
	"github.com/damavoadora/server/internal/game"
	"github.com/damavoadora/server/internal/server"
	"github.com/damavoadora/server/internal/storage"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	addr := flag.String("addr", "", "listen address (overrides config)")
	dataDir := flag.String("data", "", "data directory (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *dataDir != "" {
		cfg.Storage.Dir = *dataDir
	}

	store, err := storage.Open(cfg.Storage.Dir)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer store.Close()

	registry := game.NewRegistry()
	queue := game.NewQueue(registry, store, cfg.Matchmaking.QueueCapacity)
	authn := auth.NewService(store)
	srv := server.New(registry, queue, authn, cfg.Server.AllowedOrigins)

	httpServer := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: srv.Routes(),
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("listening on %s", cfg.Server.Addr)
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("serve: %v", err)
		}
	}()

	<-done
	log.Print("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
