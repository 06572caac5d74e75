package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"cardroom/internal/config"
	"cardroom/internal/lobby"
	"cardroom/internal/room"
	"cardroom/internal/server"
	"cardroom/internal/store"
	"cardroom/internal/ws"
)

func main() {
	// Load local .env (dev only)
	_ = godotenv.Load()

	cfg := config.Load()
	logger := config.NewLogger(cfg.Env)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Identity store is optional: without PG_URL the server runs guest-only.
	var accounts *store.Postgres
	if cfg.PGURL != "" {
		pg, err := store.NewPostgres(ctx, cfg, logger)
		if err != nil {
			logger.Error("postgres.connect", "err", err)
			log.Fatal(err)
		}
		defer pg.Close()
		if err := pg.RunMigrations(ctx); err != nil {
			logger.Error("migrations", "err", err)
			log.Fatal(err)
		}
		accounts = pg
	} else {
		logger.Warn("store.disabled", "reason", "PG_URL not set, accounts unavailable")
	}

	hub := ws.NewHub(logger, lobby.NewDirectory(), room.NewRegistry(), accounts)
	go hub.Run(ctx)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           server.New(logger, hub).RegisterRoutes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server.listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server.crash", "err", err)
			cancel()
		}
	}()

	<-ctx.Done()
	logger.Info("server.shutdown.start")

	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	_ = srv.Shutdown(shutdownCtx)

	logger.Info("server.shutdown.complete")
}
