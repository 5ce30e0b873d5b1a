package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Dtheapp/lockerroomlink-sub005/go/internal/draft/gateway"
	"github.com/Dtheapp/lockerroomlink-sub005/go/internal/draft/outbox"
	"github.com/Dtheapp/lockerroomlink-sub005/go/internal/identity"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("could not load .env file")
	}

	cfg, err := loadConfig(getEnv("CONFIG_PATH", "config.yaml"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	secret := os.Getenv("IDENTITY_SECRET")
	if secret == "" {
		log.Fatal().Msg("IDENTITY_SECRET environment variable is required")
	}
	verifier := identity.NewVerifier([]byte(secret), cfg.Identity.Issuer)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := setupDatabase(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up database")
	}
	defer db.Close()

	services := setupServices(db, verifier)

	// Outbox relay: committed state changes -> JetStream.
	jsCfg := outbox.DefaultJetStreamConfig()
	jsCfg.URL = cfg.Messaging.NATSURL
	jsCfg.StreamName = cfg.Messaging.StreamName
	jsCfg.SubjectPrefix = cfg.Messaging.SubjectPrefix

	publisher, err := outbox.NewJetStreamPublisher(jsCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up JetStream publisher")
	}
	defer publisher.Close()

	worker := outbox.NewWorker(services.Outbox, publisher, outbox.Config{
		PollInterval: cfg.outboxPollInterval(),
		BatchSize:    cfg.Outbox.BatchSize,
	}, log.Logger)
	if err := worker.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to start outbox worker")
	}
	defer func() {
		if err := worker.Stop(); err != nil {
			log.Error().Err(err).Msg("failed to stop outbox worker")
		}
	}()

	// Live draft gateway: JetStream -> websocket rooms.
	hub := gateway.NewHub(gateway.DefaultConfig())
	consumer, err := gateway.NewConsumer(cfg.Messaging.NATSURL, cfg.Messaging.StreamName, cfg.Messaging.SubjectPrefix, hub)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up gateway consumer")
	}
	defer consumer.Close()
	go func() {
		if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("gateway consumer stopped")
		}
	}()

	server := setupServer(cfg, services, hub)
	go func() {
		log.Info().Str("addr", server.Addr).Msg("http server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown failed")
	}
}
