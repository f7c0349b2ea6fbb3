package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"vn.io.arda/taskmail/internal/application"
	"vn.io.arda/taskmail/internal/config"
	"vn.io.arda/taskmail/internal/i18n"
	"vn.io.arda/taskmail/internal/infrastructure/postgres"
	"vn.io.arda/taskmail/internal/infrastructure/smtp"
	kafkaconsumer "vn.io.arda/taskmail/internal/kafka"
	"vn.io.arda/taskmail/internal/mailer"
	transporthttp "vn.io.arda/taskmail/internal/transport/http"
)

func main() {
	// ── Logging ──────────────────────────────────────────────────────────────
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// ── Config ───────────────────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	if cfg.Server.Env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	log.Info().Str("env", cfg.Server.Env).Str("port", cfg.Server.Port).Msg("starting arda-taskmail")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ── Database ──────────────────────────────────────────────────────────────
	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("postgres ping failed")
	}
	log.Info().Msg("postgres connected")

	// ── Repository, i18n & Composer ──────────────────────────────────────────
	repo := postgres.New(pool)
	translator := i18n.New(cfg.App.Language)

	composer, err := mailer.NewComposer(cfg.App.Name, cfg.App.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load notification templates")
	}

	// ── Mail Transport ────────────────────────────────────────────────────────
	sender := smtp.New(cfg.SMTP)

	// ── Application Service ───────────────────────────────────────────────────
	svc := application.NewService(repo, repo, sender, composer, translator)

	// ── HTTP Server ───────────────────────────────────────────────────────────
	handler := transporthttp.NewHandler(svc)
	router := transporthttp.NewRouter(handler, cfg.Auth.JWTSecret)

	// ── Kafka Consumer ────────────────────────────────────────────────────────
	consumer, err := kafkaconsumer.New(
		cfg.Kafka.Brokers,
		cfg.Kafka.ConsumerGroupID,
		cfg.Kafka.Topics,
		svc,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create kafka consumer")
	}

	// Start Kafka consumer in background
	go consumer.Start(ctx)
	log.Info().Strs("topics", cfg.Kafka.Topics).Msg("kafka consumer started")

	// ── Start HTTP Server ─────────────────────────────────────────────────────
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("HTTP server listening")
		if err := router.Start(":" + cfg.Server.Port); err != nil {
			log.Info().Msg("HTTP server stopped")
		}
	}()

	// ── Graceful Shutdown ─────────────────────────────────────────────────────
	<-ctx.Done()
	log.Info().Msg("shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := router.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("arda-taskmail stopped")
}
