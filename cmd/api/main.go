package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/clinicore/identity-service/internal/api"
	"github.com/clinicore/identity-service/internal/core/domain"
	"github.com/clinicore/identity-service/internal/core/ports"
	"github.com/clinicore/identity-service/internal/infrastructure/config"
	mongodb "github.com/clinicore/identity-service/internal/infrastructure/db/mongo"
	redisdb "github.com/clinicore/identity-service/internal/infrastructure/db/redis"
	"github.com/clinicore/identity-service/internal/infrastructure/events"
	"github.com/clinicore/identity-service/internal/infrastructure/notification"
	"github.com/clinicore/identity-service/internal/infrastructure/queue"
	"github.com/clinicore/identity-service/pkg/logger"
)

const deliveryQueue = "identity-delivery"

// @title        Clinicore Identity API
// @version      1.0
// @description  Authentication and identity backend for the Clinicore platform.
// @BasePath     /
// @securityDefinitions.apikey BearerAuth
// @in           header
// @name         Authorization
func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Service: "identity-api",
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
	})

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	bus, err := events.Connect(cfg.NATS.URL, log)
	if err != nil {
		log.Fatal().Err(err).Msg("nats connection failed")
	}
	defer bus.Close()

	renderer, err := notification.NewRenderer()
	if err != nil {
		log.Fatal().Err(err).Msg("template initialisation failed")
	}
	sender := newSender(cfg.Mailer, log)

	// Registration credential delivery runs out-of-band: events published by
	// the registration workflow come back through NATS and are fanned out to
	// the delivery workers.
	dispatcher := queue.NewDispatcher(cfg.Auth.DeliveryWorkers, renderer, sender, log)
	dispatcher.Start(ctx)
	err = bus.QueueSubscribe(domain.SubjectUserRegistered, deliveryQueue, func(data []byte) {
		var event domain.UserRegisteredEvent
		if err := json.Unmarshal(data, &event); err != nil {
			log.Error().Err(err).Msg("malformed user registered event")
			return
		}
		dispatcher.Enqueue(event)
	})
	if err != nil {
		log.Fatal().Err(err).Msg("event subscription failed")
	}

	e := api.NewRouter(cfg, api.Dependencies{
		Mongo:    db,
		Redis:    rdb,
		Events:   bus,
		Renderer: renderer,
		Sender:   sender,
	}, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("identity service started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func newSender(cfg config.MailerConfig, log zerolog.Logger) ports.NotificationSender {
	switch cfg.Provider {
	case "mailersend":
		return notification.NewMailerSendSender(cfg.APIKey, cfg.FromName, cfg.FromEmail)
	case "smtp":
		return notification.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.FromEmail)
	default:
		return notification.NewDevSender(log)
	}
}
