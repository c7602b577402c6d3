package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/nereus/internal/config"
	"github.com/Nixie-Tech-LLC/nereus/internal/db"
	"github.com/Nixie-Tech-LLC/nereus/internal/engine"
	"github.com/Nixie-Tech-LLC/nereus/internal/events"
	"github.com/Nixie-Tech-LLC/nereus/internal/flussonic"
	"github.com/Nixie-Tech-LLC/nereus/internal/redis"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("APP_ENV") == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	if err := db.Init(cfg.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("db init")
	}
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("db migrate")
	}
	store := db.NewStore(nil)

	redis.InitRedis(cfg.RedisAddress, cfg.RedisUsername, cfg.RedisPassword)

	// Playout events are best effort: a missing broker must not keep the
	// control plane from coming up.
	var publisher engine.Publisher
	var mqttPub *events.MQTTPublisher
	if cfg.MQTTBrokerURL != "" {
		mqttPub, err = events.NewMQTTPublisher(cfg.MQTTBrokerURL, "nereus-server")
		if err != nil {
			log.Warn().Err(err).Msg("mqtt unavailable, playout events disabled")
		} else {
			publisher = mqttPub
		}
	}

	remote := flussonic.NewClient(store.GetMediaServerByID, cfg.PlayoutTimeout)

	eng := engine.New(store, remote, engine.Options{
		TickInterval: cfg.SchedulerTickInterval,
		PlayTimeout:  cfg.PlayoutTimeout,
		Events:       publisher,
	})
	if cfg.SchedulerAutostart {
		eng.Start()
	}

	r := gin.Default()
	RegisterRoutes(r, cfg, store, eng, remote)

	srv := &http.Server{Addr: cfg.ServerAddress, Handler: r}
	go func() {
		log.Info().Str("address", cfg.ServerAddress).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")

	eng.Stop()
	if mqttPub != nil {
		mqttPub.Close()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
}
