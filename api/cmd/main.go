package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/civhall/municipal-events/internal/application/enrollment"
	"github.com/civhall/municipal-events/internal/application/event"
	"github.com/civhall/municipal-events/internal/config"
	"github.com/civhall/municipal-events/internal/infrastructure/caching/redis"
	"github.com/civhall/municipal-events/internal/infrastructure/db/postgres"
	"github.com/civhall/municipal-events/internal/infrastructure/messaging/rabbitmq"
	"github.com/civhall/municipal-events/internal/logger"
	"github.com/civhall/municipal-events/internal/security"
	"github.com/civhall/municipal-events/internal/transport/rest"
	_ "github.com/lib/pq"
	zlog "github.com/rs/zerolog/log"
)

type sysClock struct{}

func (sysClock) Now() time.Time { return time.Now().UTC() }

func main() {
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		zlog.Fatal().Err(err).Msg("config load failed")
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		zlog.Fatal().Err(err).Msg("postgres open failed")
	}
	defer db.Close()
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := db.PingContext(pingCtx); err != nil {
		cancel()
		zlog.Fatal().Err(err).Msg("postgres ping failed")
	}
	cancel()

	cache, err := redis.New(cfg.RedisURL)
	if err != nil {
		zlog.Fatal().Err(err).Msg("redis connect failed")
	}
	defer cache.Close()

	var pub event.Publisher
	if cfg.RabbitURL == "" {
		zlog.Warn().Msg("RABBIT_URL empty, domain messages will be dropped")
		pub = event.NoopPublisher{}
	} else {
		rmq, err := rabbitmq.NewPublisher(cfg.RabbitURL, cfg.RabbitExchange)
		if err != nil {
			zlog.Fatal().Err(err).Msg("rabbitmq connect failed")
		}
		defer rmq.Close()
		pub = rmq
	}

	clock := sysClock{}
	eventRepo := postgres.New(db)
	enrollmentRepo := postgres.NewEnrollmentRepo(db)

	eventSvc := event.New(eventRepo, clock, pub, cache, cfg.CacheTTLDetails)
	enrollmentSvc := enrollment.New(enrollmentRepo, eventRepo, clock, pub, cache, cfg.CacheTTLSlots)

	var limiter rest.RequestLimiter
	if cfg.RLEnabled {
		limiter = cache
	}

	router := rest.NewRouter(
		rest.NewEventHandler(eventSvc),
		rest.NewEnrollmentHandler(enrollmentSvc),
		rest.RouterConfig{
			Verifier:    security.NewHS256Verifier(cfg.JWTSecret),
			Issuer:      cfg.JWTIssuer,
			Limiter:     limiter,
			PublicLimit: cfg.RLPublicLimit,
			WriteLimit:  cfg.RLWriteLimit,
			RateWindow:  cfg.RLWindow,
		},
	)

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	go func() {
		zlog.Info().Str("addr", cfg.HTTPAddr).Str("env", cfg.AppEnv).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	zlog.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error().Err(err).Msg("graceful shutdown failed")
	}
}
