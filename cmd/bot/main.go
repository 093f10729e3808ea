package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/medzapis/talon-bot/internal/bot"
	"github.com/medzapis/talon-bot/internal/config"
	"github.com/medzapis/talon-bot/internal/httpserver"
	"github.com/medzapis/talon-bot/internal/metrics"
	"github.com/medzapis/talon-bot/internal/repository/postgres"
	bookingService "github.com/medzapis/talon-bot/internal/service/booking"
	registrationService "github.com/medzapis/talon-bot/internal/service/registration"
	"github.com/medzapis/talon-bot/pkg/logger"
	redisBroker "github.com/medzapis/talon-bot/pkg/messaging/redis"
	"github.com/medzapis/talon-bot/pkg/validator"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	l := logger.New(&logger.Config{Level: cfg.Log.Level})

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		l.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := postgres.Migrate(ctx, db); err != nil {
		l.Fatal().Err(err).Msg("failed to bootstrap schema")
	}

	broker, err := redisBroker.NewRedisBroker(cfg.Redis.URL, &l)
	if err != nil {
		l.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	defer broker.Close()

	validate, err := validator.New()
	if err != nil {
		l.Fatal().Err(err).Msg("failed to build validator")
	}

	userRepo := postgres.NewUserRepository(db)
	directoryRepo := postgres.NewDirectoryRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)
	requestRepo := postgres.NewSearchRequestRepository(db)

	bookingSvc := bookingService.NewService(appointmentRepo, directoryRepo, requestRepo, broker, &l)
	registrationSvc := registrationService.NewService(userRepo, validate, &l)

	m := metrics.New("talon_bot")

	b, err := bot.New(cfg.Telegram.Token, bot.Config{
		UpdateTimeout:  cfg.Telegram.UpdateTimeout,
		SendRatePerSec: cfg.Telegram.SendRatePerSec,
		SessionTTL:     cfg.Bot.SessionTTL,
	}, bookingSvc, registrationSvc, m, &l)
	if err != nil {
		l.Fatal().Err(err).Msg("failed to create bot")
	}

	srv := httpserver.New(cfg.HTTP.Addr, &l)
	srv.Start()

	go b.Start(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	l.Info().Msg("shutting down...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		l.Error().Err(err).Msg("http server shutdown failed")
	}
}
