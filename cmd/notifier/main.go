package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"

	"github.com/medzapis/talon-bot/internal/config"
	"github.com/medzapis/talon-bot/internal/httpserver"
	"github.com/medzapis/talon-bot/internal/metrics"
	"github.com/medzapis/talon-bot/internal/repository/postgres"
	"github.com/medzapis/talon-bot/internal/service/notifier"
	"github.com/medzapis/talon-bot/pkg/logger"
	"github.com/medzapis/talon-bot/pkg/messaging"
	redisBroker "github.com/medzapis/talon-bot/pkg/messaging/redis"
)

type telegramSender struct {
	api *tgbotapi.BotAPI
}

func (s *telegramSender) Send(chatID int64, text string) error {
	_, err := s.api.Send(tgbotapi.NewMessage(chatID, text))
	return err
}

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

	broker, err := redisBroker.NewRedisBroker(cfg.Redis.URL, &l)
	if err != nil {
		l.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	defer broker.Close()

	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		l.Fatal().Err(err).Msg("failed to create telegram client")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	wake, err := broker.Subscribe(ctx, messaging.SlotFreedChannel)
	if err != nil {
		l.Fatal().Err(err).Msg("failed to subscribe to slot_freed channel")
	}

	requestRepo := postgres.NewSearchRequestRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)

	m := metrics.New("talon_notifier")
	svc := notifier.NewService(requestRepo, appointmentRepo, &telegramSender{api: api}, m, &l)

	srv := httpserver.New(cfg.Notifier.HTTPAddr, &l)
	srv.Start()

	go svc.Run(ctx, cfg.Notifier.PollInterval, wake)

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
