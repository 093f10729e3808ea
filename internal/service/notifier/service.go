// Package notifier consumes search requests: when a previously full day has
// capacity again, the subscriber gets a Telegram message and the request is
// marked completed.
package notifier

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/medzapis/talon-bot/internal/metrics"
	"github.com/medzapis/talon-bot/internal/model"
	"github.com/medzapis/talon-bot/internal/repository"
	"github.com/medzapis/talon-bot/internal/schedule"
)

// MessageSender delivers a notification to a chat.
type MessageSender interface {
	Send(chatID int64, text string) error
}

type Service struct {
	requests     repository.SearchRequestRepository
	appointments repository.AppointmentRepository
	sender       MessageSender
	metrics      *metrics.Metrics
	logger       *zerolog.Logger
}

func NewService(
	requests repository.SearchRequestRepository,
	appointments repository.AppointmentRepository,
	sender MessageSender,
	m *metrics.Metrics,
	logger *zerolog.Logger,
) *Service {
	return &Service{
		requests:     requests,
		appointments: appointments,
		sender:       sender,
		metrics:      m,
		logger:       logger,
	}
}

// Run scans on a ticker and additionally wakes up on slot_freed events.
func (s *Service) Run(ctx context.Context, interval time.Duration, wake <-chan []byte) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.logger.Info().Dur("interval", interval).Msg("notifier started")

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("notifier shutting down")
			return
		case <-ticker.C:
		case _, ok := <-wake:
			if !ok {
				wake = nil
				continue
			}
		}
		if err := s.RunOnce(ctx); err != nil {
			s.logger.Error().Err(err).Msg("notifier pass failed")
		}
	}
}

// RunOnce processes every pending search request exactly once.
func (s *Service) RunOnce(ctx context.Context) error {
	s.metrics.NotifierRuns.Inc()

	pending, err := s.requests.ListPending(ctx)
	if err != nil {
		return fmt.Errorf("failed to list pending requests: %w", err)
	}

	for _, req := range pending {
		if err := s.process(ctx, req); err != nil {
			s.logger.Error().Err(err).Int64("request_id", req.ID).Msg("failed to process search request")
		}
	}
	return nil
}

func (s *Service) process(ctx context.Context, req *model.PendingSearchRequest) error {
	today := time.Now().Truncate(24 * time.Hour)
	if req.TargetDate.Before(today) {
		// the wanted day has passed, nothing left to watch
		return s.requests.MarkCompleted(ctx, req.ID)
	}

	count, err := s.appointments.CountActiveForDay(ctx, req.DoctorID, req.TargetDate)
	if err != nil {
		return fmt.Errorf("failed to count active appointments: %w", err)
	}
	if count >= schedule.SlotsPerDay {
		return nil
	}

	text := fmt.Sprintf(
		"Появился свободный талон к врачу %s %s на %s. Запишитесь через «Поиск».",
		req.DoctorFirstName,
		req.DoctorLastName,
		req.TargetDate.Format("02.01.2006"),
	)
	if err := s.sender.Send(req.ChatID, text); err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}

	if err := s.requests.MarkCompleted(ctx, req.ID); err != nil {
		return err
	}

	s.metrics.NotificationsSent.Inc()
	s.logger.Info().
		Int64("request_id", req.ID).
		Int64("chat_id", req.ChatID).
		Msg("freed slot notification sent")
	return nil
}
