// Package bot maps Telegram updates onto the registration, booking and
// cancellation flows.
package bot

import (
	"context"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/medzapis/talon-bot/internal/metrics"
	"github.com/medzapis/talon-bot/internal/model"
)

// telegramClient is the Telegram API surface the bot uses. Tests inject
// a mock implementation.
type telegramClient interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(cfg tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	SelfUser() tgbotapi.User
}

type realTelegramClient struct {
	api *tgbotapi.BotAPI
}

func (c *realTelegramClient) Send(msg tgbotapi.Chattable) (tgbotapi.Message, error) {
	return c.api.Send(msg)
}

func (c *realTelegramClient) Request(msg tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	return c.api.Request(msg)
}

func (c *realTelegramClient) GetUpdatesChan(cfg tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return c.api.GetUpdatesChan(cfg)
}

func (c *realTelegramClient) SelfUser() tgbotapi.User {
	return c.api.Self
}

// bookingService is the booking flow's backend.
type bookingService interface {
	Categories(ctx context.Context) ([]string, error)
	HospitalsByCategory(ctx context.Context, category string) ([]*model.Hospital, error)
	DoctorsByCategoryAndHospital(ctx context.Context, category string, hospitalID int64) ([]*model.Doctor, error)
	Doctor(ctx context.Context, id int64) (*model.Doctor, error)
	Hospital(ctx context.Context, id int64) (*model.Hospital, error)
	AvailableDays(ctx context.Context, doctorID int64, now time.Time) (available, full []time.Time, err error)
	AvailableHours(ctx context.Context, doctorID int64, day time.Time) ([]int, error)
	Book(ctx context.Context, userID, doctorID int64, day time.Time, hour int) error
	ActiveAppointments(ctx context.Context, userID int64) ([]*model.AppointmentInfo, error)
	Appointment(ctx context.Context, id int64) (*model.Appointment, error)
	Cancel(ctx context.Context, userID, appointmentID int64) error
	RequestNotification(ctx context.Context, userID, doctorID int64, targetDate time.Time) error
}

// registrationService is the registration flow's backend.
type registrationService interface {
	EnsureUser(ctx context.Context, chatID int64, username string) error
	User(ctx context.Context, chatID int64) (*model.User, error)
	SaveProfile(ctx context.Context, chatID int64, profile *model.Profile) error
	ValidName(v string) bool
	ValidMedicalPolicy(v string) bool
	ValidPassport(v string) bool
}

// Config tunes the bot loop.
type Config struct {
	UpdateTimeout  int
	SendRatePerSec int
	SessionTTL     time.Duration
}

// Bot is the Telegram front end.
type Bot struct {
	tg            telegramClient
	sessions      *sessionStore
	booking       bookingService
	registration  registrationService
	limiter       *rate.Limiter
	metrics       *metrics.Metrics
	logger        *zerolog.Logger
	updateTimeout int
}

// New connects to the Telegram API.
func New(token string, cfg Config, booking bookingService, registration registrationService, m *metrics.Metrics, logger *zerolog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram client: %w", err)
	}
	return newBot(&realTelegramClient{api: api}, cfg, booking, registration, m, logger)
}

// NewWithTelegramClient allows injecting a mocked Telegram client for tests.
func NewWithTelegramClient(tg telegramClient, cfg Config, booking bookingService, registration registrationService, m *metrics.Metrics, logger *zerolog.Logger) (*Bot, error) {
	return newBot(tg, cfg, booking, registration, m, logger)
}

func newBot(tg telegramClient, cfg Config, booking bookingService, registration registrationService, m *metrics.Metrics, logger *zerolog.Logger) (*Bot, error) {
	if tg == nil {
		return nil, fmt.Errorf("telegram client is nil")
	}
	if cfg.UpdateTimeout <= 0 {
		cfg.UpdateTimeout = 60
	}
	if cfg.SendRatePerSec <= 0 {
		cfg.SendRatePerSec = 25
	}
	return &Bot{
		tg:            tg,
		sessions:      newSessionStore(cfg.SessionTTL),
		booking:       booking,
		registration:  registration,
		limiter:       rate.NewLimiter(rate.Limit(cfg.SendRatePerSec), cfg.SendRatePerSec),
		metrics:       m,
		logger:        logger,
		updateTimeout: cfg.UpdateTimeout,
	}, nil
}

// Start polls updates until the context is cancelled.
func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.updateTimeout
	updates := b.tg.GetUpdatesChan(u)

	b.logger.Info().Str("username", b.tg.SelfUser().UserName).Msg("bot authorized")

	for {
		select {
		case <-ctx.Done():
			b.logger.Info().Msg("bot shutting down")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			requestID := uuid.New().String()
			l := b.logger.With().Str("request_id", requestID).Logger()
			b.handleUpdate(l.WithContext(ctx), &update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update *tgbotapi.Update) {
	started := time.Now()
	defer func() {
		b.metrics.HandlerDuration.Observe(time.Since(started).Seconds())
	}()

	l := zerolog.Ctx(ctx)
	switch {
	case update.CallbackQuery != nil:
		b.metrics.UpdatesHandled.WithLabelValues("callback").Inc()
		l.Debug().
			Int64("chat_id", update.CallbackQuery.Message.Chat.ID).
			Str("data", update.CallbackQuery.Data).
			Msg("handling callback query")
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil:
		b.metrics.UpdatesHandled.WithLabelValues("message").Inc()
		l.Debug().
			Int64("chat_id", update.Message.Chat.ID).
			Str("text", update.Message.Text).
			Msg("handling message")
		b.handleMessage(ctx, update.Message)
	}
}

// send delivers one message, honoring the outbound rate limit.
func (b *Bot) send(ctx context.Context, c tgbotapi.Chattable) {
	if err := b.limiter.Wait(ctx); err != nil {
		return
	}
	if _, err := b.tg.Send(c); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to send message")
	}
}

func (b *Bot) reply(ctx context.Context, chatID int64, text string) {
	b.send(ctx, tgbotapi.NewMessage(chatID, text))
}

func (b *Bot) replyWithKeyboard(ctx context.Context, chatID int64, text string, kb interface{}) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = kb
	b.send(ctx, msg)
}

func (b *Bot) sendMainMenu(ctx context.Context, chatID int64, text string) {
	b.replyWithKeyboard(ctx, chatID, text, mainMenu)
}

func (b *Bot) answerCallback(cq *tgbotapi.CallbackQuery) {
	if _, err := b.tg.Request(tgbotapi.NewCallback(cq.ID, "")); err != nil {
		b.logger.Debug().Err(err).Msg("failed to answer callback")
	}
}
