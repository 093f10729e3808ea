package bot

import (
	"context"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/mock"

	"github.com/medzapis/talon-bot/internal/model"
)

// fakeTelegram records everything the bot sends.
type fakeTelegram struct {
	mu      sync.Mutex
	sent    []tgbotapi.Chattable
	updates chan tgbotapi.Update
}

func newFakeTelegram() *fakeTelegram {
	return &fakeTelegram{updates: make(chan tgbotapi.Update, 8)}
}

func (f *fakeTelegram) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, nil
}

func (f *fakeTelegram) Request(tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeTelegram) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return f.updates
}

func (f *fakeTelegram) SelfUser() tgbotapi.User {
	return tgbotapi.User{UserName: "talon_test_bot"}
}

func (f *fakeTelegram) sentMessages() []tgbotapi.MessageConfig {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []tgbotapi.MessageConfig
	for _, c := range f.sent {
		if m, ok := c.(tgbotapi.MessageConfig); ok {
			out = append(out, m)
		}
	}
	return out
}

func (f *fakeTelegram) lastMessage() (tgbotapi.MessageConfig, bool) {
	msgs := f.sentMessages()
	if len(msgs) == 0 {
		return tgbotapi.MessageConfig{}, false
	}
	return msgs[len(msgs)-1], true
}

func (f *fakeTelegram) sentText(text string) bool {
	for _, m := range f.sentMessages() {
		if strings.Contains(m.Text, text) {
			return true
		}
	}
	return false
}

type mockBookingService struct {
	mock.Mock
}

func (m *mockBookingService) Categories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockBookingService) HospitalsByCategory(ctx context.Context, category string) ([]*model.Hospital, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Hospital), args.Error(1)
}

func (m *mockBookingService) DoctorsByCategoryAndHospital(ctx context.Context, category string, hospitalID int64) ([]*model.Doctor, error) {
	args := m.Called(ctx, category, hospitalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Doctor), args.Error(1)
}

func (m *mockBookingService) Doctor(ctx context.Context, id int64) (*model.Doctor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Doctor), args.Error(1)
}

func (m *mockBookingService) Hospital(ctx context.Context, id int64) (*model.Hospital, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Hospital), args.Error(1)
}

func (m *mockBookingService) AvailableDays(ctx context.Context, doctorID int64, now time.Time) ([]time.Time, []time.Time, error) {
	args := m.Called(ctx, doctorID, now)
	var available, full []time.Time
	if args.Get(0) != nil {
		available = args.Get(0).([]time.Time)
	}
	if args.Get(1) != nil {
		full = args.Get(1).([]time.Time)
	}
	return available, full, args.Error(2)
}

func (m *mockBookingService) AvailableHours(ctx context.Context, doctorID int64, day time.Time) ([]int, error) {
	args := m.Called(ctx, doctorID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

func (m *mockBookingService) Book(ctx context.Context, userID, doctorID int64, day time.Time, hour int) error {
	args := m.Called(ctx, userID, doctorID, day, hour)
	return args.Error(0)
}

func (m *mockBookingService) ActiveAppointments(ctx context.Context, userID int64) ([]*model.AppointmentInfo, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.AppointmentInfo), args.Error(1)
}

func (m *mockBookingService) Appointment(ctx context.Context, id int64) (*model.Appointment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Appointment), args.Error(1)
}

func (m *mockBookingService) Cancel(ctx context.Context, userID, appointmentID int64) error {
	args := m.Called(ctx, userID, appointmentID)
	return args.Error(0)
}

func (m *mockBookingService) RequestNotification(ctx context.Context, userID, doctorID int64, targetDate time.Time) error {
	args := m.Called(ctx, userID, doctorID, targetDate)
	return args.Error(0)
}

type mockRegistrationService struct {
	mock.Mock
}

func (m *mockRegistrationService) EnsureUser(ctx context.Context, chatID int64, username string) error {
	args := m.Called(ctx, chatID, username)
	return args.Error(0)
}

func (m *mockRegistrationService) User(ctx context.Context, chatID int64) (*model.User, error) {
	args := m.Called(ctx, chatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockRegistrationService) SaveProfile(ctx context.Context, chatID int64, profile *model.Profile) error {
	args := m.Called(ctx, chatID, profile)
	return args.Error(0)
}

func (m *mockRegistrationService) ValidName(v string) bool {
	return m.Called(v).Bool(0)
}

func (m *mockRegistrationService) ValidMedicalPolicy(v string) bool {
	return m.Called(v).Bool(0)
}

func (m *mockRegistrationService) ValidPassport(v string) bool {
	return m.Called(v).Bool(0)
}
