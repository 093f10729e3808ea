package booking

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/medzapis/talon-bot/internal/model"
)

type mockAppointmentRepo struct {
	mock.Mock
}

func (m *mockAppointmentRepo) Book(ctx context.Context, userID, doctorID int64, at time.Time, capacity int) error {
	args := m.Called(ctx, userID, doctorID, at, capacity)
	return args.Error(0)
}

func (m *mockAppointmentRepo) FullDates(ctx context.Context, doctorID int64, capacity int) ([]time.Time, error) {
	args := m.Called(ctx, doctorID, capacity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]time.Time), args.Error(1)
}

func (m *mockAppointmentRepo) BookedHours(ctx context.Context, doctorID int64, day time.Time) ([]int, error) {
	args := m.Called(ctx, doctorID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

func (m *mockAppointmentRepo) CountActiveForDay(ctx context.Context, doctorID int64, day time.Time) (int, error) {
	args := m.Called(ctx, doctorID, day)
	return args.Int(0), args.Error(1)
}

func (m *mockAppointmentRepo) ListActiveForUser(ctx context.Context, userID int64) ([]*model.AppointmentInfo, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.AppointmentInfo), args.Error(1)
}

func (m *mockAppointmentRepo) Get(ctx context.Context, id int64) (*model.Appointment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Appointment), args.Error(1)
}

func (m *mockAppointmentRepo) Cancel(ctx context.Context, id, userID int64) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

type mockDirectoryRepo struct {
	mock.Mock
}

func (m *mockDirectoryRepo) ListCategories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockDirectoryRepo) ListHospitalsByCategory(ctx context.Context, category string) ([]*model.Hospital, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Hospital), args.Error(1)
}

func (m *mockDirectoryRepo) ListDoctorsByCategoryAndHospital(ctx context.Context, category string, hospitalID int64) ([]*model.Doctor, error) {
	args := m.Called(ctx, category, hospitalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Doctor), args.Error(1)
}

func (m *mockDirectoryRepo) GetDoctor(ctx context.Context, id int64) (*model.Doctor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Doctor), args.Error(1)
}

func (m *mockDirectoryRepo) GetHospital(ctx context.Context, id int64) (*model.Hospital, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Hospital), args.Error(1)
}

type mockSearchRequestRepo struct {
	mock.Mock
}

func (m *mockSearchRequestRepo) Create(ctx context.Context, userID, doctorID int64, targetDate time.Time) error {
	args := m.Called(ctx, userID, doctorID, targetDate)
	return args.Error(0)
}

func (m *mockSearchRequestRepo) ListPending(ctx context.Context) ([]*model.PendingSearchRequest, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.PendingSearchRequest), args.Error(1)
}

func (m *mockSearchRequestRepo) MarkCompleted(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, channel string, message interface{}) error {
	args := m.Called(ctx, channel, message)
	return args.Error(0)
}
