package booking

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/medzapis/talon-bot/internal/model"
	"github.com/medzapis/talon-bot/internal/repository"
	"github.com/medzapis/talon-bot/internal/schedule"
	"github.com/medzapis/talon-bot/pkg/messaging"
)

func newTestService(appts *mockAppointmentRepo, dir *mockDirectoryRepo, reqs *mockSearchRequestRepo, pub *mockPublisher) *Service {
	l := zerolog.Nop()
	if pub == nil {
		return NewService(appts, dir, reqs, nil, &l)
	}
	return NewService(appts, dir, reqs, pub, &l)
}

func TestAvailableDaysOmitsFullDay(t *testing.T) {
	appts := new(mockAppointmentRepo)
	// 2024-06-10 is a Monday with all 6 slots taken
	fullDay := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	appts.On("FullDates", mock.Anything, int64(1), schedule.SlotsPerDay).
		Return([]time.Time{fullDay}, nil)

	svc := newTestService(appts, new(mockDirectoryRepo), new(mockSearchRequestRepo), nil)

	now := time.Date(2024, 6, 7, 10, 0, 0, 0, time.UTC)
	available, full, err := svc.AvailableDays(context.Background(), 1, now)
	require.NoError(t, err)

	for _, d := range available {
		assert.NotEqual(t, "2024-06-10", d.Format("2006-01-02"))
	}
	require.Len(t, full, 1)
	assert.Equal(t, "2024-06-10", full[0].Format("2006-01-02"))
}

func TestAvailableHoursFiltersBooked(t *testing.T) {
	appts := new(mockAppointmentRepo)
	day := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	appts.On("BookedHours", mock.Anything, int64(1), day).Return([]int{9, 11}, nil)

	svc := newTestService(appts, new(mockDirectoryRepo), new(mockSearchRequestRepo), nil)

	hours, err := svc.AvailableHours(context.Background(), 1, day)
	require.NoError(t, err)
	assert.Equal(t, []int{10, 12, 13, 14}, hours)
}

func TestBookPassesSlotTime(t *testing.T) {
	appts := new(mockAppointmentRepo)
	day := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	at := time.Date(2024, 6, 10, 11, 0, 0, 0, time.UTC)
	appts.On("Book", mock.Anything, int64(5), int64(1), at, schedule.SlotsPerDay).Return(nil)

	svc := newTestService(appts, new(mockDirectoryRepo), new(mockSearchRequestRepo), nil)

	err := svc.Book(context.Background(), 5, 1, day, 11)
	require.NoError(t, err)
	appts.AssertExpectations(t)
}

func TestBookRejectsOutOfRangeHour(t *testing.T) {
	appts := new(mockAppointmentRepo)
	svc := newTestService(appts, new(mockDirectoryRepo), new(mockSearchRequestRepo), nil)

	day := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	assert.Error(t, svc.Book(context.Background(), 5, 1, day, 8))
	assert.Error(t, svc.Book(context.Background(), 5, 1, day, 15))
	appts.AssertNotCalled(t, "Book", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBookRejectsNonWorkingDay(t *testing.T) {
	appts := new(mockAppointmentRepo)
	svc := newTestService(appts, new(mockDirectoryRepo), new(mockSearchRequestRepo), nil)

	saturday := time.Date(2024, 6, 8, 0, 0, 0, 0, time.UTC)
	assert.Error(t, svc.Book(context.Background(), 5, 1, saturday, 10))

	holiday := time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC)
	assert.Error(t, svc.Book(context.Background(), 5, 1, holiday, 10))

	appts.AssertNotCalled(t, "Book", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBookPropagatesDayFull(t *testing.T) {
	appts := new(mockAppointmentRepo)
	day := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	appts.On("Book", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(repository.ErrDayFull)

	svc := newTestService(appts, new(mockDirectoryRepo), new(mockSearchRequestRepo), nil)

	err := svc.Book(context.Background(), 5, 1, day, 11)
	assert.ErrorIs(t, err, repository.ErrDayFull)
}

func TestCancelPublishesSlotFreed(t *testing.T) {
	appts := new(mockAppointmentRepo)
	pub := new(mockPublisher)

	at := time.Date(2024, 6, 10, 11, 0, 0, 0, time.UTC)
	appts.On("Get", mock.Anything, int64(3)).Return(&model.Appointment{
		ID:              3,
		UserID:          5,
		DoctorID:        1,
		AppointmentDate: at,
		IsActive:        true,
	}, nil)
	appts.On("Cancel", mock.Anything, int64(3), int64(5)).Return(nil)
	pub.On("Publish", mock.Anything, messaging.SlotFreedChannel, messaging.SlotFreedEvent{
		DoctorID: 1,
		Date:     "2024-06-10",
	}).Return(nil)

	svc := newTestService(appts, new(mockDirectoryRepo), new(mockSearchRequestRepo), pub)

	err := svc.Cancel(context.Background(), 5, 3)
	require.NoError(t, err)
	appts.AssertExpectations(t)
	pub.AssertExpectations(t)
}

func TestCancelNotFound(t *testing.T) {
	appts := new(mockAppointmentRepo)
	appts.On("Get", mock.Anything, int64(3)).Return(nil, repository.ErrNotFound)

	svc := newTestService(appts, new(mockDirectoryRepo), new(mockSearchRequestRepo), nil)

	err := svc.Cancel(context.Background(), 5, 3)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	appts.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything, mock.Anything)
}

func TestRequestNotification(t *testing.T) {
	reqs := new(mockSearchRequestRepo)
	date := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	reqs.On("Create", mock.Anything, int64(5), int64(1), date).Return(nil)

	svc := newTestService(new(mockAppointmentRepo), new(mockDirectoryRepo), reqs, nil)

	require.NoError(t, svc.RequestNotification(context.Background(), 5, 1, date))
	reqs.AssertExpectations(t)
}
