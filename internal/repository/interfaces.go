package repository

import (
	"context"
	"errors"
	"time"

	"github.com/medzapis/talon-bot/internal/model"
)

// Sentinel errors callers branch on.
var (
	// ErrNotFound is returned when a single-row lookup matches nothing.
	ErrNotFound = errors.New("not found")
	// ErrDayFull is returned when a booking would exceed the per-day capacity.
	ErrDayFull = errors.New("no free slots left on this day")
	// ErrSlotTaken is returned when the exact hour is already booked.
	ErrSlotTaken = errors.New("slot already taken")
)

// All repository interfaces in one file
type (
	// UserRepository handles bot users and their patient profiles.
	UserRepository interface {
		// Upsert inserts the user if the chat id is new; a duplicate is a no-op.
		Upsert(ctx context.Context, chatID int64, username string) error
		GetByChatID(ctx context.Context, chatID int64) (*model.User, error)
		UpdateProfile(ctx context.Context, chatID int64, profile *model.Profile) error
	}

	// DirectoryRepository serves the seeded category/hospital/doctor catalog.
	DirectoryRepository interface {
		ListCategories(ctx context.Context) ([]string, error)
		ListHospitalsByCategory(ctx context.Context, category string) ([]*model.Hospital, error)
		ListDoctorsByCategoryAndHospital(ctx context.Context, category string, hospitalID int64) ([]*model.Doctor, error)
		GetDoctor(ctx context.Context, id int64) (*model.Doctor, error)
		GetHospital(ctx context.Context, id int64) (*model.Hospital, error)
	}

	AppointmentRepository interface {
		// Book inserts the appointment only if the day still has capacity and
		// the hour is free, in one statement. Returns ErrDayFull or ErrSlotTaken.
		Book(ctx context.Context, userID, doctorID int64, at time.Time, capacity int) error
		// FullDates lists calendar days where the doctor's active bookings
		// have reached capacity.
		FullDates(ctx context.Context, doctorID int64, capacity int) ([]time.Time, error)
		// BookedHours lists hour components of active bookings for the day.
		BookedHours(ctx context.Context, doctorID int64, day time.Time) ([]int, error)
		CountActiveForDay(ctx context.Context, doctorID int64, day time.Time) (int, error)
		ListActiveForUser(ctx context.Context, userID int64) ([]*model.AppointmentInfo, error)
		Get(ctx context.Context, id int64) (*model.Appointment, error)
		// Cancel soft-deletes the user's active appointment.
		Cancel(ctx context.Context, id, userID int64) error
	}

	SearchRequestRepository interface {
		Create(ctx context.Context, userID, doctorID int64, targetDate time.Time) error
		ListPending(ctx context.Context) ([]*model.PendingSearchRequest, error)
		MarkCompleted(ctx context.Context, id int64) error
	}
)
