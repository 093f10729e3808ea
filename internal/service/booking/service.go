package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/medzapis/talon-bot/internal/model"
	"github.com/medzapis/talon-bot/internal/repository"
	"github.com/medzapis/talon-bot/internal/schedule"
	"github.com/medzapis/talon-bot/pkg/messaging"
)

// Service owns the browse-and-book flow: catalog reads, slot availability,
// booking, cancellation and notify-me requests.
type Service struct {
	appointments repository.AppointmentRepository
	directory    repository.DirectoryRepository
	requests     repository.SearchRequestRepository
	publisher    messaging.Publisher
	logger       *zerolog.Logger
}

func NewService(
	appointments repository.AppointmentRepository,
	directory repository.DirectoryRepository,
	requests repository.SearchRequestRepository,
	publisher messaging.Publisher,
	logger *zerolog.Logger,
) *Service {
	return &Service{
		appointments: appointments,
		directory:    directory,
		requests:     requests,
		publisher:    publisher,
		logger:       logger,
	}
}

func (s *Service) Categories(ctx context.Context) ([]string, error) {
	return s.directory.ListCategories(ctx)
}

func (s *Service) HospitalsByCategory(ctx context.Context, category string) ([]*model.Hospital, error) {
	return s.directory.ListHospitalsByCategory(ctx, category)
}

func (s *Service) DoctorsByCategoryAndHospital(ctx context.Context, category string, hospitalID int64) ([]*model.Doctor, error) {
	return s.directory.ListDoctorsByCategoryAndHospital(ctx, category, hospitalID)
}

func (s *Service) Doctor(ctx context.Context, id int64) (*model.Doctor, error) {
	return s.directory.GetDoctor(ctx, id)
}

func (s *Service) Hospital(ctx context.Context, id int64) (*model.Hospital, error) {
	return s.directory.GetHospital(ctx, id)
}

// AvailableDays splits the doctor's working-day window into days that still
// have capacity and days already fully booked.
func (s *Service) AvailableDays(ctx context.Context, doctorID int64, now time.Time) (available, full []time.Time, err error) {
	fullDates, err := s.appointments.FullDates(ctx, doctorID, schedule.SlotsPerDay)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load full dates: %w", err)
	}

	isFull := make(map[string]bool, len(fullDates))
	for _, d := range fullDates {
		isFull[d.Format("2006-01-02")] = true
	}

	for _, d := range schedule.WorkingDays(now) {
		if isFull[d.Format("2006-01-02")] {
			full = append(full, d)
		} else {
			available = append(available, d)
		}
	}
	return available, full, nil
}

// AvailableHours returns the free hour buckets of the day.
func (s *Service) AvailableHours(ctx context.Context, doctorID int64, day time.Time) ([]int, error) {
	booked, err := s.appointments.BookedHours(ctx, doctorID, day)
	if err != nil {
		return nil, fmt.Errorf("failed to load booked hours: %w", err)
	}
	return schedule.FreeHours(booked), nil
}

// Book creates the appointment. Returns repository.ErrDayFull or
// repository.ErrSlotTaken when the slot is gone.
func (s *Service) Book(ctx context.Context, userID, doctorID int64, day time.Time, hour int) error {
	if hour < schedule.OpenHour || hour > schedule.LastHour {
		return fmt.Errorf("hour %d is outside working hours", hour)
	}
	if !schedule.IsWorkingDay(day) {
		return fmt.Errorf("%s is not a working day", day.Format("2006-01-02"))
	}

	at := schedule.SlotTime(day, hour)
	if err := s.appointments.Book(ctx, userID, doctorID, at, schedule.SlotsPerDay); err != nil {
		return err
	}

	s.logger.Info().
		Int64("user_id", userID).
		Int64("doctor_id", doctorID).
		Time("at", at).
		Msg("appointment booked")
	return nil
}

func (s *Service) ActiveAppointments(ctx context.Context, userID int64) ([]*model.AppointmentInfo, error) {
	return s.appointments.ListActiveForUser(ctx, userID)
}

func (s *Service) Appointment(ctx context.Context, id int64) (*model.Appointment, error) {
	return s.appointments.Get(ctx, id)
}

// Cancel soft-deletes the appointment and announces the freed slot so the
// notifier can re-check pending search requests right away.
func (s *Service) Cancel(ctx context.Context, userID, appointmentID int64) error {
	appointment, err := s.appointments.Get(ctx, appointmentID)
	if err != nil {
		return err
	}

	if err := s.appointments.Cancel(ctx, appointmentID, userID); err != nil {
		return err
	}

	s.logger.Info().
		Int64("user_id", userID).
		Int64("appointment_id", appointmentID).
		Msg("appointment cancelled")

	if s.publisher != nil {
		event := messaging.SlotFreedEvent{
			DoctorID: appointment.DoctorID,
			Date:     appointment.AppointmentDate.Format("2006-01-02"),
		}
		if err := s.publisher.Publish(ctx, messaging.SlotFreedChannel, event); err != nil {
			// notification is best-effort, the cancellation already happened
			s.logger.Warn().Err(err).Msg("failed to publish slot_freed event")
		}
	}
	return nil
}

// RequestNotification subscribes the user to a freed-slot notification for
// the doctor and day.
func (s *Service) RequestNotification(ctx context.Context, userID, doctorID int64, targetDate time.Time) error {
	if err := s.requests.Create(ctx, userID, doctorID, targetDate); err != nil {
		return err
	}
	s.logger.Info().
		Int64("user_id", userID).
		Int64("doctor_id", doctorID).
		Str("target_date", targetDate.Format("2006-01-02")).
		Msg("search request created")
	return nil
}
