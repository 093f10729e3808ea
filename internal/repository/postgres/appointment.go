package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/medzapis/talon-bot/internal/model"
	"github.com/medzapis/talon-bot/internal/repository"
)

// Book inserts the appointment only while the day is below capacity and the
// exact hour is free. Both checks run inside the INSERT itself, so two
// concurrent bookers for the last slot cannot both succeed.
func (r *appointmentRepository) Book(ctx context.Context, userID, doctorID int64, at time.Time, capacity int) error {
	query := `
		INSERT INTO medical_system.appointments (user_id, doctor_id, appointment_date)
		SELECT $1, $2, $3
		WHERE (
			SELECT COUNT(*) FROM medical_system.appointments
			WHERE doctor_id = $2
			  AND DATE(appointment_date) = DATE($3::timestamp)
			  AND is_active = TRUE
		) < $4
		AND NOT EXISTS (
			SELECT 1 FROM medical_system.appointments
			WHERE doctor_id = $2
			  AND appointment_date = $3
			  AND is_active = TRUE
		)
	`
	result, err := r.db.ExecContext(ctx, query, userID, doctorID, at, capacity)
	if err != nil {
		return fmt.Errorf("failed to book appointment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		count, err := r.CountActiveForDay(ctx, doctorID, at)
		if err != nil {
			return err
		}
		if count >= capacity {
			return repository.ErrDayFull
		}
		return repository.ErrSlotTaken
	}
	return nil
}

func (r *appointmentRepository) FullDates(ctx context.Context, doctorID int64, capacity int) ([]time.Time, error) {
	query := `
		SELECT DATE(appointment_date)
		FROM medical_system.appointments
		WHERE doctor_id = $1 AND is_active = TRUE
		GROUP BY DATE(appointment_date)
		HAVING COUNT(*) >= $2
	`
	var dates []time.Time
	if err := r.db.SelectContext(ctx, &dates, query, doctorID, capacity); err != nil {
		return nil, fmt.Errorf("failed to list full dates: %w", err)
	}
	return dates, nil
}

func (r *appointmentRepository) BookedHours(ctx context.Context, doctorID int64, day time.Time) ([]int, error) {
	query := `
		SELECT EXTRACT(HOUR FROM appointment_date)::int
		FROM medical_system.appointments
		WHERE DATE(appointment_date) = DATE($1::timestamp)
		  AND doctor_id = $2
		  AND is_active = TRUE
	`
	var hours []int
	if err := r.db.SelectContext(ctx, &hours, query, day, doctorID); err != nil {
		return nil, fmt.Errorf("failed to list booked hours: %w", err)
	}
	return hours, nil
}

func (r *appointmentRepository) CountActiveForDay(ctx context.Context, doctorID int64, day time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM medical_system.appointments
		WHERE doctor_id = $1
		  AND DATE(appointment_date) = DATE($2::timestamp)
		  AND is_active = TRUE
	`
	var count int
	if err := r.db.GetContext(ctx, &count, query, doctorID, day); err != nil {
		return 0, fmt.Errorf("failed to count active appointments: %w", err)
	}
	return count, nil
}

func (r *appointmentRepository) ListActiveForUser(ctx context.Context, userID int64) ([]*model.AppointmentInfo, error) {
	query := `
		SELECT a.id,
			   d.first_name AS doctor_first_name,
			   d.last_name AS doctor_last_name,
			   h.name AS hospital_name,
			   h.address AS hospital_address,
			   a.appointment_date
		FROM medical_system.appointments a
		JOIN medical_system.doctors d ON a.doctor_id = d.id
		JOIN medical_system.hospitals h ON d.hospital_id = h.id
		WHERE a.user_id = $1 AND a.is_active = TRUE
		ORDER BY a.appointment_date
	`
	var appointments []*model.AppointmentInfo
	if err := r.db.SelectContext(ctx, &appointments, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list user appointments: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) Get(ctx context.Context, id int64) (*model.Appointment, error) {
	query := `
		SELECT id, user_id, doctor_id, appointment_date, is_active
		FROM medical_system.appointments
		WHERE id = $1
	`
	var appointment model.Appointment
	err := r.db.GetContext(ctx, &appointment, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return &appointment, nil
}

// Cancel is a soft delete: the row stays for history, the flag excludes it
// from active lists and slot occupancy.
func (r *appointmentRepository) Cancel(ctx context.Context, id, userID int64) error {
	query := `
		UPDATE medical_system.appointments
		SET is_active = FALSE
		WHERE id = $1 AND user_id = $2 AND is_active = TRUE
	`
	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to cancel appointment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}
