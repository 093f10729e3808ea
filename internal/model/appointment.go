package model

import (
	"time"
)

// Appointment is one booked hour slot. Cancellation flips IsActive,
// the row is never deleted.
type Appointment struct {
	ID              int64     `db:"id"`
	UserID          int64     `db:"user_id"`
	DoctorID        int64     `db:"doctor_id"`
	AppointmentDate time.Time `db:"appointment_date"`
	IsActive        bool      `db:"is_active"`
}

// AppointmentInfo is an active appointment joined with the doctor
// and hospital, as shown in the "my appointments" list.
type AppointmentInfo struct {
	ID              int64     `db:"id"`
	DoctorFirstName string    `db:"doctor_first_name"`
	DoctorLastName  string    `db:"doctor_last_name"`
	HospitalName    string    `db:"hospital_name"`
	HospitalAddress *string   `db:"hospital_address"`
	AppointmentDate time.Time `db:"appointment_date"`
}

// SearchRequest is a "notify me when a slot frees up" subscription.
type SearchRequest struct {
	ID          int64     `db:"id"`
	UserID      int64     `db:"user_id"`
	DoctorID    int64     `db:"doctor_id"`
	TargetDate  time.Time `db:"target_date"`
	IsCompleted bool      `db:"is_completed"`
	CreatedAt   time.Time `db:"created_at"`
}

// PendingSearchRequest is a search request joined with the subscriber's
// chat id and the doctor's name, as consumed by the notifier.
type PendingSearchRequest struct {
	ID              int64     `db:"id"`
	ChatID          int64     `db:"chat_id"`
	DoctorID        int64     `db:"doctor_id"`
	DoctorFirstName string    `db:"doctor_first_name"`
	DoctorLastName  string    `db:"doctor_last_name"`
	TargetDate      time.Time `db:"target_date"`
}
