package model

import (
	"time"
)

// User role constants
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is a registered bot user keyed by Telegram chat id.
type User struct {
	ID               int64     `db:"id"`
	ChatID           int64     `db:"chat_id"`
	Username         *string   `db:"username"`
	FirstName        *string   `db:"first_name"`
	LastName         *string   `db:"last_name"`
	Patronymic       *string   `db:"patronymic"`
	PolicyNumber     *string   `db:"policy_number"`
	PassportNumber   *string   `db:"passport_number"`
	Role             string    `db:"role"`
	RegistrationDate time.Time `db:"registration_date"`
}

// ProfileComplete reports whether all registration fields were collected.
func (u *User) ProfileComplete() bool {
	return u.FirstName != nil && u.LastName != nil && u.Patronymic != nil &&
		u.PolicyNumber != nil && u.PassportNumber != nil
}

// Profile holds the fields collected during registration.
type Profile struct {
	FirstName      string `validate:"required,patient_name"`
	LastName       string `validate:"required,patient_name"`
	Patronymic     string `validate:"required,patient_name"`
	PolicyNumber   string `validate:"required,medical_policy"`
	PassportNumber string `validate:"required,passport"`
}
