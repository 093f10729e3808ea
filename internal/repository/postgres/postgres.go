package postgres

import (
	"github.com/jmoiron/sqlx"

	"github.com/medzapis/talon-bot/internal/repository"
)

type userRepository struct {
	db *sqlx.DB
}

type directoryRepository struct {
	db *sqlx.DB
}

type appointmentRepository struct {
	db *sqlx.DB
}

type searchRequestRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func NewDirectoryRepository(db *sqlx.DB) repository.DirectoryRepository {
	return &directoryRepository{db: db}
}

func NewAppointmentRepository(db *sqlx.DB) repository.AppointmentRepository {
	return &appointmentRepository{db: db}
}

func NewSearchRequestRepository(db *sqlx.DB) repository.SearchRequestRepository {
	return &searchRequestRepository{db: db}
}
