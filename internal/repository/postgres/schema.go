package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Migrate creates the schema and tables on startup. Intentionally
// CREATE IF NOT EXISTS rather than versioned migrations.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	statements := []string{
		`CREATE SCHEMA IF NOT EXISTS medical_system`,
		`CREATE TABLE IF NOT EXISTS medical_system.doctor_categories (
			id SERIAL PRIMARY KEY,
			category VARCHAR(255) NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS medical_system.users (
			id SERIAL PRIMARY KEY,
			chat_id BIGINT NOT NULL UNIQUE,
			username VARCHAR(255),
			first_name VARCHAR(100),
			last_name VARCHAR(100),
			patronymic VARCHAR(100),
			policy_number VARCHAR(32),
			passport_number VARCHAR(16),
			role VARCHAR(16) NOT NULL DEFAULT 'user',
			registration_date TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS medical_system.hospitals (
			id SERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			address TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS medical_system.doctors (
			id SERIAL PRIMARY KEY,
			first_name VARCHAR(100) NOT NULL,
			last_name VARCHAR(100) NOT NULL,
			patronymic VARCHAR(100),
			experience_years INTEGER,
			category_id INTEGER NOT NULL,
			hospital_id INTEGER NOT NULL,
			FOREIGN KEY (category_id) REFERENCES medical_system.doctor_categories(id),
			FOREIGN KEY (hospital_id) REFERENCES medical_system.hospitals(id)
		)`,
		`CREATE TABLE IF NOT EXISTS medical_system.appointments (
			id SERIAL PRIMARY KEY,
			user_id INTEGER NOT NULL,
			doctor_id INTEGER NOT NULL,
			appointment_date TIMESTAMP NOT NULL,
			is_active BOOLEAN DEFAULT TRUE,
			FOREIGN KEY (user_id) REFERENCES medical_system.users(id),
			FOREIGN KEY (doctor_id) REFERENCES medical_system.doctors(id)
		)`,
		`CREATE TABLE IF NOT EXISTS medical_system.search_requests (
			id SERIAL PRIMARY KEY,
			user_id INTEGER NOT NULL,
			doctor_id INTEGER NOT NULL,
			target_date DATE NOT NULL,
			is_completed BOOLEAN DEFAULT FALSE,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES medical_system.users(id),
			FOREIGN KEY (doctor_id) REFERENCES medical_system.doctors(id)
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to run schema statement: %w", err)
		}
	}
	return nil
}
