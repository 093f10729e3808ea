package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/medzapis/talon-bot/internal/model"
	"github.com/medzapis/talon-bot/internal/repository"
)

func (r *directoryRepository) ListCategories(ctx context.Context) ([]string, error) {
	query := `SELECT category FROM medical_system.doctor_categories ORDER BY category`

	var categories []string
	if err := r.db.SelectContext(ctx, &categories, query); err != nil {
		return nil, fmt.Errorf("failed to list doctor categories: %w", err)
	}
	return categories, nil
}

// Hospitals that have at least one doctor of the given category.
func (r *directoryRepository) ListHospitalsByCategory(ctx context.Context, category string) ([]*model.Hospital, error) {
	query := `
		SELECT id, name, address
		FROM medical_system.hospitals
		WHERE id IN (
			SELECT DISTINCT hospital_id
			FROM medical_system.doctors
			WHERE category_id = (
				SELECT id FROM medical_system.doctor_categories WHERE category = $1
			)
		)
	`
	var hospitals []*model.Hospital
	if err := r.db.SelectContext(ctx, &hospitals, query, category); err != nil {
		return nil, fmt.Errorf("failed to list hospitals by category: %w", err)
	}
	return hospitals, nil
}

func (r *directoryRepository) ListDoctorsByCategoryAndHospital(ctx context.Context, category string, hospitalID int64) ([]*model.Doctor, error) {
	query := `
		SELECT id, first_name, last_name, patronymic, experience_years,
			   category_id, hospital_id
		FROM medical_system.doctors
		WHERE category_id = (
			SELECT id FROM medical_system.doctor_categories WHERE category = $1
		) AND hospital_id = $2
	`
	var doctors []*model.Doctor
	if err := r.db.SelectContext(ctx, &doctors, query, category, hospitalID); err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return doctors, nil
}

func (r *directoryRepository) GetDoctor(ctx context.Context, id int64) (*model.Doctor, error) {
	query := `
		SELECT id, first_name, last_name, patronymic, experience_years,
			   category_id, hospital_id
		FROM medical_system.doctors
		WHERE id = $1
	`
	var doctor model.Doctor
	err := r.db.GetContext(ctx, &doctor, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}
	return &doctor, nil
}

func (r *directoryRepository) GetHospital(ctx context.Context, id int64) (*model.Hospital, error) {
	query := `
		SELECT id, name, address
		FROM medical_system.hospitals
		WHERE id = $1
	`
	var hospital model.Hospital
	err := r.db.GetContext(ctx, &hospital, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get hospital: %w", err)
	}
	return &hospital, nil
}
