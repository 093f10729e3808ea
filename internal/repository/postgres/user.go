package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/medzapis/talon-bot/internal/model"
	"github.com/medzapis/talon-bot/internal/repository"
)

func (r *userRepository) Upsert(ctx context.Context, chatID int64, username string) error {
	query := `
		INSERT INTO medical_system.users (chat_id, username)
		VALUES ($1, NULLIF($2, ''))
		ON CONFLICT (chat_id) DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, query, chatID, username)
	if err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}
	return nil
}

func (r *userRepository) GetByChatID(ctx context.Context, chatID int64) (*model.User, error) {
	query := `
		SELECT id, chat_id, username, first_name, last_name, patronymic,
			   policy_number, passport_number, role, registration_date
		FROM medical_system.users
		WHERE chat_id = $1
	`
	var user model.User
	err := r.db.GetContext(ctx, &user, query, chatID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, chatID int64, profile *model.Profile) error {
	query := `
		UPDATE medical_system.users
		SET first_name = $1, last_name = $2, patronymic = $3,
			policy_number = $4, passport_number = $5
		WHERE chat_id = $6
	`
	result, err := r.db.ExecContext(ctx, query,
		profile.FirstName,
		profile.LastName,
		profile.Patronymic,
		profile.PolicyNumber,
		profile.PassportNumber,
		chatID,
	)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
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
