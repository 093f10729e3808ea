package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/medzapis/talon-bot/internal/model"
	"github.com/medzapis/talon-bot/internal/repository"
)

func (r *searchRequestRepository) Create(ctx context.Context, userID, doctorID int64, targetDate time.Time) error {
	query := `
		INSERT INTO medical_system.search_requests (user_id, doctor_id, target_date)
		SELECT $1, $2, $3
		WHERE NOT EXISTS (
			SELECT 1 FROM medical_system.search_requests
			WHERE user_id = $1 AND doctor_id = $2 AND target_date = $3
			  AND is_completed = FALSE
		)
	`
	_, err := r.db.ExecContext(ctx, query, userID, doctorID, targetDate)
	if err != nil {
		return fmt.Errorf("failed to create search request: %w", err)
	}
	return nil
}

func (r *searchRequestRepository) ListPending(ctx context.Context) ([]*model.PendingSearchRequest, error) {
	query := `
		SELECT s.id,
			   u.chat_id,
			   s.doctor_id,
			   d.first_name AS doctor_first_name,
			   d.last_name AS doctor_last_name,
			   s.target_date
		FROM medical_system.search_requests s
		JOIN medical_system.users u ON s.user_id = u.id
		JOIN medical_system.doctors d ON s.doctor_id = d.id
		WHERE s.is_completed = FALSE
		ORDER BY s.created_at
	`
	var requests []*model.PendingSearchRequest
	if err := r.db.SelectContext(ctx, &requests, query); err != nil {
		return nil, fmt.Errorf("failed to list pending search requests: %w", err)
	}
	return requests, nil
}

func (r *searchRequestRepository) MarkCompleted(ctx context.Context, id int64) error {
	query := `
		UPDATE medical_system.search_requests
		SET is_completed = TRUE
		WHERE id = $1 AND is_completed = FALSE
	`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to mark search request completed: %w", err)
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
