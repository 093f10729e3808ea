package registration

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/medzapis/talon-bot/internal/model"
	"github.com/medzapis/talon-bot/internal/repository"
	"github.com/medzapis/talon-bot/pkg/validator"
)

// Service owns user identity and the five-field patient profile.
type Service struct {
	users    repository.UserRepository
	validate *validator.Validator
	logger   *zerolog.Logger
}

func NewService(users repository.UserRepository, validate *validator.Validator, logger *zerolog.Logger) *Service {
	return &Service{
		users:    users,
		validate: validate,
		logger:   logger,
	}
}

// EnsureUser creates the user row on first contact. Registering the same
// chat id twice is a no-op.
func (s *Service) EnsureUser(ctx context.Context, chatID int64, username string) error {
	if err := s.users.Upsert(ctx, chatID, username); err != nil {
		return fmt.Errorf("failed to ensure user: %w", err)
	}
	return nil
}

func (s *Service) User(ctx context.Context, chatID int64) (*model.User, error) {
	return s.users.GetByChatID(ctx, chatID)
}

// SaveProfile validates and persists the collected registration fields.
func (s *Service) SaveProfile(ctx context.Context, chatID int64, profile *model.Profile) error {
	if err := s.validate.Struct(profile); err != nil {
		return fmt.Errorf("invalid profile: %w", err)
	}
	if err := s.users.UpdateProfile(ctx, chatID, profile); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	s.logger.Info().Int64("chat_id", chatID).Msg("patient profile saved")
	return nil
}

// Field validators for the step-by-step collection flow.

func (s *Service) ValidName(v string) bool          { return s.validate.Name(v) }
func (s *Service) ValidMedicalPolicy(v string) bool { return s.validate.MedicalPolicy(v) }
func (s *Service) ValidPassport(v string) bool      { return s.validate.Passport(v) }
