package registration

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/medzapis/talon-bot/internal/model"
	"github.com/medzapis/talon-bot/internal/repository"
	"github.com/medzapis/talon-bot/pkg/validator"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Upsert(ctx context.Context, chatID int64, username string) error {
	args := m.Called(ctx, chatID, username)
	return args.Error(0)
}

func (m *mockUserRepo) GetByChatID(ctx context.Context, chatID int64) (*model.User, error) {
	args := m.Called(ctx, chatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserRepo) UpdateProfile(ctx context.Context, chatID int64, profile *model.Profile) error {
	args := m.Called(ctx, chatID, profile)
	return args.Error(0)
}

func newTestService(t *testing.T, users *mockUserRepo) *Service {
	t.Helper()
	v, err := validator.New()
	require.NoError(t, err)
	l := zerolog.Nop()
	return NewService(users, v, &l)
}

func TestEnsureUserIsIdempotent(t *testing.T) {
	users := new(mockUserRepo)
	// the repository treats a duplicate chat id as a no-op
	users.On("Upsert", mock.Anything, int64(42), "ivan").Return(nil).Twice()

	svc := newTestService(t, users)

	require.NoError(t, svc.EnsureUser(context.Background(), 42, "ivan"))
	require.NoError(t, svc.EnsureUser(context.Background(), 42, "ivan"))
	users.AssertExpectations(t)
}

func TestSaveProfileValidates(t *testing.T) {
	users := new(mockUserRepo)
	svc := newTestService(t, users)

	bad := &model.Profile{
		FirstName:      "Иван",
		LastName:       "Иванов",
		Patronymic:     "Иванович",
		PolicyNumber:   "123", // too short
		PassportNumber: "1234 567890",
	}
	assert.Error(t, svc.SaveProfile(context.Background(), 42, bad))
	users.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything, mock.Anything)
}

func TestSaveProfilePersists(t *testing.T) {
	users := new(mockUserRepo)
	profile := &model.Profile{
		FirstName:      "Иван",
		LastName:       "Иванов",
		Patronymic:     "Иванович",
		PolicyNumber:   "1234567890",
		PassportNumber: "1234 567890",
	}
	users.On("UpdateProfile", mock.Anything, int64(42), profile).Return(nil)

	svc := newTestService(t, users)

	require.NoError(t, svc.SaveProfile(context.Background(), 42, profile))
	users.AssertExpectations(t)
}

func TestSaveProfileUnknownUser(t *testing.T) {
	users := new(mockUserRepo)
	profile := &model.Profile{
		FirstName:      "Иван",
		LastName:       "Иванов",
		Patronymic:     "Иванович",
		PolicyNumber:   "1234567890",
		PassportNumber: "1234 567890",
	}
	users.On("UpdateProfile", mock.Anything, int64(42), profile).Return(repository.ErrNotFound)

	svc := newTestService(t, users)

	assert.ErrorIs(t, svc.SaveProfile(context.Background(), 42, profile), repository.ErrNotFound)
}

func TestFieldValidators(t *testing.T) {
	svc := newTestService(t, new(mockUserRepo))

	assert.True(t, svc.ValidName("Мария"))
	assert.False(t, svc.ValidName("Мария1"))
	assert.True(t, svc.ValidMedicalPolicy("9876543210123"))
	assert.False(t, svc.ValidMedicalPolicy("abc"))
	assert.True(t, svc.ValidPassport("4509 123456"))
	assert.False(t, svc.ValidPassport("4509123"))
}
