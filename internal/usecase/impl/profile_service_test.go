package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"tally/internal/domain/entity"
	"tally/internal/domain/repository"
	mockRepo "tally/internal/mocks/repository"
	mockService "tally/internal/mocks/service"
	"tally/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// profileServiceFixtures holds all test dependencies for profile service tests.
type profileServiceFixtures struct {
	t         *testing.T
	service   usecase.ProfileUsecase
	txManager *mockRepo.MockTransactionManager
	hasher    *mockService.MockPasswordHasher
}

func createTestProfileService(t *testing.T) profileServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	hasher := mockService.NewMockPasswordHasher(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc := NewProfileService(ProfileServiceParams{
		TxManager: txManager,
		Hasher:    hasher,
		Logger:    logger,
	})

	return profileServiceFixtures{
		t:         t,
		service:   svc,
		txManager: txManager,
		hasher:    hasher,
	}
}

func (f *profileServiceFixtures) onExecute(ctx context.Context, setup func(factory *mockRepo.MockRepositoryFactory)) {
	factory := mockRepo.NewMockRepositoryFactory(f.t)
	setup(factory)

	f.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			return fn(factory)
		})
}

func TestProfileService_GetProfile_Success(t *testing.T) {
	fx := createTestProfileService(t)

	ctx := context.Background()
	userID := uuid.New()
	expectedUser := &entity.User{
		ID:       userID,
		Username: "alice",
		Email:    "alice@example.com",
	}

	fx.onExecute(ctx, func(factory *mockRepo.MockRepositoryFactory) {
		mockUserRepo := mockRepo.NewMockUserRepository(t)
		factory.EXPECT().UserRepo().Return(mockUserRepo)
		mockUserRepo.EXPECT().FindByID(ctx, userID).Return(expectedUser, nil)
	})

	user, err := fx.service.GetProfile(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, expectedUser, user)
}

func TestProfileService_UpdateProfile_Success(t *testing.T) {
	fx := createTestProfileService(t)

	ctx := context.Background()
	userID := uuid.New()
	newFirst := "Alicia"
	newEmail := "alicia@example.com"
	input := &usecase.UpdateProfileInput{
		FirstName: &newFirst,
		Email:     &newEmail,
	}

	existingUser := &entity.User{
		ID:        userID,
		Username:  "alice",
		Email:     "alice@example.com",
		FirstName: "Alice",
	}

	fx.onExecute(ctx, func(factory *mockRepo.MockRepositoryFactory) {
		mockUserRepo := mockRepo.NewMockUserRepository(t)
		factory.EXPECT().UserRepo().Return(mockUserRepo)

		mockUserRepo.EXPECT().FindByID(ctx, userID).Return(existingUser, nil)
		mockUserRepo.EXPECT().FindByEmail(ctx, newEmail).Return(nil, repository.ErrUserNotFound)
		mockUserRepo.EXPECT().Update(ctx, mock.AnythingOfType("*entity.User")).Return(nil)
	})

	updated, err := fx.service.UpdateProfile(ctx, userID, input)

	require.NoError(t, err)
	assert.Equal(t, "Alicia", updated.FirstName)
	assert.Equal(t, newEmail, updated.Email)
	assert.Equal(t, "alice", updated.Username)
}

func TestProfileService_UpdateProfile_SameEmailSkipsCheck(t *testing.T) {
	fx := createTestProfileService(t)

	ctx := context.Background()
	userID := uuid.New()
	sameEmail := "alice@example.com"
	input := &usecase.UpdateProfileInput{Email: &sameEmail}

	existingUser := &entity.User{
		ID:    userID,
		Email: sameEmail,
	}

	fx.onExecute(ctx, func(factory *mockRepo.MockRepositoryFactory) {
		mockUserRepo := mockRepo.NewMockUserRepository(t)
		factory.EXPECT().UserRepo().Return(mockUserRepo)

		mockUserRepo.EXPECT().FindByID(ctx, userID).Return(existingUser, nil)
		mockUserRepo.EXPECT().Update(ctx, mock.AnythingOfType("*entity.User")).Return(nil)
	})

	_, err := fx.service.UpdateProfile(ctx, userID, input)

	require.NoError(t, err)
}

func TestProfileService_ChangePassword_Success(t *testing.T) {
	fx := createTestProfileService(t)

	ctx := context.Background()
	userID := uuid.New()
	input := &usecase.ChangePasswordInput{
		CurrentPassword: "Old!Pass123",
		NewPassword:     "New!Pass456",
		ConfirmPassword: "New!Pass456",
	}

	existingUser := &entity.User{
		ID:           userID,
		PasswordHash: "old-hash",
	}

	fx.hasher.EXPECT().ValidatePasswordStrength("New!Pass456").Return(nil)
	fx.hasher.EXPECT().Check("Old!Pass123", "old-hash").Return(true)
	fx.hasher.EXPECT().Hash("New!Pass456").Return("new-hash", nil)

	fx.onExecute(ctx, func(factory *mockRepo.MockRepositoryFactory) {
		mockUserRepo := mockRepo.NewMockUserRepository(t)
		mockTokenRepo := mockRepo.NewMockRefreshTokenRepository(t)
		factory.EXPECT().UserRepo().Return(mockUserRepo)
		factory.EXPECT().RefreshTokenRepo().Return(mockTokenRepo)

		mockUserRepo.EXPECT().FindByID(ctx, userID).Return(existingUser, nil)
		mockUserRepo.EXPECT().
			Update(ctx, mock.AnythingOfType("*entity.User")).
			Run(func(ctx context.Context, user *entity.User) {
				assert.Equal(t, "new-hash", user.PasswordHash)
			}).
			Return(nil)
		mockTokenRepo.EXPECT().DeleteByUserID(ctx, userID).Return(nil)
	})

	err := fx.service.ChangePassword(ctx, userID, input)

	require.NoError(t, err)
}
