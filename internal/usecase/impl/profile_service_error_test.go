package impl

import (
	"context"
	"testing"

	"tally/internal/domain/entity"
	domainerrors "tally/internal/domain/errors"
	"tally/internal/domain/repository"
	mockRepo "tally/internal/mocks/repository"
	"tally/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestProfileService_GetProfile_NotFound(t *testing.T) {
	fx := createTestProfileService(t)

	ctx := context.Background()
	userID := uuid.New()

	fx.onExecute(ctx, func(factory *mockRepo.MockRepositoryFactory) {
		mockUserRepo := mockRepo.NewMockUserRepository(t)
		factory.EXPECT().UserRepo().Return(mockUserRepo)
		mockUserRepo.EXPECT().FindByID(ctx, userID).Return(nil, repository.ErrUserNotFound)
	})

	user, err := fx.service.GetProfile(ctx, userID)

	assert.Error(t, err)
	assert.Nil(t, user)
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
}

func TestProfileService_UpdateProfile_UsernameTaken(t *testing.T) {
	fx := createTestProfileService(t)

	ctx := context.Background()
	userID := uuid.New()
	newUsername := "taken"
	input := &usecase.UpdateProfileInput{Username: &newUsername}

	existingUser := &entity.User{ID: userID, Username: "alice"}
	otherUser := &entity.User{ID: uuid.New(), Username: "taken"}

	fx.onExecute(ctx, func(factory *mockRepo.MockRepositoryFactory) {
		mockUserRepo := mockRepo.NewMockUserRepository(t)
		factory.EXPECT().UserRepo().Return(mockUserRepo)

		mockUserRepo.EXPECT().FindByID(ctx, userID).Return(existingUser, nil)
		mockUserRepo.EXPECT().FindByUsername(ctx, newUsername).Return(otherUser, nil)
	})

	updated, err := fx.service.UpdateProfile(ctx, userID, input)

	assert.Error(t, err)
	assert.Nil(t, updated)
	assert.True(t, errors.Is(err, domainerrors.ErrUsernameTaken))
}

func TestProfileService_UpdateProfile_EmailTaken(t *testing.T) {
	fx := createTestProfileService(t)

	ctx := context.Background()
	userID := uuid.New()
	newEmail := "taken@example.com"
	input := &usecase.UpdateProfileInput{Email: &newEmail}

	existingUser := &entity.User{ID: userID, Email: "alice@example.com"}
	otherUser := &entity.User{ID: uuid.New(), Email: newEmail}

	fx.onExecute(ctx, func(factory *mockRepo.MockRepositoryFactory) {
		mockUserRepo := mockRepo.NewMockUserRepository(t)
		factory.EXPECT().UserRepo().Return(mockUserRepo)

		mockUserRepo.EXPECT().FindByID(ctx, userID).Return(existingUser, nil)
		mockUserRepo.EXPECT().FindByEmail(ctx, newEmail).Return(otherUser, nil)
	})

	updated, err := fx.service.UpdateProfile(ctx, userID, input)

	assert.Error(t, err)
	assert.Nil(t, updated)
	assert.True(t, errors.Is(err, domainerrors.ErrEmailTaken))
}

func TestProfileService_ChangePassword_Mismatch(t *testing.T) {
	fx := createTestProfileService(t)

	ctx := context.Background()
	input := &usecase.ChangePasswordInput{
		CurrentPassword: "Old!Pass123",
		NewPassword:     "New!Pass456",
		ConfirmPassword: "Other!Pass789",
	}

	err := fx.service.ChangePassword(ctx, uuid.New(), input)

	assert.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestProfileService_ChangePassword_WrongCurrentPassword(t *testing.T) {
	fx := createTestProfileService(t)

	ctx := context.Background()
	userID := uuid.New()
	input := &usecase.ChangePasswordInput{
		CurrentPassword: "Wrong!Pass",
		NewPassword:     "New!Pass456",
		ConfirmPassword: "New!Pass456",
	}

	existingUser := &entity.User{ID: userID, PasswordHash: "old-hash"}

	fx.hasher.EXPECT().ValidatePasswordStrength("New!Pass456").Return(nil)
	fx.hasher.EXPECT().Check("Wrong!Pass", "old-hash").Return(false)

	fx.onExecute(ctx, func(factory *mockRepo.MockRepositoryFactory) {
		mockUserRepo := mockRepo.NewMockUserRepository(t)
		factory.EXPECT().UserRepo().Return(mockUserRepo)
		mockUserRepo.EXPECT().FindByID(ctx, userID).Return(existingUser, nil)
	})

	err := fx.service.ChangePassword(ctx, userID, input)

	assert.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestProfileService_ChangePassword_WeakNewPassword(t *testing.T) {
	fx := createTestProfileService(t)

	ctx := context.Background()
	input := &usecase.ChangePasswordInput{
		CurrentPassword: "Old!Pass123",
		NewPassword:     "weak",
		ConfirmPassword: "weak",
	}

	fx.hasher.EXPECT().
		ValidatePasswordStrength("weak").
		Return(errors.New("password must be at least 8 characters"))

	err := fx.service.ChangePassword(ctx, uuid.New(), input)

	assert.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrPasswordStrength))
}
