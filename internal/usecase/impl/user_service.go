// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"time"

	deliverycontext "tally/internal/delivery/context"
	"tally/internal/domain/entity"
	domainerrors "tally/internal/domain/errors"
	"tally/internal/domain/repository"
	"tally/internal/domain/service"
	"tally/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	blacklist    service.TokenBlacklist
	logger       *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Blacklist    service.TokenBlacklist
	Logger       *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		txManager:    params.TxManager,
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		blacklist:    params.Blacklist,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// hashRefreshToken derives the storage key for a refresh token. Only the
// digest is persisted, so a leaked database dump cannot be replayed.
func hashRefreshToken(token string) string {
	sum := sha256.Sum256([]byte(token))

	return hex.EncodeToString(sum[:])
}

// Register orchestrates the complete user registration process.
func (srv *userService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	srv.log(ctx).Info("Starting registration", slog.String("username", input.Username), slog.String("email", input.Email))

	if input.Password != input.ConfirmPassword {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("password confirmation does not match")
	}

	if err := srv.hasher.ValidatePasswordStrength(input.Password); err != nil {
		return nil, domainerrors.ErrPasswordStrength.WrapMessage(err.Error())
	}

	passwordHash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
	}

	var registeredUser *entity.User
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		if _, err := userRepo.FindByUsername(ctx, input.Username); err == nil {
			return domainerrors.ErrUsernameTaken
		} else if !errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(err, "failed to check username availability")
		}

		if _, err := userRepo.FindByEmail(ctx, input.Email); err == nil {
			return domainerrors.ErrEmailTaken
		} else if !errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(err, "failed to check email availability")
		}

		newUser := &entity.User{
			Username:     input.Username,
			Email:        input.Email,
			FirstName:    input.FirstName,
			LastName:     input.LastName,
			PasswordHash: passwordHash,
			IsActive:     true,
		}

		// The unique indexes arbitrate concurrent registrations; the repo maps
		// a constraint violation back to the taken error.
		if err := userRepo.Create(ctx, newUser); err != nil {
			return errors.Wrap(err, "failed to create user")
		}

		registeredUser = newUser

		return nil
	})

	if err != nil {
		srv.log(ctx).Error("Failed to execute registration transaction", slog.String("username", input.Username), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("userID", registeredUser.ID))

	return &usecase.RegisterOutput{User: registeredUser}, nil
}

// Login verifies the credentials and issues a fresh token pair.
// Unknown usernames and wrong passwords produce the same error so the
// response never reveals which part of the credentials was wrong.
func (srv *userService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	srv.log(ctx).Info("Login attempt", slog.String("username", input.Username))

	user, err := srv.userRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}

		return nil, errors.Wrap(err, "failed to find user by username")
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, domainerrors.ErrInvalidCredentials
	}

	output, err := srv.issueSession(ctx, user)
	if err != nil {
		srv.log(ctx).Error("Failed to issue session", slog.Any("userID", user.ID), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("Login completed", slog.Any("userID", user.ID))

	return output, nil
}

// RefreshToken rotates a session: the presented refresh token is consumed and
// replaced by a brand new token pair. A refresh token can be used exactly once.
func (srv *userService) RefreshToken(ctx context.Context, input *usecase.RefreshTokenInput) (*usecase.LoginOutput, error) {
	claims, err := srv.tokenService.Verify(input.RefreshToken, service.TokenKindRefresh)
	if err != nil {
		return nil, domainerrors.ErrRefreshTokenInvalid
	}

	tokenHash := hashRefreshToken(input.RefreshToken)

	var user *entity.User
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		refreshTokenRepo := repoFactory.RefreshTokenRepo()
		userRepo := repoFactory.UserRepo()

		stored, err := refreshTokenRepo.FindByHash(ctx, tokenHash)
		if err != nil {
			if errors.Is(err, repository.ErrRefreshTokenNotFound) || errors.Is(err, repository.ErrRefreshTokenExpired) {
				return domainerrors.ErrRefreshTokenInvalid
			}

			return errors.Wrap(err, "failed to find refresh token")
		}

		if stored.UserID != claims.UserID {
			return domainerrors.ErrRefreshTokenInvalid
		}

		foundUser, err := userRepo.FindByID(ctx, stored.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrRefreshTokenInvalid
			}

			return errors.Wrap(err, "failed to find user for refresh token")
		}

		if !foundUser.IsActive {
			return domainerrors.ErrRefreshTokenInvalid
		}

		if err := refreshTokenRepo.DeleteByHash(ctx, tokenHash); err != nil {
			return errors.Wrap(err, "failed to consume refresh token")
		}

		user = foundUser

		return nil
	})

	if err != nil {
		srv.log(ctx).Warn("Refresh token rotation rejected", slog.Any("error", err))

		return nil, err
	}

	output, err := srv.issueSession(ctx, user)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Debug("Session rotated", slog.Any("userID", user.ID))

	return output, nil
}

// Logout revokes the presented access token and deletes the session's
// refresh token. The access token stays revoked until its natural expiry.
func (srv *userService) Logout(ctx context.Context, input *usecase.LogoutInput) error {
	claims, err := srv.tokenService.Verify(input.AccessToken, service.TokenKindAccess)
	if err != nil {
		return domainerrors.ErrUnauthorized.WrapMessage("access token is not valid")
	}

	if ttl := time.Until(claims.ExpiresAt); ttl > 0 {
		if err := srv.blacklist.Add(ctx, claims.TokenID, ttl); err != nil {
			srv.log(ctx).Error("Failed to blacklist access token", slog.String("tokenID", claims.TokenID), slog.Any("error", err))

			return errors.Wrap(err, "failed to revoke access token")
		}
	}

	if input.RefreshToken != "" {
		tokenHash := hashRefreshToken(input.RefreshToken)
		if err := srv.refreshTokenRepoDelete(ctx, tokenHash); err != nil {
			return err
		}
	}

	srv.log(ctx).Debug("Logout completed", slog.Any("userID", claims.UserID))

	return nil
}

func (srv *userService) refreshTokenRepoDelete(ctx context.Context, tokenHash string) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.RefreshTokenRepo().DeleteByHash(ctx, tokenHash)
	})
	if err != nil {
		return errors.Wrap(err, "failed to delete refresh token")
	}

	return nil
}

// issueSession mints a token pair for the user and records the refresh
// token's digest so the session can later be rotated or revoked.
func (srv *userService) issueSession(ctx context.Context, user *entity.User) (*usecase.LoginOutput, error) {
	accessToken, refreshToken, err := srv.tokenService.GenerateTokens(user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate tokens")
	}

	record := &entity.RefreshToken{
		UserID:    user.ID,
		TokenHash: hashRefreshToken(refreshToken),
		ExpiresAt: time.Now().Add(srv.tokenService.RefreshTokenDuration()),
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.RefreshTokenRepo().Create(ctx, record)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to store refresh token")
	}

	return &usecase.LoginOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresAt:    time.Now().Add(srv.tokenService.AccessTokenDuration()),
		User:         user,
	}, nil
}
