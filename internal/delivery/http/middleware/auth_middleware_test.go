package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tally/internal/domain/entity"
	domainerrors "tally/internal/domain/errors"
	"tally/internal/domain/repository"
	"tally/internal/domain/service"
	mockRepo "tally/internal/mocks/repository"
	mockService "tally/internal/mocks/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// authGateFixtures holds all test dependencies for auth middleware tests.
type authGateFixtures struct {
	t         *testing.T
	mw        *AuthMiddleware
	tokenSvc  *mockService.MockTokenService
	blacklist *mockService.MockTokenBlacklist
	userRepo  *mockRepo.MockUserRepository
}

func createTestAuthMiddleware(t *testing.T) authGateFixtures {
	t.Helper()

	tokenSvc := mockService.NewMockTokenService(t)
	blacklist := mockService.NewMockTokenBlacklist(t)
	userRepo := mockRepo.NewMockUserRepository(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return authGateFixtures{
		t:         t,
		mw:        NewAuthMiddleware(tokenSvc, blacklist, userRepo, logger),
		tokenSvc:  tokenSvc,
		blacklist: blacklist,
		userRepo:  userRepo,
	}
}

// invoke runs a request through the gate and reports whether the inner
// handler was reached.
func (f authGateFixtures) invoke(authHeader string) (echo.Context, bool, error) {
	f.t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	nextCalled := false
	err := f.mw.Authenticate(func(c echo.Context) error {
		nextCalled = true

		return nil
	})(c)

	return c, nextCalled, err
}

func activeUser(id uuid.UUID) *entity.User {
	return &entity.User{ID: id, Username: "alice", IsActive: true}
}

func accessClaims(userID uuid.UUID) *service.Claims {
	return &service.Claims{
		UserID:    userID,
		TokenID:   "jti-1",
		Kind:      service.TokenKindAccess,
		ExpiresAt: time.Now().Add(time.Minute),
	}
}

func TestAuthMiddleware_Success(t *testing.T) {
	f := createTestAuthMiddleware(t)
	userID := uuid.New()

	f.tokenSvc.EXPECT().Verify("valid-token", service.TokenKindAccess).Return(accessClaims(userID), nil)
	f.blacklist.EXPECT().Contains(mock.Anything, "jti-1").Return(false, nil)
	f.userRepo.EXPECT().FindByID(mock.Anything, userID).Return(activeUser(userID), nil)

	c, nextCalled, err := f.invoke("Bearer valid-token")

	require.NoError(t, err)
	assert.True(t, nextCalled)
	assert.Equal(t, userID, c.Get("userID"))
	assert.Equal(t, "valid-token", c.Get("accessToken"))
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	f := createTestAuthMiddleware(t)

	_, nextCalled, err := f.invoke("")

	require.Error(t, err)
	assert.False(t, nextCalled)
	assert.True(t, errors.Is(err, domainerrors.ErrUnauthorized))
}

func TestAuthMiddleware_WrongScheme(t *testing.T) {
	f := createTestAuthMiddleware(t)

	_, nextCalled, err := f.invoke("Basic dXNlcjpwYXNz")

	require.Error(t, err)
	assert.False(t, nextCalled)
	assert.True(t, errors.Is(err, domainerrors.ErrUnauthorized))
}

func TestAuthMiddleware_MalformedToken(t *testing.T) {
	f := createTestAuthMiddleware(t)

	f.tokenSvc.EXPECT().Verify("garbage", service.TokenKindAccess).Return(nil, service.ErrTokenMalformed)

	_, nextCalled, err := f.invoke("Bearer garbage")

	require.Error(t, err)
	assert.False(t, nextCalled)
	assert.True(t, errors.Is(err, domainerrors.ErrTokenMalformed))
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	f := createTestAuthMiddleware(t)

	f.tokenSvc.EXPECT().Verify("stale-token", service.TokenKindAccess).Return(nil, service.ErrTokenExpired)

	_, nextCalled, err := f.invoke("Bearer stale-token")

	require.Error(t, err)
	assert.False(t, nextCalled)
	assert.True(t, errors.Is(err, domainerrors.ErrTokenExpired))
}

func TestAuthMiddleware_RefreshTokenRejected(t *testing.T) {
	f := createTestAuthMiddleware(t)

	// The verifier is always asked for the access kind here, so a refresh
	// token fails signature verification against the access secret.
	f.tokenSvc.EXPECT().Verify("refresh-token", service.TokenKindAccess).Return(nil, service.ErrTokenMalformed)

	_, nextCalled, err := f.invoke("Bearer refresh-token")

	require.Error(t, err)
	assert.False(t, nextCalled)
	assert.True(t, errors.Is(err, domainerrors.ErrTokenMalformed))
}

func TestAuthMiddleware_RevokedToken(t *testing.T) {
	f := createTestAuthMiddleware(t)
	userID := uuid.New()

	f.tokenSvc.EXPECT().Verify("revoked-token", service.TokenKindAccess).Return(accessClaims(userID), nil)
	f.blacklist.EXPECT().Contains(mock.Anything, "jti-1").Return(true, nil)

	_, nextCalled, err := f.invoke("Bearer revoked-token")

	require.Error(t, err)
	assert.False(t, nextCalled)
	assert.True(t, errors.Is(err, domainerrors.ErrTokenRevoked))
	f.userRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestAuthMiddleware_BlacklistUnavailableDegradesOpen(t *testing.T) {
	f := createTestAuthMiddleware(t)
	userID := uuid.New()

	f.tokenSvc.EXPECT().Verify("valid-token", service.TokenKindAccess).Return(accessClaims(userID), nil)
	f.blacklist.EXPECT().Contains(mock.Anything, "jti-1").Return(false, errors.New("connection refused"))
	f.userRepo.EXPECT().FindByID(mock.Anything, userID).Return(activeUser(userID), nil)

	_, nextCalled, err := f.invoke("Bearer valid-token")

	require.NoError(t, err)
	assert.True(t, nextCalled)
}

func TestAuthMiddleware_DeletedUser(t *testing.T) {
	f := createTestAuthMiddleware(t)
	userID := uuid.New()

	f.tokenSvc.EXPECT().Verify("valid-token", service.TokenKindAccess).Return(accessClaims(userID), nil)
	f.blacklist.EXPECT().Contains(mock.Anything, "jti-1").Return(false, nil)
	f.userRepo.EXPECT().FindByID(mock.Anything, userID).Return(nil, repository.ErrUserNotFound)

	_, nextCalled, err := f.invoke("Bearer valid-token")

	require.Error(t, err)
	assert.False(t, nextCalled)
	assert.True(t, errors.Is(err, domainerrors.ErrUnauthorized))

	// A vanished account is an authentication failure, never a 404.
	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusUnauthorized, appErr.HTTPCode())
}

func TestAuthMiddleware_DeactivatedUser(t *testing.T) {
	f := createTestAuthMiddleware(t)
	userID := uuid.New()
	user := activeUser(userID)
	user.IsActive = false

	f.tokenSvc.EXPECT().Verify("valid-token", service.TokenKindAccess).Return(accessClaims(userID), nil)
	f.blacklist.EXPECT().Contains(mock.Anything, "jti-1").Return(false, nil)
	f.userRepo.EXPECT().FindByID(mock.Anything, userID).Return(user, nil)

	_, nextCalled, err := f.invoke("Bearer valid-token")

	require.Error(t, err)
	assert.False(t, nextCalled)
	assert.True(t, errors.Is(err, domainerrors.ErrUnauthorized))
}
