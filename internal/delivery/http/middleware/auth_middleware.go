package middleware

import (
	"log/slog"
	"strings"

	deliverycontext "tally/internal/delivery/context"
	domainerrors "tally/internal/domain/errors"
	"tally/internal/domain/repository"
	"tally/internal/domain/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthMiddleware provides middleware for JWT authentication.
type AuthMiddleware struct {
	tokenSvc  service.TokenService
	blacklist service.TokenBlacklist
	userRepo  repository.UserRepository
	logger    *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(
	tokenSvc service.TokenService,
	blacklist service.TokenBlacklist,
	userRepo repository.UserRepository,
	logger *slog.Logger,
) *AuthMiddleware {
	return &AuthMiddleware{
		tokenSvc:  tokenSvc,
		blacklist: blacklist,
		userRepo:  userRepo,
		logger:    logger,
	}
}

// Authenticate validates the bearer access token on every protected request.
// The signature is checked before any claim is trusted, then the revocation
// list and the account state. Handlers downstream can rely on "userID"
// holding the authenticated user's ID.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return domainerrors.ErrUnauthorized.WrapMessage("authorization header is missing")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return domainerrors.ErrUnauthorized.WrapMessage("authorization header must use the Bearer scheme")
		}

		claims, err := m.tokenSvc.Verify(tokenString, service.TokenKindAccess)
		if err != nil {
			if errors.Is(err, service.ErrTokenExpired) {
				return domainerrors.ErrTokenExpired
			}

			return domainerrors.ErrTokenMalformed
		}

		revoked, err := m.blacklist.Contains(c.Request().Context(), claims.TokenID)
		if err != nil {
			// The revocation store being unreachable must not take the whole
			// API down; the token still carries a valid signature and expiry.
			m.log(c).Warn("Token blacklist unavailable, skipping revocation check",
				slog.String("tokenID", claims.TokenID), slog.Any("error", err))
		} else if revoked {
			return domainerrors.ErrTokenRevoked
		}

		user, err := m.userRepo.FindByID(c.Request().Context(), claims.UserID)
		if err != nil {
			return domainerrors.ErrUnauthorized.WrapMessage("account no longer exists")
		}
		if !user.IsActive {
			return domainerrors.ErrUnauthorized.WrapMessage("account is deactivated")
		}

		c.Set("userID", claims.UserID)
		c.Set("accessToken", tokenString)

		return next(c)
	}
}

func (m *AuthMiddleware) log(c echo.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger)
}
