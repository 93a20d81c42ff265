package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// TokenKind distinguishes the two token namespaces. A refresh token is never
// accepted where an access token is required, and vice versa.
type TokenKind string

const (
	// TokenKindAccess is the short-lived token presented on every protected request.
	TokenKindAccess TokenKind = "access"
	// TokenKindRefresh is the long-lived token exchanged for new access tokens.
	TokenKindRefresh TokenKind = "refresh"
)

// Verification failure kinds. The auth gate maps all of them to 401.
var (
	// ErrTokenMalformed is returned when a token cannot be parsed or its
	// signature does not verify (including a kind/secret mismatch).
	ErrTokenMalformed = errors.New("token is malformed or has an invalid signature")
	// ErrTokenExpired is returned when a structurally valid token is past its expiry.
	ErrTokenExpired = errors.New("token has expired")
)

// Claims is the verified content of a token. A token asserts identity and
// nothing else; no permissions are embedded.
type Claims struct {
	UserID    uuid.UUID // Subject identity the token asserts.
	TokenID   string    // The jti claim, used for revocation.
	Kind      TokenKind // Which namespace the token belongs to.
	ExpiresAt time.Time // Wall-clock expiry of the token.
}

// TokenService defines the interface for issuing and verifying signed,
// time-bounded bearer tokens. Verification checks the signature before
// trusting any embedded claim and evaluates expiry against the wall clock
// on every call.
type TokenService interface {
	// GenerateTokens mints an access/refresh token pair for a user.
	GenerateTokens(userID uuid.UUID) (accessToken string, refreshToken string, err error)

	// Verify validates a token string against the expected kind and returns
	// its claims. Fails with ErrTokenMalformed or ErrTokenExpired.
	Verify(tokenString string, kind TokenKind) (*Claims, error)

	// AccessTokenDuration returns the configured access token TTL.
	AccessTokenDuration() time.Duration

	// RefreshTokenDuration returns the configured refresh token TTL.
	RefreshTokenDuration() time.Duration
}
