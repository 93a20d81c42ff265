package service

import (
	"context"
	"time"
)

// TokenBlacklist is the external key-value collaborator that records revoked
// token IDs until their natural expiry. Logout writes to it; the auth gate
// reads from it. There is no in-process revocation state.
type TokenBlacklist interface {
	// Add marks a token ID as revoked for the token's remaining lifetime.
	Add(ctx context.Context, tokenID string, ttl time.Duration) error

	// Contains reports whether a token ID has been revoked.
	Contains(ctx context.Context, tokenID string) (bool, error)
}
