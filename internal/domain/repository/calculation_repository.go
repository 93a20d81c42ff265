package repository

import (
	"context"
	"errors"

	"tally/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrCalculationNotFound is returned when a calculation is not found.
var ErrCalculationNotFound = errors.New("calculation not found")

// CalculationRepository defines the standard operations for calculation persistence.
type CalculationRepository interface {
	// Create persists a new calculation entity to the storage.
	Create(ctx context.Context, calc *entity.Calculation) error

	// FindByID retrieves a single calculation by its unique ID,
	// regardless of owner. Ownership is enforced by the use case layer.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Calculation, error)

	// FindByUserID retrieves all calculations owned by a user, newest first.
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Calculation, error)

	// Update modifies an existing calculation in the storage.
	Update(ctx context.Context, calc *entity.Calculation) error

	// Delete removes a calculation by its ID.
	Delete(ctx context.Context, id uuid.UUID) error
}
