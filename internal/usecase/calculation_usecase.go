// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"tally/internal/domain/entity"

	"github.com/google/uuid"
)

// CalculationUsecase defines the interface for calculation-related business operations.
// Every operation is scoped to the requesting user; records owned by other
// users are never readable or writable through this interface.
type CalculationUsecase interface {
	CreateCalculation(ctx context.Context, userID uuid.UUID, input *CreateCalculationInput) (*entity.Calculation, error)
	GetCalculation(ctx context.Context, userID uuid.UUID, calculationID uuid.UUID) (*entity.Calculation, error)
	ListCalculations(ctx context.Context, userID uuid.UUID) ([]*entity.Calculation, error)
	UpdateCalculation(ctx context.Context, userID uuid.UUID, calculationID uuid.UUID, input *UpdateCalculationInput) (*entity.Calculation, error)
	DeleteCalculation(ctx context.Context, userID uuid.UUID, calculationID uuid.UUID) error
}

// --- Input DTOs ---

// CreateCalculationInput defines the data required to create a calculation.
// The result is always computed server-side from the operands.
type CreateCalculationInput struct {
	Operation entity.Operation
	Operand1  float64
	Operand2  float64
}

// UpdateCalculationInput defines the data required to update a calculation.
// Nil fields are left unchanged; the result is recomputed after applying them.
type UpdateCalculationInput struct {
	Operation *entity.Operation
	Operand1  *float64
	Operand2  *float64
}
