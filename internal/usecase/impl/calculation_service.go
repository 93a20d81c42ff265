// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "tally/internal/delivery/context"
	"tally/internal/domain/entity"
	domainerrors "tally/internal/domain/errors"
	"tally/internal/domain/repository"
	"tally/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// calculationService implements the CalculationUsecase interface.
type calculationService struct {
	txManager       repository.TransactionManager
	calculationRepo repository.CalculationRepository
	logger          *slog.Logger
}

// CalculationServiceParams holds dependencies for CalculationService, injected by Fx.
type CalculationServiceParams struct {
	fx.In

	TxManager       repository.TransactionManager
	CalculationRepo repository.CalculationRepository
	Logger          *slog.Logger
}

// NewCalculationService is the constructor for calculationService.
func NewCalculationService(params CalculationServiceParams) usecase.CalculationUsecase {
	return &calculationService{
		txManager:       params.TxManager,
		calculationRepo: params.CalculationRepo,
		logger:          params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *calculationService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// computeResult evaluates the operation server-side. Clients never supply
// the result; it is always derived from the stored operands.
func computeResult(operation entity.Operation, operand1, operand2 float64) (float64, error) {
	switch operation {
	case entity.OperationAddition:
		return operand1 + operand2, nil
	case entity.OperationSubtraction:
		return operand1 - operand2, nil
	case entity.OperationMultiplication:
		return operand1 * operand2, nil
	case entity.OperationDivision:
		if operand2 == 0 {
			return 0, domainerrors.ErrValidationFailed.WrapMessage("division by zero is not allowed")
		}

		return operand1 / operand2, nil
	default:
		return 0, domainerrors.ErrValidationFailed.WrapMessage("unsupported operation")
	}
}

// CreateCalculation computes and stores a new calculation owned by the user.
func (srv *calculationService) CreateCalculation(ctx context.Context, userID uuid.UUID, input *usecase.CreateCalculationInput) (*entity.Calculation, error) {
	srv.log(ctx).Debug("Creating calculation", slog.Any("userID", userID), slog.String("operation", string(input.Operation)))

	result, err := computeResult(input.Operation, input.Operand1, input.Operand2)
	if err != nil {
		return nil, err
	}

	calculation := &entity.Calculation{
		UserID:    userID,
		Operation: input.Operation,
		Operand1:  input.Operand1,
		Operand2:  input.Operand2,
		Result:    result,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.CalculationRepo().Create(ctx, calculation)
	})
	if err != nil {
		srv.log(ctx).Error("Failed to create calculation", slog.Any("userID", userID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create calculation")
	}

	return calculation, nil
}

// GetCalculation retrieves a single calculation owned by the user.
// A record owned by someone else is reported as forbidden, not hidden,
// because its identifier was already valid.
func (srv *calculationService) GetCalculation(ctx context.Context, userID uuid.UUID, calculationID uuid.UUID) (*entity.Calculation, error) {
	calculation, err := srv.calculationRepo.FindByID(ctx, calculationID)
	if err != nil {
		if errors.Is(err, repository.ErrCalculationNotFound) {
			return nil, domainerrors.ErrCalculationNotFound
		}

		return nil, errors.Wrap(err, "failed to find calculation")
	}

	if calculation.UserID != userID {
		return nil, domainerrors.ErrForbidden
	}

	return calculation, nil
}

// ListCalculations retrieves every calculation owned by the user,
// newest first.
func (srv *calculationService) ListCalculations(ctx context.Context, userID uuid.UUID) ([]*entity.Calculation, error) {
	calculations, err := srv.calculationRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list calculations")
	}

	return calculations, nil
}

// UpdateCalculation applies the provided fields and recomputes the result.
// The owner never changes.
func (srv *calculationService) UpdateCalculation(ctx context.Context, userID uuid.UUID, calculationID uuid.UUID, input *usecase.UpdateCalculationInput) (*entity.Calculation, error) {
	srv.log(ctx).Debug("Updating calculation", slog.Any("userID", userID), slog.Any("calculationID", calculationID))

	var updated *entity.Calculation
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		calculationRepo := repoFactory.CalculationRepo()

		calculation, err := calculationRepo.FindByID(ctx, calculationID)
		if err != nil {
			if errors.Is(err, repository.ErrCalculationNotFound) {
				return domainerrors.ErrCalculationNotFound
			}

			return errors.Wrap(err, "failed to find calculation")
		}

		if calculation.UserID != userID {
			return domainerrors.ErrForbidden
		}

		if input.Operation != nil {
			calculation.Operation = *input.Operation
		}
		if input.Operand1 != nil {
			calculation.Operand1 = *input.Operand1
		}
		if input.Operand2 != nil {
			calculation.Operand2 = *input.Operand2
		}

		result, err := computeResult(calculation.Operation, calculation.Operand1, calculation.Operand2)
		if err != nil {
			return err
		}
		calculation.Result = result

		if err := calculationRepo.Update(ctx, calculation); err != nil {
			return errors.Wrap(err, "failed to update calculation")
		}

		updated = calculation

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to update calculation", slog.Any("calculationID", calculationID), slog.Any("error", err))

		return nil, err
	}

	return updated, nil
}

// DeleteCalculation removes a calculation owned by the user.
func (srv *calculationService) DeleteCalculation(ctx context.Context, userID uuid.UUID, calculationID uuid.UUID) error {
	srv.log(ctx).Debug("Deleting calculation", slog.Any("userID", userID), slog.Any("calculationID", calculationID))

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		calculationRepo := repoFactory.CalculationRepo()

		calculation, err := calculationRepo.FindByID(ctx, calculationID)
		if err != nil {
			if errors.Is(err, repository.ErrCalculationNotFound) {
				return domainerrors.ErrCalculationNotFound
			}

			return errors.Wrap(err, "failed to find calculation")
		}

		if calculation.UserID != userID {
			return domainerrors.ErrForbidden
		}

		return calculationRepo.Delete(ctx, calculationID)
	})
	if err != nil {
		srv.log(ctx).Error("Failed to delete calculation", slog.Any("calculationID", calculationID), slog.Any("error", err))

		return err
	}

	return nil
}
