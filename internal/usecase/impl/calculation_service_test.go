package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"tally/internal/domain/entity"
	domainerrors "tally/internal/domain/errors"
	"tally/internal/domain/repository"
	mockRepo "tally/internal/mocks/repository"
	"tally/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// calculationServiceFixtures holds all test dependencies for calculation service tests.
type calculationServiceFixtures struct {
	t               *testing.T
	service         usecase.CalculationUsecase
	txManager       *mockRepo.MockTransactionManager
	calculationRepo *mockRepo.MockCalculationRepository
}

func createTestCalculationService(t *testing.T) calculationServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	calculationRepo := mockRepo.NewMockCalculationRepository(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc := NewCalculationService(CalculationServiceParams{
		TxManager:       txManager,
		CalculationRepo: calculationRepo,
		Logger:          logger,
	})

	return calculationServiceFixtures{
		t:               t,
		service:         svc,
		txManager:       txManager,
		calculationRepo: calculationRepo,
	}
}

func (f *calculationServiceFixtures) onExecute(ctx context.Context, setup func(factory *mockRepo.MockRepositoryFactory)) {
	factory := mockRepo.NewMockRepositoryFactory(f.t)
	setup(factory)

	f.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			return fn(factory)
		})
}

func TestComputeResult(t *testing.T) {
	tests := []struct {
		name      string
		operation entity.Operation
		operand1  float64
		operand2  float64
		want      float64
	}{
		{"addition", entity.OperationAddition, 2, 3, 5},
		{"subtraction", entity.OperationSubtraction, 10, 4, 6},
		{"multiplication", entity.OperationMultiplication, 2.5, 4, 10},
		{"division", entity.OperationDivision, 9, 2, 4.5},
		{"negative operands", entity.OperationAddition, -2, -3, -5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := computeResult(tt.operation, tt.operand1, tt.operand2)

			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestComputeResult_DivisionByZero(t *testing.T) {
	_, err := computeResult(entity.OperationDivision, 1, 0)

	assert.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestComputeResult_UnsupportedOperation(t *testing.T) {
	_, err := computeResult(entity.Operation("modulo"), 1, 2)

	assert.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestCalculationService_CreateCalculation_Success(t *testing.T) {
	fx := createTestCalculationService(t)

	ctx := context.Background()
	userID := uuid.New()
	newID := uuid.New()
	input := &usecase.CreateCalculationInput{
		Operation: entity.OperationMultiplication,
		Operand1:  6,
		Operand2:  7,
	}

	fx.onExecute(ctx, func(factory *mockRepo.MockRepositoryFactory) {
		mockCalcRepo := mockRepo.NewMockCalculationRepository(t)
		factory.EXPECT().CalculationRepo().Return(mockCalcRepo)

		mockCalcRepo.EXPECT().
			Create(ctx, mock.AnythingOfType("*entity.Calculation")).
			Run(func(ctx context.Context, calculation *entity.Calculation) {
				calculation.ID = newID
			}).
			Return(nil)
	})

	calculation, err := fx.service.CreateCalculation(ctx, userID, input)

	require.NoError(t, err)
	assert.Equal(t, newID, calculation.ID)
	assert.Equal(t, userID, calculation.UserID)
	assert.InDelta(t, 42.0, calculation.Result, 1e-9)
}

func TestCalculationService_CreateCalculation_DivisionByZero(t *testing.T) {
	fx := createTestCalculationService(t)

	ctx := context.Background()
	input := &usecase.CreateCalculationInput{
		Operation: entity.OperationDivision,
		Operand1:  1,
		Operand2:  0,
	}

	calculation, err := fx.service.CreateCalculation(ctx, uuid.New(), input)

	assert.Error(t, err)
	assert.Nil(t, calculation)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestCalculationService_GetCalculation_Success(t *testing.T) {
	fx := createTestCalculationService(t)

	ctx := context.Background()
	userID := uuid.New()
	calculationID := uuid.New()
	expected := &entity.Calculation{
		ID:        calculationID,
		UserID:    userID,
		Operation: entity.OperationAddition,
		Operand1:  1,
		Operand2:  2,
		Result:    3,
	}

	fx.calculationRepo.EXPECT().FindByID(ctx, calculationID).Return(expected, nil)

	calculation, err := fx.service.GetCalculation(ctx, userID, calculationID)

	require.NoError(t, err)
	assert.Equal(t, expected, calculation)
}

func TestCalculationService_GetCalculation_NotFound(t *testing.T) {
	fx := createTestCalculationService(t)

	ctx := context.Background()
	calculationID := uuid.New()

	fx.calculationRepo.EXPECT().FindByID(ctx, calculationID).Return(nil, repository.ErrCalculationNotFound)

	calculation, err := fx.service.GetCalculation(ctx, uuid.New(), calculationID)

	assert.Error(t, err)
	assert.Nil(t, calculation)
	assert.True(t, errors.Is(err, domainerrors.ErrCalculationNotFound))
}

func TestCalculationService_GetCalculation_Forbidden(t *testing.T) {
	fx := createTestCalculationService(t)

	ctx := context.Background()
	calculationID := uuid.New()
	foreign := &entity.Calculation{
		ID:     calculationID,
		UserID: uuid.New(),
	}

	fx.calculationRepo.EXPECT().FindByID(ctx, calculationID).Return(foreign, nil)

	calculation, err := fx.service.GetCalculation(ctx, uuid.New(), calculationID)

	assert.Error(t, err)
	assert.Nil(t, calculation)
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
}

func TestCalculationService_ListCalculations_Success(t *testing.T) {
	fx := createTestCalculationService(t)

	ctx := context.Background()
	userID := uuid.New()
	expected := []*entity.Calculation{
		{ID: uuid.New(), UserID: userID, Operation: entity.OperationAddition, Result: 3},
		{ID: uuid.New(), UserID: userID, Operation: entity.OperationDivision, Result: 2},
	}

	fx.calculationRepo.EXPECT().FindByUserID(ctx, userID).Return(expected, nil)

	calculations, err := fx.service.ListCalculations(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, expected, calculations)
}

func TestCalculationService_UpdateCalculation_RecomputesResult(t *testing.T) {
	fx := createTestCalculationService(t)

	ctx := context.Background()
	userID := uuid.New()
	calculationID := uuid.New()
	newOperand := 5.0
	input := &usecase.UpdateCalculationInput{Operand2: &newOperand}

	existing := &entity.Calculation{
		ID:        calculationID,
		UserID:    userID,
		Operation: entity.OperationMultiplication,
		Operand1:  4,
		Operand2:  2,
		Result:    8,
	}

	fx.onExecute(ctx, func(factory *mockRepo.MockRepositoryFactory) {
		mockCalcRepo := mockRepo.NewMockCalculationRepository(t)
		factory.EXPECT().CalculationRepo().Return(mockCalcRepo)

		mockCalcRepo.EXPECT().FindByID(ctx, calculationID).Return(existing, nil)
		mockCalcRepo.EXPECT().Update(ctx, mock.AnythingOfType("*entity.Calculation")).Return(nil)
	})

	updated, err := fx.service.UpdateCalculation(ctx, userID, calculationID, input)

	require.NoError(t, err)
	assert.InDelta(t, 20.0, updated.Result, 1e-9)
	assert.Equal(t, userID, updated.UserID)
}

func TestCalculationService_UpdateCalculation_Forbidden(t *testing.T) {
	fx := createTestCalculationService(t)

	ctx := context.Background()
	calculationID := uuid.New()
	newOperand := 5.0
	input := &usecase.UpdateCalculationInput{Operand1: &newOperand}

	foreign := &entity.Calculation{
		ID:     calculationID,
		UserID: uuid.New(),
	}

	fx.onExecute(ctx, func(factory *mockRepo.MockRepositoryFactory) {
		mockCalcRepo := mockRepo.NewMockCalculationRepository(t)
		factory.EXPECT().CalculationRepo().Return(mockCalcRepo)

		mockCalcRepo.EXPECT().FindByID(ctx, calculationID).Return(foreign, nil)
	})

	updated, err := fx.service.UpdateCalculation(ctx, uuid.New(), calculationID, input)

	assert.Error(t, err)
	assert.Nil(t, updated)
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
}

func TestCalculationService_DeleteCalculation_Success(t *testing.T) {
	fx := createTestCalculationService(t)

	ctx := context.Background()
	userID := uuid.New()
	calculationID := uuid.New()

	existing := &entity.Calculation{
		ID:     calculationID,
		UserID: userID,
	}

	fx.onExecute(ctx, func(factory *mockRepo.MockRepositoryFactory) {
		mockCalcRepo := mockRepo.NewMockCalculationRepository(t)
		factory.EXPECT().CalculationRepo().Return(mockCalcRepo)

		mockCalcRepo.EXPECT().FindByID(ctx, calculationID).Return(existing, nil)
		mockCalcRepo.EXPECT().Delete(ctx, calculationID).Return(nil)
	})

	err := fx.service.DeleteCalculation(ctx, userID, calculationID)

	require.NoError(t, err)
}

func TestCalculationService_DeleteCalculation_NotFound(t *testing.T) {
	fx := createTestCalculationService(t)

	ctx := context.Background()
	calculationID := uuid.New()

	fx.onExecute(ctx, func(factory *mockRepo.MockRepositoryFactory) {
		mockCalcRepo := mockRepo.NewMockCalculationRepository(t)
		factory.EXPECT().CalculationRepo().Return(mockCalcRepo)

		mockCalcRepo.EXPECT().FindByID(ctx, calculationID).Return(nil, repository.ErrCalculationNotFound)
	})

	err := fx.service.DeleteCalculation(ctx, uuid.New(), calculationID)

	assert.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrCalculationNotFound))
}
