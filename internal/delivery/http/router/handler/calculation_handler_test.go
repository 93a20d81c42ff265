package handler

import (
	"context"
	"net/http"
	"testing"

	"tally/internal/domain/entity"
	domainerrors "tally/internal/domain/errors"
	"tally/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubCalculationUsecase implements usecase.CalculationUsecase with overridable functions.
type stubCalculationUsecase struct {
	createFn func(ctx context.Context, userID uuid.UUID, input *usecase.CreateCalculationInput) (*entity.Calculation, error)
	getFn    func(ctx context.Context, userID uuid.UUID, calculationID uuid.UUID) (*entity.Calculation, error)
	listFn   func(ctx context.Context, userID uuid.UUID) ([]*entity.Calculation, error)
	updateFn func(ctx context.Context, userID uuid.UUID, calculationID uuid.UUID, input *usecase.UpdateCalculationInput) (*entity.Calculation, error)
	deleteFn func(ctx context.Context, userID uuid.UUID, calculationID uuid.UUID) error
}

func (s *stubCalculationUsecase) CreateCalculation(ctx context.Context, userID uuid.UUID, input *usecase.CreateCalculationInput) (*entity.Calculation, error) {
	return s.createFn(ctx, userID, input)
}

func (s *stubCalculationUsecase) GetCalculation(ctx context.Context, userID uuid.UUID, calculationID uuid.UUID) (*entity.Calculation, error) {
	return s.getFn(ctx, userID, calculationID)
}

func (s *stubCalculationUsecase) ListCalculations(ctx context.Context, userID uuid.UUID) ([]*entity.Calculation, error) {
	return s.listFn(ctx, userID)
}

func (s *stubCalculationUsecase) UpdateCalculation(ctx context.Context, userID uuid.UUID, calculationID uuid.UUID, input *usecase.UpdateCalculationInput) (*entity.Calculation, error) {
	return s.updateFn(ctx, userID, calculationID, input)
}

func (s *stubCalculationUsecase) DeleteCalculation(ctx context.Context, userID uuid.UUID, calculationID uuid.UUID) error {
	return s.deleteFn(ctx, userID, calculationID)
}

func TestCalculationHandler_Create_Success(t *testing.T) {
	userID := uuid.New()
	calculationID := uuid.New()
	uc := &stubCalculationUsecase{
		createFn: func(ctx context.Context, gotUserID uuid.UUID, input *usecase.CreateCalculationInput) (*entity.Calculation, error) {
			assert.Equal(t, userID, gotUserID)
			assert.Equal(t, entity.OperationDivision, input.Operation)

			return &entity.Calculation{
				ID:        calculationID,
				UserID:    gotUserID,
				Operation: input.Operation,
				Operand1:  input.Operand1,
				Operand2:  input.Operand2,
				Result:    input.Operand1 / input.Operand2,
			}, nil
		},
	}
	h := NewCalculationHandler(uc, discardLogger())

	body := `{"operation":"division","operand1":9,"operand2":2}`
	c, rec := newTestContext(t, http.MethodPost, "/calculations", body)
	c.Set("userID", userID)

	err := h.Create(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"result":4.5`)
}

func TestCalculationHandler_Create_ZeroOperandIsValid(t *testing.T) {
	userID := uuid.New()
	uc := &stubCalculationUsecase{
		createFn: func(ctx context.Context, gotUserID uuid.UUID, input *usecase.CreateCalculationInput) (*entity.Calculation, error) {
			assert.Zero(t, input.Operand1)

			return &entity.Calculation{ID: uuid.New(), UserID: gotUserID, Operation: input.Operation}, nil
		},
	}
	h := NewCalculationHandler(uc, discardLogger())

	// operand values of 0 must pass required validation via pointer binding
	body := `{"operation":"addition","operand1":0,"operand2":5}`
	c, rec := newTestContext(t, http.MethodPost, "/calculations", body)
	c.Set("userID", userID)

	err := h.Create(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestCalculationHandler_Create_UnknownOperation(t *testing.T) {
	h := NewCalculationHandler(&stubCalculationUsecase{}, discardLogger())

	body := `{"operation":"modulo","operand1":1,"operand2":2}`
	c, _ := newTestContext(t, http.MethodPost, "/calculations", body)
	c.Set("userID", uuid.New())

	err := h.Create(c)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestCalculationHandler_Get_InvalidID(t *testing.T) {
	h := NewCalculationHandler(&stubCalculationUsecase{}, discardLogger())

	c, _ := newTestContext(t, http.MethodGet, "/calculations/not-a-uuid", "")
	c.Set("userID", uuid.New())
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	err := h.Get(c)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestCalculationHandler_Get_MissingAuthContext(t *testing.T) {
	h := NewCalculationHandler(&stubCalculationUsecase{}, discardLogger())

	c, _ := newTestContext(t, http.MethodGet, "/calculations/"+uuid.New().String(), "")

	err := h.Get(c)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUnauthorized))
}

func TestCalculationHandler_List_Success(t *testing.T) {
	userID := uuid.New()
	uc := &stubCalculationUsecase{
		listFn: func(ctx context.Context, gotUserID uuid.UUID) ([]*entity.Calculation, error) {
			return []*entity.Calculation{
				{ID: uuid.New(), UserID: gotUserID, Operation: entity.OperationAddition, Result: 3},
			}, nil
		},
	}
	h := NewCalculationHandler(uc, discardLogger())

	c, rec := newTestContext(t, http.MethodGet, "/calculations", "")
	c.Set("userID", userID)

	err := h.List(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"operation":"addition"`)
}

func TestCalculationHandler_Delete_Success(t *testing.T) {
	userID := uuid.New()
	calculationID := uuid.New()
	uc := &stubCalculationUsecase{
		deleteFn: func(ctx context.Context, gotUserID uuid.UUID, gotCalculationID uuid.UUID) error {
			assert.Equal(t, userID, gotUserID)
			assert.Equal(t, calculationID, gotCalculationID)

			return nil
		},
	}
	h := NewCalculationHandler(uc, discardLogger())

	c, rec := newTestContext(t, http.MethodDelete, "/calculations/"+calculationID.String(), "")
	c.Set("userID", userID)
	c.SetParamNames("id")
	c.SetParamValues(calculationID.String())

	err := h.Delete(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCalculationHandler_Delete_Forbidden(t *testing.T) {
	uc := &stubCalculationUsecase{
		deleteFn: func(ctx context.Context, userID uuid.UUID, calculationID uuid.UUID) error {
			return domainerrors.ErrForbidden
		},
	}
	h := NewCalculationHandler(uc, discardLogger())

	calculationID := uuid.New()
	c, _ := newTestContext(t, http.MethodDelete, "/calculations/"+calculationID.String(), "")
	c.Set("userID", uuid.New())
	c.SetParamNames("id")
	c.SetParamValues(calculationID.String())

	err := h.Delete(c)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
}
