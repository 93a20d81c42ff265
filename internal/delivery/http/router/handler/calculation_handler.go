package handler

import (
	"log/slog"
	"net/http"

	"tally/internal/delivery/http/response"
	"tally/internal/domain/entity"
	domainerrors "tally/internal/domain/errors"
	"tally/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// createCalculationRequest is the wire format for creating a calculation.
// The result is never accepted from the client.
type createCalculationRequest struct {
	Operation string   `json:"operation" validate:"required,oneof=addition subtraction multiplication division"`
	Operand1  *float64 `json:"operand1" validate:"required"`
	Operand2  *float64 `json:"operand2" validate:"required"`
}

// updateCalculationRequest is the wire format for partial calculation updates.
type updateCalculationRequest struct {
	Operation *string  `json:"operation" validate:"omitempty,oneof=addition subtraction multiplication division"`
	Operand1  *float64 `json:"operand1"`
	Operand2  *float64 `json:"operand2"`
}

// CalculationHandler holds dependencies for calculation handlers.
type CalculationHandler struct {
	uc     usecase.CalculationUsecase
	logger *slog.Logger
}

// NewCalculationHandler is the constructor for CalculationHandler, injected by Fx.
func NewCalculationHandler(uc usecase.CalculationUsecase, logger *slog.Logger) *CalculationHandler {
	return &CalculationHandler{
		uc:     uc,
		logger: logger,
	}
}

// calculationID parses the path parameter of a calculation route.
func calculationID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, domainerrors.ErrValidationFailed.WithDetails("calculation id must be a valid UUID")
	}

	return id, nil
}

// Create stores a new calculation owned by the authenticated user.
func (h *CalculationHandler) Create(c echo.Context) error {
	userID, err := authenticatedUserID(c)
	if err != nil {
		return err
	}

	var req createCalculationRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid calculation input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	calculation, err := h.uc.CreateCalculation(c.Request().Context(), userID, &usecase.CreateCalculationInput{
		Operation: entity.Operation(req.Operation),
		Operand1:  *req.Operand1,
		Operand2:  *req.Operand2,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toCalculationResponse(calculation), "Calculation created successfully")
}

// List returns all calculations owned by the authenticated user, newest first.
func (h *CalculationHandler) List(c echo.Context) error {
	userID, err := authenticatedUserID(c)
	if err != nil {
		return err
	}

	calculations, err := h.uc.ListCalculations(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toCalculationResponses(calculations), "")
}

// Get returns a single calculation owned by the authenticated user.
func (h *CalculationHandler) Get(c echo.Context) error {
	userID, err := authenticatedUserID(c)
	if err != nil {
		return err
	}

	id, err := calculationID(c)
	if err != nil {
		return err
	}

	calculation, err := h.uc.GetCalculation(c.Request().Context(), userID, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toCalculationResponse(calculation), "")
}

// Update applies partial changes to a calculation and recomputes its result.
func (h *CalculationHandler) Update(c echo.Context) error {
	userID, err := authenticatedUserID(c)
	if err != nil {
		return err
	}

	id, err := calculationID(c)
	if err != nil {
		return err
	}

	var req updateCalculationRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid calculation input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	input := &usecase.UpdateCalculationInput{
		Operand1: req.Operand1,
		Operand2: req.Operand2,
	}
	if req.Operation != nil {
		operation := entity.Operation(*req.Operation)
		input.Operation = &operation
	}

	calculation, err := h.uc.UpdateCalculation(c.Request().Context(), userID, id, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toCalculationResponse(calculation), "Calculation updated successfully")
}

// Delete removes a calculation owned by the authenticated user.
func (h *CalculationHandler) Delete(c echo.Context) error {
	userID, err := authenticatedUserID(c)
	if err != nil {
		return err
	}

	id, err := calculationID(c)
	if err != nil {
		return err
	}

	if err := h.uc.DeleteCalculation(c.Request().Context(), userID, id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Calculation deleted successfully"}, "Calculation deleted successfully")
}
