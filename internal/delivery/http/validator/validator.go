// Package validator adapts go-playground/validator to Echo's Validator interface.
package validator

import (
	"regexp"

	domainerrors "tally/internal/domain/errors"

	"github.com/go-playground/validator/v10"
)

// usernamePattern allows letters, digits, underscore and hyphen.
var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// RequestValidator wraps a validator instance for use as echo.Validator.
type RequestValidator struct {
	validate *validator.Validate
}

// New creates a request validator with struct tag validation enabled,
// plus the custom "username" rule shared by registration and profile update.
func New() *RequestValidator {
	validate := validator.New(validator.WithRequiredStructEnabled())
	_ = validate.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})

	return &RequestValidator{validate: validate}
}

// Validate checks the bound request struct against its validate tags.
// Failures surface as the application's validation error so the error
// handler renders them with a 422 status.
func (v *RequestValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}
