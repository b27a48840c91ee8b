// Package validator wires go-playground/validator into echo's binding pipeline.
package validator

import (
	domainerrors "userhub/internal/domain/errors"

	"github.com/go-playground/validator/v10"
)

// RequestValidator adapts validator.Validate to echo.Validator. Struct tags on
// the request DTOs define the field schema; anything that fails here never
// reaches the usecase layer.
type RequestValidator struct {
	validate *validator.Validate
}

// New constructs the validator used by the echo server.
func New() *RequestValidator {
	return &RequestValidator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

// Validate implements echo.Validator.
func (v *RequestValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}
