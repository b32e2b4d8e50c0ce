// Package validator bridges go-playground/validator into echo's Validator interface.
package validator

import (
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type echoValidator struct {
	validate *validator.Validate
}

// New constructs the validator used by the echo server.
func New() echo.Validator {
	return &echoValidator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Validate runs struct-tag validation. The returned error is a
// validator.ValidationErrors value, which handlers translate to field-level
// messages.
func (v *echoValidator) Validate(i any) error {
	return v.validate.Struct(i)
}
