// Package validator plugs go-playground/validator into echo.
package validator

import (
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type echoValidator struct {
	validate *validator.Validate
}

// New returns an echo.Validator backed by struct tags
func New() echo.Validator {
	return &echoValidator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Validate checks the `validate` tags of i
func (v *echoValidator) Validate(i any) error {
	return v.validate.Struct(i)
}
