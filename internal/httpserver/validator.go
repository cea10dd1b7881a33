package httpserver

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/Skotchmaster/shop_api/internal/service"
)

// Validator plugs go-playground/validator into echo.Context.Validate.
type Validator struct {
	v *validator.Validate
}

func NewValidator() *Validator {
	return &Validator{v: validator.New(validator.WithRequiredStructEnabled())}
}

func (cv *Validator) Validate(i any) error {
	if err := cv.v.Struct(i); err != nil {
		return fmt.Errorf("%w: %w", service.ErrValidation, err)
	}
	return nil
}
