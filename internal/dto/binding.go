package dto

import (
	"github.com/go-playground/validator/v10"

	"github.com/pfa-dev/personal_finance_app/internal/core/domain"
)

// RegisterValidations adds the custom binding tags to gin's validator engine.
// The "period" tag accepts only the symbolic period names the resolver knows.
func RegisterValidations(v *validator.Validate) error {
	return v.RegisterValidation("period", func(fl validator.FieldLevel) bool {
		value := domain.Period(fl.Field().String())
		for _, p := range domain.KnownPeriods {
			if value == p {
				return true
			}
		}
		return false
	})
}
