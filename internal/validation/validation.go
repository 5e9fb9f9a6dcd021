// Package validation evaluates the declarative constraints carried by request DTOs.
package validation

import (
	"fmt"
	"reflect"
	"strings"

	"accounts/internal/domain/entity"
	domainerrors "accounts/internal/domain/errors"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// Validator wraps validator/v10 and reports the first failing field as a ValidationError.
type Validator struct {
	validate *validator.Validate
}

// New builds a Validator that names fields by their json tag.
func New() *Validator {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}

		return name
	})
	// Registration of a fixed tag with a non-nil func cannot fail.
	_ = validate.RegisterValidation("subscription", func(fl validator.FieldLevel) bool {
		return entity.SubscriptionTier(fl.Field().String()).IsValid()
	})

	return &Validator{validate: validate}
}

// Struct validates s and returns nil or a *domainerrors.BaseError with VALIDATION_FAILED.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return errors.Wrap(err, "validate struct")
	}

	return domainerrors.NewValidationError(fieldMessage(fieldErrs[0]))
}

// Validate satisfies echo.Validator.
func (v *Validator) Validate(i any) error {
	return v.Struct(i)
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("missing %s field", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email", field)
	case "min":
		return fmt.Sprintf("%s length must be at least %s characters long", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s length must be less than or equal to %s characters long", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, strings.Join(strings.Fields(fe.Param()), ", "))
	case "subscription":
		tiers := make([]string, 0, len(entity.SubscriptionTiers()))
		for _, tier := range entity.SubscriptionTiers() {
			tiers = append(tiers, tier.String())
		}

		return fmt.Sprintf("%s must be one of [%s]", field, strings.Join(tiers, ", "))
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
