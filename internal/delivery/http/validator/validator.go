// Package validator adapts go-playground/validator to echo.Validator.
package validator

import (
	"fmt"
	"reflect"
	"strings"

	domainerrors "agora/internal/domain/errors"
	"agora/internal/errors"

	"github.com/go-playground/validator/v10"
)

// Validator validates bound request structs.
type Validator struct {
	validate *validator.Validate
}

// New returns a Validator reporting field errors by their JSON name.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)

	return &Validator{validate: v}
}

// Validate returns ErrValidationFailed describing every failed field.
func (v *Validator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	fieldErrs, ok := errors.AsType[validator.ValidationErrors](err)
	if !ok {
		return domainerrors.ValidationFailed(err.Error())
	}

	messages := make([]string, 0, len(fieldErrs))
	for _, fieldErr := range fieldErrs {
		messages = append(messages, describe(fieldErr))
	}

	return domainerrors.ValidationFailed(strings.Join(messages, "; "))
}

func describe(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fieldErr.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fieldErr.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fieldErr.Field(), fieldErr.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fieldErr.Field(), fieldErr.Param())
	default:
		return fmt.Sprintf("%s failed %s", fieldErr.Field(), fieldErr.Tag())
	}
}

// jsonFieldName falls back to query and path tags so callback parameters are
// reported by the names the caller sent.
func jsonFieldName(field reflect.StructField) string {
	for _, tag := range []string{"json", "query", "param"} {
		name, _, _ := strings.Cut(field.Tag.Get(tag), ",")
		if name != "" && name != "-" {
			return name
		}
	}

	return field.Name
}
