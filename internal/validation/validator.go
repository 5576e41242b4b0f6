// Package validation converts go-playground/validator failures into domain errors.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	domainerrors "github.com/tagdesk/tagdesk-server/internal/errors"
)

// Validator wraps go-playground/validator with domain error conversion.
type Validator struct {
	v *validator.Validate
}

// New creates a validator that reports fields by their JSON names.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	return &Validator{v: v}
}

// Validate validates a struct and returns a VALIDATION domain error.
// The message is that of the first failing field; details map every
// failing field to its message.
func (v *Validator) Validate(s any) error {
	if err := v.v.Struct(s); err != nil {
		return v.formatError(err)
	}
	return nil
}

func (v *Validator) formatError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	fieldErrors := make(map[string]string, len(validationErrs))
	for _, e := range validationErrs {
		fieldErrors[e.Field()] = friendlyMessage(e)
	}

	return domainerrors.ValidationWithDetails(friendlyMessage(validationErrs[0]), fieldErrors)
}

func friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "Required."
	case "min":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("Minimum %s characters.", e.Param())
		}
		return fmt.Sprintf("Minimum %s.", e.Param())
	case "max":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("Maximum %s characters.", e.Param())
		}
		return fmt.Sprintf("Maximum %s.", e.Param())
	case "oneof":
		return "Must be one of: " + e.Param() + "."
	case "gte":
		return "Must be at least " + e.Param() + "."
	case "lte":
		return "Must be at most " + e.Param() + "."
	default:
		return "Invalid value."
	}
}
