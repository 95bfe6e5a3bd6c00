package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"bloglist/internal/repositories"

	"github.com/go-playground/validator/v10"
)

// Errors returned by the services. Callers match them with errors.Is.
var (
	ErrValidation        = errors.New("validation failed")
	ErrInvalidCredential = errors.New("token missing or invalid")
	ErrForbidden         = errors.New("only the creator of a blog can modify it")
	ErrNotFound          = repositories.ErrNotFound
)

func validationError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// newValidator returns a validator that reports fields by their json names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateStruct runs v over s and converts failures into ErrValidation.
func validateStruct(v *validator.Validate, s interface{}) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("failed to validate input: %w", err)
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		switch e.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("`%s` is required", e.Field()))
		case "min":
			messages = append(messages, fmt.Sprintf("`%s` is shorter than the minimum allowed length (%s)", e.Field(), e.Param()))
		case "max":
			messages = append(messages, fmt.Sprintf("`%s` is longer than the maximum allowed length (%s)", e.Field(), e.Param()))
		case "gte":
			messages = append(messages, fmt.Sprintf("`%s` must be at least %s", e.Field(), e.Param()))
		default:
			messages = append(messages, fmt.Sprintf("`%s` failed on the '%s' tag", e.Field(), e.Tag()))
		}
	}
	return validationError("%s", strings.Join(messages, ", "))
}
