package validator

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator wraps the go-playground validator and reports fields by their JSON name.
type Validator struct {
	validator *validator.Validate
}

// New creates a Validator.
func New() *Validator {
	validate := validator.New(validator.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Postgres text columns cannot hold NUL.
	_ = validate.RegisterValidation("nonul", func(fl validator.FieldLevel) bool {
		return !strings.ContainsRune(fl.Field().String(), 0)
	})

	return &Validator{validator: validate}
}

// Validate checks a struct against its validate tags. A failed check returns *ValidationError.
func (v *Validator) Validate(i any) error {
	err := v.validator.Struct(i)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return NewValidationError(verrs)
	}
	return err
}

// ValidationError maps JSON field names to a readable message.
type ValidationError struct {
	Errors map[string]string `json:"errors"`
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Errors))
	for field := range e.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	messages := make([]string, 0, len(fields))
	for _, field := range fields {
		messages = append(messages, fmt.Sprintf("%s: %s", field, e.Errors[field]))
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(messages, ", "))
}

// NewValidationError creates a ValidationError from validator.ValidationErrors.
func NewValidationError(errs validator.ValidationErrors) *ValidationError {
	out := make(map[string]string, len(errs))

	for _, err := range errs {
		field := err.Field()

		switch err.Tag() {
		case "required":
			out[field] = fmt.Sprintf("%s is required", field)
		case "email":
			out[field] = fmt.Sprintf("%s must be a valid email address", field)
		case "max":
			if err.Kind() == reflect.String {
				out[field] = fmt.Sprintf("%s must be at most %s characters long", field, err.Param())
			} else {
				out[field] = fmt.Sprintf("%s must be at most %s", field, err.Param())
			}
		case "min":
			out[field] = fmt.Sprintf("%s must be at least %s", field, err.Param())
		case "nonul":
			out[field] = fmt.Sprintf("%s must not contain NUL characters", field)
		case "gt":
			out[field] = fmt.Sprintf("%s must be greater than %s", field, err.Param())
		default:
			out[field] = fmt.Sprintf("%s is invalid", field)
		}
	}

	return &ValidationError{Errors: out}
}
