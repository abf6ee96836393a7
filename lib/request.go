package lib

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	validate    = newValidator()
	slugPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Field errors report the JSON name the client sent.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})

	// Money is validated as a number so gt/gte/lt tags apply.
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	})

	// Money columns hold whole pence.
	_ = v.RegisterValidation("money", func(fl validator.FieldLevel) bool {
		if fl.Field().Kind() != reflect.Float64 {
			return false
		}
		d := decimal.NewFromFloat(fl.Field().Float())
		return d.Equal(d.Round(2))
	})

	return v
}

// FieldError represents a clean validation error for APIs
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is a structured validation error
type ValidationError struct {
	Errors []FieldError `json:"errors"`
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "validation failed"
	}
	return "validation failed: " + e.Errors[0].Message
}

// NewValidationError builds a single-field validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Errors: []FieldError{{Field: field, Message: message}}}
}

// FieldMessages flattens the errors into field -> message, keeping the first message per field.
func (e *ValidationError) FieldMessages() map[string]string {
	out := make(map[string]string, len(e.Errors))
	for _, fe := range e.Errors {
		if _, ok := out[fe.Field]; !ok {
			out[fe.Field] = fe.Message
		}
	}
	return out
}

// ExtractAndValidateBody extracts and validates the request body into the provided struct type T
func ExtractAndValidateBody[T any](r *http.Request) (*T, error) {
	defer r.Body.Close()

	var body T

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}

	if err := ValidateStruct(&body); err != nil {
		return nil, err
	}

	return &body, nil
}

// ValidateStruct runs the struct's validate tags and maps failures into a *ValidationError.
func ValidateStruct[T any](body *T) error {
	if err := validate.Struct(body); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			return mapValidationErrors(reflect.TypeOf(body).Elem(), ve)
		}
		return err
	}
	return nil
}

func mapValidationErrors(t reflect.Type, errs validator.ValidationErrors) *ValidationError {
	out := &ValidationError{}

	for _, e := range errs {
		label := fieldLabel(t, e.StructField())

		var message string
		switch e.Tag() {
		case "required":
			message = label + " is required."
		case "email":
			message = label + " must be a valid email address."
		case "url":
			message = label + " must be a valid URL."
		case "slug":
			message = label + " can only contain letters, numbers, hyphens, and underscores."
		case "money":
			message = label + " cannot have more than two decimal places."
		case "max":
			message = label + " cannot exceed " + e.Param() + " characters."
		case "min":
			if e.Kind() == reflect.String {
				message = label + " must be at least " + e.Param() + " characters."
			} else {
				message = label + " must be at least " + e.Param() + "."
			}
		case "gt":
			if e.Param() == "0" {
				message = label + " must be greater than zero."
			} else {
				message = label + " must be greater than " + e.Param() + "."
			}
		case "gte":
			message = label + " must be greater than or equal to " + e.Param() + "."
		default:
			message = label + " is invalid."
		}

		out.Errors = append(out.Errors, FieldError{
			Field:   e.Field(),
			Message: message,
		})
	}

	return out
}

// fieldLabel returns the human label of a struct field, falling back to its Go name.
func fieldLabel(t reflect.Type, name string) string {
	if t.Kind() != reflect.Struct {
		return name
	}
	if f, ok := t.FieldByName(name); ok {
		if label := f.Tag.Get("label"); label != "" {
			return label
		}
	}
	return name
}
