package types

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError describes a single violated field, mirroring the wire
// format the frontend consumes.
type FieldError struct {
	Field   string `json:"path"`
	Message string `json:"msg"`
}

// ValidationErrors is the complete list of violations for one request.
// Requests fail with the whole list, never just the first violation.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, fe := range v {
		msgs[i] = fmt.Sprintf("%s: %s", fe.Field, fe.Message)
	}
	return strings.Join(msgs, "; ")
}

// Add appends a violation for field.
func (v *ValidationErrors) Add(field, message string) {
	*v = append(*v, FieldError{Field: field, Message: message})
}

// FromBindingError flattens a gin binding failure into a field list.
// validator.ValidationErrors keeps every violated tag, so the caller
// gets the full picture in one response.
func FromBindingError(err error) ValidationErrors {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make(ValidationErrors, 0, len(verrs))
		for _, fe := range verrs {
			out.Add(strings.ToLower(fe.Field()[:1])+fe.Field()[1:], messageForTag(fe))
		}
		return out
	}
	return ValidationErrors{{Field: "body", Message: "invalid request body"}}
}

func messageForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("cannot exceed %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be %s or greater", fe.Param())
	case "lte":
		return fmt.Sprintf("must be %s or less", fe.Param())
	case "url":
		return "must be a valid URL"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
