package serverutils

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report fields by their wire name
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "bson"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})

	return v
}

// Validator returns the shared validator instance.
func Validator() *validator.Validate {
	return validate
}

// ValidateRequest checks a request DTO. The first missing required field is
// reported as a MissingFieldError; any other rule violation is returned as
// the validator's own error.
func ValidateRequest(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}

	for _, fe := range ve {
		if fe.Tag() == "required" {
			return &MissingFieldError{Field: fe.Field()}
		}
	}

	return &ValidationError{Model: "Request", Fields: toFieldErrors(ve)}
}

func toFieldErrors(ve validator.ValidationErrors) []FieldError {
	fields := make([]FieldError, 0, len(ve))
	for _, fe := range ve {
		fields = append(fields, FieldError{
			Field:   fe.Field(),
			Message: fe.Error(),
		})
	}
	return fields
}
