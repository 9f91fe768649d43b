package form

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/sakif/portfolio-site/internal/apperror"
)

// validate is shared; validator.Validate caches struct metadata and is safe
// for concurrent use.
var validate = validator.New(validator.WithRequiredStructEnabled())

// formatValidationError turns validator errors into one readable line,
// e.g. "Username is required; Password is required".
func formatValidationError(err error) (field, message string) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "", err.Error()
	}

	messages := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		messages = append(messages, fieldErrorMessage(fe))
	}
	return strings.ToLower(verrs[0].Field()), strings.Join(messages, "; ")
}

func fieldErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_without":
		return fmt.Sprintf("%s is required", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

// check validates s and maps a failure to an apperror validation error.
// When message is non-empty it replaces the generated text.
func check(s any, message string) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	field, generated := formatValidationError(err)
	if message == "" {
		message = generated
	}
	return apperror.ValidationFailed(field, message)
}
