package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	appErrors "github.com/NagaNitishChowdary/Study-Buddy-Agent/pkg/errors"
)

// validationError maps validator failures onto typed API errors. Missing
// required fields get their own code so callers can prompt for the field.
func validationError(err error, label string) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			if fe.Tag() == "required" {
				field := strings.ToLower(fe.Field())
				return appErrors.Clone(appErrors.ErrMissingField, fmt.Sprintf("missing required field %q", field))
			}
		}
	}
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, fmt.Sprintf("invalid %s payload", label))
}
