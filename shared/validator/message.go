package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var messages = map[string]string{
	"required":    "{field} is required",
	"gte":         "{field} must be greater than or equal to {param}",
	"lte":         "{field} must be less than or equal to {param}",
	"gt":          "{field} must be greater than {param}",
	"oneof":       "{field} must be one of {param}",
	"max":         "{field} must be at most {param}",
	"min":         "{field} must be at least {param}",
	"len":         "{field} must have length {param}",
	"email":       "{field} must be a valid email address",
	"url":         "{field} must be a valid URL",
	"datetime":    "{field} must be a date formatted as {param}",
	"nefield":     "{field} must differ from {param}",
	"mimetypes":   "{field} must be one of {param}",
	"maxfilesize": "{field} must not exceed {param} MB",
}

func render(fe val.FieldError) string {
	msg, ok := messages[fe.Tag()]
	if !ok {
		return fe.Error()
	}

	return strings.NewReplacer("{field}", fe.Field(), "{param}", fe.Param()).Replace(msg)
}

// describe returns the first failing field's message plus one message per
// failing field, keyed by its request name.
func describe(err error) (string, map[string]any) {
	var valErrors val.ValidationErrors
	if !errors.As(err, &valErrors) || len(valErrors) == 0 {
		return err.Error(), nil
	}

	details := make(map[string]any, len(valErrors))
	for _, fe := range valErrors {
		if _, seen := details[fe.Field()]; !seen {
			details[fe.Field()] = render(fe)
		}
	}

	return render(valErrors[0]), details
}
