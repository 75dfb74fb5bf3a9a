package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var messages = map[string]string{
	"required":    "{field} is required",
	"email":       "{field} must be a valid email address",
	"url":         "{field} must be a valid url",
	"len":         "{field} must be {param} characters long",
	"min":         "{field} must be greater than or equal to {param}",
	"max":         "{field} must be less than or equal to {param}",
	"gt":          "{field} must be greater than {param}",
	"gte":         "{field} must be greater than or equal to {param}",
	"lte":         "{field} must be less than or equal to {param}",
	"oneof":       "{field} must be one of {param}",
	"gtfield":     "{field} must be after {param}",
	"nefield":     "{field} must differ from {param}",
	"datetime":    "{field} must match the format {param}",
	"mimetypes":   "{field} must be one of {param}",
	"maxfilesize": "{field} must not exceed {param} MB",
	TagDomain:     "{field} is invalid",
}

// message describes the first failed rule that has a template.
func message(err error) string {
	var fieldErrors val.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err.Error()
	}

	for _, fieldErr := range fieldErrors {
		template, ok := messages[fieldErr.Tag()]
		if !ok {
			continue
		}

		return strings.NewReplacer("{field}", fieldErr.Field(), "{param}", fieldErr.Param()).Replace(template)
	}

	return fieldErrors.Error()
}
