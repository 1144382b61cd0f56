package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var messages = map[string]string{
	"required":         "{field} is required",
	"required_if":      "{field} is required",
	"required_without": "{field} is required when {param} is empty",
	"gt":               "{field} must be greater than {param}",
	"gte":              "{field} must be greater than or equal to {param}",
	"lt":               "{field} must be less than {param}",
	"lte":              "{field} must be less than or equal to {param}",
	"gtfield":          "{field} must be after {param}",
	"nefield":          "{field} must differ from {param}",
	"oneof":            "{field} must be one of {param}",
	"max":              "{field} must be less than or equal to {param}",
	"min":              "{field} must be greater than or equal to {param}",
	"len":              "{field} must be {param} characters long",
	"numeric":          "{field} must contain only digits",
	"email":            "{field} must be a valid email address",
	"enum":             "{field} has an unsupported value",
	"date":             "{field} must be a date formatted as YYYY-MM-DD",
	"mimetypes":        "{field} must be one of {param}",
	"maxfilesize":      "{field} must not exceed {param} MB",
}

// message renders the first validation failure that has a template. Tags without one fall back to the validator text.
func message(err error) string {
	var valErrors val.ValidationErrors
	if !errors.As(err, &valErrors) {
		return err.Error()
	}

	for _, valErr := range valErrors {
		template, ok := messages[valErr.Tag()]
		if !ok {
			continue
		}

		return strings.NewReplacer("{field}", valErr.Field(), "{param}", valErr.Param()).Replace(template)
	}

	return valErrors.Error()
}
