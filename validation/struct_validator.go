package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate *validator.Validate
	once     sync.Once
)

// getValidator returns the singleton validator instance.
func getValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// Use json tag names so struct issues share paths with the structural pass
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})
		registerTags(validate)
	})
	return validate
}

// Struct validates a struct (or pointer to struct) using its `validate` tags.
// It returns nil when the value passes.
func Struct(s any) *Report {
	err := getValidator().Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return &Report{Issues: []Issue{{Path: rootPath, Message: err.Error()}}, Cause: err}
	}

	report := &Report{}
	for _, e := range validationErrors {
		report.Add(Issue{
			Path:     namespacePath(e.Namespace()),
			Expected: formatValidationError(e),
			Actual:   describeField(e.Value()),
		})
	}
	return report.orNil()
}

// namespacePath drops the root type name from a validator namespace:
// "Service.organization.fiscal_code" becomes "organization.fiscal_code".
func namespacePath(ns string) string {
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

// formatValidationError creates a human-readable description of the rule.
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "a value"
	case "notblank":
		return "a non-blank string"
	case "email":
		return "a valid email address"
	case "min":
		return "at least " + e.Param()
	case "max":
		return "at most " + e.Param()
	case "url":
		return "a valid URL"
	case "oneof":
		return "one of: " + e.Param()
	case tagFiscalCode:
		return "a valid fiscal code"
	case tagOrganizationFiscalCode:
		return "an 11-digit organization fiscal code"
	default:
		return "a value satisfying " + e.Tag()
	}
}

func describeField(v any) string {
	if s, ok := v.(string); ok {
		if s == "" {
			return "empty string"
		}
		return describeValue(s)
	}
	if v == nil {
		return "null"
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map:
		if rv.IsNil() {
			return "null"
		}
		return rv.Kind().String() + " of length " + itoa(rv.Len())
	case reflect.Pointer:
		if rv.IsNil() {
			return "null"
		}
	}
	return rv.Kind().String()
}
