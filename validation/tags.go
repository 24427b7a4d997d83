package validation

import (
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	tagFiscalCode             = "fiscalcode"
	tagOrganizationFiscalCode = "organizationfiscalcode"
	tagNotBlank               = "notblank"
)

var (
	fiscalCodePattern             = regexp.MustCompile(`^[A-Z]{6}[0-9LMNPQRSTUV]{2}[ABCDEHLMPRST][0-9LMNPQRSTUV]{2}[A-Z][0-9LMNPQRSTUV]{3}[A-Z]$`)
	organizationFiscalCodePattern = regexp.MustCompile(`^[0-9]{11}$`)
)

// IsFiscalCode reports whether s is a well-formed personal fiscal code.
func IsFiscalCode(s string) bool { return fiscalCodePattern.MatchString(s) }

// IsOrganizationFiscalCode reports whether s is an 11-digit organization fiscal code.
func IsOrganizationFiscalCode(s string) bool { return organizationFiscalCodePattern.MatchString(s) }

// IsBlank reports whether s is empty or whitespace only.
func IsBlank(s string) bool { return strings.TrimSpace(s) == "" }

func registerTags(v *validator.Validate) {
	_ = v.RegisterValidation(tagFiscalCode, func(fl validator.FieldLevel) bool {
		return IsFiscalCode(fl.Field().String())
	})
	_ = v.RegisterValidation(tagOrganizationFiscalCode, func(fl validator.FieldLevel) bool {
		return IsOrganizationFiscalCode(fl.Field().String())
	})
	_ = v.RegisterValidation(tagNotBlank, func(fl validator.FieldLevel) bool {
		field := fl.Field()
		switch field.Kind() {
		case reflect.String:
			return !IsBlank(field.String())
		case reflect.Slice, reflect.Map, reflect.Array:
			return field.Len() > 0
		case reflect.Pointer, reflect.Interface:
			return !field.IsNil()
		default:
			return !field.IsZero()
		}
	})
}

func itoa(n int) string { return strconv.Itoa(n) }
