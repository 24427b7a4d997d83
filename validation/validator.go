package validation

import "fmt"

// Validator collects command argument issues.
type Validator struct {
	report Report
}

// New creates a new Validator.
func New() *Validator {
	return &Validator{}
}

// AddError adds a field issue.
func (v *Validator) AddError(field, message string) {
	v.report.Add(Issue{Path: field, Message: message})
}

// HasErrors returns true if there are validation issues.
func (v *Validator) HasErrors() bool {
	return v.report.HasIssues()
}

// Report returns the collected issues, or nil when there are none.
func (v *Validator) Report() *Report {
	if !v.HasErrors() {
		return nil
	}
	r := v.report
	return &r
}

// Required checks if a string is non-blank.
func (v *Validator) Required(field, value string) *Validator {
	if IsBlank(value) {
		v.AddError(field, "is required")
	}
	return v
}

// FiscalCode checks a personal fiscal code.
func (v *Validator) FiscalCode(field, value string) *Validator {
	if IsBlank(value) {
		v.AddError(field, "is required")
		return v
	}
	if !IsFiscalCode(value) {
		v.AddError(field, "must be a valid fiscal code")
	}
	return v
}

// OrganizationFiscalCode checks an 11-digit organization fiscal code.
func (v *Validator) OrganizationFiscalCode(field, value string) *Validator {
	if IsBlank(value) {
		v.AddError(field, "is required")
		return v
	}
	if !IsOrganizationFiscalCode(value) {
		v.AddError(field, "must be an 11-digit organization fiscal code")
	}
	return v
}

// MaxLength checks if a string is within max length.
func (v *Validator) MaxLength(field, value string, maxLen int) *Validator {
	if len(value) > maxLen {
		v.AddError(field, fmt.Sprintf("must be %d characters or less", maxLen))
	}
	return v
}
