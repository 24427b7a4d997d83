package cmd

import (
	"github.com/kbukum/devportal/errors"
	"github.com/kbukum/devportal/validation"
)

// maxSummaryLength is the Jira limit on an issue summary.
const maxSummaryLength = 255

// checkArgs fails with INVALID_REQUEST when v collected any issue, before a
// session or an upstream call is made.
func checkArgs(v *validation.Validator) error {
	if !v.HasErrors() {
		return nil
	}
	return errors.InvalidRequest("invalid arguments", v.Report())
}
