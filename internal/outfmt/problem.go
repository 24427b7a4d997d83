package outfmt

import (
	"io"

	"github.com/kbukum/devportal/errors"
)

// Problem converts err to a problem document. Errors that are not
// AppErrors become a problem with the error text as title.
func Problem(err error) errors.ProblemJSON {
	if appErr, ok := errors.AsAppError(err); ok {
		return appErr.ToProblem()
	}
	return errors.ProblemJSON{Title: err.Error()}
}

// WriteProblem writes the problem document for err in format f.
func WriteProblem(w io.Writer, f Format, err error) error {
	p := &Printer{Out: w, Format: f}
	return p.Print(Problem(err))
}
