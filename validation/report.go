package validation

import (
	"fmt"
	"strings"
)

// Issue is a single validation failure.
type Issue struct {
	// Path is the field chain from the payload root, e.g. "issues[0].fields.status.name".
	Path string `json:"path"`
	// Expected describes what the schema requires at Path.
	Expected string `json:"expected,omitempty"`
	// Actual describes what the payload holds at Path.
	Actual string `json:"actual,omitempty"`
	// Message is set when the failure is not a plain expected/actual mismatch.
	Message string `json:"message,omitempty"`
}

// String renders the issue on one line.
func (i Issue) String() string {
	path := i.Path
	if path == "" {
		path = rootPath
	}
	switch {
	case i.Expected != "" && i.Message != "":
		return fmt.Sprintf("%s: expected %s, got %s (%s)", path, i.Expected, i.Actual, i.Message)
	case i.Expected != "":
		return fmt.Sprintf("%s: expected %s, got %s", path, i.Expected, i.Actual)
	default:
		return fmt.Sprintf("%s: %s", path, i.Message)
	}
}

// Report collects every validation failure of one payload.
// A nil *Report has no issues.
type Report struct {
	Issues []Issue `json:"issues"`
	// Cause is the JSON syntax error when the payload could not be parsed.
	Cause error `json:"-"`
}

// HasIssues reports whether r contains at least one issue.
func (r *Report) HasIssues() bool {
	return r != nil && len(r.Issues) > 0
}

// Add appends an issue.
func (r *Report) Add(issue Issue) {
	r.Issues = append(r.Issues, issue)
}

// Paths returns the path of every issue in report order.
func (r *Report) Paths() []string {
	if r == nil {
		return nil
	}
	paths := make([]string, len(r.Issues))
	for i, issue := range r.Issues {
		paths[i] = issue.Path
	}
	return paths
}

// Error renders the full report, one issue per line.
func (r *Report) Error() string {
	if !r.HasIssues() {
		return "no validation issues"
	}
	var b strings.Builder
	if len(r.Issues) == 1 {
		b.WriteString("1 validation issue:")
	} else {
		fmt.Fprintf(&b, "%d validation issues:", len(r.Issues))
	}
	for _, issue := range r.Issues {
		b.WriteString("\n  - ")
		b.WriteString(issue.String())
	}
	return b.String()
}

// Unwrap returns the JSON syntax error, if any.
func (r *Report) Unwrap() error {
	if r == nil {
		return nil
	}
	return r.Cause
}

// orNil returns nil for an empty report so callers can test with HasIssues or == nil.
func (r *Report) orNil() *Report {
	if r.HasIssues() {
		return r
	}
	return nil
}
