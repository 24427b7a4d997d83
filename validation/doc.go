// Package validation turns raw JSON payloads into typed values and reports
// every way a payload fails to match, each issue with its full field path.
//
// # Response decoding
//
//	var svc Service
//	if report := validation.Decode(body, &svc); report.HasIssues() {
//	    fmt.Println(report) // one line per failing path
//	}
//
// Decode runs three passes: JSON syntax, a structural pass that compares the
// JSON value with the Go type (missing required members, wrong primitive
// kinds), and struct tag validation with the validator library. A value is
// only usable when the returned report has no issues.
//
// # Struct Tag Validation
//
//	type NewIssue struct {
//	    Title string `json:"title" validate:"notblank"`
//	}
//	report := validation.Struct(params)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Required("issue_id", id)
//	report := v.Report()
package validation
