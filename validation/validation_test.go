package validation

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

type testStatus struct {
	Name string `json:"name"`
}

type testFields struct {
	Assignee any        `json:"assignee"`
	Status   testStatus `json:"status"`
	Summary  string     `json:"summary"`
	Labels   []string   `json:"labels,omitempty"`
}

type testIssue struct {
	ID     string     `json:"id" validate:"notblank"`
	Key    string     `json:"key"`
	Fields testFields `json:"fields"`
}

type testSearch struct {
	Total  int         `json:"total"`
	Issues []testIssue `json:"issues" validate:"dive"`
}

func TestDecodeValid(t *testing.T) {
	body := `{"total":1,"issues":[{"id":"1","key":"DEV-1","fields":{"assignee":null,"status":{"name":"Done"},"summary":"s"}}]}`
	var out testSearch
	if report := Decode([]byte(body), &out); report.HasIssues() {
		t.Fatalf("expected no issues, got %v", report)
	}
	if out.Total != 1 || out.Issues[0].Fields.Status.Name != "Done" {
		t.Errorf("unexpected decoded value %+v", out)
	}
}

func TestDecodeReportsEveryPath(t *testing.T) {
	body := `{"total":"x","issues":[{"id":"1","key":"K","fields":{"status":{"name":3},"summary":"s"}}]}`
	var out testSearch
	report := Decode([]byte(body), &out)
	if !report.HasIssues() {
		t.Fatal("expected issues")
	}
	expected := []string{"total", "issues[0].fields.status.name"}
	if got := report.Paths(); !reflect.DeepEqual(got, expected) {
		t.Errorf("expected paths %v, got %v", expected, got)
	}
}

func TestDecodeStructuralIssues(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		path     string
		contains string
	}{
		{"missing required member", `{"total":1}`, "issues", "undefined"},
		{"null for non-nullable", `{"total":null,"issues":[]}`, "total", "null"},
		{"fractional integer", `{"total":1.5,"issues":[]}`, "total", "1.5"},
		{"array instead of object", `{"total":1,"issues":[[]]}`, "issues[0]", "array"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out testSearch
			report := Decode([]byte(tt.body), &out)
			if !report.HasIssues() {
				t.Fatal("expected issues")
			}
			issue := report.Issues[0]
			if issue.Path != tt.path {
				t.Errorf("expected path %q, got %q", tt.path, issue.Path)
			}
			if !strings.Contains(issue.String(), tt.contains) {
				t.Errorf("expected %q in %q", tt.contains, issue.String())
			}
		})
	}
}

func TestDecodeMapIssuesInKeyOrder(t *testing.T) {
	var out map[string]int
	report := Decode([]byte(`{"zeta":"z","alpha":"a","mid":2,"beta":true}`), &out)

	expected := []string{"alpha", "beta", "zeta"}
	if got := report.Paths(); !reflect.DeepEqual(got, expected) {
		t.Errorf("expected paths %v, got %v", expected, got)
	}
}

func TestDecodeInvalidJSON(t *testing.T) {
	var out testSearch
	report := Decode([]byte(`{`), &out)
	if !report.HasIssues() {
		t.Fatal("expected issues")
	}
	if report.Issues[0].Path != rootPath {
		t.Errorf("expected root path, got %q", report.Issues[0].Path)
	}
	if report.Cause == nil || errors.Unwrap(report) == nil {
		t.Error("expected syntax error as cause")
	}
}

func TestDecodeEmptyBody(t *testing.T) {
	var out testSearch
	report := Decode(nil, &out)
	if !report.HasIssues() {
		t.Fatal("expected issues for empty body")
	}
	if !strings.Contains(report.Error(), "empty body") {
		t.Errorf("expected empty body in %q", report.Error())
	}
}

func TestDecodeRunsTagValidation(t *testing.T) {
	body := `{"total":1,"issues":[{"id":"  ","key":"K","fields":{"status":{"name":"Open"},"summary":"s"}}]}`
	var out testSearch
	report := Decode([]byte(body), &out)
	if !report.HasIssues() {
		t.Fatal("expected issues")
	}
	if got := report.Issues[0].Path; got != "issues[0].id" {
		t.Errorf("expected issues[0].id, got %q", got)
	}
}

func TestDecodeCaseInsensitiveMember(t *testing.T) {
	var out testStatus
	if report := Decode([]byte(`{"Name":"x"}`), &out); report.HasIssues() {
		t.Fatalf("expected no issues, got %v", report)
	}
	if out.Name != "x" {
		t.Errorf("expected x, got %q", out.Name)
	}
}

func TestDecodeRawAndAny(t *testing.T) {
	var out any
	if report := Decode([]byte(`[1,"a",null]`), &out); report.HasIssues() {
		t.Fatalf("expected no issues, got %v", report)
	}
}

func TestStruct(t *testing.T) {
	type params struct {
		FiscalCode   string `json:"fiscal_code" validate:"fiscalcode"`
		Organization string `json:"organization" validate:"organizationfiscalcode"`
		Title        string `json:"title" validate:"notblank"`
	}

	if r := Struct(params{FiscalCode: "RSSMRA80A01H501U", Organization: "12345678901", Title: "t"}); r != nil {
		t.Errorf("expected nil report, got %v", r)
	}

	r := Struct(params{FiscalCode: "bad", Organization: "123", Title: " "})
	expected := []string{"fiscal_code", "organization", "title"}
	if got := r.Paths(); !reflect.DeepEqual(got, expected) {
		t.Errorf("expected paths %v, got %v", expected, got)
	}
}

func TestFiscalCodes(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"RSSMRA80A01H501U", true},
		{"rssmra80a01h501u", false},
		{"RSSMRA80Z01H501U", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsFiscalCode(tt.in); got != tt.want {
			t.Errorf("IsFiscalCode(%q): expected %v, got %v", tt.in, tt.want, got)
		}
	}
	if !IsOrganizationFiscalCode("00000000000") || IsOrganizationFiscalCode("0000000000A") {
		t.Error("organization fiscal code check is wrong")
	}
}

func TestValidatorRequired(t *testing.T) {
	v := New()
	v.Required("name", "John")
	if v.HasErrors() {
		t.Error("expected no errors for valid input")
	}
	if v.Report() != nil {
		t.Error("expected nil report without issues")
	}

	v2 := New()
	v2.Required("name", "   ")
	if !v2.HasErrors() {
		t.Error("expected error for whitespace-only required field")
	}
}

func TestValidatorChain(t *testing.T) {
	r := New().
		Required("issue_id", "").
		FiscalCode("fiscal_code", "nope").
		OrganizationFiscalCode("organization", "12345678901").
		MaxLength("summary", "too long", 3).
		FiscalCode("recipient", "").
		Report()

	expected := []string{"issue_id", "fiscal_code", "summary", "recipient"}
	if got := r.Paths(); !reflect.DeepEqual(got, expected) {
		t.Errorf("expected paths %v, got %v", expected, got)
	}
	if !strings.HasPrefix(r.Error(), "4 validation issues:") {
		t.Errorf("unexpected report text %q", r.Error())
	}
	if got := r.Issues[3].Message; got != "is required" {
		t.Errorf("expected blank fiscal code to be required, got %q", got)
	}
}

func TestNilReport(t *testing.T) {
	var r *Report
	if r.HasIssues() {
		t.Error("nil report must have no issues")
	}
	if r.Paths() != nil {
		t.Error("nil report must have no paths")
	}
}
