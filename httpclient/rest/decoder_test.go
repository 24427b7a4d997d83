package rest

import (
	"encoding/json"
	"net/http"
	"reflect"
	"testing"

	"github.com/kbukum/devportal/errors"
	"github.com/kbukum/devportal/result"
)

type issueRef struct {
	ID  string `json:"id" validate:"notblank"`
	Key string `json:"key"`
}

type searchResult struct {
	Total  int          `json:"total"`
	Issues []searchItem `json:"issues"`
}

type searchItem struct {
	Key    string `json:"key"`
	Fields struct {
		Status struct {
			Name string `json:"name"`
		} `json:"status"`
	} `json:"fields"`
}

func issueDecoder() Decoder[issueRef] {
	return Compose(
		ServerError[issueRef]("Jira API returns an error"),
		Unauthorized[issueRef]("Jira secrets misconfiguration"),
		BadRequest[issueRef]("Invalid request"),
		JSON[issueRef](http.StatusCreated),
	)
}

func appErrorOf[T any](t *testing.T, r result.Result[T]) *errors.AppError {
	t.Helper()
	if r.IsOk() {
		t.Fatalf("expected failure, got success")
	}
	appErr, ok := errors.AsAppError(r.Err())
	if !ok {
		t.Fatalf("expected *errors.AppError, got %T: %v", r.Err(), r.Err())
	}
	return appErr
}

func TestJSONRoundTrip(t *testing.T) {
	values := []issueRef{
		{ID: "10001", Key: "ABC-1"},
		{ID: "x", Key: ""},
		{ID: "ünïcode", Key: "K-99"},
	}
	for _, want := range values {
		body, err := json.Marshal(want)
		if err != nil {
			t.Fatal(err)
		}
		resp, err := Decode(issueDecoder(), http.StatusCreated, body).Unwrap()
		if err != nil {
			t.Fatalf("unexpected error for %s: %v", body, err)
		}
		if resp.Status != http.StatusCreated {
			t.Errorf("expected status 201, got %d", resp.Status)
		}
		if resp.Value != want {
			t.Errorf("expected %+v, got %+v", want, resp.Value)
		}
	}
}

func TestJSONReportsFieldPaths(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		paths []string
	}{
		{"missing id", `{"key":"ABC-1"}`, []string{"id"}},
		{"mistyped id", `{"id":10001,"key":"ABC-1"}`, []string{"id"}},
		{"both wrong", `{"id":true,"key":1}`, []string{"id", "key"}},
		{"blank id fails tag", `{"id":"  ","key":"ABC-1"}`, []string{"id"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := appErrorOf(t, Decode(issueDecoder(), http.StatusCreated, []byte(tt.body)))
			if appErr.Code != errors.ErrCodeDecodeFailure {
				t.Fatalf("expected DECODE_FAILURE, got %s", appErr.Code)
			}
			if got := appErr.Report.Paths(); !reflect.DeepEqual(got, tt.paths) {
				t.Errorf("expected paths %v, got %v", tt.paths, got)
			}
		})
	}
}

func TestJSONNestedPath(t *testing.T) {
	body := `{"total":1,"issues":[{"key":"A-1","fields":{"status":{"name":7}}}]}`
	appErr := appErrorOf(t, Decode(JSON[searchResult](http.StatusOK), http.StatusOK, []byte(body)))
	want := []string{"issues[0].fields.status.name"}
	if got := appErr.Report.Paths(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestJSONParseErrorIsWrapped(t *testing.T) {
	appErr := appErrorOf(t, Decode(issueDecoder(), http.StatusCreated, []byte("<html>oops</html>")))
	if appErr.Code != errors.ErrCodeDecodeFailure {
		t.Fatalf("expected DECODE_FAILURE, got %s", appErr.Code)
	}
	var syntaxErr *json.SyntaxError
	if !errors.As(appErr, &syntaxErr) {
		t.Errorf("expected wrapped *json.SyntaxError, got %v", appErr.Cause)
	}
}

func TestServerErrorIgnoresBody(t *testing.T) {
	for _, status := range []int{500, 502, 503, 599} {
		for _, body := range []string{"", "not json", `{"id":"1","key":"A"}`} {
			appErr := appErrorOf(t, Decode(issueDecoder(), status, []byte(body)))
			if appErr.Code != errors.ErrCodeUpstream {
				t.Errorf("status %d body %q: expected UPSTREAM_ERROR, got %s", status, body, appErr.Code)
			}
			if appErr.StatusCode != status {
				t.Errorf("expected status %d, got %d", status, appErr.StatusCode)
			}
			if !appErr.Retryable {
				t.Error("expected upstream errors to be retryable")
			}
		}
	}
}

func TestUnauthorizedWinsOverLaterRules(t *testing.T) {
	d := Compose(
		Unauthorized[issueRef]("Jira secrets misconfiguration"),
		JSON[issueRef](http.StatusUnauthorized),
	)
	appErr := appErrorOf(t, Decode(d, http.StatusUnauthorized, []byte(`{"id":"1","key":"A"}`)))
	if appErr.Code != errors.ErrCodeUnauthorized {
		t.Errorf("expected UNAUTHORIZED, got %s", appErr.Code)
	}
	if appErr.Message != "Jira secrets misconfiguration" {
		t.Errorf("unexpected message %q", appErr.Message)
	}
}

func TestUnknownStatusCarriesCode(t *testing.T) {
	appErr := appErrorOf(t, Decode(issueDecoder(), http.StatusTeapot, nil))
	if appErr.Code != errors.ErrCodeUnknownStatus {
		t.Fatalf("expected UNKNOWN_STATUS, got %s", appErr.Code)
	}
	if appErr.StatusCode != http.StatusTeapot {
		t.Errorf("expected 418, got %d", appErr.StatusCode)
	}
	if appErr.Details["status"] != http.StatusTeapot {
		t.Errorf("expected status detail 418, got %v", appErr.Details["status"])
	}
}

func TestNilDecoderIsUnknownStatus(t *testing.T) {
	appErr := appErrorOf(t, Decode[issueRef](nil, http.StatusOK, nil))
	if appErr.Code != errors.ErrCodeUnknownStatus {
		t.Errorf("expected UNKNOWN_STATUS, got %s", appErr.Code)
	}
}

func TestConstantSkipsBody(t *testing.T) {
	d := Compose(ServerError[string](""), Constant(http.StatusNoContent, "OK"))
	resp, err := Decode(d, http.StatusNoContent, []byte("garbage")).Unwrap()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Value != "OK" || resp.Status != http.StatusNoContent {
		t.Errorf("expected 204 OK, got %+v", resp)
	}
}

func TestComposeDisjointFallsThrough(t *testing.T) {
	first := Compose(JSON[issueRef](http.StatusOK))
	second := Compose(NotFound[issueRef](""), Conflict[issueRef](""))
	merged := Compose(first, second)

	tests := []struct {
		status int
		code   errors.ErrorCode
	}{
		{http.StatusNotFound, errors.ErrCodeNotFound},
		{http.StatusConflict, errors.ErrCodeConflict},
		{http.StatusForbidden, errors.ErrCodeUnknownStatus},
	}
	for _, tt := range tests {
		appErr := appErrorOf(t, Decode(merged, tt.status, nil))
		if appErr.Code != tt.code {
			t.Errorf("status %d: expected %s, got %s", tt.status, tt.code, appErr.Code)
		}
	}
	if r := Decode(merged, http.StatusOK, []byte(`{"id":"1","key":"A"}`)); !r.IsOk() {
		t.Errorf("expected first decoder to handle 200, got %v", r.Err())
	}
}

func TestSemanticDecoders(t *testing.T) {
	tests := []struct {
		name    string
		decoder Decoder[issueRef]
		status  int
		code    errors.ErrorCode
	}{
		{"bad request", BadRequest[issueRef](""), 400, errors.ErrCodeBadRequest},
		{"unauthorized", Unauthorized[issueRef](""), 401, errors.ErrCodeUnauthorized},
		{"forbidden", Forbidden[issueRef](""), 403, errors.ErrCodeForbidden},
		{"not found", NotFound[issueRef](""), 404, errors.ErrCodeNotFound},
		{"conflict", Conflict[issueRef](""), 409, errors.ErrCodeConflict},
		{"custom", Status[issueRef](429, errors.ErrCodeUpstream, "slow down"), 429, errors.ErrCodeUpstream},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := appErrorOf(t, Decode(tt.decoder, tt.status, nil))
			if appErr.Code != tt.code {
				t.Errorf("expected %s, got %s", tt.code, appErr.Code)
			}
			if appErr.StatusCode != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, appErr.StatusCode)
			}
			if _, ok := tt.decoder(tt.status+1, nil); ok {
				t.Errorf("expected decoder not to handle %d", tt.status+1)
			}
		})
	}
}

func TestProblemBodyEnrichesError(t *testing.T) {
	body := `{"type":"about:blank","title":"Invalid fiscal code","detail":"fiscal_code must match the pattern","status":400}`
	appErr := appErrorOf(t, Decode(BadRequest[issueRef](""), 400, []byte(body)))
	if appErr.Code != errors.ErrCodeBadRequest {
		t.Errorf("expected BAD_REQUEST, got %s", appErr.Code)
	}
	if appErr.Details["upstream_title"] != "Invalid fiscal code" {
		t.Errorf("expected upstream title detail, got %v", appErr.Details)
	}
}

func TestValueOf(t *testing.T) {
	v, err := ValueOf(result.Ok(Response[string]{Status: 204, Value: "OK"})).Unwrap()
	if err != nil || v != "OK" {
		t.Errorf("expected OK, got %q (%v)", v, err)
	}
	if r := ValueOf(result.Fail[Response[string]](errors.NotFound(""))); !errors.IsNotFound(r.Err()) {
		t.Errorf("expected NOT_FOUND to pass through, got %v", r.Err())
	}
}
