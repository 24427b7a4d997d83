package rest

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/kbukum/devportal/validation"
)

// Descriptor is the immutable description of one API operation. Build it
// once per client and share it between calls.
type Descriptor[P, T any] struct {
	// Name identifies the operation in logs, spans and errors.
	Name string
	// Method is the HTTP method.
	Method string
	// URL returns the request path, relative to the executor base URL, or an
	// absolute URL.
	URL func(P) string
	// Query returns query parameters, nil for none.
	Query func(P) map[string]string
	// Body encodes the request body; nil for operations without one.
	Body func(P) ([]byte, error)
	// Headers produces the request headers.
	Headers HeaderProducer[P]
	// Params checks the parameters before anything is sent.
	Params func(P) *validation.Report
	// Decoder classifies every expected status.
	Decoder Decoder[T]
}

// Validate reports descriptor construction mistakes.
func (d Descriptor[P, T]) Validate() error {
	var missing []string
	if d.Name == "" {
		missing = append(missing, "name")
	}
	if d.Method == "" {
		missing = append(missing, "method")
	} else if strings.ContainsAny(d.Method, " \t\r\n") {
		return fmt.Errorf("rest: descriptor %q has invalid method %q", d.Name, d.Method)
	}
	if d.URL == nil {
		missing = append(missing, "url")
	}
	if d.Decoder == nil {
		missing = append(missing, "decoder")
	}
	if len(missing) > 0 {
		return fmt.Errorf("rest: descriptor %q is missing %s", d.Name, strings.Join(missing, ", "))
	}
	return nil
}

// MustValidate returns d or panics when it is malformed. Use it where
// descriptors are built, never on the request path.
func (d Descriptor[P, T]) MustValidate() Descriptor[P, T] {
	if err := d.Validate(); err != nil {
		panic(err)
	}
	return d
}

// PathEscape escapes a single path segment.
func PathEscape(segment string) string {
	return url.PathEscape(segment)
}

// Path formats a path, escaping every segment.
//
//	rest.Path("/rest/api/2/issue/%s/comment", issueID)
func Path(format string, segments ...string) string {
	args := make([]any, len(segments))
	for i, s := range segments {
		args[i] = url.PathEscape(s)
	}
	return fmt.Sprintf(format, args...)
}

// JSONBody encodes the value returned by payload as JSON.
func JSONBody[P any](payload func(P) any) func(P) ([]byte, error) {
	return func(params P) ([]byte, error) {
		return json.Marshal(payload(params))
	}
}

// NoQuery is a Query builder for operations without query parameters.
func NoQuery[P any](P) map[string]string { return nil }

// ValidateStruct checks params with its validate tags.
func ValidateStruct[P any](params P) *validation.Report {
	return validation.Struct(params)
}
