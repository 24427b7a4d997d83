package validation

import (
	"bytes"
	"encoding"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strconv"
	"strings"
)

const rootPath = "$"

var (
	jsonUnmarshalerType = reflect.TypeOf((*json.Unmarshaler)(nil)).Elem()
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
)

// Decode parses body into out (a non-nil pointer) and validates it. It
// returns nil when out holds a valid value. When the returned report has
// issues, out must not be used.
func Decode(body []byte, out any) *Report {
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		panic(fmt.Sprintf("validation: Decode target must be a non-nil pointer, got %T", out))
	}

	report := &Report{}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		report.Cause = err
		report.Add(Issue{Path: rootPath, Expected: "a JSON document", Actual: describeBody(body), Message: err.Error()})
		return report
	}
	if dec.More() {
		err := errors.New("unexpected data after top-level value")
		report.Cause = err
		report.Add(Issue{Path: rootPath, Expected: "a single JSON value", Actual: "trailing data", Message: err.Error()})
		return report
	}

	checkValue(rv.Type().Elem(), raw, "", report)
	if report.HasIssues() {
		return report
	}

	if err := json.Unmarshal(body, out); err != nil {
		report.Add(unmarshalIssue(err))
		return report
	}

	if rv.Type().Elem().Kind() == reflect.Struct {
		if r := Struct(out); r.HasIssues() {
			return r
		}
	}
	return nil
}

// checkValue compares a generic JSON value against the Go type t and records
// every structural mismatch below path.
func checkValue(t reflect.Type, v any, path string, report *Report) {
	if t.Kind() == reflect.Pointer {
		if v == nil {
			return
		}
		t = t.Elem()
	}

	// Types with their own decoding are checked by json.Unmarshal.
	if t.Implements(jsonUnmarshalerType) || reflect.PointerTo(t).Implements(jsonUnmarshalerType) {
		return
	}
	if reflect.PointerTo(t).Implements(textUnmarshalerType) {
		if _, ok := v.(string); !ok {
			report.Add(mismatch(path, "string", v))
		}
		return
	}

	switch t.Kind() {
	case reflect.Interface:
		return
	case reflect.String:
		if _, ok := v.(string); !ok {
			report.Add(mismatch(path, "string", v))
		}
	case reflect.Bool:
		if _, ok := v.(bool); !ok {
			report.Add(mismatch(path, "boolean", v))
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, ok := v.(json.Number)
		if !ok {
			report.Add(mismatch(path, "integer", v))
			return
		}
		if _, err := strconv.ParseInt(n.String(), 10, 64); err != nil {
			if _, uerr := strconv.ParseUint(n.String(), 10, 64); uerr != nil {
				report.Add(mismatch(path, "integer", v))
			}
		}
	case reflect.Float32, reflect.Float64:
		if _, ok := v.(json.Number); !ok {
			report.Add(mismatch(path, "number", v))
		}
	case reflect.Slice, reflect.Array:
		if t.Elem().Kind() == reflect.Uint8 && t.Kind() == reflect.Slice {
			if _, ok := v.(string); !ok {
				report.Add(mismatch(path, "base64 string", v))
			}
			return
		}
		items, ok := v.([]any)
		if !ok {
			report.Add(mismatch(path, "array", v))
			return
		}
		for i, item := range items {
			checkValue(t.Elem(), item, fmt.Sprintf("%s[%d]", path, i), report)
		}
	case reflect.Map:
		obj, ok := v.(map[string]any)
		if !ok {
			report.Add(mismatch(path, "object", v))
			return
		}
		for _, key := range slices.Sorted(maps.Keys(obj)) {
			checkValue(t.Elem(), obj[key], joinPath(path, key), report)
		}
	case reflect.Struct:
		obj, ok := v.(map[string]any)
		if !ok {
			report.Add(mismatch(path, "object", v))
			return
		}
		checkStruct(t, obj, path, report)
	}
}

func checkStruct(t reflect.Type, obj map[string]any, path string, report *Report) {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		name, opts, skip := jsonFieldName(field)
		if skip {
			continue
		}

		// Embedded structs without a json name share the parent object.
		if field.Anonymous && name == "" {
			ft := field.Type
			if ft.Kind() == reflect.Pointer {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct {
				checkStruct(ft, obj, path, report)
				continue
			}
		}
		if name == "" {
			name = field.Name
		}

		fieldPath := joinPath(path, name)
		value, present := lookupMember(obj, name)
		if !present {
			if isRequiredMember(field, opts) {
				report.Add(Issue{Path: fieldPath, Expected: describeKind(field.Type), Actual: "undefined", Message: "missing required field"})
			}
			continue
		}
		if value == nil {
			if isNullable(field.Type) || strings.Contains(opts, "omitempty") {
				continue
			}
			report.Add(mismatch(fieldPath, describeKind(field.Type), nil))
			continue
		}
		checkValue(field.Type, value, fieldPath, report)
	}
}

func jsonFieldName(field reflect.StructField) (name, opts string, skip bool) {
	if !field.IsExported() && !field.Anonymous {
		return "", "", true
	}
	tag := field.Tag.Get("json")
	if tag == "-" {
		return "", "", true
	}
	name, opts, _ = strings.Cut(tag, ",")
	return name, opts, false
}

// lookupMember mirrors encoding/json: exact match first, then case-insensitive.
func lookupMember(obj map[string]any, name string) (any, bool) {
	if v, ok := obj[name]; ok {
		return v, true
	}
	for k, v := range obj {
		if strings.EqualFold(k, name) {
			return v, true
		}
	}
	return nil, false
}

func isRequiredMember(field reflect.StructField, opts string) bool {
	if strings.Contains(opts, "omitempty") || strings.Contains(opts, "omitzero") {
		return false
	}
	return !isNullable(field.Type)
}

func isNullable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Interface:
		return true
	}
	return t.Kind() == reflect.Slice && reflect.PointerTo(t).Implements(jsonUnmarshalerType)
}

func mismatch(path, expected string, v any) Issue {
	return Issue{Path: path, Expected: expected, Actual: describeValue(v)}
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func describeKind(t reflect.Type) string {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Map, reflect.Struct:
		return "object"
	default:
		return "value"
	}
}

func describeValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return "string " + strconv.Quote(truncate(x, 40))
	case json.Number:
		return "number " + x.String()
	case bool:
		return "boolean " + strconv.FormatBool(x)
	case []any:
		return fmt.Sprintf("array(%d)", len(x))
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func describeBody(body []byte) string {
	if len(bytes.TrimSpace(body)) == 0 {
		return "empty body"
	}
	return strconv.Quote(truncate(string(body), 40))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func unmarshalIssue(err error) Issue {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return Issue{Path: typeErr.Field, Expected: typeErr.Type.String(), Actual: typeErr.Value, Message: err.Error()}
	}
	return Issue{Path: rootPath, Message: err.Error()}
}
