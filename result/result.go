package result

import "errors"

// errNilFailure replaces a nil error passed to Fail so a failure can never
// be observed as success.
var errNilFailure = errors.New("result: failure with nil error")

var errNilTask = errors.New("result: run of zero task")

// Result is the outcome of a computation: exactly one of a value or an error.
// The zero value is Ok with the zero value of T.
type Result[T any] struct {
	value T
	err   error
}

// Ok constructs a successful Result.
func Ok[T any](value T) Result[T] {
	return Result[T]{value: value}
}

// Fail constructs a failed Result. A nil err is replaced by a placeholder error.
func Fail[T any](err error) Result[T] {
	if err == nil {
		err = errNilFailure
	}
	return Result[T]{err: err}
}

// FromPair converts a Go (value, error) pair into a Result.
func FromPair[T any](value T, err error) Result[T] {
	if err != nil {
		return Fail[T](err)
	}
	return Ok(value)
}

// IsOk reports whether r is a success.
func (r Result[T]) IsOk() bool { return r.err == nil }

// IsErr reports whether r is a failure.
func (r Result[T]) IsErr() bool { return r.err != nil }

// Err returns the failure, or nil on success.
func (r Result[T]) Err() error { return r.err }

// Unwrap returns the value and error in the usual Go shape. On failure the
// value is the zero value of T.
func (r Result[T]) Unwrap() (T, error) {
	if r.err != nil {
		var zero T
		return zero, r.err
	}
	return r.value, nil
}

// Fold eliminates a Result into a single value.
func Fold[T, U any](r Result[T], onErr func(error) U, onOk func(T) U) U {
	if r.err != nil {
		return onErr(r.err)
	}
	return onOk(r.value)
}

// Map transforms the success value. The error arm passes through untouched.
func Map[T, U any](r Result[T], fn func(T) U) Result[U] {
	if r.err != nil {
		return Result[U]{err: r.err}
	}
	return Ok(fn(r.value))
}

// MapErr transforms the error. The success arm passes through untouched.
func MapErr[T any](r Result[T], fn func(error) error) Result[T] {
	if r.err == nil {
		return r
	}
	return Fail[T](fn(r.err))
}

// Chain sequences a dependent step. fn is not called when r is a failure.
func Chain[T, U any](r Result[T], fn func(T) Result[U]) Result[U] {
	if r.err != nil {
		return Result[U]{err: r.err}
	}
	return fn(r.value)
}
