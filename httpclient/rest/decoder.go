package rest

import (
	"net/http"

	"github.com/kbukum/devportal/errors"
	"github.com/kbukum/devportal/result"
	"github.com/kbukum/devportal/validation"
)

// Response is a decoded response: the status it was decoded from and the
// validated value.
type Response[T any] struct {
	Status int `json:"status"`
	Value  T   `json:"value"`
}

// Decoder classifies a raw response. The bool reports whether the decoder
// handles status; when it is false the Result must be ignored.
type Decoder[T any] func(status int, body []byte) (result.Result[Response[T]], bool)

// JSON decodes and validates a JSON body for exactly status. A body that is
// not JSON or does not match T fails with DECODE_FAILURE carrying every issue.
func JSON[T any](status int) Decoder[T] {
	return func(got int, body []byte) (result.Result[Response[T]], bool) {
		if got != status {
			return result.Result[Response[T]]{}, false
		}
		var v T
		if report := validation.Decode(body, &v); report.HasIssues() {
			return result.Fail[Response[T]](errors.DecodeFailure(status, report)), true
		}
		return result.Ok(Response[T]{Status: status, Value: v}), true
	}
}

// Constant answers status with v without reading the body.
func Constant[T any](status int, v T) Decoder[T] {
	return func(got int, _ []byte) (result.Result[Response[T]], bool) {
		if got != status {
			return result.Result[Response[T]]{}, false
		}
		return result.Ok(Response[T]{Status: status, Value: v}), true
	}
}

// Status maps exactly status to an error with code and message. Title and
// detail of an upstream problem document are added to the error details.
func Status[T any](status int, code errors.ErrorCode, message string) Decoder[T] {
	return func(got int, body []byte) (result.Result[Response[T]], bool) {
		if got != status {
			return result.Result[Response[T]]{}, false
		}
		return result.Fail[Response[T]](errors.New(code, message).WithStatus(status).WithProblem(body)), true
	}
}

// ServerError maps every status >= 500 to UPSTREAM_ERROR. The body is not
// required to be JSON.
func ServerError[T any](message string) Decoder[T] {
	return func(got int, body []byte) (result.Result[Response[T]], bool) {
		if got < http.StatusInternalServerError {
			return result.Result[Response[T]]{}, false
		}
		return result.Fail[Response[T]](errors.Upstream(got, message).WithProblem(body)), true
	}
}

func semantic[T any](status int, message string) Decoder[T] {
	return func(got int, body []byte) (result.Result[Response[T]], bool) {
		if got != status {
			return result.Result[Response[T]]{}, false
		}
		return result.Fail[Response[T]](errors.ForStatus(status, message).WithProblem(body)), true
	}
}

// Unauthorized maps 401 to UNAUTHORIZED.
func Unauthorized[T any](message string) Decoder[T] {
	return semantic[T](http.StatusUnauthorized, message)
}

// Forbidden maps 403 to FORBIDDEN.
func Forbidden[T any](message string) Decoder[T] {
	return semantic[T](http.StatusForbidden, message)
}

// NotFound maps 404 to NOT_FOUND.
func NotFound[T any](message string) Decoder[T] {
	return semantic[T](http.StatusNotFound, message)
}

// BadRequest maps 400 to BAD_REQUEST.
func BadRequest[T any](message string) Decoder[T] {
	return semantic[T](http.StatusBadRequest, message)
}

// Conflict maps 409 to CONFLICT.
func Conflict[T any](message string) Decoder[T] {
	return semantic[T](http.StatusConflict, message)
}

// Compose tries decoders in order; the first one that handles the status wins.
func Compose[T any](decoders ...Decoder[T]) Decoder[T] {
	return func(status int, body []byte) (result.Result[Response[T]], bool) {
		for _, d := range decoders {
			if d == nil {
				continue
			}
			if r, ok := d(status, body); ok {
				return r, true
			}
		}
		return result.Result[Response[T]]{}, false
	}
}

// Decode runs d and turns an unhandled status into UNKNOWN_STATUS.
func Decode[T any](d Decoder[T], status int, body []byte) result.Result[Response[T]] {
	if d != nil {
		if r, ok := d(status, body); ok {
			return r
		}
	}
	return result.Fail[Response[T]](errors.UnknownStatus(status))
}

// ValueOf drops the status and keeps the decoded value.
func ValueOf[T any](r result.Result[Response[T]]) result.Result[T] {
	return result.Map(r, func(resp Response[T]) T { return resp.Value })
}
