package httpclient

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestClassify(t *testing.T) {
	expired, cancel := context.WithTimeout(context.Background(), 0)
	defer cancel()
	<-expired.Done()

	tests := []struct {
		name string
		ctx  context.Context
		err  error
		want ErrorCode
	}{
		{"plain", context.Background(), errors.New("connection refused"), ErrCodeConnection},
		{"net timeout", context.Background(), fmt.Errorf("dial: %w", timeoutErr{}), ErrCodeTimeout},
		{"deadline", expired, errors.New("canceled"), ErrCodeTimeout},
		{"wrapped deadline", context.Background(), fmt.Errorf("x: %w", context.DeadlineExceeded), ErrCodeTimeout},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify(tt.ctx, tt.err)
			if got.Code != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got.Code)
			}
			if !errors.Is(got, tt.err) {
				t.Error("expected cause to be preserved")
			}
		})
	}
}

func TestErrorString(t *testing.T) {
	err := NewConnectionError(errors.New("refused"))
	if err.Error() != "httpclient: connection: refused" {
		t.Errorf("unexpected message %q", err.Error())
	}
	if ErrorCode(99).String() != "unknown" {
		t.Error("expected unknown for out-of-range code")
	}
}
