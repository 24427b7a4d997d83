package cmd

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/spf13/pflag"

	"github.com/kbukum/devportal/errors"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, exitOK},
		{"help", pflag.ErrHelp, exitOK},
		{"unauthorized", errors.Unauthorized(""), exitAuth},
		{"not found", errors.NotFound(""), exitNotFound},
		{"forbidden", errors.Forbidden(""), exitForbidden},
		{"upstream", errors.Upstream(502, ""), exitUpstream},
		{"transport", errors.TransportFailure("adminapi.getService", stderrors.New("refused")), exitTransport},
		{"invalid request", errors.InvalidRequest("bad", nil), exitUsage},
		{"unknown status", errors.UnknownStatus(418), exitGeneric},
		{"bad request", errors.BadRequest(""), exitGeneric},
		{"wrapped", fmt.Errorf("task: %w", errors.NotFound("")), exitNotFound},
		{"usage", usageError{stderrors.New("missing argument")}, exitUsage},
		{"cobra unknown command", stderrors.New(`unknown command "nope" for "devportal"`), exitUsage},
		{"plain", stderrors.New("boom"), exitGeneric},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}
