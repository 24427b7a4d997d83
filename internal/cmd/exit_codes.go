package cmd

import (
	stderrors "errors"
	"strings"

	"github.com/spf13/pflag"

	"github.com/kbukum/devportal/errors"
)

const (
	exitOK        = 0
	exitGeneric   = 1
	exitUsage     = 2
	exitAuth      = 3
	exitNotFound  = 4
	exitForbidden = 5
	exitUpstream  = 7
	exitTransport = 8
)

// ExitCode maps an error to a process exit code.
func ExitCode(err error) int {
	if err == nil || stderrors.Is(err, pflag.ErrHelp) {
		return exitOK
	}
	switch errors.CodeOf(err) {
	case errors.ErrCodeUnauthorized:
		return exitAuth
	case errors.ErrCodeNotFound:
		return exitNotFound
	case errors.ErrCodeForbidden:
		return exitForbidden
	case errors.ErrCodeUpstream:
		return exitUpstream
	case errors.ErrCodeTransportFailure:
		return exitTransport
	case errors.ErrCodeInvalidRequest:
		return exitUsage
	case "":
	default:
		return exitGeneric
	}
	if isUsageError(err) {
		return exitUsage
	}
	return exitGeneric
}

func isUsageError(err error) bool {
	var u usageError
	if stderrors.As(err, &u) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, indicator := range []string{"unknown command", "unknown flag", "unknown shorthand flag", "flag needs an argument"} {
		if strings.Contains(msg, indicator) {
			return true
		}
	}
	return false
}
