package credentials

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Well-known secret names.
const (
	AdminSubscriptionKey = "adminapi.subscription_key"
	JiraToken            = "jira.token"
	ServiceDataAPIKey    = "servicedata.api_key"
)

// ErrNotFound is returned when a provider has no secret with the given name.
var ErrNotFound = errors.New("credentials: secret not found")

// Provider returns a secret by name.
type Provider interface {
	Secret(ctx context.Context, name string) (string, error)
}

// Static serves secrets from a fixed map.
type Static map[string]string

// Secret implements Provider.
func (s Static) Secret(_ context.Context, name string) (string, error) {
	if v, ok := s[name]; ok && v != "" {
		return v, nil
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, name)
}

// Env reads secrets from environment variables. The variable for a name is
// Prefix followed by the upper-cased name with every non-alphanumeric rune
// replaced by '_': "jira.token" is DEVPORTAL_JIRA_TOKEN for prefix
// "DEVPORTAL_".
type Env struct {
	Prefix string
	lookup func(string) (string, bool)
}

// NewEnv creates an environment provider.
func NewEnv(prefix string) *Env {
	return &Env{Prefix: prefix, lookup: os.LookupEnv}
}

// Variable returns the environment variable read for name.
func (e *Env) Variable(name string) string {
	var b strings.Builder
	b.WriteString(e.Prefix)
	for _, r := range strings.ToUpper(name) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

// Secret implements Provider.
func (e *Env) Secret(_ context.Context, name string) (string, error) {
	lookup := e.lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if v, ok := lookup(e.Variable(name)); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v), nil
	}
	return "", fmt.Errorf("%w: %s (%s)", ErrNotFound, name, e.Variable(name))
}

// Chain asks each provider in order and returns the first secret found.
// Failures other than ErrNotFound are kept; the first of them is returned
// when no provider has the secret.
type Chain []Provider

// Secret implements Provider.
func (c Chain) Secret(ctx context.Context, name string) (string, error) {
	var firstErr error
	for _, p := range c {
		if p == nil {
			continue
		}
		v, err := p.Secret(ctx, name)
		if err == nil {
			return v, nil
		}
		if !errors.Is(err, ErrNotFound) && firstErr == nil {
			firstErr = err
		}
	}
	if firstErr != nil {
		return "", firstErr
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, name)
}

// Resolve returns explicit when it is set and otherwise asks p.
func Resolve(ctx context.Context, p Provider, name, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if p == nil {
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return p.Secret(ctx, name)
}
