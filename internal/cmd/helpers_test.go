package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/99designs/keyring"

	"github.com/kbukum/devportal/credentials"
	"github.com/kbukum/devportal/testutil"
)

const (
	subscriptionKey = "sub-key"
	jiraEmail       = "bot@example.com"
	jiraToken       = "jira-token"
	dataKey         = "data-key"
)

const configTemplate = `logging:
  level: disabled
adminapi:
  base_url: %[1]s
  subscription_key: %[2]s
jira:
  base_url: %[1]s
  email: bot@example.com
  token: jira-token
  board_id: DEV
servicedata:
  base_url: %[1]s
  api_key: data-key
`

// testEnv is a fake upstream, a config file pointing at it and an
// in-memory keyring.
type testEnv struct {
	server     *testutil.Server
	configPath string
	ring       *keyring.ArrayKeyring
	stdin      string
}

type execution struct {
	stdout string
	stderr string
	err    error
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	server := testutil.NewServer()
	testutil.T(t).Setup(server)
	e := &testEnv{server: server, ring: keyring.NewArrayKeyring(nil)}
	e.writeConfig(t, server.BaseURL(), subscriptionKey)
	return e
}

func (e *testEnv) writeConfig(t *testing.T, baseURL, key string) {
	t.Helper()
	e.configPath = filepath.Join(t.TempDir(), "devportal.yml")
	content := fmt.Sprintf(configTemplate, baseURL, key)
	if key == "" {
		content = strings.Replace(content, "  subscription_key: \n", "", 1)
	}
	if err := os.WriteFile(e.configPath, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func (e *testEnv) run(t *testing.T, args ...string) execution {
	t.Helper()
	var stdout, stderr bytes.Buffer
	c := newCLI(strings.NewReader(e.stdin), &stdout, &stderr)
	c.openKeyring = func(cfg credentials.KeyringConfig) *credentials.Keyring {
		return credentials.NewKeyringWithOpener(cfg, func(keyring.Config) (keyring.Keyring, error) {
			return e.ring, nil
		})
	}
	err := c.execute(context.Background(), append([]string{"--config", e.configPath}, args...))
	return execution{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func (x execution) mustSucceed(t *testing.T) string {
	t.Helper()
	if x.err != nil {
		t.Fatalf("command failed: %v\nstderr: %s", x.err, x.stderr)
	}
	return x.stdout
}
