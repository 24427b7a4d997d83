package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestBaseConfigApplyDefaults(t *testing.T) {
	t.Run("empty config gets name and production", func(t *testing.T) {
		cfg := BaseConfig{}
		cfg.ApplyDefaults()
		if cfg.Name != "devportal" {
			t.Errorf("expected 'devportal', got %q", cfg.Name)
		}
		if cfg.Environment != "production" {
			t.Errorf("expected 'production', got %q", cfg.Environment)
		}
		if cfg.Debug {
			t.Error("expected debug=false for production")
		}
		if cfg.ShutdownTimeout != DefaultShutdownTimeout {
			t.Errorf("expected %v, got %v", DefaultShutdownTimeout, cfg.ShutdownTimeout)
		}
	})

	t.Run("development sets debug true", func(t *testing.T) {
		cfg := BaseConfig{Environment: "development"}
		cfg.ApplyDefaults()
		if !cfg.Debug {
			t.Error("expected debug=true for development")
		}
	})
}

func TestBaseConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     BaseConfig
		wantErr bool
		errMsg  string
	}{
		{"valid development", BaseConfig{Name: "devportal", Environment: "development"}, false, ""},
		{"valid staging", BaseConfig{Name: "devportal", Environment: "staging"}, false, ""},
		{"valid production", BaseConfig{Name: "devportal", Environment: "production"}, false, ""},
		{"missing name", BaseConfig{Environment: "production"}, true, "base.name is required"},
		{"invalid environment", BaseConfig{Name: "devportal", Environment: "invalid"}, true, "base.environment must be one of"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if !strings.Contains(err.Error(), tc.errMsg) {
					t.Errorf("expected error containing %q, got %q", tc.errMsg, err.Error())
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestConfigApplyDefaults(t *testing.T) {
	cfg := Config{Base: BaseConfig{Environment: "development"}}
	cfg.ApplyDefaults()

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected debug logging in development, got %q", cfg.Logging.Level)
	}
	if cfg.Tracing.ServiceName != "devportal" || cfg.Tracing.Environment != "development" {
		t.Errorf("expected tracing to inherit base, got %+v", cfg.Tracing)
	}
	if cfg.Tracing.SampleRate != 1 {
		t.Errorf("expected sample rate 1, got %v", cfg.Tracing.SampleRate)
	}
	if cfg.Jira.StatusComplete != "DONE" {
		t.Errorf("expected jira status default, got %q", cfg.Jira.StatusComplete)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected defaults to validate, got %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"logging level", func(c *Config) { c.Logging.Level = "loud" }, "config.logging"},
		{"sample rate", func(c *Config) { c.Tracing.SampleRate = 2 }, "tracing.sample_rate"},
		{"endpoint", func(c *Config) { c.Tracing.Enabled = true }, "tracing.endpoint"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Config{}
			cfg.ApplyDefaults()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tc.errMsg) {
				t.Errorf("expected error containing %q, got %v", tc.errMsg, err)
			}
		})
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestLoadWithYAML(t *testing.T) {
	dir := t.TempDir()
	configPath := writeFile(t, dir, "config.yml", `
base:
  environment: staging
  shutdown_timeout: 3s
adminapi:
  base_url: https://api.example.it
  http:
    timeout: 5s
jira:
  base_url: https://example.atlassian.net
  board_id: DEV
`)

	cfg, err := Load(WithConfigFile(configPath), WithFileSystem(withFile(configPath)))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Base.Environment != "staging" {
		t.Errorf("expected environment 'staging', got %q", cfg.Base.Environment)
	}
	if cfg.Base.ShutdownTimeout != 3*time.Second {
		t.Errorf("expected 3s shutdown timeout, got %v", cfg.Base.ShutdownTimeout)
	}
	if cfg.AdminAPI.BaseURL != "https://api.example.it" {
		t.Errorf("unexpected admin base url %q", cfg.AdminAPI.BaseURL)
	}
	if cfg.AdminAPI.HTTP.Timeout != 5*time.Second {
		t.Errorf("expected 5s timeout, got %v", cfg.AdminAPI.HTTP.Timeout)
	}
	if cfg.Jira.BoardID != "DEV" {
		t.Errorf("expected board DEV, got %q", cfg.Jira.BoardID)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	configPath := writeFile(t, dir, "config.yml", `
jira:
  board_id: DEV
`)
	t.Setenv("DEVPORTAL_JIRA_BOARD_ID", "OPS")
	t.Setenv("DEVPORTAL_ADMINAPI_SUBSCRIPTION_KEY", "from-env")
	t.Setenv("DEVPORTAL_LOGGING_LEVEL", "error")
	t.Setenv("JIRA_TOKEN", "unprefixed")

	cfg, err := Load(WithConfigFile(configPath), WithFileSystem(withFile(configPath)))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Jira.BoardID != "OPS" {
		t.Errorf("expected env board OPS, got %q", cfg.Jira.BoardID)
	}
	if cfg.AdminAPI.SubscriptionKey != "from-env" {
		t.Errorf("expected env subscription key, got %q", cfg.AdminAPI.SubscriptionKey)
	}
	if cfg.Logging.Level != "error" {
		t.Errorf("expected env logging level, got %q", cfg.Logging.Level)
	}
	if cfg.Jira.Token != "" {
		t.Errorf("expected unprefixed variable to be ignored, got %q", cfg.Jira.Token)
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := writeFile(t, dir, ".env", "DEVPORTAL_SERVICEDATA_API_KEY=from-dotenv\n")
	t.Cleanup(func() { _ = os.Unsetenv("DEVPORTAL_SERVICEDATA_API_KEY") })

	cfg, err := Load(WithEnvFile(envPath), WithFileSystem(&mockFS{files: map[string]bool{envPath: true}, real: true}))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.ServiceData.APIKey != "from-dotenv" {
		t.Errorf("expected key from .env, got %q", cfg.ServiceData.APIKey)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(WithConfigFile("/nonexistent/devportal.yml"), WithFileSystem(&mockFS{}))
	if err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestLoadWithoutFiles(t *testing.T) {
	cfg, err := Load(WithFileSystem(&mockFS{}))
	if err != nil {
		t.Fatalf("expected Load to succeed without files, got %v", err)
	}
	if cfg.Base.Name != "devportal" {
		t.Errorf("expected default name, got %q", cfg.Base.Name)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	configPath := writeFile(t, dir, "config.yml", "base: [unterminated")

	if _, err := Load(WithConfigFile(configPath), WithFileSystem(withFile(configPath))); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestResolverWithMockFS(t *testing.T) {
	tests := []struct {
		name       string
		files      map[string]bool
		wantConfig string
		wantEnv    string
	}{
		{
			name:       "working directory first",
			files:      map[string]bool{"./devportal.yml": true, "/home/u/.config/devportal/config.yml": true},
			wantConfig: "./devportal.yml",
		},
		{
			name:       "user config dir",
			files:      map[string]bool{"/home/u/.config/devportal/config.yml": true, "/home/u/.config/devportal/.env": true},
			wantConfig: "/home/u/.config/devportal/config.yml",
			wantEnv:    "/home/u/.config/devportal/.env",
		},
		{
			name:    "program env file",
			files:   map[string]bool{"./.env.devportal": true, "./.env": true},
			wantEnv: "./.env.devportal",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resolver := &Resolver{FileSystem: &mockFS{files: tc.files, configDir: "/home/u/.config"}}
			files := resolver.ResolveFiles("devportal", LoaderConfig{})
			if files.ConfigFile != tc.wantConfig {
				t.Errorf("expected config file %q, got %q", tc.wantConfig, files.ConfigFile)
			}
			if files.EnvFile != tc.wantEnv {
				t.Errorf("expected env file %q, got %q", tc.wantEnv, files.EnvFile)
			}
		})
	}
}

func TestGenerateEnvKeyVariants(t *testing.T) {
	got := generateEnvKeyVariants("JIRA_BOARD_ID")
	want := []string{"jira_board_id", "jira.board.id", "jira.board_id"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("expected %v, got %v", want, got)
	}
	if got := generateEnvKeyVariants("DEBUG"); len(got) != 1 || got[0] != "debug" {
		t.Errorf("expected [debug], got %v", got)
	}
}

func withFile(path string) *mockFS {
	return &mockFS{files: map[string]bool{path: true}}
}

type mockFS struct {
	files     map[string]bool
	configDir string
	real      bool
}

func (m *mockFS) Exists(path string) bool { return m.files[path] }

func (m *mockFS) LoadEnv(path string) error {
	if m.real {
		return (&RealFileSystem{}).LoadEnv(path)
	}
	return nil
}

func (m *mockFS) UserConfigDir() (string, error) { return m.configDir, nil }

func TestLoaderOptions(t *testing.T) {
	var lc LoaderConfig
	fs := &mockFS{}
	WithFileSystem(fs)(&lc)
	WithConfigFile("/path/to/config.yml")(&lc)
	WithEnvFile("/path/to/.env")(&lc)
	WithEnvPrefix("DP_")(&lc)
	if lc.FileSystem == nil {
		t.Error("expected FileSystem to be set")
	}
	if lc.ConfigFile != "/path/to/config.yml" || lc.EnvFile != "/path/to/.env" || lc.EnvPrefix != "DP_" {
		t.Errorf("unexpected loader config %+v", lc)
	}
}
