package config

import (
	"fmt"

	"github.com/kbukum/devportal/adminapi"
	"github.com/kbukum/devportal/credentials"
	"github.com/kbukum/devportal/jira"
	"github.com/kbukum/devportal/logger"
	"github.com/kbukum/devportal/observability"
	"github.com/kbukum/devportal/servicedata"
	"github.com/kbukum/devportal/version"
)

// Config is the complete devportal configuration.
//
// Example config.yml:
//
//	base:
//	  environment: production
//	logging:
//	  level: info
//	adminapi:
//	  base_url: https://api.example.it
//	jira:
//	  base_url: https://example.atlassian.net
//	  email: bot@example.com
//	  board_id: DEV
//	servicedata:
//	  base_url: https://data.example.it
//
// Secrets (adminapi.subscription_key, jira.token, servicedata.api_key) are
// best left to the environment or the OS keyring.
type Config struct {
	Base        BaseConfig                 `yaml:"base" mapstructure:"base"`
	Logging     logger.Config              `yaml:"logging" mapstructure:"logging"`
	Tracing     observability.TracerConfig `yaml:"tracing" mapstructure:"tracing"`
	AdminAPI    adminapi.Config            `yaml:"adminapi" mapstructure:"adminapi"`
	Jira        jira.Config                `yaml:"jira" mapstructure:"jira"`
	ServiceData servicedata.Config         `yaml:"servicedata" mapstructure:"servicedata"`
	Keyring     credentials.KeyringConfig  `yaml:"keyring" mapstructure:"keyring"`
}

// GetBaseConfig returns the base section.
func (c *Config) GetBaseConfig() *BaseConfig { return &c.Base }

// GetLoggingConfig returns the logging section.
func (c *Config) GetLoggingConfig() *logger.Config { return &c.Logging }

// ApplyDefaults fills in zero-value fields of every section.
func (c *Config) ApplyDefaults() {
	c.Base.ApplyDefaults()
	if c.Base.Version == "" {
		c.Base.Version = version.Version
	}
	if c.Base.Debug && c.Logging.Level == "" {
		c.Logging.Level = "debug"
	}
	c.Logging.ApplyDefaults()

	if c.Tracing.ServiceName == "" {
		c.Tracing.ServiceName = c.Base.Name
	}
	if c.Tracing.ServiceVersion == "" {
		c.Tracing.ServiceVersion = c.Base.Version
	}
	if c.Tracing.Environment == "" {
		c.Tracing.Environment = c.Base.Environment
	}
	if c.Tracing.SampleRate == 0 {
		c.Tracing.SampleRate = 1
	}
	c.Jira.ApplyDefaults()
	c.Keyring.ApplyDefaults()
}

// Validate checks the sections every command needs. Client sections are
// validated by the client constructors, since most commands use only one.
func (c *Config) Validate() error {
	if err := c.Base.Validate(); err != nil {
		return err
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("config.logging: %w", err)
	}
	if c.Tracing.SampleRate < 0 || c.Tracing.SampleRate > 1 {
		return fmt.Errorf("tracing.sample_rate must be within [0, 1] (got: %v)", c.Tracing.SampleRate)
	}
	if c.Tracing.Enabled && c.Tracing.Endpoint == "" {
		return fmt.Errorf("tracing.endpoint is required when tracing is enabled")
	}
	return nil
}

// Load reads the configuration with LoadConfig, then applies defaults and
// validates it.
func Load(opts ...LoaderOption) (*Config, error) {
	cfg := &Config{}
	if err := LoadConfig(DefaultName, cfg, opts...); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
