package bootstrap

import (
	"github.com/kbukum/devportal/config"
	"github.com/kbukum/devportal/logger"
)

// Config is the interface constraint for application configuration types.
// *config.Config satisfies it.
type Config interface {
	GetBaseConfig() *config.BaseConfig
	GetLoggingConfig() *logger.Config
	ApplyDefaults()
	Validate() error
}

var _ Config = (*config.Config)(nil)
