// Package config loads the devportal configuration.
//
// Values come from a YAML file, a .env file and the process environment,
// in increasing order of precedence. Environment variables carry the
// DEVPORTAL_ prefix and use underscores for nesting, so
// DEVPORTAL_JIRA_BOARD_ID sets jira.board_id.
//
// # Usage
//
//	cfg, err := config.Load(config.WithConfigFile("devportal.yml"))
//	if err != nil {
//	    return err
//	}
//	client, err := adminapi.New(cfg.AdminAPI)
//
// Nothing in this module reads configuration at import time; callers load
// it once and pass the sections to the client constructors.
package config
