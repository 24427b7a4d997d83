// Package logger provides structured logging for devportal using zerolog.
//
// Library packages take a *Logger and default to Nop(); only the CLI builds a
// real one from configuration.
//
// # Configuration
//
//	logging:
//	  level: "debug"
//	  format: "json"
//
// # Usage
//
//	log := logger.New(&cfg, "devportal").WithComponent("jira")
//	log.Debug("request completed", logger.Fields(logger.FieldStatus, 201))
package logger
