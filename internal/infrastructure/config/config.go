// Package config provides configuration loading for the gitrelease application.
// Settings come from environment variables with sensible defaults; the tool
// needs no configuration files or external secret sources.
package config

import (
	"os"
)

// Environment variable names.
const (
	// EnvLogLevel is the log level (debug, info, error).
	EnvLogLevel = "LOG_LEVEL"

	// EnvLogAppName is the application name for log context.
	EnvLogAppName = "LOG_APP_NAME"
)

// Default values.
const (
	DefaultLogLevel   = "info"
	DefaultLogAppName = "gitrelease"
)

// Config holds all application configuration.
type Config struct {
	// LogLevel is the logging level (debug, info, error).
	LogLevel string

	// LogAppName is the application name for log context.
	LogAppName string
}

// Load loads the application configuration from environment variables,
// applying defaults for anything unset. The error return keeps the loader
// signature stable for callers injecting alternative sources.
func Load() (*Config, error) {
	logLevel := os.Getenv(EnvLogLevel)
	if logLevel == "" {
		logLevel = DefaultLogLevel
	}

	logAppName := os.Getenv(EnvLogAppName)
	if logAppName == "" {
		logAppName = DefaultLogAppName
	}

	return &Config{
		LogLevel:   logLevel,
		LogAppName: logAppName,
	}, nil
}
