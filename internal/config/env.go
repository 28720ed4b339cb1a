package config

import (
	"fmt"
	"os"
	"strings"
)

// Environment variables read by loadFromEnv.
const (
	EnvTaskFile      = "TASKLIST_FILE"
	EnvSchemaFile    = "TASKLIST_SCHEMA"
	EnvQuiet         = "TASKLIST_QUIET"
	EnvLogLevel      = "TASKLIST_LOG_LEVEL"
	EnvLogFormat     = "TASKLIST_LOG_FORMAT"
	EnvLogTimestamps = "TASKLIST_LOG_TIMESTAMPS"
	EnvLogCaller     = "TASKLIST_LOG_CALLER"
)

// loadFromEnv overrides config from environment variables and updates source
// tracking. Empty variables are ignored.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) error {
	setString := func(env, field string, target *string) {
		if v := os.Getenv(env); v != "" {
			*target = v
			sources[field] = SourceEnv
		}
	}
	setBool := func(env, field string, target *bool) error {
		v := os.Getenv(env)
		if v == "" {
			return nil
		}
		b, err := boolFromString(v)
		if err != nil {
			return fmt.Errorf("%s: %w", env, err)
		}
		*target = b
		sources[field] = SourceEnv
		return nil
	}

	setString(EnvTaskFile, "task_file", &cfg.TaskFile)
	setString(EnvSchemaFile, "schema_file", &cfg.SchemaFile)
	if err := setBool(EnvQuiet, "quiet", &cfg.Quiet); err != nil {
		return err
	}

	// Logging configuration
	setString(EnvLogLevel, "log_level", &cfg.LogLevel)
	setString(EnvLogFormat, "log_format", &cfg.LogFormat)
	if err := setBool(EnvLogTimestamps, "log_timestamps", &cfg.LogTimestamps); err != nil {
		return err
	}
	return setBool(EnvLogCaller, "log_caller", &cfg.LogCaller)
}

// boolFromString parses a boolean from a string.
func boolFromString(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean %q", s)
}
