package config

import (
	"strconv"
)

// Setting is one resolved configuration value.
type Setting struct {
	Key    string
	Value  string
	Source ConfigSource
}

// Settings returns every configurable value with its source, in a stable order.
func (cws *ConfigWithSources) Settings() []Setting {
	cfg := cws.Config
	values := map[string]string{
		"task_file":      cfg.TaskFile,
		"schema_file":    cfg.SchemaFile,
		"quiet":          strconv.FormatBool(cfg.Quiet),
		"log_level":      cfg.LogLevel,
		"log_format":     cfg.LogFormat,
		"log_timestamps": strconv.FormatBool(cfg.LogTimestamps),
		"log_caller":     strconv.FormatBool(cfg.LogCaller),
	}

	settings := make([]Setting, 0, len(values))
	for _, key := range configFields() {
		source, ok := cws.Sources[key]
		if !ok {
			source = SourceDefault
		}
		settings = append(settings, Setting{Key: key, Value: values[key], Source: source})
	}
	return settings
}

// GetConfigFile returns the highest-priority config file that was read, or
// an empty string if none was.
func (cws *ConfigWithSources) GetConfigFile() string {
	if len(cws.Files) == 0 {
		return ""
	}
	return cws.Files[len(cws.Files)-1]
}
