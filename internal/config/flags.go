package config

import (
	"github.com/spf13/pflag"
)

// Flag names registered by RegisterFlags.
const (
	FlagFile          = "file"
	FlagSchema        = "schema"
	FlagQuiet         = "quiet"
	FlagLogLevel      = "log-level"
	FlagLogFormat     = "log-format"
	FlagLogTimestamps = "log-timestamps"
	FlagLogCaller     = "log-caller"
)

// RegisterFlags defines the configuration flags on fs. The defaults shown in
// help output are the built-in defaults; only flags set on the command line
// override other sources.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.StringP(FlagFile, "f", DefaultTaskFile, "Path to the task file")
	fs.String(FlagSchema, "", "JSON Schema file used instead of the embedded schema")
	fs.BoolP(FlagQuiet, "q", false, "Suppress confirmations and empty-list notices")
	fs.String(FlagLogLevel, DefaultLogLevel, "Log level (debug, info, warn, error)")
	fs.String(FlagLogFormat, DefaultLogFormat, "Log format (text, json, logfmt)")
	fs.Bool(FlagLogTimestamps, false, "Include timestamps in log output")
	fs.Bool(FlagLogCaller, false, "Include caller location in log output")
}

// applyFlags copies explicitly set flags into cfg.
func applyFlags(cfg *Config, fs *pflag.FlagSet, sources map[string]ConfigSource) error {
	if fs == nil {
		return nil
	}

	type stringBinding struct {
		flag, field string
		target      *string
	}
	type boolBinding struct {
		flag, field string
		target      *bool
	}

	for _, b := range []stringBinding{
		{FlagFile, "task_file", &cfg.TaskFile},
		{FlagSchema, "schema_file", &cfg.SchemaFile},
		{FlagLogLevel, "log_level", &cfg.LogLevel},
		{FlagLogFormat, "log_format", &cfg.LogFormat},
	} {
		if fs.Lookup(b.flag) == nil || !fs.Changed(b.flag) {
			continue
		}
		v, err := fs.GetString(b.flag)
		if err != nil {
			return err
		}
		*b.target = v
		sources[b.field] = SourceFlag
	}

	for _, b := range []boolBinding{
		{FlagQuiet, "quiet", &cfg.Quiet},
		{FlagLogTimestamps, "log_timestamps", &cfg.LogTimestamps},
		{FlagLogCaller, "log_caller", &cfg.LogCaller},
	} {
		if fs.Lookup(b.flag) == nil || !fs.Changed(b.flag) {
			continue
		}
		v, err := fs.GetBool(b.flag)
		if err != nil {
			return err
		}
		*b.target = v
		sources[b.field] = SourceFlag
	}

	return nil
}
