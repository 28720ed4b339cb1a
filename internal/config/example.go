package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# tasklist configuration file
# Values can be overridden by environment variables (TASKLIST_*) or CLI flags

# Task file (relative paths resolve against the working directory)
task_file = "tasks.json"

# JSON Schema used to validate the task file (empty uses the built-in schema)
# schema_file = "tasks.schema.json"

# Suppress confirmations and empty-list notices
quiet = false

# Logging (written to stderr)
log_level = "info"       # debug, info, warn, error
log_format = "text"      # text, json, logfmt
log_timestamps = false
log_caller = false
`
}

// ErrConfigExists is returned by WriteExample when the target exists and
// overwriting was not requested.
var ErrConfigExists = errors.New("config file already exists")

// WriteExample writes ExampleConfig to path, creating parent directories.
func WriteExample(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s (use --force to overwrite)", ErrConfigExists, path)
		}
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(ExampleConfig()), 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
