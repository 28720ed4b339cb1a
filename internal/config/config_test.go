// Package config tests configuration loading.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

// isolate points every config location at fresh temp directories and clears
// TASKLIST_* variables. It returns the home and working directories.
func isolate(t *testing.T) (home, wd string) {
	t.Helper()
	home = t.TempDir()
	wd = t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, "xdg"))
	t.Setenv("APPDATA", filepath.Join(home, "appdata"))
	for _, env := range []string{EnvTaskFile, EnvSchemaFile, EnvQuiet, EnvLogLevel, EnvLogFormat, EnvLogTimestamps, EnvLogCaller} {
		t.Setenv(env, "")
	}
	oldwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(wd); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PWD", wd)
	t.Cleanup(func() { _ = os.Chdir(oldwd) })

	// Resolve symlinks such as /var -> /private/var on macOS.
	resolved, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	return home, resolved
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func newFlagSet(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("tasklist", pflag.ContinueOnError)
	RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	return fs
}

func TestDefaults(t *testing.T) {
	_, wd := isolate(t)

	cws, err := LoadWithSources(nil)
	if err != nil {
		t.Fatalf("LoadWithSources: %v", err)
	}
	cfg := cws.Config

	if want := filepath.Join(wd, DefaultTaskFile); cfg.TaskFile != want {
		t.Errorf("TaskFile: got %q, want %q", cfg.TaskFile, want)
	}
	if cfg.SchemaFile != "" {
		t.Errorf("SchemaFile: got %q, want empty", cfg.SchemaFile)
	}
	if cfg.LogLevel != DefaultLogLevel || cfg.LogFormat != DefaultLogFormat {
		t.Errorf("logging: got %q/%q", cfg.LogLevel, cfg.LogFormat)
	}
	if cfg.Quiet || cfg.LogTimestamps || cfg.LogCaller {
		t.Errorf("booleans should default to false: %+v", cfg)
	}
	if cfg.WorkDir != wd {
		t.Errorf("WorkDir: got %q, want %q", cfg.WorkDir, wd)
	}
	if len(cws.Files) != 0 {
		t.Errorf("Files: got %v, want none", cws.Files)
	}
	for _, field := range configFields() {
		if cws.Sources[field] != SourceDefault {
			t.Errorf("source of %s: got %q, want default", field, cws.Sources[field])
		}
	}
}

func TestLoadPriority(t *testing.T) {
	tests := []struct {
		name       string
		user       string
		project    string
		env        map[string]string
		args       []string
		wantFile   string
		wantQuiet  bool
		wantLevel  string
		wantSource map[string]ConfigSource
	}{
		{
			name:      "user file",
			user:      "task_file = \"user.json\"\nquiet = true\n",
			wantFile:  "user.json",
			wantQuiet: true,
			wantLevel: "info",
			wantSource: map[string]ConfigSource{
				"task_file": SourceUserFile,
				"quiet":     SourceUserFile,
				"log_level": SourceDefault,
			},
		},
		{
			name:      "project overrides user",
			user:      "task_file = \"user.json\"\nlog_level = \"warn\"\n",
			project:   "task_file = \"project.json\"\n",
			wantFile:  "project.json",
			wantLevel: "warn",
			wantSource: map[string]ConfigSource{
				"task_file": SourceProjFile,
				"log_level": SourceUserFile,
			},
		},
		{
			name:      "env overrides files",
			project:   "task_file = \"project.json\"\nquiet = true\n",
			env:       map[string]string{EnvTaskFile: "env.json", EnvQuiet: "no", EnvLogLevel: "DEBUG"},
			wantFile:  "env.json",
			wantQuiet: false,
			wantLevel: "debug",
			wantSource: map[string]ConfigSource{
				"task_file": SourceEnv,
				"quiet":     SourceEnv,
				"log_level": SourceEnv,
			},
		},
		{
			name:      "flags override env",
			env:       map[string]string{EnvTaskFile: "env.json", EnvLogLevel: "warn"},
			args:      []string{"-f", "flag.json", "--quiet"},
			wantFile:  "flag.json",
			wantQuiet: true,
			wantLevel: "warn",
			wantSource: map[string]ConfigSource{
				"task_file": SourceFlag,
				"quiet":     SourceFlag,
				"log_level": SourceEnv,
			},
		},
		{
			name:      "unset flags keep lower layers",
			project:   "task_file = \"project.json\"\n",
			args:      []string{"--log-level", "error"},
			wantFile:  "project.json",
			wantLevel: "error",
			wantSource: map[string]ConfigSource{
				"task_file": SourceProjFile,
				"log_level": SourceFlag,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			home, wd := isolate(t)
			if tt.user != "" {
				writeFile(t, filepath.Join(home, ".tasklist", "tasklist.toml"), tt.user)
			}
			if tt.project != "" {
				writeFile(t, filepath.Join(wd, "tasklist.toml"), tt.project)
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cws, err := LoadWithSources(newFlagSet(t, tt.args...))
			if err != nil {
				t.Fatalf("LoadWithSources: %v", err)
			}
			cfg := cws.Config

			if want := filepath.Join(wd, tt.wantFile); cfg.TaskFile != want {
				t.Errorf("TaskFile: got %q, want %q", cfg.TaskFile, want)
			}
			if cfg.Quiet != tt.wantQuiet {
				t.Errorf("Quiet: got %v, want %v", cfg.Quiet, tt.wantQuiet)
			}
			if cfg.LogLevel != tt.wantLevel {
				t.Errorf("LogLevel: got %q, want %q", cfg.LogLevel, tt.wantLevel)
			}
			for field, want := range tt.wantSource {
				if got := cws.Sources[field]; got != want {
					t.Errorf("source of %s: got %q, want %q", field, got, want)
				}
			}
		})
	}
}

func TestLoadReportsFilesRead(t *testing.T) {
	home, wd := isolate(t)
	userFile := filepath.Join(home, ".tasklist", "tasklist.toml")
	writeFile(t, userFile, "quiet = true\n")
	writeFile(t, filepath.Join(wd, ".tasklist.toml"), "log_format = \"json\"\n")

	cws, err := LoadWithSources(nil)
	if err != nil {
		t.Fatalf("LoadWithSources: %v", err)
	}

	if len(cws.Files) != 2 || cws.Files[0] != userFile || cws.Files[1] != ".tasklist.toml" {
		t.Errorf("Files: got %v", cws.Files)
	}
	if got := cws.GetConfigFile(); got != ".tasklist.toml" {
		t.Errorf("GetConfigFile: got %q", got)
	}
	if cws.Config.LogFormat != "json" {
		t.Errorf("LogFormat: got %q, want json", cws.Config.LogFormat)
	}
}

func TestProjectFilePreference(t *testing.T) {
	_, wd := isolate(t)
	writeFile(t, filepath.Join(wd, "tasklist.toml"), "task_file = \"plain.json\"\n")
	writeFile(t, filepath.Join(wd, ".tasklist.toml"), "task_file = \"hidden.json\"\n")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if want := filepath.Join(wd, "plain.json"); cfg.TaskFile != want {
		t.Errorf("TaskFile: got %q, want %q", cfg.TaskFile, want)
	}
}

func TestXDGUserConfig(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG lookup is linux/BSD only")
	}
	home, wd := isolate(t)
	writeFile(t, filepath.Join(home, "xdg", "tasklist", "tasklist.toml"), "task_file = \"xdg.json\"\n")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if want := filepath.Join(wd, "xdg.json"); cfg.TaskFile != want {
		t.Errorf("TaskFile: got %q, want %q", cfg.TaskFile, want)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		project string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "malformed toml",
			project: "task_file = \n",
			wantErr: "loading project config file",
		},
		{
			name:    "unknown key",
			project: "task_file = \"a.json\"\nmax_iterations = 3\n",
			wantErr: "unknown keys: max_iterations",
		},
		{
			name:    "wrong type",
			project: "quiet = \"sometimes\"\n",
			wantErr: "loading project config file",
		},
		{
			name:    "empty task file",
			project: "task_file = \"  \"\n",
			wantErr: "task_file cannot be empty",
		},
		{
			name:    "bad boolean env",
			env:     map[string]string{EnvQuiet: "maybe"},
			wantErr: "TASKLIST_QUIET: invalid boolean",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, wd := isolate(t)
			if tt.project != "" {
				writeFile(t, filepath.Join(wd, "tasklist.toml"), tt.project)
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load(nil)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestPathResolution(t *testing.T) {
	home, wd := isolate(t)
	t.Setenv("TASKLIST_TEST_DIR", "lists")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"relative", []string{"-f", "sub/tasks.json"}, filepath.Join(wd, "sub", "tasks.json")},
		{"absolute", []string{"-f", filepath.Join(home, "abs.json")}, filepath.Join(home, "abs.json")},
		{"home", []string{"-f", "~/todo.json"}, filepath.Join(home, "todo.json")},
		{"env var", []string{"-f", "$TASKLIST_TEST_DIR/x.json"}, filepath.Join(wd, "lists", "x.json")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(newFlagSet(t, tt.args...))
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if cfg.TaskFile != tt.want {
				t.Errorf("TaskFile: got %q, want %q", cfg.TaskFile, tt.want)
			}
		})
	}
}

func TestSchemaFileResolved(t *testing.T) {
	_, wd := isolate(t)
	t.Setenv(EnvSchemaFile, "custom.schema.json")

	cws, err := LoadWithSources(nil)
	if err != nil {
		t.Fatalf("LoadWithSources: %v", err)
	}
	if want := filepath.Join(wd, "custom.schema.json"); cws.Config.SchemaFile != want {
		t.Errorf("SchemaFile: got %q, want %q", cws.Config.SchemaFile, want)
	}
	if cws.Sources["schema_file"] != SourceEnv {
		t.Errorf("source: got %q", cws.Sources["schema_file"])
	}
}

func TestSettings(t *testing.T) {
	isolate(t)

	cws, err := LoadWithSources(newFlagSet(t, "--log-caller"))
	if err != nil {
		t.Fatalf("LoadWithSources: %v", err)
	}

	settings := cws.Settings()
	if len(settings) != len(configFields()) {
		t.Fatalf("got %d settings, want %d", len(settings), len(configFields()))
	}
	if settings[0].Key != "task_file" {
		t.Errorf("first key: got %q", settings[0].Key)
	}
	last := settings[len(settings)-1]
	if last.Key != "log_caller" || last.Value != "true" || last.Source != SourceFlag {
		t.Errorf("log_caller setting: got %+v", last)
	}
}

func TestExampleConfigLoads(t *testing.T) {
	_, wd := isolate(t)
	path := filepath.Join(wd, "tasklist.toml")

	if err := WriteExample(path, false); err != nil {
		t.Fatalf("WriteExample: %v", err)
	}
	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load with example config: %v", err)
	}
	if want := filepath.Join(wd, DefaultTaskFile); cfg.TaskFile != want {
		t.Errorf("TaskFile: got %q, want %q", cfg.TaskFile, want)
	}

	err = WriteExample(path, false)
	if !errors.Is(err, ErrConfigExists) {
		t.Errorf("second WriteExample: got %v, want ErrConfigExists", err)
	}
	if err := WriteExample(path, true); err != nil {
		t.Errorf("forced WriteExample: %v", err)
	}
}

func TestWriteExampleCreatesDirectories(t *testing.T) {
	home, _ := isolate(t)
	path := filepath.Join(home, "nested", "dir", "tasklist.toml")

	if err := WriteExample(path, false); err != nil {
		t.Fatalf("WriteExample: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != ExampleConfig() {
		t.Error("written file does not match ExampleConfig")
	}
}

func TestUserConfigPath(t *testing.T) {
	home, _ := isolate(t)
	if want := filepath.Join(home, ".tasklist", "tasklist.toml"); UserConfigPath() != want {
		t.Errorf("UserConfigPath: got %q, want %q", UserConfigPath(), want)
	}
}

func TestBoolFromString(t *testing.T) {
	tests := []struct {
		in      string
		want    bool
		wantErr bool
	}{
		{"1", true, false},
		{"TRUE", true, false},
		{" yes ", true, false},
		{"on", true, false},
		{"0", false, false},
		{"false", false, false},
		{"No", false, false},
		{"off", false, false},
		{"maybe", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := boolFromString(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
