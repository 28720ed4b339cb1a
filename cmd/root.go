// Package cmd implements the CLI command structure for tasklist.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/nibzard/tasklist-go/internal/config"
	"github.com/nibzard/tasklist-go/internal/logging"
	"github.com/nibzard/tasklist-go/internal/todo"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Exit codes returned by ExitCode.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitStorage     = 2
	ExitInterrupted = 130
)

// app carries state shared by every subcommand of one invocation.
type app struct {
	out    io.Writer
	errOut io.Writer
	cws    *config.ConfigWithSources
	cfg    *config.Config
	log    *log.Logger
}

// Run executes the tasklist CLI using the process's standard streams.
func Run(ctx context.Context, args []string) error {
	return Execute(ctx, args, os.Stdout, os.Stderr)
}

// Execute runs the CLI with args. Command output goes to out; logs and
// usage go to errOut.
func Execute(ctx context.Context, args []string, out, errOut io.Writer) error {
	if args == nil {
		// cobra falls back to os.Args for a nil slice.
		args = []string{}
	}
	root := newRootCommand(out, errOut)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// ExitCode maps an error returned by Run to a process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, context.Canceled):
		return ExitInterrupted
	case errors.Is(err, todo.ErrFile), errors.Is(err, todo.ErrFormat):
		return ExitStorage
	}
	return ExitFailure
}

func newRootCommand(out, errOut io.Writer) *cobra.Command {
	a := &app{
		out:    out,
		errOut: errOut,
		log:    logging.Discard(),
	}

	root := &cobra.Command{
		Use:   "tasklist",
		Short: "Manage a task list stored in a JSON file",
		Long: `tasklist keeps a simple to-do list in a JSON file.

Tasks get increasing numeric IDs that are never reused. Running tasklist
without a command lists all tasks.`,
		Version:           Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE:              a.runList,
	}
	root.SetOut(out)
	root.SetErr(errOut)
	root.SetVersionTemplate("tasklist {{.Version}}\n")

	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(
		a.newAddCommand(),
		a.newListCommand(),
		a.newListCompletedCommand(),
		a.newCompleteCommand(),
		a.newRemoveCommand(),
		a.newCheckCommand(),
		a.newConfigCommand(),
		a.newTUICommand(),
		newVersionCommand(),
	)
	return root
}

// setup loads configuration and builds the logger before any command runs.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cws, err := config.LoadWithSources(cmd.Flags())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger, err := logging.FromConfig(a.errOut, cws.Config)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	a.cws = cws
	a.cfg = cws.Config
	a.log = logger
	a.log.Debug("configuration loaded", "task_file", a.cfg.TaskFile, "config_files", len(cws.Files))
	return nil
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		// Version output never depends on configuration.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "tasklist %s\n", Version)
			return err
		},
	}
}
