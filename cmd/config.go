package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nibzard/tasklist-go/internal/config"
)

func (a *app) newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create configuration files",
	}
	cmd.AddCommand(a.newConfigShowCommand(), a.newConfigInitCommand())
	return cmd
}

func (a *app) newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration and where each value came from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := a.out
			fmt.Fprintln(w, "Config files:")
			if len(a.cws.Files) == 0 {
				fmt.Fprintln(w, "  (none)")
			}
			for _, f := range a.cws.Files {
				fmt.Fprintf(w, "  %s\n", f)
			}
			fmt.Fprintln(w)

			for _, s := range a.cws.Settings() {
				value := s.Value
				if value == "" {
					value = `""`
				}
				fmt.Fprintf(w, "%-15s = %s  (%s)\n", s.Key, value, s.Source)
			}
			return nil
		},
	}
}

func (a *app) newConfigInitCommand() *cobra.Command {
	var force, user bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write an example tasklist.toml",
		Long: `Write an example tasklist.toml to the working directory, or to the
user config location with --user.`,
		Args: cobra.NoArgs,
		// An unreadable config file must not prevent writing a fresh one.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := "tasklist.toml"
			if user {
				path = config.UserConfigPath()
				if path == "" {
					return fmt.Errorf("cannot determine user config directory")
				}
			}
			if err := config.WriteExample(path, force); err != nil {
				return err
			}
			if abs, err := filepath.Abs(path); err == nil {
				path = abs
			}
			fmt.Fprintf(a.out, "Wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	cmd.Flags().BoolVar(&user, "user", false, "Write to the user config location")
	return cmd
}
