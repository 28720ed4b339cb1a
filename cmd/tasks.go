package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nibzard/tasklist-go/internal/todo"
)

func (a *app) newAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add <description...>",
		Short: "Add a new task",
		Long: `Add a new task. All arguments are joined with single spaces to form the
description, so quoting is optional. Use -- before a description that
starts with a dash.`,
		Example: `  tasklist add Buy milk
  tasklist add "Call mom about Sunday"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			description := strings.Join(args, " ")

			var added todo.Task
			err := a.update(func(s *todo.Store) error {
				task, err := s.AddTask(description)
				added = task
				return err
			})
			if err != nil {
				return err
			}
			return a.confirm("Added task %d: %s", added.ID, added.Description)
		},
	}
}

func (a *app) newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all tasks",
		Args:    cobra.NoArgs,
		RunE:    a.runList,
	}
}

func (a *app) runList(cmd *cobra.Command, _ []string) error {
	s, err := a.load()
	if err != nil {
		return err
	}
	return a.printTasks(s.ListTasks(), "No tasks found.")
}

func (a *app) newListCompletedCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list-completed",
		Aliases: []string{"completed"},
		Short:   "List completed tasks",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.load()
			if err != nil {
				return err
			}
			return a.printTasks(s.ListCompletedTasks(), "No completed tasks.")
		},
	}
}

func (a *app) newCompleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "complete <id>",
		Aliases: []string{"done"},
		Short:   "Mark a task as completed",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			var completed todo.Task
			err = a.update(func(s *todo.Store) error {
				if err := s.CompleteTask(id); err != nil {
					return err
				}
				completed, _ = s.Get(id)
				return nil
			})
			if err != nil {
				return err
			}
			return a.confirm("Completed task %d: %s", completed.ID, completed.Description)
		},
	}
}

func (a *app) newRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm"},
		Short:   "Remove a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			var removed todo.Task
			err = a.update(func(s *todo.Store) error {
				task, err := s.RemoveTask(id)
				removed = task
				return err
			})
			if err != nil {
				return err
			}
			return a.confirm("Removed task %d: %s", removed.ID, removed.Description)
		},
	}
}

// load reads the configured task file.
func (a *app) load() (*todo.Store, error) {
	path := a.cfg.TaskFile
	s, err := todo.Load(path)
	if err != nil {
		return nil, err
	}
	a.log.Debug("loaded tasks", "path", path, "tasks", s.Len(), "next_id", s.NextID())
	return s, nil
}

// update runs one load, mutate, save cycle on the configured task file.
func (a *app) update(fn func(*todo.Store) error) error {
	path := a.cfg.TaskFile
	var saved *todo.Store
	err := todo.Update(path, func(s *todo.Store) error {
		a.log.Debug("loaded tasks", "path", path, "tasks", s.Len(), "next_id", s.NextID())
		if err := fn(s); err != nil {
			return err
		}
		saved = s
		return nil
	})
	if err != nil {
		return err
	}
	a.log.Debug("saved tasks", "path", path, "tasks", saved.Len(), "next_id", saved.NextID())
	return nil
}

func (a *app) printTasks(tasks []todo.Task, empty string) error {
	if len(tasks) == 0 {
		return a.confirm("%s", empty)
	}
	for _, t := range tasks {
		if _, err := fmt.Fprintln(a.out, t.String()); err != nil {
			return err
		}
	}
	return nil
}

// confirm prints a status line unless quiet output was requested.
func (a *app) confirm(format string, args ...any) error {
	if a.cfg != nil && a.cfg.Quiet {
		return nil
	}
	_, err := fmt.Fprintf(a.out, format+"\n", args...)
	return err
}

// parseID parses a task identifier given on the command line.
func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid task ID %q: must be a positive integer", arg)
	}
	return id, nil
}
