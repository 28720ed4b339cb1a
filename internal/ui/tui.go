// Package ui provides an interactive terminal view of the task list.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/nibzard/tasklist-go/internal/todo"
)

// ErrNotTTY is returned by Run when stdin or stdout is not a terminal.
var ErrNotTTY = errors.New("tui requires a TTY")

const defaultTickInterval = 2 * time.Second

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	headerStyle  = lipgloss.NewStyle().Faint(true)
	cursorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	doneStyle    = lipgloss.NewStyle().Strikethrough(true).Faint(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	footerStyle  = lipgloss.NewStyle().Faint(true)
	helpKeyStyle = lipgloss.NewStyle().Bold(true)
)

// Run opens the task viewer on the task file at path and blocks until the
// user quits or ctx is cancelled.
func Run(ctx context.Context, path string) error {
	if !IsTTY(os.Stdout) || !IsTTY(os.Stdin) {
		return ErrNotTTY
	}

	m := newModel(path)
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	return nil
}

type model struct {
	path          string
	store         *todo.Store
	visible       []todo.Task
	cursor        int
	completedOnly bool
	showHelp      bool
	loadErr       error
	status        string
	statusErr     bool
	tickInterval  time.Duration
}

type tickMsg time.Time

func newModel(path string) *model {
	return &model{
		path:         path,
		tickInterval: defaultTickInterval,
	}
}

func (m *model) Init() tea.Cmd {
	m.refresh()
	return tickCmd(m.tickInterval)
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tickMsg:
		m.refresh()
		return m, tickCmd(m.tickInterval)
	}
	return m, nil
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "h", "?":
		m.showHelp = !m.showHelp
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		m.cursor = max(len(m.visible)-1, 0)
	case "c":
		m.completedOnly = !m.completedOnly
		m.cursor = 0
		m.applyView()
	case "r", "f5":
		m.status = ""
		m.refresh()
	case " ", "enter", "x":
		m.completeSelected()
	case "d", "delete":
		m.removeSelected()
	}
	return m, nil
}

func (m *model) selected() (todo.Task, bool) {
	if m.loadErr != nil || m.cursor < 0 || m.cursor >= len(m.visible) {
		return todo.Task{}, false
	}
	return m.visible[m.cursor], true
}

func (m *model) completeSelected() {
	task, ok := m.selected()
	if !ok {
		return
	}
	err := todo.Update(m.path, func(s *todo.Store) error {
		return s.CompleteTask(task.ID)
	})
	m.report(err, fmt.Sprintf("Completed task %d: %s", task.ID, task.Description))
	m.refresh()
}

func (m *model) removeSelected() {
	task, ok := m.selected()
	if !ok {
		return
	}
	err := todo.Update(m.path, func(s *todo.Store) error {
		_, err := s.RemoveTask(task.ID)
		return err
	})
	m.report(err, fmt.Sprintf("Removed task %d: %s", task.ID, task.Description))
	m.refresh()
}

func (m *model) report(err error, success string) {
	if err != nil {
		m.status = err.Error()
		m.statusErr = true
		return
	}
	m.status = success
	m.statusErr = false
}

// refresh reloads the task file from disk.
func (m *model) refresh() {
	store, err := todo.Load(m.path)
	if err != nil {
		m.loadErr = err
		m.store = nil
		m.visible = nil
		return
	}
	m.loadErr = nil
	m.store = store
	m.applyView()
}

func (m *model) applyView() {
	if m.store == nil {
		m.visible = nil
		return
	}
	if m.completedOnly {
		m.visible = m.store.ListCompletedTasks()
	} else {
		m.visible = m.store.ListTasks()
	}
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("tasklist") + "  " + headerStyle.Render(m.path) + "\n\n")

	if m.showHelp {
		writeHelp(&b)
		writeFooter(&b)
		return b.String()
	}

	if m.loadErr != nil {
		b.WriteString(errorStyle.Render("Error loading task file:") + "\n")
		b.WriteString("  " + m.loadErr.Error() + "\n\n")
		writeFooter(&b)
		return b.String()
	}
	if m.store == nil {
		b.WriteString("Loading...\n\n")
		writeFooter(&b)
		return b.String()
	}

	writeHeader(&b, m.store, m.completedOnly)
	m.writeTasks(&b)

	if m.status != "" {
		style := statusStyle
		if m.statusErr {
			style = errorStyle
		}
		b.WriteString(style.Render(m.status) + "\n\n")
	}
	writeFooter(&b)
	return b.String()
}

func (m *model) writeTasks(b *strings.Builder) {
	if len(m.visible) == 0 {
		if m.completedOnly {
			b.WriteString("  No completed tasks.\n\n")
		} else {
			b.WriteString("  No tasks found.\n\n")
		}
		return
	}
	for i, task := range m.visible {
		line := task.String()
		if task.Completed {
			line = doneStyle.Render(line)
		}
		if i == m.cursor {
			b.WriteString(cursorStyle.Render(">") + " " + line + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}
	b.WriteString("\n")
}

func writeHeader(b *strings.Builder, store *todo.Store, completedOnly bool) {
	completed := len(store.ListCompletedTasks())
	open := store.Len() - completed
	view := "all tasks"
	if completedOnly {
		view = "completed only"
	}
	b.WriteString(headerStyle.Render(fmt.Sprintf("Open: %d  Completed: %d  Next ID: %d  View: %s",
		open, completed, store.NextID(), view)) + "\n\n")
}

func writeHelp(b *strings.Builder) {
	b.WriteString(titleStyle.Render("Keyboard Shortcuts") + "\n\n")
	for _, row := range [][2]string{
		{"up, k", "Move up"},
		{"down, j", "Move down"},
		{"g / G", "Jump to first / last task"},
		{"space, enter, x", "Complete selected task"},
		{"d", "Remove selected task"},
		{"c", "Toggle completed-only view"},
		{"r, F5", "Reload task file"},
		{"h, ?", "Toggle this help screen"},
		{"q, ctrl+c", "Quit"},
	} {
		b.WriteString("  " + helpKeyStyle.Render(fmt.Sprintf("%-17s", row[0])) + " " + row[1] + "\n")
	}
	b.WriteString("\n")
}

func writeFooter(b *strings.Builder) {
	b.WriteString(footerStyle.Render("Press h for help | q to quit") + "\n")
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
