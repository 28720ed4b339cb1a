package todo

import (
	"fmt"
	"math"
	"strings"
)

// Task is a single entry in the list.
type Task struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// String formats the task as a list line, e.g. "1. [x] - Buy milk".
func (t Task) String() string {
	mark := " "
	if t.Completed {
		mark = "x"
	}
	return fmt.Sprintf("%d. [%s] - %s", t.ID, mark, t.Description)
}

// Store is the in-memory task list plus its identifier allocator.
// The zero value is not ready for use; call New, Load or Decode.
type Store struct {
	tasks  []Task
	nextID int
}

// document is the serialized form of a Store.
type document struct {
	Tasks  []Task `json:"tasks"`
	NextID int    `json:"next_id"`
}

// New returns an empty store whose first task will get id 1.
func New() *Store {
	return &Store{
		tasks:  []Task{},
		nextID: 1,
	}
}

// NextID returns the identifier the next added task will receive.
func (s *Store) NextID() int {
	return s.nextID
}

// Len returns the number of tasks in the store.
func (s *Store) Len() int {
	return len(s.tasks)
}

// Get returns the task with the given id.
func (s *Store) Get(id int) (Task, bool) {
	if i := s.index(id); i >= 0 {
		return s.tasks[i], true
	}
	return Task{}, false
}

// AddTask appends a new open task and returns it.
// The description is stored exactly as given; surrounding whitespace only
// matters for rejecting blank input.
func (s *Store) AddTask(description string) (Task, error) {
	if strings.TrimSpace(description) == "" {
		return Task{}, &InvalidInputError{Msg: "task description cannot be empty"}
	}
	if s.nextID == math.MaxInt {
		return Task{}, &InvalidInputError{Msg: "task identifiers are exhausted"}
	}

	task := Task{
		ID:          s.nextID,
		Description: description,
	}
	s.tasks = append(s.tasks, task)
	s.nextID++

	return task, nil
}

// CompleteTask marks a task as completed. Completing a task twice is a no-op.
func (s *Store) CompleteTask(id int) error {
	i := s.index(id)
	if i < 0 {
		return &TaskNotFoundError{ID: id}
	}
	s.tasks[i].Completed = true
	return nil
}

// RemoveTask deletes a task and returns it. The order of the remaining tasks is
// kept and the id is not made available again.
func (s *Store) RemoveTask(id int) (Task, error) {
	i := s.index(id)
	if i < 0 {
		return Task{}, &TaskNotFoundError{ID: id}
	}
	removed := s.tasks[i]
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	return removed, nil
}

// ListTasks returns every task in insertion order.
// The returned slice is a copy.
func (s *Store) ListTasks() []Task {
	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// ListCompletedTasks returns the completed tasks in insertion order.
func (s *Store) ListCompletedTasks() []Task {
	out := make([]Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if t.Completed {
			out = append(out, t)
		}
	}
	return out
}

func (s *Store) index(id int) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) document() document {
	tasks := s.tasks
	if tasks == nil {
		tasks = []Task{}
	}
	return document{Tasks: tasks, NextID: s.nextID}
}
