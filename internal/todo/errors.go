package todo

import (
	"errors"
	"fmt"
)

// Sentinels matched by the error types below via errors.Is.
var (
	ErrFile         = errors.New("file error")
	ErrFormat       = errors.New("format error")
	ErrTaskNotFound = errors.New("task not found")
	ErrInvalidInput = errors.New("invalid input")
)

// FileError reports an I/O failure while reading or writing the task file.
type FileError struct {
	Op   string // "read" or "write"
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("file error: %s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying I/O error.
func (e *FileError) Unwrap() error { return e.Err }

// Is reports whether target is ErrFile.
func (e *FileError) Is(target error) bool { return target == ErrFile }

// FormatError reports a task file whose content is not a valid task list.
type FormatError struct {
	Path     string
	Problems []error
}

func (e *FormatError) Error() string {
	prefix := "format error"
	if e.Path != "" {
		prefix += ": " + e.Path
	}
	switch len(e.Problems) {
	case 0:
		return prefix
	case 1:
		return fmt.Sprintf("%s: %v", prefix, e.Problems[0])
	default:
		return fmt.Sprintf("%s: %v (and %d more)", prefix, e.Problems[0], len(e.Problems)-1)
	}
}

// Unwrap returns the individual problems.
func (e *FormatError) Unwrap() []error { return e.Problems }

// Is reports whether target is ErrFormat.
func (e *FormatError) Is(target error) bool { return target == ErrFormat }

// TaskNotFoundError reports an id that no task in the store holds.
type TaskNotFoundError struct {
	ID int
}

func (e *TaskNotFoundError) Error() string {
	return fmt.Sprintf("task with ID %d not found", e.ID)
}

// Is reports whether target is ErrTaskNotFound.
func (e *TaskNotFoundError) Is(target error) bool { return target == ErrTaskNotFound }

// InvalidInputError reports rejected user input.
type InvalidInputError struct {
	Msg string
}

func (e *InvalidInputError) Error() string {
	return "invalid input: " + e.Msg
}

// Is reports whether target is ErrInvalidInput.
func (e *InvalidInputError) Is(target error) bool { return target == ErrInvalidInput }

// ValidationError is one problem found in a task document.
type ValidationError struct {
	Path string // dotted path to the offending value, e.g. tasks[1].id
	Err  error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}
