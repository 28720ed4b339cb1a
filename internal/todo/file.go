package todo

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

const defaultFileMode fs.FileMode = 0644

// Load reads the task file at path. A file that does not exist yields an empty
// store.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return New(), nil
		}
		return nil, &FileError{Op: "read", Path: path, Err: err}
	}

	s, err := Decode(data)
	if err != nil {
		var fe *FormatError
		if errors.As(err, &fe) {
			fe.Path = path
		}
		return nil, err
	}
	return s, nil
}

// Decode builds a store from a serialized task document.
func Decode(data []byte) (*Store, error) {
	doc, result := decode(data, ValidationOptions{})
	if !result.Valid {
		return nil, &FormatError{Problems: result.Errors}
	}
	return &Store{tasks: doc.Tasks, nextID: doc.NextID}, nil
}

// Save writes the store to path with 2-space indentation.
func (s *Store) Save(path string) error {
	data, err := s.MarshalIndent()
	if err != nil {
		return &FileError{Op: "write", Path: path, Err: err}
	}
	if err := writeFileAtomic(path, data); err != nil {
		return &FileError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// MarshalIndent returns the document Save writes.
func (s *Store) MarshalIndent() ([]byte, error) {
	data, err := json.MarshalIndent(s.document(), "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// Update loads the task file, applies fn and saves the result.
// Nothing is written when fn returns an error.
func Update(path string, fn func(*Store) error) error {
	s, err := Load(path)
	if err != nil {
		return err
	}
	if err := fn(s); err != nil {
		return err
	}
	return s.Save(path)
}

// writeFileAtomic writes data to a temporary file next to path and renames it
// into place. The permissions of an existing file are kept, and a symlinked
// path is written through to its target.
func writeFileAtomic(path string, data []byte) (err error) {
	if target, evalErr := filepath.EvalSymlinks(path); evalErr == nil {
		path = target
	}

	mode := defaultFileMode
	if info, statErr := os.Stat(path); statErr == nil {
		if info.IsDir() {
			return errors.New("path is a directory")
		}
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmpName, mode); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
