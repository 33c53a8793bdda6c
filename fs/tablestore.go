package fs

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// TableStore writes a coordinate table file with atomic replace semantics.
// Save writes path.tmp; Commit renames it over path.
type TableStore struct {
	path string
}

// NewTableStore returns a TableStore targeting path.
func NewTableStore(path string) *TableStore {
	return &TableStore{path: path}
}

// Path returns the final file path.
func (s *TableStore) Path() string {
	return s.path
}

func (s *TableStore) tempPath() string {
	return s.path + ".tmp"
}

// Save encodes v as indented JSON into the temporary file.
func (s *TableStore) Save(v any) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.tempPath(), append(data, '\n'), 0644)
}

// Commit moves the temporary file into place.
func (s *TableStore) Commit() error {
	return os.Rename(s.tempPath(), s.path)
}

// Abort removes the temporary file.
func (s *TableStore) Abort() error {
	if err := os.Remove(s.tempPath()); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// WriteTable saves v and commits it, removing the temporary file on failure.
func (s *TableStore) WriteTable(v any) error {
	if err := s.Save(v); err != nil {
		_ = s.Abort()
		return err
	}
	return s.Commit()
}
