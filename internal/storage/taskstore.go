// Package storage provides the file-backed persistence layer for eve.
// The whole task set lives in a single JSON document; every save rewrites
// it completely.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/valter-silva-au/eve/pkg/models"
)

// taskFile is the top-level structure of the JSON storage file.
type taskFile struct {
	Version string        `json:"version"`
	Tasks   []models.Task `json:"tasks"`
}

// FileTaskStore reads and writes the task set as a JSON file under its
// base directory.
type FileTaskStore struct {
	basePath string
	fileName string
}

// NewFileTaskStore creates a store writing fileName inside basePath.
func NewFileTaskStore(basePath, fileName string) *FileTaskStore {
	return &FileTaskStore{basePath: basePath, fileName: fileName}
}

func (s *FileTaskStore) filePath() string {
	return filepath.Join(s.basePath, s.fileName)
}

// LoadAll reads the full task set. A missing file is an empty set, not an
// error; a file that exists but cannot be parsed is.
func (s *FileTaskStore) LoadAll() ([]models.Task, error) {
	data, err := os.ReadFile(s.filePath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("loading tasks: %w", err)
	}

	var tf taskFile
	if err := json.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("loading tasks: parsing JSON: %w", err)
	}
	return tf.Tasks, nil
}

// SaveAll replaces the stored task set. The document is written to a
// temporary file first and renamed into place, so a crash mid-write never
// leaves a truncated file behind.
func (s *FileTaskStore) SaveAll(tasks []models.Task) error {
	if err := os.MkdirAll(s.basePath, 0o750); err != nil {
		return fmt.Errorf("saving tasks: creating directory: %w", err)
	}

	tf := taskFile{Version: "1.0", Tasks: tasks}
	if tf.Tasks == nil {
		tf.Tasks = []models.Task{}
	}
	data, err := json.MarshalIndent(&tf, "", "  ")
	if err != nil {
		return fmt.Errorf("saving tasks: marshaling JSON: %w", err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(s.basePath, s.fileName+".tmp-*")
	if err != nil {
		return fmt.Errorf("saving tasks: creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("saving tasks: writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("saving tasks: closing temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o600); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("saving tasks: setting permissions: %w", err)
	}
	if err := os.Rename(tmpPath, s.filePath()); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("saving tasks: replacing file: %w", err)
	}
	return nil
}
