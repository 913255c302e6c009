package crowd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// FileStore persists validations as one indented JSON document, the format
// the service has always used on disk.
type FileStore struct {
	path string
}

// NewFileStore creates a file-backed persistence at path. The file is
// created on first save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (f *FileStore) Load() (map[string]*TrainValidations, error) {
	raw, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]*TrainValidations{}, nil
	}
	if err != nil {
		return nil, err
	}
	trains := map[string]*TrainValidations{}
	if err := json.Unmarshal(raw, &trains); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", f.path, err)
	}
	return trains, nil
}

func (f *FileStore) Save(trains map[string]*TrainValidations) error {
	raw, err := json.MarshalIndent(trains, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(f.path, raw, 0o644)
}

func (f *FileStore) Close() error { return nil }

// MemoryStore keeps validations in process memory only. Used by tests and
// the memory backend.
type MemoryStore struct {
	trains map[string]*TrainValidations
}

// NewMemoryStore creates an empty in-memory persistence.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{trains: map[string]*TrainValidations{}}
}

func (m *MemoryStore) Load() (map[string]*TrainValidations, error) {
	return m.trains, nil
}

func (m *MemoryStore) Save(trains map[string]*TrainValidations) error {
	m.trains = trains
	return nil
}

func (m *MemoryStore) Close() error { return nil }
