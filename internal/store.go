package internal

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

type Store interface {
	// Save persists the record and returns where it ended up.
	Save(ctx context.Context, record AdjustmentRecord) (string, error)
}

var _ Store = (*FileStore)(nil)

type FileStore struct {
	Dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{Dir: dir}
}

func (s *FileStore) FileName(record AdjustmentRecord) string {
	name := FileNameSanitize(record.Identifier)
	if record.Asset != "" {
		name = FileNameSanitize(record.Asset) + "_" + name
	}
	return filepath.Join(s.Dir, name+"_adjusted.json")
}

func (s *FileStore) Save(ctx context.Context, record AdjustmentRecord) (string, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("unable to create output dir %s: %w", s.Dir, err)
	}
	bytes, err := json.MarshalIndent(record, "", "    ")
	if err != nil {
		return "", err
	}
	file := s.FileName(record)
	if err := os.WriteFile(file, append(bytes, '\n'), 0o644); err != nil {
		return "", fmt.Errorf("unable to write %s: %w", file, err)
	}
	return file, nil
}
