package publish

import (
	"context"
	"os"
	"path/filepath"
)

// FileStore publishes to the local filesystem. Paths are resolved relative
// to the working directory; commit messages are ignored.
type FileStore struct{}

// NewFileStore creates a filesystem-backed store.
func NewFileStore() *FileStore {
	return &FileStore{}
}

func (s *FileStore) Read(_ context.Context, path string) (string, bool, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return string(data), true, nil
}

func (s *FileStore) Write(_ context.Context, path, content, _ string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, []byte(content), 0o644)
}
