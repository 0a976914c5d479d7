package fixtures

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

type FileStore struct {
	Dir string
}

var _ Store = (*FileStore)(nil)

func NewFileStore(dir string) *FileStore {
	return &FileStore{Dir: dir}
}

func (s *FileStore) Get(_ context.Context, key string) (io.ReadCloser, error) {
	// keys are bare file names; anything that could walk out of Dir is simply absent
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return nil, ErrNotFound
	}
	f, err := os.Open(filepath.Join(s.Dir, key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return f, nil
}

func (s *FileStore) Ready(_ context.Context) error {
	info, err := os.Stat(s.Dir)
	if err != nil {
		return fmt.Errorf("fixture directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("fixture directory %s is not a directory", s.Dir)
	}
	return nil
}
