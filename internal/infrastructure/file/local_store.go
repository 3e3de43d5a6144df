package file

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// LocalStore keeps uploaded import files on the local filesystem. The stored
// path is the stable file reference handed back to callers and later read by
// the row extractor across many batch invocations.
type LocalStore struct {
	BaseDir string
}

func NewLocalStore(baseDir string) *LocalStore {
	if baseDir == "" {
		baseDir = "."
	}
	return &LocalStore{BaseDir: baseDir}
}

// Save writes the upload under a unique name and returns its path and size.
func (s *LocalStore) Save(ctx context.Context, fileName string, src io.Reader) (string, int64, error) {
	_ = ctx

	if err := os.MkdirAll(s.BaseDir, 0o750); err != nil {
		return "", 0, fmt.Errorf("create upload dir: %w", err)
	}

	name := uuid.NewString() + "-" + filepath.Base(fileName)
	path := filepath.Join(s.BaseDir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", 0, fmt.Errorf("create upload file %s: %w", path, err)
	}

	size, err := io.Copy(dst, src)
	if err != nil {
		dst.Close()
		os.Remove(path)
		return "", 0, fmt.Errorf("write upload file %s: %w", path, err)
	}
	if err := dst.Close(); err != nil {
		return "", 0, fmt.Errorf("close upload file %s: %w", path, err)
	}

	return path, size, nil
}
