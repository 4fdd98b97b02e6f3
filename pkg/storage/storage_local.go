package storage

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
)

const defaultLocalRoot = "uploads"

// LocalStorage keeps objects on the local filesystem under a root
// directory. The root directory name plays the role of the bucket in
// stored paths.
type LocalStorage struct {
	root string
	s    *Storage
}

func newLocal(s *Storage) (*LocalStorage, error) {
	root := s.LocalRoot
	if root == "" {
		root = defaultLocalRoot
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, errors.Wrap(err, "failed to create local storage root")
	}
	return &LocalStorage{root: root, s: s}, nil
}

func (l *LocalStorage) bucket() string {
	return filepath.Base(l.root)
}

func (l *LocalStorage) filePath(stored string) string {
	return filepath.Join(l.root, objectKey(l.bucket(), stored))
}

func (l *LocalStorage) PutObject(ctx context.Context, objectName string, data []byte, contentType string) (string, error) {
	fullPath := getFullPath(l.s.BasePath, objectName)
	target := filepath.Join(l.root, fullPath)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", errors.Wrap(err, "failed to create object directory")
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return "", errors.Wrap(err, "failed to write object")
	}
	return storedPath(l.bucket(), fullPath), nil
}

func (l *LocalStorage) GetObject(ctx context.Context, stored string) ([]byte, error) {
	data, err := os.ReadFile(l.filePath(stored))
	if err != nil {
		return nil, errors.Wrap(err, "failed to read object")
	}
	return data, nil
}

func (l *LocalStorage) Delete(ctx context.Context, stored string) error {
	err := os.Remove(l.filePath(stored))
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "failed to delete object")
	}
	return nil
}

func (l *LocalStorage) Exists(ctx context.Context, stored string) (bool, error) {
	_, err := os.Stat(l.filePath(stored))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (l *LocalStorage) Copy(ctx context.Context, srcStored, dstName string) (string, error) {
	data, err := l.GetObject(ctx, srcStored)
	if err != nil {
		return "", err
	}
	return l.PutObject(ctx, dstName, data, "")
}

// PresignedURL for the local provider is a plain URL under the configured
// base; there is nothing to sign.
func (l *LocalStorage) PresignedURL(ctx context.Context, stored string, expiry time.Duration) (string, error) {
	return l.s.FileURL(stored), nil
}
