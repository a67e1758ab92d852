package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// LocalStorage writes files below a directory that Fiber serves statically
type LocalStorage struct {
	root    string
	baseURL string
}

func NewLocalStorage(root, baseURL string) *LocalStorage {
	return &LocalStorage{root: root, baseURL: strings.TrimSuffix(baseURL, "/")}
}

func (s *LocalStorage) Upload(_ context.Context, key string, r io.Reader, _ int64, _ string) (string, error) {
	if err := validKey(key); err != nil {
		return "", err
	}

	filePath := filepath.Join(s.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return "", errors.Wrap(err, "failed to create upload directory")
	}

	dst, err := os.Create(filePath)
	if err != nil {
		return "", errors.Wrap(err, "failed to create file")
	}

	if _, err := io.Copy(dst, r); err != nil {
		dst.Close()
		os.Remove(filePath)
		return "", errors.Wrap(err, "failed to write file")
	}
	if err := dst.Close(); err != nil {
		os.Remove(filePath)
		return "", errors.Wrap(err, "failed to write file")
	}

	return s.baseURL + "/" + key, nil
}

func (s *LocalStorage) Delete(_ context.Context, key string) error {
	if err := validKey(key); err != nil {
		return err
	}

	err := os.Remove(filepath.Join(s.root, filepath.FromSlash(key)))
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "failed to delete file")
	}
	return nil
}
