// Package storage uploads and deletes the files behind PDF resources.
package storage

import (
	"context"
	"io"
	"log"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"webmatematica/config"
)

// FileStorage is the file storage collaborator used when a PDF is authored from a local file.
type FileStorage interface {
	// Upload stores the content under key and returns the URL it is served from.
	Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

// New builds the storage selected by STORAGE_DRIVER
func New(ctx context.Context, cfg *config.Config) (FileStorage, error) {
	switch cfg.StorageDriver {
	case "", "local":
		return NewLocalStorage(cfg.UploadDir, cfg.PublicBaseURL), nil
	case "minio":
		return NewMinioStorage(ctx, cfg)
	case "b2":
		return NewB2Storage(ctx, cfg.B2KeyID, cfg.B2AppKey, cfg.B2Bucket)
	}
	return nil, errors.Errorf("unsupported STORAGE_DRIVER %q", cfg.StorageDriver)
}

// ObjectKey builds a collision free key such as "pdf/3f2c...-apuntes.pdf"
func ObjectKey(folder, filename string) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			return r
		}
		return '-'
	}, base)
	if base == "." || base == "-" || base == "" {
		base = "file"
	}
	return path.Join(folder, uuid.NewString()+"-"+base)
}

// validKey rejects keys that could escape the storage root
func validKey(key string) error {
	if key == "" || strings.Contains(key, "..") || strings.HasPrefix(key, "/") {
		log.Printf("[STORAGE] Rejected object key %q", key)
		return errors.Errorf("invalid object key %q", key)
	}
	return nil
}
