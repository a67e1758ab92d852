package storage

import (
	"context"
	"io"

	"github.com/kurin/blazer/b2"
	"github.com/pkg/errors"
)

// B2Storage keeps files in a Backblaze B2 bucket
type B2Storage struct {
	bucket *b2.Bucket
}

func NewB2Storage(ctx context.Context, keyID, appKey, bucketName string) (*B2Storage, error) {
	if keyID == "" || appKey == "" || bucketName == "" {
		return nil, errors.New("missing B2 credentials or bucket")
	}

	client, err := b2.NewClient(ctx, keyID, appKey)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create b2 client")
	}

	bucket, err := client.Bucket(ctx, bucketName)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get bucket")
	}

	return &B2Storage{bucket: bucket}, nil
}

func (s *B2Storage) Upload(ctx context.Context, key string, r io.Reader, _ int64, contentType string) (string, error) {
	if err := validKey(key); err != nil {
		return "", err
	}

	obj := s.bucket.Object(key)
	w := obj.NewWriter(ctx).WithAttrs(&b2.Attrs{ContentType: contentType})

	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return "", errors.Wrap(err, "failed to write object")
	}
	if err := w.Close(); err != nil {
		return "", errors.Wrap(err, "failed to close writer")
	}

	return obj.URL(), nil
}

func (s *B2Storage) Delete(ctx context.Context, key string) error {
	if err := validKey(key); err != nil {
		return err
	}
	if err := s.bucket.Object(key).Delete(ctx); err != nil {
		return errors.Wrap(err, "failed to delete object")
	}
	return nil
}
