package gcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/yungbote/movies-etl/internal/pkg/logger"
)

// ErrObjectNotFound is returned when the bucket or object does not exist.
var ErrObjectNotFound = errors.New("gcs object not found")

// ObjectReader streams objects out of Cloud Storage.
type ObjectReader interface {
	Open(ctx context.Context, bucket, object string) (io.ReadCloser, error)
	Close() error
}

type objectReader struct {
	log    *logger.Logger
	client *storage.Client
}

// NewObjectReader builds a read-only storage client. With STORAGE_EMULATOR_HOST set the
// client talks to the emulator without credentials.
func NewObjectReader(ctx context.Context, log *logger.Logger) (ObjectReader, error) {
	serviceLog := log.With("service", "ObjectReader")

	var opts []option.ClientOption
	emulator := strings.TrimRight(strings.TrimSpace(os.Getenv("STORAGE_EMULATOR_HOST")), "/")
	if emulator != "" {
		opts = append(opts, option.WithoutAuthentication())
	} else {
		opts = append(ClientOptionsFromEnv(), option.WithScopes(storage.ScopeReadOnly))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	serviceLog.Info("Object storage initialized", "emulator_host", emulator)
	return &objectReader{log: serviceLog, client: client}, nil
}

func (r *objectReader) Open(ctx context.Context, bucket, object string) (io.ReadCloser, error) {
	rc, err := r.client.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) || errors.Is(err, storage.ErrBucketNotExist) {
			return nil, fmt.Errorf("gs://%s/%s: %w", bucket, object, ErrObjectNotFound)
		}
		return nil, fmt.Errorf("open gs://%s/%s: %w", bucket, object, err)
	}
	r.log.Debug("Object opened", "bucket", bucket, "object", object, "size", rc.Attrs.Size)
	return rc, nil
}

func (r *objectReader) Close() error {
	return r.client.Close()
}
