package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"sync"

	etlerr "github.com/yungbote/movies-etl/internal/pkg/errors"
	"github.com/yungbote/movies-etl/internal/pkg/logger"
	"github.com/yungbote/movies-etl/internal/platform/gcp"
)

const gcsScheme = "gs://"

// Opener resolves an input URI to a readable stream: gs://bucket/object or a local path.
type Opener struct {
	log *logger.Logger

	mu        sync.Mutex
	newReader func(ctx context.Context, log *logger.Logger) (gcp.ObjectReader, error)
	reader    gcp.ObjectReader
}

func NewOpener(log *logger.Logger) *Opener {
	return &Opener{
		log:       log.With("component", "SourceOpener"),
		newReader: gcp.NewObjectReader,
	}
}

// ParseGCS splits a gs:// URI. ok is false for anything else.
func ParseGCS(uri string) (bucket, object string, ok bool) {
	rest, found := strings.CutPrefix(strings.TrimSpace(uri), gcsScheme)
	if !found {
		return "", "", false
	}
	bucket, object, _ = strings.Cut(rest, "/")
	if bucket == "" || object == "" {
		return "", "", false
	}
	return bucket, object, true
}

func (o *Opener) Open(ctx context.Context, uri string) (io.ReadCloser, error) {
	const op = "source.open"
	uri = strings.TrimSpace(uri)
	if uri == "" {
		return nil, etlerr.New(etlerr.CodeValidation, op, "input uri is required", nil)
	}

	if strings.HasPrefix(uri, gcsScheme) {
		bucket, object, ok := ParseGCS(uri)
		if !ok {
			return nil, etlerr.New(etlerr.CodeValidation, op, fmt.Sprintf("malformed uri %q; expected gs://bucket/object", uri), nil)
		}
		reader, err := o.objectReader(ctx)
		if err != nil {
			return nil, etlerr.New(etlerr.CodeConfig, op, "object storage unavailable", err)
		}
		rc, err := reader.Open(ctx, bucket, object)
		if err != nil {
			if errors.Is(err, gcp.ErrObjectNotFound) {
				return nil, etlerr.New(etlerr.CodeNotFound, op, uri, err)
			}
			return nil, etlerr.New(etlerr.CodeInternal, op, uri, err)
		}
		o.log.Info("Opened input", "uri", uri)
		return rc, nil
	}

	f, err := os.Open(uri)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, etlerr.New(etlerr.CodeNotFound, op, uri, err)
		}
		return nil, etlerr.New(etlerr.CodeInternal, op, uri, err)
	}
	o.log.Info("Opened input", "uri", uri)
	return f, nil
}

// objectReader creates the storage client on first use so local runs need no credentials.
func (o *Opener) objectReader(ctx context.Context) (gcp.ObjectReader, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.reader != nil {
		return o.reader, nil
	}
	r, err := o.newReader(ctx, o.log)
	if err != nil {
		return nil, err
	}
	o.reader = r
	return r, nil
}

// Close releases the storage client if one was created.
func (o *Opener) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.reader == nil {
		return nil
	}
	err := o.reader.Close()
	o.reader = nil
	return err
}
