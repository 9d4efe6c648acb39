// Package storage contains the blob-store abstraction and its drivers (MinIO, AWS S3, memory).
// Implementations avoid local disk and rely on streaming I/O only.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"time"

	"docshelf/internal/config"
)

var (
	// ErrObjectNotFound is returned by drivers that can tell a missing key apart from other failures.
	ErrObjectNotFound = errors.New("object not found")
	// ErrInvalidObjectURL means no object key could be derived from a public URL.
	ErrInvalidObjectURL = errors.New("invalid object url")
)

// PutObjectOptions define optional parameters for uploading objects.
// Size should be the exact number of bytes if known; if unknown, set to -1 and the implementation
// will buffer/chunk as supported by the backend.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about an object in storage.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage is the blob store used for document contents. Keys are flat object names.
type Storage interface {
	// Put uploads an object under the given key using the provided reader and options.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Get retrieves an object's content as a streaming reader alongside its info.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	// Delete removes an object by key.
	Delete(ctx context.Context, key string) error
	// PublicURL returns the unauthenticated URL the object is reachable at.
	PublicURL(key string) string
}

// New builds the driver selected by cfg.Driver.
func New(ctx context.Context, cfg config.StorageConfig) (Storage, error) {
	switch cfg.Driver {
	case config.StorageDriverMinIO:
		return NewMinIO(ctx, cfg)
	case config.StorageDriverS3:
		return NewS3(ctx, cfg)
	case config.StorageDriverMemory:
		return NewMemory(cfg.PublicBaseURL), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// KeyFromURL returns the object key a public URL points at: its last path segment.
func KeyFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidObjectURL, err)
	}
	key := path.Base(u.Path)
	if key == "." || key == "/" || key == "" {
		return "", fmt.Errorf("%w: %q has no path segment", ErrInvalidObjectURL, raw)
	}
	return key, nil
}

// publicBaseURL resolves the prefix of public object URLs for the network drivers.
func publicBaseURL(cfg config.StorageConfig) string {
	if cfg.PublicBaseURL != "" {
		return strings.TrimRight(cfg.PublicBaseURL, "/")
	}

	scheme := "http"
	if cfg.UseSSL {
		scheme = "https"
	}
	if cfg.Endpoint == "" {
		// AWS virtual-hosted style.
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}

	endpoint := cfg.Endpoint
	if u, err := url.Parse(endpoint); err == nil && u.Host != "" {
		scheme, endpoint = u.Scheme, u.Host
	}
	return fmt.Sprintf("%s://%s/%s", scheme, endpoint, cfg.Bucket)
}

func joinURL(base, key string) string {
	return base + "/" + url.PathEscape(key)
}
