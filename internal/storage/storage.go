package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

var ErrNotFound = errors.New("file not found")

// Object is an opened stored file. Callers must close it.
type Object struct {
	io.ReadCloser
	Size int64
}

// Storage keeps uploaded resumes and logos under slash-separated keys.
type Storage interface {
	Save(ctx context.Context, key string, body io.Reader, contentType string) error
	// Open returns ErrNotFound for unknown keys.
	Open(ctx context.Context, key string) (*Object, error)
	// Delete is a no-op for unknown keys.
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	// SignedURL returns a time-limited direct download link, or "" when the backend cannot presign.
	SignedURL(ctx context.Context, key string, expiry time.Duration) (string, error)
}

type Config struct {
	Type       string // local, s3, cloudflare_r2
	BasePath   string
	Bucket     string
	Region     string
	AccessKey  string
	SecretKey  string
	Endpoint   string
	PublicRead bool
}

func NewStorage(cfg Config) (Storage, error) {
	switch cfg.Type {
	case "local", "":
		return NewLocalStorage(cfg)
	case "s3":
		return NewS3Storage(cfg)
	case "cloudflare_r2":
		return NewCloudflareR2Storage(cfg)
	}
	return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
}
