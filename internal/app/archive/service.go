/*
Package archive stores history snapshots in an S3-compatible object store.

A room's saved history file can be uploaded under a stable per-room key and
later fetched through a presigned download URL, giving snapshots a life beyond
the local filesystem.
*/
package archive

import (
	"context"
	"io"
	"time"
)

// ServiceConfig holds the settings required to reach the archive backend.
type ServiceConfig struct {
	S3BucketName      string
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string
}

// Service is the public interface of the history archive.
type Service interface {
	// Put uploads the snapshot body under the given key, replacing any
	// previous object.
	Put(ctx context.Context, key string, body io.Reader) error

	// PresignDownload returns a presigned URL for fetching the object.
	PresignDownload(ctx context.Context, key string, duration time.Duration) (string, error)

	// Delete removes the object with the given key.
	Delete(ctx context.Context, key string) error
}

// NewService is the factory for Service. Only S3-compatible backends are
// currently supported.
func NewService(cfg ServiceConfig) (Service, error) {
	return newS3Archive(cfg)
}
