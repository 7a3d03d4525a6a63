// Package report exports the rendered dashboard as standalone HTML files to a
// local directory or an S3 bucket.
package report

import (
	"context"
	"fmt"

	"github.com/newthinker/evaldash/internal/config"
)

// Sink is a destination for exported reports.
type Sink interface {
	// Write stores data at the given path
	Write(ctx context.Context, path string, data []byte) error

	// Read retrieves data from the given path
	Read(ctx context.Context, path string) ([]byte, error)

	// List returns all paths matching the prefix
	List(ctx context.Context, prefix string) ([]string, error)

	// Exists checks if data exists at the given path
	Exists(ctx context.Context, path string) (bool, error)
}

// NewSink builds the sink selected by cfg.Type.
func NewSink(cfg config.ReportConfig) (Sink, error) {
	switch cfg.Type {
	case "", "localfs":
		return NewLocalFS(cfg.Path)
	case "s3":
		return NewS3(S3Config{
			Bucket:    cfg.S3.Bucket,
			Endpoint:  cfg.S3.Endpoint,
			Region:    cfg.S3.Region,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			Prefix:    cfg.S3.Prefix,
		})
	default:
		return nil, fmt.Errorf("unknown report sink type %q", cfg.Type)
	}
}
