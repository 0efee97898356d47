package main

import (
	"context"
)

// Downloader fetches the raw bytes behind a source image URL
type Downloader interface {
	Download(ctx context.Context, url string) ([]byte, error)

	// GetName returns the name of the download source
	GetName() string
}

// StorageProvider defines the interface for media hosts
type StorageProvider interface {
	// Upload stores data under folder/publicID and returns the hosted URL
	Upload(ctx context.Context, data []byte, folder, publicID string) (string, error)

	// GetName returns the name of the storage provider
	GetName() string
}
