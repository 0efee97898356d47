package main

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	cldconfig "github.com/cloudinary/cloudinary-go/v2/config"
	log "github.com/sirupsen/logrus"
)

const cloudinaryUploadTimeout = 90 * time.Second

// CloudinaryStorage implements StorageProvider for Cloudinary.
// The SDK signs every upload: sorted params joined as k=v&k=v, secret appended, SHA-1.
type CloudinaryStorage struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryStorage creates a Cloudinary storage provider.
// An empty uploadPrefix keeps the SDK default of https://api.cloudinary.com.
func NewCloudinaryStorage(cloudName, apiKey, apiSecret, uploadPrefix string) (*CloudinaryStorage, error) {
	conf, err := cldconfig.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("error creating Cloudinary config: %w", err)
	}
	if uploadPrefix != "" {
		conf.API.UploadPrefix = uploadPrefix
	}
	conf.API.Timeout = int64(cloudinaryUploadTimeout / time.Second)

	cld, err := cloudinary.NewFromConfiguration(*conf)
	if err != nil {
		return nil, fmt.Errorf("error initializing Cloudinary: %w", err)
	}

	return &CloudinaryStorage{cld: cld}, nil
}

// GetName returns the storage provider name
func (c *CloudinaryStorage) GetName() string {
	return "Cloudinary"
}

// Upload stores data with public id folder/publicID and returns its secure URL
func (c *CloudinaryStorage) Upload(ctx context.Context, data []byte, folder, publicID string) (string, error) {
	start := time.Now()
	fullPublicID := folder + "/" + publicID

	ctx, cancel := context.WithTimeout(ctx, cloudinaryUploadTimeout)
	defer cancel()

	res, err := c.cld.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		PublicID:     fullPublicID,
		ResourceType: "image",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s to Cloudinary: %w", fullPublicID, err)
	}
	if res.Error.Message != "" {
		return "", fmt.Errorf("failed to upload %s to Cloudinary: %s", fullPublicID, res.Error.Message)
	}
	if res.SecureURL == "" {
		return "", fmt.Errorf("no secure_url in Cloudinary response for %s", fullPublicID)
	}

	log.Debugf("File uploaded to Cloudinary as %s: %s", fullPublicID, res.SecureURL)
	cloudinaryUploadDuration.WithLabelValues().Observe(time.Since(start).Seconds())

	return res.SecureURL, nil
}
