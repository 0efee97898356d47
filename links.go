package main

import (
	"regexp"
	"strings"
)

// cloudinaryDeliveryHost marks image URLs that have already been migrated
const cloudinaryDeliveryHost = "res.cloudinary.com"

// Matches https://drive.google.com/file/d/<ID>/view?... and ...uc?export=view&id=<ID>
var driveIDPattern = regexp.MustCompile(`/file/d/([^/]+)/|id=([^&\s]+)`)

// firstImageURL returns the first entry of a pipe-delimited images field
func firstImageURL(images string) string {
	images = strings.TrimSpace(images)
	if images == "" {
		return ""
	}
	return strings.TrimSpace(strings.SplitN(images, "|", 2)[0])
}

func isHostedURL(url string) bool {
	return strings.Contains(url, cloudinaryDeliveryHost)
}

// extractDriveID returns the Drive file id embedded in url, if any
func extractDriveID(url string) (string, bool) {
	m := driveIDPattern.FindStringSubmatch(url)
	if m == nil {
		return "", false
	}
	if m[1] != "" {
		return m[1], true
	}
	return m[2], true
}
