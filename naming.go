package main

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

const maxPublicIDLength = 120

var (
	disallowedPublicIDChars = regexp.MustCompile(`[^a-z0-9_-]+`)
	repeatedHyphens         = regexp.MustCompile(`-{2,}`)
)

// sanitizePublicID turns free text into a Cloudinary-safe public id
func sanitizePublicID(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = disallowedPublicIDChars.ReplaceAllString(s, "-")
	s = strings.Trim(repeatedHyphens.ReplaceAllString(s, "-"), "-")
	if len(s) > maxPublicIDLength {
		// Truncating can expose a hyphen at the end again
		s = strings.TrimRight(s[:maxPublicIDLength], "-")
	}
	if s == "" {
		return fmt.Sprintf("img-%d", time.Now().Unix())
	}
	return s
}

// publicIDFor derives the public id from a product id and, when present, its name
func publicIDFor(productID, name string) string {
	if name != "" {
		return sanitizePublicID(productID + "-" + name)
	}
	return sanitizePublicID(productID)
}

// inferFolder maps a product category onto a destination folder under baseFolder
func inferFolder(baseFolder, category string) string {
	cat := strings.ToLower(strings.TrimSpace(category))
	switch {
	case strings.Contains(cat, "long"):
		return baseFolder + "/long-dresses"
	case strings.Contains(cat, "short"):
		return baseFolder + "/short-dresses"
	default:
		return baseFolder + "/other"
	}
}
