package main

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	log "github.com/sirupsen/logrus"
)

// looksLikeHTML reports whether a payload is an HTML page rather than file bytes.
// Drive answers 200 OK with a login or "not found" page for files it won't serve.
func looksLikeHTML(data []byte) bool {
	head := data
	if len(head) > 200 {
		head = head[:200]
	}
	head = bytes.ToLower(head)

	prefix := head
	if len(prefix) > 20 {
		prefix = prefix[:20]
	}
	return bytes.HasPrefix(prefix, []byte("<!doctype html")) || bytes.Contains(head, []byte("<html"))
}

// checkPayload rejects HTML payloads and warns when the content doesn't sniff as an image
func checkPayload(data []byte, url string) error {
	if looksLikeHTML(data) {
		return fmt.Errorf("got HTML instead of image bytes (file may not be public, or Drive blocked it). URL: %s", url)
	}

	mimeType := mimetype.Detect(data)
	if !strings.HasPrefix(mimeType.String(), "image/") {
		log.Warnf("content-type mismatch for %s: expected image, detected %s", url, mimeType.String())
	}
	return nil
}
