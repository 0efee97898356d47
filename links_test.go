package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractDriveID(t *testing.T) {
	tests := []struct {
		url    string
		wantID string
		wantOK bool
	}{
		{"https://drive.google.com/file/d/1AbC_d-9/view?usp=sharing", "1AbC_d-9", true},
		{"https://drive.google.com/uc?export=view&id=XYZ123", "XYZ123", true},
		{"https://drive.google.com/open?id=XYZ123&authuser=0", "XYZ123", true},
		{"https://example.com/image.jpg", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			id, ok := extractDriveID(tt.url)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestFirstImageURL(t *testing.T) {
	assert.Equal(t, "", firstImageURL(""))
	assert.Equal(t, "", firstImageURL("   "))
	assert.Equal(t, "https://a/1", firstImageURL(" https://a/1 "))
	assert.Equal(t, "https://a/1", firstImageURL("https://a/1 | https://a/2|https://a/3"))
}

func TestIsHostedURL(t *testing.T) {
	assert.True(t, isHostedURL("https://res.cloudinary.com/demo/image/upload/v1/x.jpg"))
	assert.False(t, isHostedURL("https://drive.google.com/file/d/abc/view"))
}
