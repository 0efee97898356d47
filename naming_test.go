package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizePublicID(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercases and hyphenates", "  Red Maxi Dress ", "red-maxi-dress"},
		{"collapses runs", "A -- B__c", "a-b__c"},
		{"trims hyphens", "--hello!!", "hello"},
		{"keeps allowed", "p_01-abc", "p_01-abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizePublicID(tt.in))
		})
	}
}

func TestSanitizePublicIDIsIdempotent(t *testing.T) {
	inputs := []string{
		"Red Maxi Dress",
		"P-001 - Floral / Summer (Size M)",
		"___",
		strings.Repeat("ab ", 100),
		strings.Repeat("x", 119) + " yz",
	}
	for _, in := range inputs {
		once := sanitizePublicID(in)
		assert.Equal(t, once, sanitizePublicID(once), "input %q", in)
	}
}

func TestSanitizePublicIDTruncates(t *testing.T) {
	got := sanitizePublicID(strings.Repeat("a", 300))
	assert.Len(t, got, maxPublicIDLength)

	got = sanitizePublicID(strings.Repeat("x", 119) + " yz")
	assert.Equal(t, strings.Repeat("x", 119), got)
}

func TestSanitizePublicIDFallback(t *testing.T) {
	got := sanitizePublicID("!!! ??? ///")
	assert.NotEmpty(t, got)
	assert.True(t, strings.HasPrefix(got, "img-"), got)
}

func TestPublicIDFor(t *testing.T) {
	assert.Equal(t, "p1-blue-dress", publicIDFor("P1", "Blue Dress"))
	assert.Equal(t, "p1", publicIDFor("P1", ""))
}

func TestInferFolder(t *testing.T) {
	assert.Equal(t, "base/long-dresses", inferFolder("base", "Long Dress"))
	assert.Equal(t, "base/long-dresses", inferFolder("base", "OBLONG"))
	assert.Equal(t, "base/short-dresses", inferFolder("base", "short"))
	assert.Equal(t, "base/short-dresses", inferFolder("base", "  Short Dresses "))
	assert.Equal(t, "base/other", inferFolder("base", "Skirts"))
	assert.Equal(t, "base/other", inferFolder("base", ""))
}
