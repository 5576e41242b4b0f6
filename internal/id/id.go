// Package id generates identifiers for tags and events.
package id

import (
	"fmt"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// TagPrefix prefixes every tag id.
const TagPrefix = "tag"

// Generate creates a prefixed unique ID using NanoID.
// Format: prefix-nanoid (e.g., "tag-V1StGXR8_Z5jdHi6B-myT").
//
// Returns an error if the system has insufficient entropy for secure random generation.
func Generate(prefix string) (string, error) {
	nid, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + nid, nil
}

// NewTagID returns a fresh tag id.
func NewTagID() (string, error) {
	return Generate(TagPrefix)
}

// NewEventID returns a random UUID string for SSE event ids.
func NewEventID() string {
	return uuid.NewString()
}
