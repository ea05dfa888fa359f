package enhance

import (
	"context"

	"doctorsmile/models"
)

// Options control the whitening transform.
type Options struct {
	TeethColor string `json:"teethColor"`
	Style      string `json:"style"`
	// Level is the whitening strength in [1,10]. Zero means the default.
	Level int `json:"level"`
}

// DefaultLevel is applied when no whitening strength is requested.
const DefaultLevel = 7

// Enhancer produces a before/after smile preview from an uploaded photo.
// Implementations must always return a pair; after may equal before when the
// transform cannot run (documented degraded mode, not a failure).
type Enhancer interface {
	Enhance(ctx context.Context, photo []byte, mimeType string, opts Options) (*models.ImagePair, error)
}
