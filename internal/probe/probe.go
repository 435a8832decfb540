// Package probe reads media metadata from uploaded files.
package probe

import (
	"context"
)

// Prober extracts the playback duration of a media file.
type Prober interface {
	// Duration returns the length of the media at path in seconds.
	Duration(ctx context.Context, path string) (float64, error)
}
