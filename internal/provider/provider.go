// Package provider adapts the third-party YouTube libraries to the two lookups
// the gateway needs: search and format listing.
package provider

import (
	"context"
	"errors"

	"github.com/mathieu-neron/tubegate/internal/model"
)

// SearchProvider returns videos for a free-text query in the provider's ranking order.
type SearchProvider interface {
	Search(ctx context.Context, query string) ([]model.SearchVideo, error)
}

// FormatProvider returns metadata and every available format for a video.
type FormatProvider interface {
	GetFormats(ctx context.Context, videoID string) (*model.VideoInfo, error)
}

// ErrUnavailable is returned by providers that are not configured.
var ErrUnavailable = errors.New("provider not configured")

// UnavailableSearch is used when no search credentials are configured.
type UnavailableSearch struct{}

func (UnavailableSearch) Search(context.Context, string) ([]model.SearchVideo, error) {
	return nil, ErrUnavailable
}
