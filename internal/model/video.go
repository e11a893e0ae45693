package model

import (
	"context"
	"time"
)

// SearchVideo is one entry of a search response, copied from the provider.
type SearchVideo struct {
	Title     string `json:"title"`
	VideoID   string `json:"videoId"`
	URL       string `json:"url"`
	Duration  string `json:"duration"`
	Views     uint64 `json:"views"`
	Author    string `json:"author"`
	Thumbnail string `json:"thumbnail"`
}

// SearchResponse is the API response for GET /search.
type SearchResponse struct {
	Videos []SearchVideo `json:"videos"`
}

// Thumbnail is a single preview image reported by the provider.
type Thumbnail struct {
	URL    string `json:"url"`
	Width  uint   `json:"width"`
	Height uint   `json:"height"`
}

// VideoInfo is the metadata and the available formats of one video.
// Thumbnails and Formats keep the provider's order.
type VideoInfo struct {
	ID         string
	Title      string
	Author     string
	Duration   time.Duration
	Thumbnails []Thumbnail
	Formats    []Format

	// ResolveURL returns the direct link of one of Formats. Providers whose
	// links need deciphering set it so that only the selected format pays
	// for it; when nil, Format.URL is already direct.
	ResolveURL func(ctx context.Context, f Format) (string, error) `json:"-"`
}
