package provider

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"github.com/mathieu-neron/tubegate/internal/model"
)

const watchURLPrefix = "https://www.youtube.com/watch?v="

// Bounds of search.list maxResults. The lower bound covers the ten results
// a search response returns.
const (
	minFetchLimit     = 10
	maxFetchLimit     = 50
	defaultFetchLimit = 20
)

// YouTubeSearch searches through the YouTube Data API v3.
type YouTubeSearch struct {
	service    *youtube.Service
	maxResults int64
}

// NewYouTubeSearch creates a search provider. maxResults is the number of
// results requested from the API, clamped to [10, 50]; zero or less means 20.
func NewYouTubeSearch(ctx context.Context, apiKey string, maxResults int64, opts ...option.ClientOption) (*YouTubeSearch, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("youtube search: %w: missing API key", ErrUnavailable)
	}
	maxResults = clampFetchLimit(maxResults)

	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	service, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}
	return &YouTubeSearch{service: service, maxResults: maxResults}, nil
}

func clampFetchLimit(n int64) int64 {
	switch {
	case n <= 0:
		return defaultFetchLimit
	case n < minFetchLimit:
		return minFetchLimit
	case n > maxFetchLimit:
		return maxFetchLimit
	}
	return n
}

// Search runs search.list, then videos.list to fill in duration and views.
func (s *YouTubeSearch) Search(ctx context.Context, query string) ([]model.SearchVideo, error) {
	resp, err := s.service.Search.List([]string{"id", "snippet"}).
		Q(query).
		Type("video").
		MaxResults(s.maxResults).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("search.list: %w", err)
	}

	videos := make([]model.SearchVideo, 0, len(resp.Items))
	ids := make([]string, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Id == nil || item.Id.VideoId == "" || item.Snippet == nil {
			continue
		}
		ids = append(ids, item.Id.VideoId)
		videos = append(videos, model.SearchVideo{
			Title:     item.Snippet.Title,
			VideoID:   item.Id.VideoId,
			URL:       watchURLPrefix + item.Id.VideoId,
			Author:    item.Snippet.ChannelTitle,
			Thumbnail: pickThumbnail(item.Snippet.Thumbnails),
		})
	}
	if len(ids) == 0 {
		return videos, nil
	}

	details, err := s.service.Videos.List([]string{"contentDetails", "statistics"}).
		Id(strings.Join(ids, ",")).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("videos.list: %w", err)
	}

	byID := make(map[string]*youtube.Video, len(details.Items))
	for _, v := range details.Items {
		byID[v.Id] = v
	}
	for i := range videos {
		v, ok := byID[videos[i].VideoID]
		if !ok {
			continue
		}
		if v.ContentDetails != nil {
			videos[i].Duration = TimestampLabel(v.ContentDetails.Duration)
		}
		if v.Statistics != nil {
			videos[i].Views = v.Statistics.ViewCount
		}
	}
	return videos, nil
}

// pickThumbnail prefers the "high" (hqdefault) image, then smaller ones.
func pickThumbnail(t *youtube.ThumbnailDetails) string {
	if t == nil {
		return ""
	}
	for _, th := range []*youtube.Thumbnail{t.High, t.Medium, t.Default, t.Standard, t.Maxres} {
		if th != nil && th.Url != "" {
			return th.Url
		}
	}
	return ""
}
