package service

import (
	"context"

	"github.com/mathieu-neron/tubegate/internal/model"
	"github.com/mathieu-neron/tubegate/internal/provider"
)

// MaxSearchResults is the number of provider results kept per search.
const MaxSearchResults = 10

type SearchService struct {
	provider provider.SearchProvider
}

func NewSearchService(p provider.SearchProvider) *SearchService {
	return &SearchService{provider: p}
}

// Search performs one provider call and keeps the first MaxSearchResults
// entries in provider order. Results are never cached.
func (s *SearchService) Search(ctx context.Context, query string) (*model.SearchResponse, error) {
	if query == "" {
		return nil, &ValidationError{Message: "Query parameter 'q' is required"}
	}

	videos, err := s.provider.Search(ctx, query)
	if err != nil {
		return nil, &UpstreamError{Op: "search", Err: err}
	}

	if len(videos) > MaxSearchResults {
		videos = videos[:MaxSearchResults]
	}
	out := make([]model.SearchVideo, len(videos))
	copy(out, videos)
	return &model.SearchResponse{Videos: out}, nil
}
