package provider

import (
	"context"
	"time"

	"github.com/mathieu-neron/tubegate/internal/model"
)

// Observer receives the outcome of each upstream call.
type Observer interface {
	ObserveUpstream(provider string, d time.Duration, err error)
}

type observedSearch struct {
	next SearchProvider
	obs  Observer
}

// ObserveSearch reports every call made through p to obs.
func ObserveSearch(p SearchProvider, obs Observer) SearchProvider {
	return &observedSearch{next: p, obs: obs}
}

func (o *observedSearch) Search(ctx context.Context, query string) ([]model.SearchVideo, error) {
	start := time.Now()
	videos, err := o.next.Search(ctx, query)
	o.obs.ObserveUpstream("search", time.Since(start), err)
	return videos, err
}

type observedFormats struct {
	next FormatProvider
	obs  Observer
}

// ObserveFormats reports every call made through p to obs.
func ObserveFormats(p FormatProvider, obs Observer) FormatProvider {
	return &observedFormats{next: p, obs: obs}
}

func (o *observedFormats) GetFormats(ctx context.Context, videoID string) (*model.VideoInfo, error) {
	start := time.Now()
	info, err := o.next.GetFormats(ctx, videoID)
	o.obs.ObserveUpstream("formats", time.Since(start), err)
	return info, err
}
