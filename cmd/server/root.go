package main

import (
	"context"
	"encoding/json"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/mathieu-neron/tubegate/internal/config"
	"github.com/mathieu-neron/tubegate/internal/metrics"
	"github.com/mathieu-neron/tubegate/internal/middleware"
	"github.com/mathieu-neron/tubegate/internal/provider"
	"github.com/mathieu-neron/tubegate/internal/service"
)

const serviceName = "tubegate"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "tubegate",
		Short: "API-key protected gateway for YouTube search and format resolution",
		Long: `TubeGate exposes two read-only endpoints:

  GET /search?q=...                                  top 10 search results
  GET /download?id=...&type=mp3|mp4&quality=...     direct link to one format

Run without a subcommand to start the server. The search and resolve
subcommands call the same services once and print JSON.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}

	root.AddCommand(newServeCmd(), newSearchCmd(), newResolveCmd())
	return root
}

// services bundles what both the server and the one-shot commands need.
type services struct {
	search          *service.SearchService
	download        *service.DownloadService
	searchAvailable bool
}

func buildServices(ctx context.Context, cfg *config.Config, m *metrics.Metrics) *services {
	var search provider.SearchProvider = provider.UnavailableSearch{}
	available := false

	yt, err := provider.NewYouTubeSearch(ctx, cfg.YouTubeAPIKey, cfg.SearchFetchLimit)
	if err != nil {
		middleware.Logger.Warn().Err(err).Msg("search disabled, /search will fail until YOUTUBE_API_KEY is set")
	} else {
		search = yt
		available = true
	}

	var formats provider.FormatProvider = provider.NewYouTubeFormats(nil)
	if m != nil {
		search = provider.ObserveSearch(search, m)
		formats = provider.ObserveFormats(formats, m)
	}

	return &services{
		search:          service.NewSearchService(search),
		download:        service.NewDownloadService(formats),
		searchAvailable: available,
	}
}

func newMetrics() *metrics.Metrics {
	return metrics.New(prometheus.NewRegistry())
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
