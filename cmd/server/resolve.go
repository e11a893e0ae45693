package main

import (
	"github.com/spf13/cobra"

	"github.com/mathieu-neron/tubegate/internal/config"
	"github.com/mathieu-neron/tubegate/internal/middleware"
)

func newResolveCmd() *cobra.Command {
	var (
		mediaType string
		quality   string
	)

	cmd := &cobra.Command{
		Use:   "resolve [videoId]",
		Short: "Resolve a direct media link and print the gateway's /download response",
		Example: `  tubegate resolve dQw4w9WgXcQ
  tubegate resolve dQw4w9WgXcQ --type mp3 --quality 128kbps`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			middleware.InitLogger(cfg.LogLevel, serviceName)

			svcs := buildServices(cmd.Context(), cfg, nil)
			resp, err := svcs.download.Resolve(cmd.Context(), args[0], middleware.NormalizeMediaType(mediaType), quality)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}

	cmd.Flags().StringVarP(&mediaType, "type", "t", "mp4", "Media type (mp3, mp4)")
	cmd.Flags().StringVarP(&quality, "quality", "q", "", "Quality label (e.g. 720p) or audio bitrate (e.g. 128kbps)")
	return cmd
}
