package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/mathieu-neron/tubegate/internal/config"
	"github.com/mathieu-neron/tubegate/internal/middleware"
)

func newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "search [query]",
		Short:   "Search YouTube and print the gateway's /search response",
		Example: `  tubegate search "lofi hip hop"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			middleware.InitLogger(cfg.LogLevel, serviceName)

			svcs := buildServices(cmd.Context(), cfg, nil)
			resp, err := svcs.search.Search(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}
}
