package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v3"
	"github.com/spf13/cobra"

	"github.com/mathieu-neron/tubegate/internal/config"
	"github.com/mathieu-neron/tubegate/internal/handler"
	"github.com/mathieu-neron/tubegate/internal/middleware"
	"github.com/mathieu-neron/tubegate/internal/router"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP gateway",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := config.Load()
	middleware.InitLogger(cfg.LogLevel, serviceName)

	if cfg.APIKey == config.DefaultAPIKey {
		middleware.Logger.Warn().Msg("API_KEY not set, using the placeholder secret")
	}

	m := newMetrics()
	svcs := buildServices(ctx, cfg, m)

	store := middleware.NewRateLimitStore(ctx, cfg.RateLimitRedisURL)
	var health *handler.HealthHandler
	switch s := store.(type) {
	case *middleware.RedisStore:
		defer s.Client().Close()
		health = handler.NewHealthHandler(s.Client(), svcs.searchAvailable)
	case *middleware.MemoryStore:
		defer s.Close()
		health = handler.NewHealthHandler(nil, svcs.searchAvailable)
	}

	app := fiber.New(fiber.Config{
		AppName:      "TubeGate",
		ServerHeader: "TubeGate",
	})

	router.Setup(app, &router.Handlers{
		Search:   handler.NewSearchHandler(svcs.search),
		Download: handler.NewDownloadHandler(svcs.download),
		Health:   health,
	}, router.Deps{
		APIKey:          cfg.APIKey,
		CORSOrigins:     cfg.CORSOrigins,
		RateLimitMax:    cfg.RateLimitMax,
		RateLimitWindow: cfg.RateLimitWindow,
		RateLimitStore:  store,
		Metrics:         m,
	})

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-sigCtx.Done()
		middleware.Logger.Info().Msg("shutting down")
		_ = app.Shutdown()
	}()

	middleware.Logger.Info().
		Str("port", cfg.Port).
		Str("env", cfg.Environment).
		Int("rate_limit_max", cfg.RateLimitMax).
		Dur("rate_limit_window", cfg.RateLimitWindow).
		Msg("TubeGate starting")
	return app.Listen(":" + cfg.Port)
}
