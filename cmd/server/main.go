package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/mathieu-neron/tubegate/internal/middleware"
)

func main() {
	// .env is optional; the environment always wins over it
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		middleware.Logger.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
