package main

import (
	"context"
	"os"

	"github.com/go-faster/sdk/app"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	appkg "catalog-studio/app"
)

func main() {
	// A local .env is a development convenience; production sets variables directly.
	if os.Getenv("ENV") != "production" {
		_ = godotenv.Load()
	}

	app.Run(func(ctx context.Context, lg *zap.Logger, m *app.Telemetry) error {
		cfg, err := appkg.LoadConfig()
		if err != nil {
			return err
		}
		return appkg.Run(ctx, lg, m, cfg)
	})
}
