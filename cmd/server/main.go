package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/prakhar2b/sm-dryfruto/internal/app"
	"github.com/prakhar2b/sm-dryfruto/internal/backend"
	"github.com/prakhar2b/sm-dryfruto/internal/config"
	"github.com/prakhar2b/sm-dryfruto/internal/content"
	pkgconfig "github.com/prakhar2b/sm-dryfruto/pkg/config"
	"github.com/prakhar2b/sm-dryfruto/pkg/logger"
)

const serviceName = "dryfruto-storefront"

func main() {
	cmd := &cli.Command{
		Name:  "server",
		Usage: "DryFruto storefront and admin API",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  "env-file",
				Usage: "dotenv files to load before reading the environment",
				Value: []string{".env"},
			},
		},
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP server (default)",
				Action: serve,
			},
			{
				Name:   "seed",
				Usage:  "Ask the content backend to load its sample data",
				Action: seed,
			},
			{
				Name:   "stats",
				Usage:  "Load all content once and print collection counts",
				Action: stats,
			},
		},
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := cmd.Run(ctx, os.Args); err != nil {
		slog.Error("command failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// setup loads dotenv files and configuration and builds the logger.
func setup(c *cli.Command) (*config.Config, *slog.Logger, error) {
	if err := pkgconfig.LoadDotEnv(c.StringSlice("env-file")...); err != nil {
		return nil, nil, err
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger.New(serviceName, cfg.LogLevel), nil
}

func serve(ctx context.Context, c *cli.Command) error {
	cfg, log, err := setup(c)
	if err != nil {
		return err
	}
	log.Info("starting storefront service",
		slog.String("environment", cfg.Tracing.Environment),
		slog.Int("http_port", cfg.HTTPPort),
		slog.String("backend_url", cfg.BackendURL),
	)

	application, err := app.NewApp(cfg, log)
	if err != nil {
		return fmt.Errorf("initialize application: %w", err)
	}

	// Run the application. This blocks until shutdown.
	if err := application.Run(ctx); err != nil {
		return err
	}

	log.Info("storefront service stopped")
	return nil
}

func seed(ctx context.Context, c *cli.Command) error {
	cfg, log, err := setup(c)
	if err != nil {
		return err
	}

	client := backend.New(cfg.Backend(), log)
	if err := client.Seed(ctx); err != nil {
		return fmt.Errorf("seed backend: %w", err)
	}
	log.Info("sample data seeded", slog.String("backend_url", cfg.BackendURL))

	return printCounts(ctx, client, cfg, log)
}

func stats(ctx context.Context, c *cli.Command) error {
	cfg, log, err := setup(c)
	if err != nil {
		return err
	}
	return printCounts(ctx, backend.New(cfg.Backend(), log), cfg, log)
}

func printCounts(ctx context.Context, client *backend.Client, cfg *config.Config, log *slog.Logger) error {
	store := content.NewStore(client, log, content.WithLoadTimeout(cfg.ContentLoadTimeout))
	snap := store.LoadAll(ctx)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		Counts   content.Counts `json:"counts"`
		Degraded []string       `json:"degraded,omitempty"`
	}{snap.Counts(), snap.Degraded})
}
