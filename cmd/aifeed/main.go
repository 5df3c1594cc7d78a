package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/deusflow/aifeed/internal/app"
	"github.com/deusflow/aifeed/internal/config"
	"github.com/deusflow/aifeed/internal/logger"
	"github.com/deusflow/aifeed/internal/metrics"
)

func main() {
	// A missing .env is normal in CI; environment variables win either way.
	_ = godotenv.Load()
	logger.Init()

	cliApp := &cli.App{
		Name:  "aifeed",
		Usage: "build and publish the daily AI news feed",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "date",
				Usage: "feed date override (YYYY-MM-DD), defaults to today",
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "path to the sources YAML",
			},
			&cli.StringFlag{
				Name:  "feeds-file",
				Usage: "path to the markdown feeds registry",
			},
			&cli.StringFlag{
				Name:  "output-dir",
				Usage: "directory the site is written to",
			},
			&cli.IntFlag{
				Name:  "min-per-section",
				Usage: "minimum stories per section (backfill target)",
			},
			&cli.IntFlag{
				Name:  "max-per-section",
				Usage: "maximum stories per section",
			},
			&cli.BoolFlag{
				Name:  "sample",
				Usage: "use the built-in sample corpus instead of fetching",
			},
		},
		Action: run,
	}

	if err := cliApp.Run(os.Args); err != nil {
		logger.Error("run failed", "error", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	applyFlags(cfg, c)
	if err := cfg.Validate(); err != nil {
		return err
	}

	if os.Getenv("ENABLE_HTTP_MONITORING") == "true" {
		go startMonitoringServer()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := app.Options{
		Date:   c.String("date"),
		Sample: c.Bool("sample"),
	}
	if err := app.Run(ctx, cfg, opts); err != nil {
		metrics.Global.SetError(err.Error())
		return err
	}
	return nil
}

func applyFlags(cfg *config.Config, c *cli.Context) {
	if v := c.String("config"); v != "" {
		cfg.SourcesConfigPath = v
	}
	if v := c.String("feeds-file"); v != "" {
		cfg.FeedsRegistryPath = v
	}
	if v := c.String("output-dir"); v != "" {
		cfg.OutputDir = v
	}
	if v := c.Int("min-per-section"); v > 0 {
		cfg.MinPerSection = v
	}
	if v := c.Int("max-per-section"); v > 0 {
		cfg.MaxPerSection = v
	}
}

func startMonitoringServer() {
	port := os.Getenv("MONITORING_PORT")
	if port == "" {
		port = "8080"
	}

	http.HandleFunc("/health", healthHandler)
	http.HandleFunc("/metrics", metricsHandler)

	logger.Info("starting monitoring server", "port", port)
	if err := http.ListenAndServe(":"+port, nil); err != nil {
		logger.Error("monitoring server error", "error", err)
	}
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	stats := metrics.Global.GetStats()

	status := "ok"
	if !stats["is_healthy"].(bool) {
		status = "error"
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	response := map[string]interface{}{
		"status":     status,
		"last_run":   stats["last_run_time"],
		"last_error": stats["last_error"],
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func metricsHandler(w http.ResponseWriter, r *http.Request) {
	stats := metrics.Global.GetStats()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}
