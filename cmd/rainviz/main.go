// Command rainviz loads a monthly rainfall dataset, builds the animation
// frame sequence, and serves the looping visualization over HTTP.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	httpadapter "github.com/couchcryptid/rainfall-atlas/internal/adapter/http"
	"github.com/couchcryptid/rainfall-atlas/internal/browser"
	"github.com/couchcryptid/rainfall-atlas/internal/config"
	"github.com/couchcryptid/rainfall-atlas/internal/domain"
	"github.com/couchcryptid/rainfall-atlas/internal/frames"
	"github.com/couchcryptid/rainfall-atlas/internal/ingest"
	"github.com/couchcryptid/rainfall-atlas/internal/observability"
	"github.com/couchcryptid/rainfall-atlas/internal/render"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file (optional)")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.Logging.Level, cfg.Logging.Format)
	metrics := observability.NewMetrics()

	dataset, err := loadDataset(cfg, logger)
	if err != nil {
		logger.Error("failed to load dataset", "error", err)
		os.Exit(1)
	}
	metrics.RowsLoaded.Add(float64(dataset.Stats.RowsRead - dataset.Stats.RowsDropped))
	metrics.RowsDropped.Add(float64(dataset.Stats.RowsDropped))
	metrics.TraceRows.Add(float64(dataset.Stats.TraceRows))

	series := domain.AggregateMonthly(dataset.Records)
	for _, m := range series.Months {
		if m.ZeroFilled {
			metrics.MonthsZeroFilled.Inc()
		}
	}

	summary := series.Summarize(dataset.Variant, len(dataset.Records), dataset.Stats.Locations)
	logger.Info("dataset loaded",
		"variant", summary.Variant,
		"records", summary.Records,
		"months", summary.Months,
		"span", fmt.Sprintf("%s..%s", summary.FirstMonth, summary.LastMonth),
		"wettest", summary.Wettest.MonthKey.String(),
		"wettest_mm", summary.Wettest.TotalMM,
		"dropped_rows", dataset.Stats.RowsDropped)

	frameSeq := frames.Build(dataset.Variant, series)
	player := frames.NewPlayer(frameSeq, cfg.Animation.Interval, nil, logger, metrics)
	if err := player.SetSpeed(cfg.Animation.Speed); err != nil {
		logger.Error("invalid playback speed", "error", err)
		os.Exit(1)
	}

	renderer := render.NewRenderer(cfg.Render.CacheSize, logger, metrics)
	srv := httpadapter.NewServer(cfg.HTTP.Addr, player, renderer, summary, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	go func() {
		if err := player.Run(ctx); err != nil {
			logger.Error("player error", "error", err)
		}
	}()

	if cfg.HTTP.OpenBrowser {
		url := viewerURL(cfg.HTTP.Addr)
		if err := browser.Open(url); err != nil {
			logger.Warn("could not open browser", "url", url, "error", err)
		} else {
			logger.Info("viewer opened", "url", url)
		}
	}

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}

// loadDataset reads the configured CSV, falling back to a generated sample
// dataset when the file does not exist.
func loadDataset(cfg *config.Config, logger *slog.Logger) (*ingest.Dataset, error) {
	dataset, err := ingest.Load(cfg.Data.Path, logger)
	if err == nil {
		return dataset, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	start, end, yerr := cfg.SampleYearRange()
	if yerr != nil {
		return nil, yerr
	}
	logger.Warn("dataset not found, generating sample data",
		"path", cfg.Data.Path, "years", cfg.Data.SampleYears, "seed", cfg.Data.SampleSeed)

	records := ingest.GenerateSample(start, end, cfg.Data.SampleSeed)
	return &ingest.Dataset{
		Variant: domain.VariantGrid,
		Records: records,
		Stats:   ingest.Stats{RowsRead: len(records), Locations: ingest.SampleLocationCount},
	}, nil
}

func viewerURL(addr string) string {
	host := addr
	if strings.HasPrefix(addr, ":") {
		host = "localhost" + addr
	}
	return "http://" + host
}
