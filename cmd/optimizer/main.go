package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alejandrodnm/adbot/config"
	"github.com/alejandrodnm/adbot/internal/adapters/googleads"
	"github.com/alejandrodnm/adbot/internal/adapters/notify"
	"github.com/alejandrodnm/adbot/internal/adapters/storage"
	"github.com/alejandrodnm/adbot/internal/adapters/trafficdb"
	"github.com/alejandrodnm/adbot/internal/application/optimizer"
	"github.com/alejandrodnm/adbot/internal/domain/strategy"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	campaignID := flag.String("campaign", "", "campaign ID to optimize (required)")
	strategyName := flag.String("strategy", "", "strategy: roas|cpa|manual (overrides config)")
	windowDays := flag.Int("window", 0, "attribution window in days (overrides config)")
	dryRun := flag.Bool("dry-run", false, "compute decisions but never touch the live campaign")
	table := flag.Bool("table", false, "print full decision table (default: compact 1-line)")
	verbose := flag.Bool("verbose", false, "set log level to debug")
	logFormat := flag.String("format", "", "log format: text|json (overrides config)")
	flag.Parse()

	if *campaignID == "" {
		slog.Error("missing required flag -campaign")
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err, "path", *configPath)
		os.Exit(1)
	}

	if *strategyName != "" {
		cfg.Optimizer.Strategy = *strategyName
	}
	if *windowDays > 0 {
		cfg.Optimizer.AttributionWindowDays = *windowDays
	}
	if *verbose {
		cfg.Log.Level = "debug"
	}
	if *logFormat != "" {
		cfg.Log.Format = *logFormat
	}
	setupLogger(cfg.Log)

	// Credenciales ausentes abortan aquí, antes de tocar ningún dato.
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	slog.Info("adbot starting",
		"config", *configPath,
		"campaign", *campaignID,
		"strategy", cfg.Optimizer.Strategy,
		"window_days", cfg.Optimizer.AttributionWindowDays,
		"dry_run", *dryRun,
	)

	strat, err := strategy.FromName(cfg.Optimizer.Strategy, strategy.Thresholds{
		MaxCPA:            cfg.Optimizer.MaxCPA,
		MinConversionRate: cfg.Optimizer.MinConversionRate,
	})
	if err != nil {
		slog.Error("unknown strategy", "err", err)
		os.Exit(1)
	}
	engine := strategy.NewEngine(strat, strategy.EngineConfig{BidStepPct: cfg.Optimizer.BidStepPct})

	client := googleads.NewClient(cfg.GoogleAds.APIBase, googleads.Credentials{
		CustomerID:      cfg.GoogleAds.CustomerID,
		LoginCustomerID: cfg.GoogleAds.LoginCustomerID,
		DeveloperToken:  cfg.GoogleAds.DeveloperToken,
		AccessToken:     cfg.GoogleAds.AccessToken,
	})
	directory := googleads.NewDirectory(client, googleads.ResolutionMode(cfg.Optimizer.ResolutionMode))
	applier := googleads.NewApplier(client)

	traffic, err := trafficdb.Open(cfg.Traffic.DSN)
	if err != nil {
		slog.Error("failed to open traffic log", "err", err, "dsn", cfg.Traffic.DSN)
		os.Exit(1)
	}
	defer traffic.Close()

	sink, err := storage.NewSQLiteStorage(cfg.Storage.DSN)
	if err != nil {
		slog.Error("failed to open run storage", "err", err, "dsn", cfg.Storage.DSN)
		os.Exit(1)
	}
	defer sink.Close()

	notifier := notify.NewConsole(*table)

	opt := optimizer.New(
		optimizer.Config{
			WindowDays:        cfg.Optimizer.AttributionWindowDays,
			ConversionTags:    cfg.Optimizer.ConversionTags,
			ResolverBatchSize: cfg.Optimizer.ResolverBatchSize,
			DryRun:            *dryRun,
		},
		traffic, directory, applier, sink, notifier, engine,
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if _, err := opt.Run(ctx, *campaignID); err != nil {
		slog.Error("optimization run failed", "err", err)
		os.Exit(1)
	}

	slog.Info("adbot finished cleanly")
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
