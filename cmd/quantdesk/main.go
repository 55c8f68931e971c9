package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/quantdesk/internal/config"
	"github.com/Alias1177/quantdesk/internal/engine"
	"github.com/Alias1177/quantdesk/internal/market"
	"github.com/Alias1177/quantdesk/internal/market/twelvedata"
	"github.com/Alias1177/quantdesk/internal/market/yahoo"
	"github.com/Alias1177/quantdesk/internal/metrics"
	"github.com/Alias1177/quantdesk/internal/monitor"
	"github.com/Alias1177/quantdesk/internal/narrative"
	"github.com/Alias1177/quantdesk/internal/narrative/openai"
)

func main() {
	// Setup context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	setupSignalHandling(cancel)

	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// 2. Configure logging
	setupLogging(cfg.LogLevel)
	log.Info().Msg("Starting quantdesk monitor")

	// 3. Print configuration
	printConfig(cfg)

	// 4. Setup market data provider
	provider, quotes := buildProvider(cfg)

	// 5. Setup indicator engine
	engCfg := engine.DefaultConfig()
	engCfg.ChopMultiplier = cfg.ChopMultiplier
	engCfg.RiskBuffer = cfg.RiskBuffer
	engCfg.RewardMultiple = cfg.RewardMultiple
	eng, err := engine.New(engCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build engine")
	}

	// 6. Setup narrative generator if a key is configured
	var generator narrative.Generator
	if cfg.OpenAIAPIKey != "" {
		generator = openai.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	} else {
		log.Warn().Msg("OPENAI_API_KEY not set, verdict command disabled")
	}

	// 7. Start metrics server if enabled
	var mtr *metrics.Metrics
	if cfg.MetricsAddr != "" {
		mtr = metrics.NewMetrics()
		srv := metrics.NewServer(cfg.MetricsAddr)
		srv.Start()
		defer func() {
			stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer stopCancel()
			srv.Stop(stopCtx)
		}()
	}

	// 8. Run the monitor loop
	mon, err := monitor.New(monitor.Config{
		Symbol:        cfg.Symbol,
		Interval:      cfg.Interval,
		Lookback:      cfg.Lookback,
		Refresh:       cfg.Refresh,
		ShadowSymbol:  cfg.ShadowSymbol,
		VIXSymbol:     cfg.VIXSymbol,
		VIXSpikeLevel: cfg.VIXSpikeLevel,
	}, monitor.Options{
		Provider:  provider,
		Quotes:    quotes,
		Engine:    eng,
		Generator: generator,
		Metrics:   mtr,
		Out:       os.Stdout,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build monitor")
	}

	commands := monitor.ReadCommands(ctx, os.Stdin)
	if err := mon.Run(ctx, commands); err != nil {
		log.Fatal().Err(err).Msg("Monitor stopped with error")
	}
	log.Info().Msg("Monitor stopped")
}

// setupSignalHandling configures signal handling for graceful shutdown
func setupSignalHandling(cancel context.CancelFunc) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		log.Info().Msg("Shutdown signal received, exiting...")
		cancel()
		<-c
		os.Exit(1)
	}()
}

// setupLogging configures the logger
func setupLogging(logLevel string) {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	log.Logger = log.Output(output)

	// Set log level from config
	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log.Logger = log.Logger.Level(level)
}

// printConfig outputs the current configuration
func printConfig(cfg *config.Config) {
	log.Info().
		Str("Provider", cfg.Provider).
		Str("Symbol", cfg.Symbol).
		Str("Interval", string(cfg.Interval)).
		Dur("Lookback", cfg.Lookback).
		Dur("Refresh", cfg.Refresh).
		Float64("ChopMultiplier", cfg.ChopMultiplier).
		Float64("RiskBuffer", cfg.RiskBuffer).
		Float64("RewardMultiple", cfg.RewardMultiple).
		Str("ShadowSymbol", cfg.ShadowSymbol).
		Str("VIXSymbol", cfg.VIXSymbol).
		Str("MetricsAddr", cfg.MetricsAddr).
		Bool("NarrativeEnabled", cfg.OpenAIAPIKey != "").
		Msg("Configuration loaded")
}

// buildProvider selects the market data client for the configured provider.
func buildProvider(cfg *config.Config) (market.Provider, market.QuoteProvider) {
	switch cfg.Provider {
	case "twelvedata":
		client := twelvedata.NewClient(twelvedata.ClientOptions{
			APIKey:         cfg.TwelveAPIKey,
			RequestTimeout: cfg.RequestTimeout,
			RequestsPerSec: 5,
		})
		return client, client
	default:
		client := yahoo.NewClient(yahoo.ClientOptions{
			RequestTimeout: cfg.RequestTimeout,
			RequestsPerSec: 5,
		})
		return client, client
	}
}
