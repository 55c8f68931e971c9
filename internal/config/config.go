package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/quantdesk/internal/market"
)

// Config holds all application configuration
type Config struct {
	Provider     string `env:"PROVIDER" envDefault:"yahoo"`
	TwelveAPIKey string `env:"TWELVE_API_KEY" envDefault:""`
	OpenAIAPIKey string `env:"OPENAI_API_KEY" envDefault:""`
	OpenAIModel  string `env:"OPENAI_MODEL" envDefault:"gpt-4"`

	Symbol   string          `env:"SYMBOL" envDefault:"NQ=F"`
	Interval market.Interval `env:"INTERVAL" envDefault:"5m"`
	Lookback time.Duration   `env:"LOOKBACK" envDefault:"48h"`
	Refresh  time.Duration   `env:"REFRESH_INTERVAL" envDefault:"60s"`

	ChopMultiplier float64 `env:"CHOP_MULTIPLIER" envDefault:"0.3"`
	RiskBuffer     float64 `env:"RISK_BUFFER" envDefault:"1.5"`
	RewardMultiple float64 `env:"REWARD_MULTIPLE" envDefault:"2.0"`

	// ShadowSymbol defaults from the main symbol; "none" disables it.
	ShadowSymbol  string  `env:"SHADOW_SYMBOL" envDefault:""`
	VIXSymbol     string  `env:"VIX_SYMBOL" envDefault:"^VIX"`
	VIXSpikeLevel float64 `env:"VIX_SPIKE_LEVEL" envDefault:"20"`

	LogLevel       string        `env:"LOG_LEVEL" envDefault:"info"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`

	// MetricsAddr enables the Prometheus endpoint when set, e.g. ":9109".
	MetricsAddr string `env:"METRICS_ADDR" envDefault:""`
}

// Load initializes configuration from environment variables
func Load() (*Config, error) {
	// Load environment variables from .env file if present
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, relying on actual environment variables")
	}

	var cfg Config

	cfg.Provider = getEnvWithDefault("PROVIDER", "yahoo")
	cfg.TwelveAPIKey = os.Getenv("TWELVE_API_KEY")
	cfg.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	cfg.OpenAIModel = getEnvWithDefault("OPENAI_MODEL", "gpt-4")

	cfg.Symbol = getEnvWithDefault("SYMBOL", "NQ=F")
	interval, err := market.ParseInterval(getEnvWithDefault("INTERVAL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("INTERVAL: %w", err)
	}
	cfg.Interval = interval
	cfg.Lookback = getEnvDurationWithDefault("LOOKBACK", 48*time.Hour)
	cfg.Refresh = getEnvDurationWithDefault("REFRESH_INTERVAL", 60*time.Second)

	cfg.ChopMultiplier = getEnvFloatWithDefault("CHOP_MULTIPLIER", 0.3)
	cfg.RiskBuffer = getEnvFloatWithDefault("RISK_BUFFER", 1.5)
	cfg.RewardMultiple = getEnvFloatWithDefault("REWARD_MULTIPLE", 2.0)

	cfg.ShadowSymbol = getEnvWithDefault("SHADOW_SYMBOL", shadowFor(cfg.Symbol))
	if cfg.ShadowSymbol == "none" {
		cfg.ShadowSymbol = ""
	}
	cfg.VIXSymbol = getEnvWithDefault("VIX_SYMBOL", "^VIX")
	if cfg.VIXSymbol == "none" {
		cfg.VIXSymbol = ""
	}
	cfg.VIXSpikeLevel = getEnvFloatWithDefault("VIX_SPIKE_LEVEL", 20)

	cfg.LogLevel = getEnvWithDefault("LOG_LEVEL", "info")
	cfg.RequestTimeout = getEnvDurationWithDefault("REQUEST_TIMEOUT", 30*time.Second)
	cfg.MetricsAddr = os.Getenv("METRICS_ADDR")

	switch cfg.Provider {
	case "yahoo":
	case "twelvedata":
		if cfg.TwelveAPIKey == "" {
			return nil, fmt.Errorf("PROVIDER=twelvedata requires TWELVE_API_KEY")
		}
	default:
		return nil, fmt.Errorf("unsupported PROVIDER %q (want yahoo or twelvedata)", cfg.Provider)
	}

	return &cfg, nil
}

// shadowFor maps a futures symbol onto its liquid real-time proxy.
func shadowFor(symbol string) string {
	switch symbol {
	case "NQ=F":
		return "QQQ"
	case "ES=F":
		return "SPY"
	}
	return ""
}

// Helper functions for environment variable handling
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloatWithDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
