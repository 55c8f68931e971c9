package config

import (
	"testing"
	"time"

	"github.com/Alias1177/quantdesk/internal/market"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PROVIDER", "TWELVE_API_KEY", "OPENAI_API_KEY", "OPENAI_MODEL",
		"SYMBOL", "INTERVAL", "LOOKBACK", "REFRESH_INTERVAL",
		"CHOP_MULTIPLIER", "RISK_BUFFER", "REWARD_MULTIPLE",
		"SHADOW_SYMBOL", "VIX_SYMBOL", "VIX_SPIKE_LEVEL",
		"LOG_LEVEL", "REQUEST_TIMEOUT", "METRICS_ADDR",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Provider != "yahoo" {
		t.Errorf("Provider = %q, want yahoo", cfg.Provider)
	}
	if cfg.Symbol != "NQ=F" {
		t.Errorf("Symbol = %q, want NQ=F", cfg.Symbol)
	}
	if cfg.Interval != market.Interval5m {
		t.Errorf("Interval = %v, want 5m", cfg.Interval)
	}
	if cfg.Lookback != 48*time.Hour {
		t.Errorf("Lookback = %v, want 48h", cfg.Lookback)
	}
	if cfg.Refresh != 60*time.Second {
		t.Errorf("Refresh = %v, want 60s", cfg.Refresh)
	}
	if cfg.ChopMultiplier != 0.3 || cfg.RiskBuffer != 1.5 || cfg.RewardMultiple != 2.0 {
		t.Errorf("multipliers = %v/%v/%v, want 0.3/1.5/2.0", cfg.ChopMultiplier, cfg.RiskBuffer, cfg.RewardMultiple)
	}
	// NQ=F derives its shadow ticker automatically.
	if cfg.ShadowSymbol != "QQQ" {
		t.Errorf("ShadowSymbol = %q, want QQQ", cfg.ShadowSymbol)
	}
	if cfg.VIXSymbol != "^VIX" || cfg.VIXSpikeLevel != 20 {
		t.Errorf("VIX = %q/%v, want ^VIX/20", cfg.VIXSymbol, cfg.VIXSpikeLevel)
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Errorf("RequestTimeout = %v, want 30s", cfg.RequestTimeout)
	}
	if cfg.MetricsAddr != "" {
		t.Errorf("MetricsAddr = %q, want empty", cfg.MetricsAddr)
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("SYMBOL", "ES=F")
	t.Setenv("INTERVAL", "1h")
	t.Setenv("LOOKBACK", "72h")
	t.Setenv("REFRESH_INTERVAL", "5m")
	t.Setenv("CHOP_MULTIPLIER", "0.5")
	t.Setenv("METRICS_ADDR", ":9109")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Symbol != "ES=F" || cfg.ShadowSymbol != "SPY" {
		t.Errorf("Symbol/Shadow = %q/%q, want ES=F/SPY", cfg.Symbol, cfg.ShadowSymbol)
	}
	if cfg.Interval != market.Interval1h {
		t.Errorf("Interval = %v, want 1h", cfg.Interval)
	}
	if cfg.Lookback != 72*time.Hour {
		t.Errorf("Lookback = %v, want 72h", cfg.Lookback)
	}
	if cfg.Refresh != 5*time.Minute {
		t.Errorf("Refresh = %v, want 5m", cfg.Refresh)
	}
	if cfg.ChopMultiplier != 0.5 {
		t.Errorf("ChopMultiplier = %v, want 0.5", cfg.ChopMultiplier)
	}
	if cfg.MetricsAddr != ":9109" {
		t.Errorf("MetricsAddr = %q, want :9109", cfg.MetricsAddr)
	}
}

func TestLoadDisablesCompanions(t *testing.T) {
	clearEnv(t)
	t.Setenv("SHADOW_SYMBOL", "none")
	t.Setenv("VIX_SYMBOL", "none")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ShadowSymbol != "" || cfg.VIXSymbol != "" {
		t.Errorf("companions = %q/%q, want disabled", cfg.ShadowSymbol, cfg.VIXSymbol)
	}
}

func TestLoadUnknownSymbolHasNoShadow(t *testing.T) {
	clearEnv(t)
	t.Setenv("SYMBOL", "GC=F")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ShadowSymbol != "" {
		t.Errorf("ShadowSymbol = %q, want empty for unmapped symbol", cfg.ShadowSymbol)
	}
}

func TestLoadTwelvedataRequiresKey(t *testing.T) {
	clearEnv(t)
	t.Setenv("PROVIDER", "twelvedata")

	if _, err := Load(); err == nil {
		t.Fatal("Load() expected error without TWELVE_API_KEY")
	}

	t.Setenv("TWELVE_API_KEY", "key")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Provider != "twelvedata" {
		t.Errorf("Provider = %q, want twelvedata", cfg.Provider)
	}
}

func TestLoadRejectsUnknownProvider(t *testing.T) {
	clearEnv(t)
	t.Setenv("PROVIDER", "alpaca")

	if _, err := Load(); err == nil {
		t.Fatal("Load() expected error for unknown provider")
	}
}

func TestLoadRejectsBadInterval(t *testing.T) {
	clearEnv(t)
	t.Setenv("INTERVAL", "7m")

	if _, err := Load(); err == nil {
		t.Fatal("Load() expected error for unsupported interval")
	}
}
