package narrative

import (
	"strings"
	"testing"

	"github.com/Alias1177/quantdesk/internal/model"
)

func fullSnapshot() *model.IndicatorSnapshot {
	return &model.IndicatorSnapshot{
		LastPrice:        18250.25,
		SMAShort:         18240.1,
		SMALong:          18230.55,
		VWAP:             18228.8,
		ATR:              45.2,
		RSI:              62.5,
		RecentVolatility: 12.4,
		Deviation:        21.45,
		Trend:            model.TrendBullish,
		Signal:           model.SignalStrongLong,
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt(PromptInput{
		Symbol:   "NQ=F",
		Snapshot: fullSnapshot(),
		Risk: &model.RiskLevels{
			LongStop:    18231.65,
			LongTarget:  18287.45,
			ShortStop:   18268.85,
			ShortTarget: 18213.05,
		},
		Shadow: &model.Quote{Symbol: "QQQ", Price: 430.1},
		VIX:    &model.Quote{Symbol: "^VIX", Price: 18.5},
	})

	for _, want := range []string{
		"AI Verdict: STRONG_LONG",
		"Symbol: NQ=F | Price: 18250.25",
		"Shadow Price (QQQ): 430.10",
		"VIX: 18.50",
		"Trend: BULLISH | SMA(9): 18240.10 | SMA(21): 18230.55 | VWAP: 18228.80",
		"RSI(14): 62.50",
		"Long Stop: 18231.65 | Long Target: 18287.45",
		"1. Signal Assessment",
		"2. Technical Alignment",
		"3. Leading Indicator Check",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestBuildPromptUnavailableFields(t *testing.T) {
	snap := fullSnapshot()
	snap.Unavailable = map[string]string{
		model.FieldRSI:    "insufficient data: need 15 bars, have 12",
		model.FieldSignal: "requires deviation, recent_volatility and trend",
	}

	prompt := BuildPrompt(PromptInput{Symbol: "ES=F", Snapshot: snap})

	if !strings.Contains(prompt, "AI Verdict: n/a") {
		t.Errorf("prompt should mark signal n/a:\n%s", prompt)
	}
	if !strings.Contains(prompt, "RSI(14): n/a") {
		t.Errorf("prompt should mark RSI n/a:\n%s", prompt)
	}
	// The instruction block always mentions the companions by name; only
	// the data line must be gone.
	if strings.Contains(prompt, "Shadow Price (") || strings.Contains(prompt, "| VIX:") {
		t.Errorf("prompt should omit absent companion quotes:\n%s", prompt)
	}
	if strings.Contains(prompt, "Long Stop") {
		t.Errorf("prompt should omit absent risk levels:\n%s", prompt)
	}
}

func TestBuildPromptBounded(t *testing.T) {
	prompt := BuildPrompt(PromptInput{
		Symbol:   strings.Repeat("X", 3*MaxPromptLen),
		Snapshot: fullSnapshot(),
	})
	if len(prompt) > MaxPromptLen {
		t.Errorf("len(prompt) = %d, want <= %d", len(prompt), MaxPromptLen)
	}
}
