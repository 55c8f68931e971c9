package monitor

import (
	"strings"
	"testing"

	"github.com/Alias1177/quantdesk/internal/model"
)

func TestRenderPanelNoData(t *testing.T) {
	panel := renderPanel(testConfig(), state{})

	if !strings.Contains(panel, "No data yet") {
		t.Errorf("panel missing no-data notice:\n%s", panel)
	}
	if strings.Contains(panel, "As of") {
		t.Errorf("panel should have no timestamp without a snapshot:\n%s", panel)
	}
}

func TestRenderPanelUnavailableFields(t *testing.T) {
	snap := &model.IndicatorSnapshot{
		AsOf:      testBase,
		LastPrice: 18250.25,
		Unavailable: map[string]string{
			model.FieldSignal: "requires deviation, recent_volatility and trend",
			model.FieldTrend:  "requires sma_short and sma_long",
			model.FieldRSI:    "insufficient data: need 15 bars, have 12",
		},
	}

	panel := renderPanel(testConfig(), state{snapshot: snap})

	for _, want := range []string{
		"Signal: n/a | Price: 18250.25",
		"Trend: n/a",
		"RSI14: n/a",
		"Risk levels: n/a",
	} {
		if !strings.Contains(panel, want) {
			t.Errorf("panel missing %q:\n%s", want, panel)
		}
	}
}

func TestRenderPanelStaleMarker(t *testing.T) {
	snap := &model.IndicatorSnapshot{AsOf: testBase, LastPrice: 100}

	fresh := renderPanel(testConfig(), state{snapshot: snap})
	if strings.Contains(fresh, "(stale)") {
		t.Errorf("fresh panel should not be stale:\n%s", fresh)
	}

	stale := renderPanel(testConfig(), state{snapshot: snap, stale: true})
	if !strings.Contains(stale, "As of 2024-05-06T13:30:00Z (stale)") {
		t.Errorf("stale panel missing marker:\n%s", stale)
	}
}

func TestVixStatus(t *testing.T) {
	if got := vixStatus(25, 20); got != "Spiking" {
		t.Errorf("vixStatus(25) = %q, want Spiking", got)
	}
	if got := vixStatus(18.5, 20); got != "Calm" {
		t.Errorf("vixStatus(18.5) = %q, want Calm", got)
	}
	// The threshold itself is not a spike.
	if got := vixStatus(20, 20); got != "Calm" {
		t.Errorf("vixStatus(20) = %q, want Calm", got)
	}
}
