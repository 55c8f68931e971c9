package narrative

import (
	"fmt"
	"strings"

	"github.com/Alias1177/quantdesk/internal/model"
)

// MaxPromptLen bounds the serialized prompt. The scalar block stays far
// below this; the cap guards against oversized symbol strings ending up in
// an API request.
const MaxPromptLen = 2048

// PromptInput collects everything the verdict prompt embeds. Snapshot must
// be non-nil; Risk, Shadow and VIX are optional and their lines are dropped
// when absent.
type PromptInput struct {
	Symbol   string
	Snapshot *model.IndicatorSnapshot
	Risk     *model.RiskLevels
	Shadow   *model.Quote
	VIX      *model.Quote
}

// BuildPrompt serializes a snapshot into the verdict prompt. Values the
// engine reported unavailable appear as "n/a" so the commentary never sees
// fabricated numbers.
func BuildPrompt(in PromptInput) string {
	snap := in.Snapshot
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("AI Verdict: %s\n", signalLabel(snap)))

	sb.WriteString(fmt.Sprintf("Symbol: %s | Price: %s", in.Symbol, field(snap, model.FieldLastPrice, snap.LastPrice)))
	if in.Shadow != nil {
		sb.WriteString(fmt.Sprintf(" | Shadow Price (%s): %.2f", in.Shadow.Symbol, in.Shadow.Price))
	}
	if in.VIX != nil {
		sb.WriteString(fmt.Sprintf(" | VIX: %.2f", in.VIX.Price))
	}
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf(
		"Trend: %s | SMA(9): %s | SMA(21): %s | VWAP: %s\n",
		trendLabel(snap),
		field(snap, model.FieldSMAShort, snap.SMAShort),
		field(snap, model.FieldSMALong, snap.SMALong),
		field(snap, model.FieldVWAP, snap.VWAP),
	))
	sb.WriteString(fmt.Sprintf(
		"RSI(14): %s | ATR(14): %s | Recent Volatility: %s | VWAP Deviation: %s\n",
		field(snap, model.FieldRSI, snap.RSI),
		field(snap, model.FieldATR, snap.ATR),
		field(snap, model.FieldRecentVolatility, snap.RecentVolatility),
		field(snap, model.FieldDeviation, snap.Deviation),
	))

	if in.Risk != nil {
		sb.WriteString(fmt.Sprintf(
			"Long Stop: %.2f | Long Target: %.2f | Short Stop: %.2f | Short Target: %.2f\n",
			in.Risk.LongStop, in.Risk.LongTarget, in.Risk.ShortStop, in.Risk.ShortTarget,
		))
	}

	sb.WriteString(`
Provide:
1. Signal Assessment (Confidence % and breakdown)
2. Technical Alignment (Pro-Long/Short points for Trend, SMAs, VWAP)
3. Leading Indicator Check: Compare VIX and Shadow Price to Delayed Price. Is the delay hiding a reversal?
`)

	prompt := sb.String()
	if len(prompt) > MaxPromptLen {
		prompt = prompt[:MaxPromptLen]
	}
	return prompt
}

func field(snap *model.IndicatorSnapshot, name string, value float64) string {
	if !snap.Has(name) {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", value)
}

func signalLabel(snap *model.IndicatorSnapshot) string {
	if !snap.Has(model.FieldSignal) {
		return "n/a"
	}
	return string(snap.Signal)
}

func trendLabel(snap *model.IndicatorSnapshot) string {
	if !snap.Has(model.FieldTrend) {
		return "n/a"
	}
	return string(snap.Trend)
}
