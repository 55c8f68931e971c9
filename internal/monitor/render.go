package monitor

import (
	"fmt"
	"strings"
	"time"

	"github.com/Alias1177/quantdesk/internal/model"
)

// renderPanel formats the current state as a text panel. Every value the
// engine could not compute prints as "n/a"; a snapshot kept from an earlier
// cycle is marked stale.
func renderPanel(cfg Config, st state) string {
	var sb strings.Builder

	header := fmt.Sprintf("=== %s %s ", cfg.Symbol, cfg.Interval)
	sb.WriteString(header + strings.Repeat("=", max(50-len(header), 3)) + "\n")

	snap := st.snapshot
	if snap == nil {
		sb.WriteString("No data yet\n")
	} else {
		sb.WriteString(fmt.Sprintf("Signal: %s | Price: %s\n",
			enumField(snap, model.FieldSignal, string(snap.Signal)),
			numField(snap, model.FieldLastPrice, snap.LastPrice),
		))
		sb.WriteString(fmt.Sprintf("Trend: %s | SMA9: %s | SMA21: %s\n",
			enumField(snap, model.FieldTrend, string(snap.Trend)),
			numField(snap, model.FieldSMAShort, snap.SMAShort),
			numField(snap, model.FieldSMALong, snap.SMALong),
		))
		sb.WriteString(fmt.Sprintf("VWAP: %s | Deviation: %s\n",
			numField(snap, model.FieldVWAP, snap.VWAP),
			numField(snap, model.FieldDeviation, snap.Deviation),
		))
		sb.WriteString(fmt.Sprintf("RSI14: %s | ATR14: %s | Vol10: %s\n",
			numField(snap, model.FieldRSI, snap.RSI),
			numField(snap, model.FieldATR, snap.ATR),
			numField(snap, model.FieldRecentVolatility, snap.RecentVolatility),
		))
		if st.risk != nil {
			sb.WriteString(fmt.Sprintf("Long: stop %.2f, target %.2f\n", st.risk.LongStop, st.risk.LongTarget))
			sb.WriteString(fmt.Sprintf("Short: stop %.2f, target %.2f\n", st.risk.ShortStop, st.risk.ShortTarget))
		} else {
			sb.WriteString("Risk levels: n/a\n")
		}
	}

	if len(st.board) > 0 {
		parts := make([]string, 0, len(st.board))
		for _, row := range st.board {
			parts = append(parts, fmt.Sprintf("%s: %s", row.Label, row.Trend))
		}
		sb.WriteString(strings.Join(parts, " | ") + "\n")
	}

	if st.shadow != nil || st.vix != nil {
		parts := make([]string, 0, 2)
		if st.shadow != nil {
			parts = append(parts, fmt.Sprintf("Shadow %s: %.2f", st.shadow.Symbol, st.shadow.Price))
		}
		if st.vix != nil {
			parts = append(parts, fmt.Sprintf("VIX: %.2f (%s)", st.vix.Price, vixStatus(st.vix.Price, cfg.VIXSpikeLevel)))
		}
		sb.WriteString(strings.Join(parts, " | ") + "\n")
	}

	sb.WriteString(fmt.Sprintf("Session: %dW/%dL, win rate %.1f%%\n", st.stats.Wins, st.stats.Losses, st.stats.WinRate()))

	if snap != nil {
		line := "As of " + snap.AsOf.Format(time.RFC3339)
		if st.stale {
			line += " (stale)"
		}
		sb.WriteString(line + "\n")
	}

	return sb.String()
}

// vixStatus labels the fear index: rising VIX works against longs.
func vixStatus(price, spikeLevel float64) string {
	if price > spikeLevel {
		return "Spiking"
	}
	return "Calm"
}

func numField(snap *model.IndicatorSnapshot, name string, value float64) string {
	if !snap.Has(name) {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", value)
}

func enumField(snap *model.IndicatorSnapshot, name, value string) string {
	if !snap.Has(name) {
		return "n/a"
	}
	return value
}
