package monitor

import (
	"context"
	"time"

	"github.com/Alias1177/quantdesk/internal/market"
	"github.com/Alias1177/quantdesk/internal/model"
)

type boardTimeframe struct {
	label    string
	interval market.Interval
	lookback time.Duration
}

// The higher-timeframe context rows shown next to the main signal.
var boardTimeframes = []boardTimeframe{
	{label: "1-Hour", interval: market.Interval1h, lookback: 5 * 24 * time.Hour},
	{label: "Daily", interval: market.Interval1d, lookback: 30 * 24 * time.Hour},
}

// refreshBoard recomputes the trend rows one timeframe at a time. A
// timeframe that cannot be fetched or computed shows NEUTRAL instead of
// failing the cycle.
func (m *Monitor) refreshBoard(ctx context.Context) {
	rows := make([]model.TrendStatus, 0, len(boardTimeframes))
	for _, tf := range boardTimeframes {
		rows = append(rows, model.TrendStatus{Label: tf.label, Trend: m.trendFor(ctx, tf)})
	}
	m.state.board = rows
}

func (m *Monitor) trendFor(ctx context.Context, tf boardTimeframe) model.Trend {
	bars, err := m.provider.Bars(ctx, m.cfg.Symbol, tf.interval, tf.lookback)
	if err != nil {
		m.logger.Debug().Err(err).Str("timeframe", tf.label).Msg("Board fetch failed")
		return model.TrendNeutral
	}
	trend, err := m.engine.TrendOf(bars)
	if err != nil {
		m.logger.Debug().Err(err).Str("timeframe", tf.label).Msg("Board trend unavailable")
		return model.TrendNeutral
	}
	return trend
}
