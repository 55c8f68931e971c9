package model

import "time"

// Trend labels the relation between the short and long moving averages.
type Trend string

const (
	TrendBullish Trend = "BULLISH"
	TrendBearish Trend = "BEARISH"
	// TrendNeutral is only produced by the multi-timeframe board when a
	// timeframe could not be fetched. The classifier itself maps an exact
	// SMA tie to BEARISH.
	TrendNeutral Trend = "NEUTRAL"
)

// Signal is the tiered classification: direction from price vs VWAP, gated
// by SMA trend confirmation. Trend disagreement downgrades conviction from
// STRONG to WEAK; near-zero deviation forces WAIT regardless of trend.
type Signal string

const (
	SignalWait        Signal = "WAIT"
	SignalStrongLong  Signal = "STRONG_LONG"
	SignalWeakLong    Signal = "WEAK_LONG"
	SignalStrongShort Signal = "STRONG_SHORT"
	SignalWeakShort   Signal = "WEAK_SHORT"
)

// Field names used as keys in IndicatorSnapshot.Unavailable.
const (
	FieldLastPrice        = "last_price"
	FieldSMAShort         = "sma_short"
	FieldSMALong          = "sma_long"
	FieldTrend            = "trend"
	FieldVWAP             = "vwap"
	FieldDeviation        = "deviation"
	FieldRecentVolatility = "recent_volatility"
	FieldATR              = "atr"
	FieldRSI              = "rsi"
	FieldSignal           = "signal"
)

// IndicatorSnapshot holds every value derived from one bar sequence. It is
// recomputed from scratch on each refresh; nothing carries over between
// computations. AsOf is the timestamp of the final bar, so two snapshots of
// the same sequence are identical.
type IndicatorSnapshot struct {
	AsOf             time.Time `json:"as_of"`
	LastPrice        float64   `json:"last_price"`
	SMAShort         float64   `json:"sma_short"`
	SMALong          float64   `json:"sma_long"`
	VWAP             float64   `json:"vwap"`
	ATR              float64   `json:"atr"`
	RSI              float64   `json:"rsi"`
	RecentVolatility float64   `json:"recent_volatility"`
	Deviation        float64   `json:"deviation"`
	Trend            Trend     `json:"trend,omitempty"`
	Signal           Signal    `json:"signal,omitempty"`

	// Unavailable lists derived values that could not be computed from the
	// given sequence, keyed by field name with the reason as value. A field
	// listed here holds its zero value above. Independent indicators stay
	// computable when others are not.
	Unavailable map[string]string `json:"unavailable,omitempty"`
}

// Has reports whether the named field was computed.
func (s *IndicatorSnapshot) Has(field string) bool {
	_, missing := s.Unavailable[field]
	return !missing
}

// Ready reports whether every derived value was computed.
func (s *IndicatorSnapshot) Ready() bool {
	return len(s.Unavailable) == 0
}

// RiskLevels are stop-loss and take-profit prices for a hypothetical long
// and short entered at the snapshot price. Buffer is the stop distance;
// targets sit RewardMultiple buffers away on the profit side.
type RiskLevels struct {
	Buffer         float64 `json:"buffer"`
	RewardMultiple float64 `json:"reward_multiple"`
	LongStop       float64 `json:"long_stop"`
	LongTarget     float64 `json:"long_target"`
	ShortStop      float64 `json:"short_stop"`
	ShortTarget    float64 `json:"short_target"`
}

// TrendStatus is one row of the multi-timeframe trend board.
type TrendStatus struct {
	Label string `json:"label"`
	Trend Trend  `json:"trend"`
}
