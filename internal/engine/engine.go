package engine

import (
	"errors"
	"fmt"
	"math"

	"github.com/Alias1177/quantdesk/internal/model"
)

// ErrInsufficientData marks a derived value that could not be computed from
// the given bar sequence. Callers treat it as "not yet ready" and retry on
// the next refresh.
var ErrInsufficientData = errors.New("insufficient data")

// Config holds every tunable the computations use. Nothing is defaulted
// inside the engine; callers inject all values.
type Config struct {
	SMAShortWindow   int
	SMALongWindow    int
	RSIPeriod        int
	ATRPeriod        int
	VolatilityWindow int
	ChopMultiplier   float64
	RiskBuffer       float64
	RewardMultiple   float64
}

// DefaultConfig returns the standard parameter set: 9/21 SMA crossover,
// 14-period RSI and range ATR, 10-bar volatility window, 0.3 chop zone,
// 1.5x volatility stop buffer, 2:1 reward to risk.
func DefaultConfig() Config {
	return Config{
		SMAShortWindow:   9,
		SMALongWindow:    21,
		RSIPeriod:        14,
		ATRPeriod:        14,
		VolatilityWindow: 10,
		ChopMultiplier:   0.3,
		RiskBuffer:       1.5,
		RewardMultiple:   2.0,
	}
}

func (c Config) validate() error {
	if c.SMAShortWindow < 1 || c.SMALongWindow < 1 {
		return fmt.Errorf("sma windows must be positive, got %d/%d", c.SMAShortWindow, c.SMALongWindow)
	}
	if c.RSIPeriod < 1 {
		return fmt.Errorf("rsi period must be positive, got %d", c.RSIPeriod)
	}
	if c.ATRPeriod < 1 {
		return fmt.Errorf("atr period must be positive, got %d", c.ATRPeriod)
	}
	if c.VolatilityWindow < 1 {
		return fmt.Errorf("volatility window must be positive, got %d", c.VolatilityWindow)
	}
	if c.ChopMultiplier < 0 {
		return fmt.Errorf("chop multiplier must be non-negative, got %f", c.ChopMultiplier)
	}
	if c.RiskBuffer <= 0 {
		return fmt.Errorf("risk buffer must be positive, got %f", c.RiskBuffer)
	}
	if c.RewardMultiple <= 0 {
		return fmt.Errorf("reward multiple must be positive, got %f", c.RewardMultiple)
	}
	return nil
}

// Engine derives indicator snapshots from bar sequences. It is stateless:
// every call recomputes from scratch, so identical input yields identical
// output.
type Engine struct {
	cfg Config
}

func New(cfg Config) (*Engine, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid engine config: %w", err)
	}
	return &Engine{cfg: cfg}, nil
}

// ComputeSnapshot derives every indicator from bars, which must be ordered
// by time ascending with the most recent bar last. Values that cannot be
// computed from the given sequence are recorded in the snapshot's
// Unavailable map instead of failing the whole call; ComputeSnapshot returns
// an error only when no value at all is computable.
func (e *Engine) ComputeSnapshot(bars []model.Bar) (*model.IndicatorSnapshot, error) {
	if len(bars) == 0 {
		return nil, fmt.Errorf("%w: empty bar sequence", ErrInsufficientData)
	}

	snap := &model.IndicatorSnapshot{
		AsOf:        bars[len(bars)-1].Timestamp,
		Unavailable: map[string]string{},
	}
	computed := 0

	// Last price
	if last := bars[len(bars)-1].Close; finite(last) {
		snap.LastPrice = last
		computed++
	} else {
		snap.Unavailable[model.FieldLastPrice] = "non-finite close in final bar"
	}

	// Moving averages
	if v, err := smaLast(bars, e.cfg.SMAShortWindow); err != nil {
		snap.Unavailable[model.FieldSMAShort] = err.Error()
	} else {
		snap.SMAShort = v
		computed++
	}
	if v, err := smaLast(bars, e.cfg.SMALongWindow); err != nil {
		snap.Unavailable[model.FieldSMALong] = err.Error()
	} else {
		snap.SMALong = v
		computed++
	}
	if snap.Has(model.FieldSMAShort) && snap.Has(model.FieldSMALong) {
		snap.Trend = trendOf(snap.SMAShort, snap.SMALong)
		computed++
	} else {
		snap.Unavailable[model.FieldTrend] = "requires sma_short and sma_long"
	}

	// VWAP over the whole fetched window
	if v, err := sessionVWAP(bars); err != nil {
		snap.Unavailable[model.FieldVWAP] = err.Error()
	} else {
		snap.VWAP = v
		computed++
	}
	if snap.Has(model.FieldLastPrice) && snap.Has(model.FieldVWAP) {
		snap.Deviation = snap.LastPrice - snap.VWAP
		computed++
	} else {
		snap.Unavailable[model.FieldDeviation] = "requires last_price and vwap"
	}

	// Volatility measures
	if v, err := meanRange(bars, e.cfg.VolatilityWindow); err != nil {
		snap.Unavailable[model.FieldRecentVolatility] = err.Error()
	} else {
		snap.RecentVolatility = v
		computed++
	}
	if v, err := rangeATR(bars, e.cfg.ATRPeriod); err != nil {
		snap.Unavailable[model.FieldATR] = err.Error()
	} else {
		snap.ATR = v
		computed++
	}

	// Momentum
	if v, err := simpleRSI(bars, e.cfg.RSIPeriod); err != nil {
		snap.Unavailable[model.FieldRSI] = err.Error()
	} else {
		snap.RSI = v
		computed++
	}

	// Tiered classification
	if snap.Has(model.FieldDeviation) && snap.Has(model.FieldRecentVolatility) && snap.Has(model.FieldTrend) {
		snap.Signal = classifySignal(snap.Deviation, snap.RecentVolatility, snap.Trend, e.cfg.ChopMultiplier)
		computed++
	} else {
		snap.Unavailable[model.FieldSignal] = "requires deviation, recent_volatility and trend"
	}

	if computed == 0 {
		return nil, fmt.Errorf("%w: no derived value computable from %d bars", ErrInsufficientData, len(bars))
	}
	return snap, nil
}

func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
