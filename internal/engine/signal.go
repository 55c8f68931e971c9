package engine

import (
	"math"

	"github.com/Alias1177/quantdesk/internal/model"
)

// classifySignal maps price position and trend onto the five-state signal.
// Direction comes from the sign of deviation (price minus VWAP); the SMA
// trend acts as a confirmation gate that downgrades STRONG to WEAK when it
// disagrees. Deviations inside the chop zone, a band around VWAP sized as
// chopMultiplier times recent volatility, yield WAIT. A deviation of
// exactly zero is WAIT even when the band itself has zero width.
func classifySignal(deviation, recentVolatility float64, trend model.Trend, chopMultiplier float64) model.Signal {
	if deviation == 0 || math.Abs(deviation) < recentVolatility*chopMultiplier {
		return model.SignalWait
	}

	if deviation > 0 {
		if trend == model.TrendBullish {
			return model.SignalStrongLong
		}
		return model.SignalWeakLong
	}

	if trend == model.TrendBearish {
		return model.SignalStrongShort
	}
	return model.SignalWeakShort
}
