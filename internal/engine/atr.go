package engine

import (
	"fmt"

	"github.com/Alias1177/quantdesk/internal/model"
)

// rangeATR is a simplified range-based volatility proxy: the mean of
// (max high - min low) over every complete rolling window of period bars.
// Not the Wilder true-range ATR.
func rangeATR(bars []model.Bar, period int) (float64, error) {
	if len(bars) < period {
		return 0, fmt.Errorf("%w: need %d bars, have %d", ErrInsufficientData, period, len(bars))
	}

	for _, b := range bars {
		if !finite(b.High, b.Low) {
			return 0, fmt.Errorf("%w: non-finite high/low in sequence", ErrInsufficientData)
		}
	}

	var sum float64
	windows := len(bars) - period + 1
	for start := 0; start < windows; start++ {
		maxHigh := bars[start].High
		minLow := bars[start].Low
		for _, b := range bars[start+1 : start+period] {
			if b.High > maxHigh {
				maxHigh = b.High
			}
			if b.Low < minLow {
				minLow = b.Low
			}
		}
		sum += maxHigh - minLow
	}

	return sum / float64(windows), nil
}
