package engine

import (
	"fmt"

	"github.com/Alias1177/quantdesk/internal/model"
)

// smaLast returns the simple moving average of the last window closes.
func smaLast(bars []model.Bar, window int) (float64, error) {
	if len(bars) < window {
		return 0, fmt.Errorf("%w: need %d bars, have %d", ErrInsufficientData, window, len(bars))
	}

	var sum float64
	for _, b := range bars[len(bars)-window:] {
		if !finite(b.Close) {
			return 0, fmt.Errorf("%w: non-finite close in trailing %d bars", ErrInsufficientData, window)
		}
		sum += b.Close
	}

	return sum / float64(window), nil
}

// trendOf labels the crossover state. Strict comparison: an exact tie
// reads as BEARISH.
func trendOf(smaShort, smaLong float64) model.Trend {
	if smaShort > smaLong {
		return model.TrendBullish
	}
	return model.TrendBearish
}

// TrendOf computes just the SMA crossover label for bars, used by the
// multi-timeframe board where the full snapshot is not needed.
func (e *Engine) TrendOf(bars []model.Bar) (model.Trend, error) {
	short, err := smaLast(bars, e.cfg.SMAShortWindow)
	if err != nil {
		return "", err
	}
	long, err := smaLast(bars, e.cfg.SMALongWindow)
	if err != nil {
		return "", err
	}
	return trendOf(short, long), nil
}
