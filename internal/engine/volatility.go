package engine

import (
	"fmt"

	"github.com/Alias1177/quantdesk/internal/model"
)

// meanRange returns the average high-low range over the last window bars.
func meanRange(bars []model.Bar, window int) (float64, error) {
	if len(bars) < window {
		return 0, fmt.Errorf("%w: need %d bars, have %d", ErrInsufficientData, window, len(bars))
	}

	var sum float64
	for _, b := range bars[len(bars)-window:] {
		if !finite(b.High, b.Low) {
			return 0, fmt.Errorf("%w: non-finite high/low in trailing %d bars", ErrInsufficientData, window)
		}
		sum += b.High - b.Low
	}

	return sum / float64(window), nil
}
