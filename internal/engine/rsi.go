package engine

import (
	"fmt"

	"github.com/Alias1177/quantdesk/internal/model"
)

// simpleRSI computes the relative strength index over the last period price
// changes using plain rolling means of gains and losses, no Wilder
// smoothing. Needs period+1 closes. A window with no losses reads as 100.
func simpleRSI(bars []model.Bar, period int) (float64, error) {
	if len(bars) < period+1 {
		return 0, fmt.Errorf("%w: need %d bars, have %d", ErrInsufficientData, period+1, len(bars))
	}

	window := bars[len(bars)-period-1:]
	var gains, losses float64
	for i := 1; i < len(window); i++ {
		if !finite(window[i-1].Close, window[i].Close) {
			return 0, fmt.Errorf("%w: non-finite close in trailing %d bars", ErrInsufficientData, period+1)
		}
		change := window[i].Close - window[i-1].Close
		if change > 0 {
			gains += change
		} else {
			losses -= change
		}
	}

	avgGain := gains / float64(period)
	avgLoss := losses / float64(period)

	if avgLoss == 0 {
		return 100.0, nil
	}

	rs := avgGain / avgLoss
	return 100.0 - (100.0 / (1.0 + rs)), nil
}
