package engine

import (
	"fmt"

	"github.com/Alias1177/quantdesk/internal/model"
)

// sessionVWAP computes the volume-weighted average price over the entire
// sequence: cumulative typical price times volume over cumulative volume,
// where typical price is (high+low+close)/3. It resets only when the caller
// fetches a new window, so it tracks the fetched session rather than the
// exchange session.
func sessionVWAP(bars []model.Bar) (float64, error) {
	if len(bars) == 0 {
		return 0, fmt.Errorf("%w: empty bar sequence", ErrInsufficientData)
	}

	var pv, volume float64
	for _, b := range bars {
		if !finite(b.High, b.Low, b.Close, b.Volume) {
			return 0, fmt.Errorf("%w: non-finite value in sequence", ErrInsufficientData)
		}
		typical := (b.High + b.Low + b.Close) / 3
		pv += typical * b.Volume
		volume += b.Volume
	}

	if volume == 0 {
		return 0, fmt.Errorf("%w: zero cumulative volume", ErrInsufficientData)
	}

	return pv / volume, nil
}
