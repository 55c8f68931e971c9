package engine

import (
	"fmt"

	"github.com/Alias1177/quantdesk/internal/model"
)

// RiskFor sizes stop and target prices around the snapshot price. The stop
// buffer is recent volatility scaled by the configured risk buffer; targets
// sit the configured reward multiple of buffers away on the profit side,
// mirrored for the short.
func (e *Engine) RiskFor(snap *model.IndicatorSnapshot) (*model.RiskLevels, error) {
	if snap == nil {
		return nil, fmt.Errorf("%w: nil snapshot", ErrInsufficientData)
	}
	if !snap.Has(model.FieldLastPrice) || !snap.Has(model.FieldRecentVolatility) {
		return nil, fmt.Errorf("%w: requires last_price and recent_volatility", ErrInsufficientData)
	}

	buffer := snap.RecentVolatility * e.cfg.RiskBuffer
	return &model.RiskLevels{
		Buffer:         buffer,
		RewardMultiple: e.cfg.RewardMultiple,
		LongStop:       snap.LastPrice - buffer,
		LongTarget:     snap.LastPrice + buffer*e.cfg.RewardMultiple,
		ShortStop:      snap.LastPrice + buffer,
		ShortTarget:    snap.LastPrice - buffer*e.cfg.RewardMultiple,
	}, nil
}
