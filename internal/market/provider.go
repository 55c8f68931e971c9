package market

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Alias1177/quantdesk/internal/model"
)

// ErrUnavailable covers every provider-side failure: network errors, auth
// rejection, rate limiting, malformed payloads. Callers treat it as "no
// data this cycle" and keep the last good snapshot on screen.
var ErrUnavailable = errors.New("market data unavailable")

// Interval is a bar duration accepted by every provider. Each client maps
// it onto its own wire format.
type Interval string

const (
	Interval1m  Interval = "1m"
	Interval5m  Interval = "5m"
	Interval15m Interval = "15m"
	Interval1h  Interval = "1h"
	Interval1d  Interval = "1d"
)

// ParseInterval validates a user-supplied interval string.
func ParseInterval(s string) (Interval, error) {
	switch Interval(s) {
	case Interval1m, Interval5m, Interval15m, Interval1h, Interval1d:
		return Interval(s), nil
	}
	return "", fmt.Errorf("unsupported interval %q (want 1m, 5m, 15m, 1h or 1d)", s)
}

// Duration returns the bar length.
func (i Interval) Duration() time.Duration {
	switch i {
	case Interval1m:
		return time.Minute
	case Interval5m:
		return 5 * time.Minute
	case Interval15m:
		return 15 * time.Minute
	case Interval1h:
		return time.Hour
	case Interval1d:
		return 24 * time.Hour
	}
	return 0
}

// Provider fetches OHLCV history for a symbol. Implementations return bars
// ordered by time ascending, most recent last, and wrap every failure in
// ErrUnavailable.
type Provider interface {
	Bars(ctx context.Context, symbol string, interval Interval, lookback time.Duration) ([]model.Bar, error)
}

// QuoteProvider fetches the latest traded price for a symbol.
type QuoteProvider interface {
	LatestQuote(ctx context.Context, symbol string) (*model.Quote, error)
}
