package market

import (
	"testing"
	"time"
)

func TestParseInterval(t *testing.T) {
	for _, valid := range []string{"1m", "5m", "15m", "1h", "1d"} {
		if _, err := ParseInterval(valid); err != nil {
			t.Errorf("ParseInterval(%q) error = %v", valid, err)
		}
	}
	for _, invalid := range []string{"", "2m", "5min", "1w", "daily"} {
		if _, err := ParseInterval(invalid); err == nil {
			t.Errorf("ParseInterval(%q) expected error", invalid)
		}
	}
}

func TestIntervalDuration(t *testing.T) {
	tests := []struct {
		interval Interval
		expected time.Duration
	}{
		{Interval1m, time.Minute},
		{Interval5m, 5 * time.Minute},
		{Interval15m, 15 * time.Minute},
		{Interval1h, time.Hour},
		{Interval1d, 24 * time.Hour},
	}

	for _, tt := range tests {
		if got := tt.interval.Duration(); got != tt.expected {
			t.Errorf("Duration(%v) = %v, want %v", tt.interval, got, tt.expected)
		}
	}
}
