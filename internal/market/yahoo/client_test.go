package yahoo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Alias1177/quantdesk/internal/market"
)

const chartFixture = `{
  "chart": {
    "result": [{
      "meta": {"symbol": "NQ=F", "regularMarketPrice": 18250.25, "regularMarketTime": 1700000300},
      "timestamp": [1700000000, 1700000100, 1700000200],
      "indicators": {"quote": [{
        "open":   [100.0, 101.0, null],
        "high":   [100.5, 101.5, 102.5],
        "low":    [99.5, 100.5, 101.5],
        "close":  [100.25, 101.25, 102.25],
        "volume": [1000, null, 1200]
      }]}
    }],
    "error": null
  }
}`

func newTestClient(baseURL string) *Client {
	return NewClient(ClientOptions{
		BaseURL:         baseURL,
		RequestTimeout:  5 * time.Second,
		RequestsPerSec:  100,
		MaxRetries:      1,
		MaxRetryTimeout: 100 * time.Millisecond,
	})
}

func TestBars(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v8/finance/chart/NQ=F" {
			t.Errorf("path = %q, want /v8/finance/chart/NQ=F", r.URL.Path)
		}
		if got := r.URL.Query().Get("interval"); got != "5m" {
			t.Errorf("interval = %q, want 5m", got)
		}
		if got := r.URL.Query().Get("range"); got != "1d" {
			t.Errorf("range = %q, want 1d", got)
		}
		w.Write([]byte(chartFixture))
	}))
	defer srv.Close()

	bars, err := newTestClient(srv.URL).Bars(context.Background(), "NQ=F", market.Interval5m, 6*time.Hour)
	if err != nil {
		t.Fatalf("Bars() error = %v", err)
	}

	// The third row has a null open and is dropped.
	if len(bars) != 2 {
		t.Fatalf("len(bars) = %d, want 2", len(bars))
	}
	if !bars[0].Timestamp.Before(bars[1].Timestamp) {
		t.Errorf("bars not ordered oldest first: %v then %v", bars[0].Timestamp, bars[1].Timestamp)
	}
	if bars[0].Close != 100.25 || bars[0].Volume != 1000 {
		t.Errorf("bars[0] = %+v, want close 100.25 volume 1000", bars[0])
	}
	// Null volume reads as zero.
	if bars[1].Volume != 0 {
		t.Errorf("bars[1].Volume = %v, want 0", bars[1].Volume)
	}
	want := time.Unix(1700000000, 0).UTC()
	if !bars[0].Timestamp.Equal(want) {
		t.Errorf("bars[0].Timestamp = %v, want %v", bars[0].Timestamp, want)
	}
}

func TestBarsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"chart": {"result": null, "error": {"code": "Not Found", "description": "No data found, symbol may be delisted"}}}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Bars(context.Background(), "BOGUS", market.Interval5m, time.Hour)
	if !errors.Is(err, market.ErrUnavailable) {
		t.Errorf("Bars() error = %v, want ErrUnavailable", err)
	}
}

func TestBarsHTTPStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Bars(context.Background(), "BOGUS", market.Interval5m, time.Hour)
	if !errors.Is(err, market.ErrUnavailable) {
		t.Errorf("Bars() error = %v, want ErrUnavailable", err)
	}
}

func TestBarsUserAgent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua != userAgent {
			t.Errorf("User-Agent = %q, want %q", ua, userAgent)
		}
		w.Write([]byte(chartFixture))
	}))
	defer srv.Close()

	if _, err := newTestClient(srv.URL).Bars(context.Background(), "NQ=F", market.Interval5m, time.Hour); err != nil {
		t.Fatalf("Bars() error = %v", err)
	}
}

func TestLatestQuote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v8/finance/chart/%5EVIX" && r.URL.Path != "/v8/finance/chart/^VIX" {
			t.Errorf("path = %q, want chart path for ^VIX", r.URL.Path)
		}
		w.Write([]byte(`{
  "chart": {
    "result": [{
      "meta": {"symbol": "^VIX", "regularMarketPrice": 22.5, "regularMarketTime": 1700000300},
      "timestamp": [],
      "indicators": {"quote": [{}]}
    }],
    "error": null
  }
}`))
	}))
	defer srv.Close()

	quote, err := newTestClient(srv.URL).LatestQuote(context.Background(), "^VIX")
	if err != nil {
		t.Fatalf("LatestQuote() error = %v", err)
	}
	if quote.Price != 22.5 {
		t.Errorf("Price = %v, want 22.5", quote.Price)
	}
	if quote.Symbol != "^VIX" {
		t.Errorf("Symbol = %q, want ^VIX", quote.Symbol)
	}
	want := time.Unix(1700000300, 0).UTC()
	if !quote.Timestamp.Equal(want) {
		t.Errorf("Timestamp = %v, want %v", quote.Timestamp, want)
	}
}

func TestRangeFor(t *testing.T) {
	tests := []struct {
		lookback time.Duration
		expected string
	}{
		{6 * time.Hour, "1d"},
		{24 * time.Hour, "1d"},
		{48 * time.Hour, "5d"},
		{14 * 24 * time.Hour, "1mo"},
		{60 * 24 * time.Hour, "3mo"},
		{300 * 24 * time.Hour, "1y"},
		{3 * 365 * 24 * time.Hour, "2y"},
	}

	for _, tt := range tests {
		if got := rangeFor(tt.lookback); got != tt.expected {
			t.Errorf("rangeFor(%v) = %q, want %q", tt.lookback, got, tt.expected)
		}
	}
}
