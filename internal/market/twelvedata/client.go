package twelvedata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/quantdesk/internal/market"
	"github.com/Alias1177/quantdesk/internal/model"
	httpclient "github.com/Alias1177/quantdesk/internal/platform/http"
)

const defaultBaseURL = "https://api.twelvedata.com"

// outputSizeMax is the largest outputsize the time_series endpoint accepts.
const outputSizeMax = 5000

// Client is the Twelve Data API client. It needs an API key and serves
// provider-specific continuous-contract symbols where Yahoo's futures
// tickers do not apply.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *httpclient.Client
	logger     zerolog.Logger
}

// ClientOptions holds options for creating a new Twelve Data client
type ClientOptions struct {
	APIKey          string
	BaseURL         string
	RequestTimeout  time.Duration
	RequestsPerSec  int
	MaxRetries      int
	MaxRetryTimeout time.Duration
}

// NewClient creates a new Twelve Data API client
func NewClient(options ClientOptions) *Client {
	baseURL := options.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		apiKey:  options.APIKey,
		baseURL: baseURL,
		httpClient: httpclient.NewClient(httpclient.ClientOptions{
			Timeout:         options.RequestTimeout,
			RequestsPerSec:  options.RequestsPerSec,
			MaxRetries:      options.MaxRetries,
			MaxRetryTimeout: options.MaxRetryTimeout,
		}),
		logger: log.With().Str("component", "twelvedata_client").Logger(),
	}
}

type timeSeriesResponse struct {
	Meta struct {
		Symbol   string `json:"symbol"`
		Interval string `json:"interval"`
	} `json:"meta"`
	Values []struct {
		Datetime string  `json:"datetime"`
		Open     float64 `json:"open,string"`
		High     float64 `json:"high,string"`
		Low      float64 `json:"low,string"`
		Close    float64 `json:"close,string"`
		Volume   float64 `json:"volume,string,omitempty"`
	} `json:"values"`
	Status string `json:"status"`
}

// Bars fetches OHLCV history from the time_series endpoint. The API returns
// newest first; bars come back sorted oldest first.
func (c *Client) Bars(ctx context.Context, symbol string, interval market.Interval, lookback time.Duration) ([]model.Bar, error) {
	reqURL := fmt.Sprintf(
		"%s/time_series?symbol=%s&interval=%s&outputsize=%d&timezone=UTC&apikey=%s",
		c.baseURL,
		url.QueryEscape(symbol),
		apiInterval(interval),
		outputSize(interval, lookback),
		c.apiKey,
	)

	c.logger.Debug().
		Str("symbol", symbol).
		Str("interval", apiInterval(interval)).
		Int("outputsize", outputSize(interval, lookback)).
		Msg("Fetching bars")

	body, err := c.get(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	var data timeSeriesResponse
	if err := json.Unmarshal(body, &data); err != nil {
		c.logger.Error().Err(err).Msg("Error parsing time_series JSON")
		return nil, fmt.Errorf("%w: parsing JSON: %v", market.ErrUnavailable, err)
	}

	if len(data.Values) == 0 {
		c.logger.Warn().Str("symbol", symbol).Msg("No bars in response")
		return nil, fmt.Errorf("%w: empty data returned for %s", market.ErrUnavailable, symbol)
	}

	// Sort bars by datetime, oldest first for the indicator math
	sort.Slice(data.Values, func(i, j int) bool {
		return data.Values[i].Datetime < data.Values[j].Datetime
	})

	bars := make([]model.Bar, 0, len(data.Values))
	for _, v := range data.Values {
		ts, err := parseDatetime(v.Datetime)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", market.ErrUnavailable, err)
		}
		bars = append(bars, model.Bar{
			Timestamp: ts,
			Open:      v.Open,
			High:      v.High,
			Low:       v.Low,
			Close:     v.Close,
			Volume:    v.Volume,
		})
	}

	c.logger.Debug().Int("count", len(bars)).Msg("Fetched bars")
	return bars, nil
}

// LatestQuote fetches the current price from the price endpoint.
func (c *Client) LatestQuote(ctx context.Context, symbol string) (*model.Quote, error) {
	reqURL := fmt.Sprintf(
		"%s/price?symbol=%s&apikey=%s",
		c.baseURL,
		url.QueryEscape(symbol),
		c.apiKey,
	)

	body, err := c.get(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	var data struct {
		Price string `json:"price"`
	}
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("%w: parsing JSON: %v", market.ErrUnavailable, err)
	}
	price, err := strconv.ParseFloat(data.Price, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing price %q: %v", market.ErrUnavailable, data.Price, err)
	}

	return &model.Quote{
		Symbol:    symbol,
		Price:     price,
		Timestamp: time.Now().UTC(),
	}, nil
}

func (c *Client) get(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: creating request: %v", market.ErrUnavailable, err)
	}

	resp, err := c.httpClient.DoRequest(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", market.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response body: %v", market.ErrUnavailable, err)
	}

	// Errors come back as 200 with a status field
	if strings.Contains(string(body), `"status":"error"`) {
		c.logger.Error().Str("response", string(body)).Msg("Twelve Data API error")
		return nil, fmt.Errorf("%w: twelve data: %s", market.ErrUnavailable, string(body))
	}

	return body, nil
}

// apiInterval maps the shared interval onto Twelve Data's naming.
func apiInterval(interval market.Interval) string {
	switch interval {
	case market.Interval1m:
		return "1min"
	case market.Interval5m:
		return "5min"
	case market.Interval15m:
		return "15min"
	case market.Interval1h:
		return "1h"
	case market.Interval1d:
		return "1day"
	}
	return string(interval)
}

// outputSize estimates how many bars cover the lookback, with a small
// buffer for gaps, clamped to the API maximum.
func outputSize(interval market.Interval, lookback time.Duration) int {
	per := interval.Duration()
	if per <= 0 || lookback <= 0 {
		return 1
	}

	count := int(float64(lookback/per) * 1.1)
	if count < 1 {
		count = 1
	}
	if count > outputSizeMax {
		count = outputSizeMax
	}
	return count
}

// parseDatetime handles both the intraday and the daily timestamp formats.
func parseDatetime(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02 15:04:05", "2006-01-02"} {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized datetime %q", s)
}
