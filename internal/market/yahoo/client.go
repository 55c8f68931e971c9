package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/quantdesk/internal/market"
	"github.com/Alias1177/quantdesk/internal/model"
	httpclient "github.com/Alias1177/quantdesk/internal/platform/http"
)

const defaultBaseURL = "https://query1.finance.yahoo.com"

// Yahoo rejects requests carrying the default Go user agent.
const userAgent = "Mozilla/5.0 (compatible; quantdesk/1.0)"

// Client fetches bars and quotes from the Yahoo Finance chart API. It needs
// no API key, which makes it the default provider for futures symbols like
// NQ=F and ES=F and for index quotes like ^VIX.
type Client struct {
	baseURL    string
	httpClient *httpclient.Client
	logger     zerolog.Logger
}

// ClientOptions holds options for creating a new Yahoo client
type ClientOptions struct {
	BaseURL         string
	RequestTimeout  time.Duration
	RequestsPerSec  int
	MaxRetries      int
	MaxRetryTimeout time.Duration
}

// NewClient creates a new Yahoo Finance chart API client
func NewClient(options ClientOptions) *Client {
	baseURL := options.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		baseURL: baseURL,
		httpClient: httpclient.NewClient(httpclient.ClientOptions{
			Timeout:         options.RequestTimeout,
			RequestsPerSec:  options.RequestsPerSec,
			MaxRetries:      options.MaxRetries,
			MaxRetryTimeout: options.MaxRetryTimeout,
			UserAgent:       userAgent,
		}),
		logger: log.With().Str("component", "yahoo_client").Logger(),
	}
}

type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *chartError   `json:"error"`
	} `json:"chart"`
}

type chartResult struct {
	Meta struct {
		Symbol             string  `json:"symbol"`
		RegularMarketPrice float64 `json:"regularMarketPrice"`
		RegularMarketTime  int64   `json:"regularMarketTime"`
	} `json:"meta"`
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			Open   []*float64 `json:"open"`
			High   []*float64 `json:"high"`
			Low    []*float64 `json:"low"`
			Close  []*float64 `json:"close"`
			Volume []*float64 `json:"volume"`
		} `json:"quote"`
	} `json:"indicators"`
}

type chartError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// Bars fetches OHLCV history for a symbol. Rows with missing prices (halted
// or not yet traded periods come back as JSON nulls) are skipped; a missing
// volume reads as zero so price-only symbols still produce usable bars.
func (c *Client) Bars(ctx context.Context, symbol string, interval market.Interval, lookback time.Duration) ([]model.Bar, error) {
	reqURL := fmt.Sprintf(
		"%s/v8/finance/chart/%s?interval=%s&range=%s",
		c.baseURL,
		url.PathEscape(symbol),
		interval,
		rangeFor(lookback),
	)

	c.logger.Debug().
		Str("symbol", symbol).
		Str("interval", string(interval)).
		Str("range", rangeFor(lookback)).
		Msg("Fetching bars")

	result, err := c.fetchChart(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	quote := result.Indicators.Quote
	if len(quote) == 0 {
		return nil, fmt.Errorf("%w: yahoo chart response has no quote block", market.ErrUnavailable)
	}

	bars := make([]model.Bar, 0, len(result.Timestamp))
	q := quote[0]
	for i, ts := range result.Timestamp {
		if i >= len(q.Open) || i >= len(q.High) || i >= len(q.Low) || i >= len(q.Close) {
			break
		}
		if q.Open[i] == nil || q.High[i] == nil || q.Low[i] == nil || q.Close[i] == nil {
			continue
		}
		var volume float64
		if i < len(q.Volume) && q.Volume[i] != nil {
			volume = *q.Volume[i]
		}
		bars = append(bars, model.Bar{
			Timestamp: time.Unix(ts, 0).UTC(),
			Open:      *q.Open[i],
			High:      *q.High[i],
			Low:       *q.Low[i],
			Close:     *q.Close[i],
			Volume:    volume,
		})
	}

	if len(bars) == 0 {
		return nil, fmt.Errorf("%w: no complete bars for %s", market.ErrUnavailable, symbol)
	}

	// Sort bars oldest first for the indicator math
	sort.Slice(bars, func(i, j int) bool {
		return bars[i].Timestamp.Before(bars[j].Timestamp)
	})

	c.logger.Debug().Int("count", len(bars)).Msg("Fetched bars")
	return bars, nil
}

// LatestQuote reads the regular market price from the chart metadata.
func (c *Client) LatestQuote(ctx context.Context, symbol string) (*model.Quote, error) {
	reqURL := fmt.Sprintf(
		"%s/v8/finance/chart/%s?interval=1d&range=1d",
		c.baseURL,
		url.PathEscape(symbol),
	)

	result, err := c.fetchChart(ctx, reqURL)
	if err != nil {
		return nil, err
	}
	if result.Meta.RegularMarketPrice == 0 {
		return nil, fmt.Errorf("%w: no market price for %s", market.ErrUnavailable, symbol)
	}

	return &model.Quote{
		Symbol:    symbol,
		Price:     result.Meta.RegularMarketPrice,
		Timestamp: time.Unix(result.Meta.RegularMarketTime, 0).UTC(),
	}, nil
}

func (c *Client) fetchChart(ctx context.Context, reqURL string) (*chartResult, error) {
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

	var data chartResponse
	if err := json.Unmarshal(body, &data); err != nil {
		c.logger.Error().Err(err).Msg("Error parsing chart JSON")
		return nil, fmt.Errorf("%w: parsing JSON: %v", market.ErrUnavailable, err)
	}

	if data.Chart.Error != nil {
		c.logger.Error().
			Str("code", data.Chart.Error.Code).
			Str("description", data.Chart.Error.Description).
			Msg("Yahoo chart API error")
		return nil, fmt.Errorf("%w: yahoo: %s: %s", market.ErrUnavailable, data.Chart.Error.Code, data.Chart.Error.Description)
	}
	if len(data.Chart.Result) == 0 {
		return nil, fmt.Errorf("%w: empty chart result", market.ErrUnavailable)
	}

	return &data.Chart.Result[0], nil
}

// rangeFor maps a lookback duration onto the coarser range buckets the
// chart API accepts.
func rangeFor(lookback time.Duration) string {
	switch {
	case lookback <= 24*time.Hour:
		return "1d"
	case lookback <= 5*24*time.Hour:
		return "5d"
	case lookback <= 30*24*time.Hour:
		return "1mo"
	case lookback <= 90*24*time.Hour:
		return "3mo"
	case lookback <= 180*24*time.Hour:
		return "6mo"
	case lookback <= 365*24*time.Hour:
		return "1y"
	default:
		return "2y"
	}
}
