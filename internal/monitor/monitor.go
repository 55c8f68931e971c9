package monitor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/quantdesk/internal/engine"
	"github.com/Alias1177/quantdesk/internal/market"
	"github.com/Alias1177/quantdesk/internal/metrics"
	"github.com/Alias1177/quantdesk/internal/model"
	"github.com/Alias1177/quantdesk/internal/narrative"
)

// Config holds the monitor loop settings.
type Config struct {
	Symbol   string
	Interval market.Interval
	Lookback time.Duration

	// Refresh is the cycle period. Zero or negative runs a single cycle
	// and returns.
	Refresh time.Duration

	// ShadowSymbol is the liquid proxy quoted next to the delayed futures
	// price (QQQ for NQ=F, SPY for ES=F). Empty disables the quote.
	ShadowSymbol string
	// VIXSymbol is the fear-index symbol. Empty disables the quote.
	VIXSymbol     string
	VIXSpikeLevel float64
}

// Options carries the monitor's collaborators. Provider and Engine are
// required; the rest degrade gracefully when nil.
type Options struct {
	Provider  market.Provider
	Quotes    market.QuoteProvider
	Engine    *engine.Engine
	Generator narrative.Generator
	Metrics   *metrics.Metrics
	Out       io.Writer
}

// state is everything a refresh cycle or command mutates. Only the Run
// goroutine touches it, so no locking is needed.
type state struct {
	snapshot *model.IndicatorSnapshot
	risk     *model.RiskLevels
	stale    bool
	board    []model.TrendStatus
	shadow   *model.Quote
	vix      *model.Quote
	stats    SessionStats
}

// Monitor runs the fetch-compute-render loop and reacts to interactive
// commands.
type Monitor struct {
	cfg       Config
	provider  market.Provider
	quotes    market.QuoteProvider
	engine    *engine.Engine
	generator narrative.Generator
	metrics   *metrics.Metrics
	out       io.Writer
	logger    zerolog.Logger

	state state
}

func New(cfg Config, opts Options) (*Monitor, error) {
	if cfg.Symbol == "" {
		return nil, errors.New("monitor: symbol is required")
	}
	if opts.Provider == nil {
		return nil, errors.New("monitor: market data provider is required")
	}
	if opts.Engine == nil {
		return nil, errors.New("monitor: engine is required")
	}
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	return &Monitor{
		cfg:       cfg,
		provider:  opts.Provider,
		quotes:    opts.Quotes,
		engine:    opts.Engine,
		generator: opts.Generator,
		metrics:   opts.Metrics,
		out:       out,
		logger:    log.With().Str("component", "monitor").Logger(),
	}, nil
}

// Run executes refresh cycles until ctx is cancelled or a quit command
// arrives. Each cycle is fully sequential: one fetch, one computation, one
// render, never overlapping. A nil commands channel disables interactive
// input.
func (m *Monitor) Run(ctx context.Context, commands <-chan Command) error {
	m.printHelp()
	m.cycle(ctx)
	m.render()

	if m.cfg.Refresh <= 0 {
		return nil
	}

	ticker := time.NewTicker(m.cfg.Refresh)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			m.cycle(ctx)
			m.render()
		case cmd, ok := <-commands:
			if !ok {
				commands = nil
				continue
			}
			if quit := m.handleCommand(ctx, cmd); quit {
				return nil
			}
		}
	}
}

func (m *Monitor) handleCommand(ctx context.Context, cmd Command) (quit bool) {
	switch cmd {
	case CommandWin:
		m.state.stats.Wins++
		m.render()
	case CommandLoss:
		m.state.stats.Losses++
		m.render()
	case CommandRefresh:
		m.cycle(ctx)
		m.render()
	case CommandVerdict:
		m.runVerdict(ctx)
	case CommandQuit:
		return true
	}
	return false
}

// cycle fetches fresh bars and recomputes everything derived from them.
// On any failure the previous snapshot stays visible, marked stale.
func (m *Monitor) cycle(ctx context.Context) {
	fetchStart := time.Now()
	bars, err := m.provider.Bars(ctx, m.cfg.Symbol, m.cfg.Interval, m.cfg.Lookback)
	m.metrics.ObserveFetch(time.Since(fetchStart))
	if err != nil {
		m.logger.Warn().Err(err).Str("symbol", m.cfg.Symbol).Msg("Fetch failed, keeping last snapshot")
		m.metrics.IncCycleFailure("fetch")
		m.state.stale = m.state.snapshot != nil
		return
	}

	computeStart := time.Now()
	snap, err := m.engine.ComputeSnapshot(bars)
	m.metrics.ObserveCompute(time.Since(computeStart))
	if err != nil {
		m.logger.Warn().Err(err).Int("bars", len(bars)).Msg("Snapshot not computable, keeping last one")
		m.metrics.IncCycleFailure("compute")
		m.state.stale = m.state.snapshot != nil
		return
	}

	m.state.snapshot = snap
	m.state.stale = false

	risk, err := m.engine.RiskFor(snap)
	if err != nil {
		m.logger.Debug().Err(err).Msg("Risk levels unavailable")
		risk = nil
	}
	m.state.risk = risk

	m.metrics.IncCycle()
	if snap.Has(model.FieldSignal) {
		m.metrics.IncSignal(string(snap.Signal))
	}

	m.refreshCompanions(ctx)
	m.refreshBoard(ctx)
}

// refreshCompanions pulls the shadow and VIX quotes, one after the other.
// A failed quote disappears from the panel until it can be fetched again.
func (m *Monitor) refreshCompanions(ctx context.Context) {
	if m.quotes == nil {
		return
	}

	if m.cfg.ShadowSymbol != "" {
		quote, err := m.quotes.LatestQuote(ctx, m.cfg.ShadowSymbol)
		if err != nil {
			m.logger.Debug().Err(err).Str("symbol", m.cfg.ShadowSymbol).Msg("Shadow quote failed")
			quote = nil
		}
		m.state.shadow = quote
	}

	if m.cfg.VIXSymbol != "" {
		quote, err := m.quotes.LatestQuote(ctx, m.cfg.VIXSymbol)
		if err != nil {
			m.logger.Debug().Err(err).Str("symbol", m.cfg.VIXSymbol).Msg("VIX quote failed")
			quote = nil
		}
		m.state.vix = quote
	}
}

// runVerdict serializes the current snapshot into a prompt and prints
// whatever the narrative backend returns, or the error text verbatim.
func (m *Monitor) runVerdict(ctx context.Context) {
	if m.generator == nil {
		fmt.Fprintln(m.out, "Verdict unavailable: no narrative generator configured")
		return
	}
	if m.state.snapshot == nil {
		fmt.Fprintln(m.out, "Verdict unavailable: no snapshot yet")
		return
	}

	prompt := narrative.BuildPrompt(narrative.PromptInput{
		Symbol:   m.cfg.Symbol,
		Snapshot: m.state.snapshot,
		Risk:     m.state.risk,
		Shadow:   m.state.shadow,
		VIX:      m.state.vix,
	})

	m.metrics.IncNarrativeRequest()
	text, err := m.generator.Generate(ctx, prompt)
	if err != nil {
		m.metrics.IncNarrativeFailure()
		fmt.Fprintf(m.out, "Verdict error: %v\n", err)
		return
	}
	fmt.Fprintf(m.out, "--- Verdict ---\n%s\n", text)
}

func (m *Monitor) render() {
	fmt.Fprint(m.out, renderPanel(m.cfg, m.state))
}

func (m *Monitor) printHelp() {
	fmt.Fprintln(m.out, "Commands: [w]in [l]oss [v]erdict [r]efresh [q]uit")
}
