// Package analysis runs the full pipeline for one instrument: load, validate, indicators,
// signals and period statistics.
package analysis

import (
	"context"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/leaps/internal/config"
	"github.com/rxtech-lab/leaps/internal/datasource"
	"github.com/rxtech-lab/leaps/internal/indicator"
	"github.com/rxtech-lab/leaps/internal/logger"
	"github.com/rxtech-lab/leaps/internal/series"
	"github.com/rxtech-lab/leaps/internal/signal"
	"github.com/rxtech-lab/leaps/internal/stats"
	"github.com/rxtech-lab/leaps/internal/types"
	"github.com/rxtech-lab/leaps/pkg/errors"
	"go.uber.org/zap"
)

// Request selects the bars and the calculations of one analysis.
type Request struct {
	Symbol string
	Start  optional.Option[time.Time]
	End    optional.Option[time.Time]
	// Window is the breakout look-back in bars
	Window int
	// Indicators to compute. Empty selects indicator.DefaultIndicators(Window).
	Indicators []indicator.Indicator
}

// Result is the outcome of one analysis.
type Result struct {
	Symbol     string
	Series     types.Series
	Indicators types.IndicatorSet
	Signals    []types.SignalEvent
	Marks      []types.Mark
	Summary    types.PeriodSummary
	Yearly     []types.YearlyPerformance
	// Dropped counts the bars removed by the validator
	Dropped int
}

// Analyzer runs analyses against a data source.
type Analyzer struct {
	datasource datasource.DataSource
	logger     *logger.Logger
}

// NewAnalyzer creates an analyzer. The data source may be nil when only AnalyzeSeries is used.
func NewAnalyzer(ds datasource.DataSource, log *logger.Logger) *Analyzer {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Analyzer{
		datasource: ds,
		logger:     log,
	}
}

// RequestFromConfig builds a request from an analysis config.
func RequestFromConfig(cfg *config.Config, registry indicator.IndicatorRegistry) (Request, error) {
	window, err := cfg.SignalWindow()
	if err != nil {
		return Request{}, err
	}

	indicators, err := cfg.BuildIndicators(registry)
	if err != nil {
		return Request{}, err
	}

	return Request{
		Symbol:     cfg.Symbol,
		Start:      cfg.Start,
		End:        cfg.End,
		Window:     window,
		Indicators: indicators,
	}, nil
}

// Analyze reads the requested bars from the data source and analyzes them.
func (a *Analyzer) Analyze(ctx context.Context, req Request) (*Result, error) {
	if a.datasource == nil {
		return nil, errors.New(errors.ErrCodeDataSourceUnavailable, "no data source configured")
	}

	if req.Symbol == "" {
		return nil, errors.New(errors.ErrCodeMissingParameter, "symbol is required")
	}

	bars, err := a.datasource.ReadSeries(ctx, req.Symbol, req.Start, req.End)
	if err != nil {
		return nil, err
	}

	if len(bars) == 0 {
		return nil, errors.Newf(errors.ErrCodeNoDataFound, "no bars found for %s", req.Symbol)
	}

	a.logger.Debug("Loaded bars", zap.String("symbol", req.Symbol), zap.Int("bars", len(bars)))

	return a.AnalyzeSeries(bars, req)
}

// AnalyzeSeries analyzes bars that are already in memory. The bars must be in strictly
// increasing time order; inconsistent bars are dropped before any calculation.
func (a *Analyzer) AnalyzeSeries(bars types.Series, req Request) (*Result, error) {
	if err := series.CheckOrder(bars); err != nil {
		return nil, err
	}

	generator, err := signal.NewBreakoutGenerator(req.Window)
	if err != nil {
		return nil, err
	}

	indicators := req.Indicators
	if len(indicators) == 0 {
		indicators, err = indicator.DefaultIndicators(req.Window)
		if err != nil {
			return nil, err
		}
	}

	valid := series.Validate(bars)
	dropped := len(bars) - len(valid)

	if dropped > 0 {
		a.logger.Warn("Dropped inconsistent bars",
			zap.String("symbol", req.Symbol),
			zap.Int("dropped", dropped),
			zap.Int("remaining", len(valid)),
		)
	}

	set, err := indicator.NewEngine(indicators...).Compute(valid)
	if err != nil {
		return nil, err
	}

	signals, err := generator.GenerateFromSet(valid, set)
	if err != nil {
		return nil, err
	}

	marks := make([]types.Mark, 0, len(signals))
	for _, event := range signals {
		marks = append(marks, types.NewSignalMark(event))
	}

	a.logger.Info("Analysis complete",
		zap.String("symbol", req.Symbol),
		zap.Int("bars", len(valid)),
		zap.Int("indicators", len(set.Lines)),
		zap.Int("signals", len(signals)),
	)

	return &Result{
		Symbol:     req.Symbol,
		Series:     valid,
		Indicators: set,
		Signals:    signals,
		Marks:      marks,
		Summary:    stats.Summarize(valid),
		Yearly:     stats.Yearly(valid),
		Dropped:    dropped,
	}, nil
}
