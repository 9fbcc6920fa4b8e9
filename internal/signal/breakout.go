package signal

import (
	"github.com/rxtech-lab/leaps/internal/indicator"
	"github.com/rxtech-lab/leaps/internal/types"
	"github.com/rxtech-lab/leaps/pkg/errors"
)

// Generator produces signal events for a series.
type Generator interface {
	// Window returns the breakout look-back in bars
	Window() int
	// Generate computes the required indicators and returns the events
	Generate(series types.Series) ([]types.SignalEvent, error)
	// GenerateFromSet reuses lines already present in set, computing only what is missing
	GenerateFromSet(series types.Series, set types.IndicatorSet) ([]types.SignalEvent, error)
}

// BreakoutGenerator runs Detect over rolling extrema of a fixed window and MACD(12, 26, 9).
type BreakoutGenerator struct {
	window int
}

// NewBreakoutGenerator creates a generator. The window is an explicit bar count.
func NewBreakoutGenerator(window int) (*BreakoutGenerator, error) {
	if window <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidWindow, "window must be a positive integer, got %d", window)
	}

	return &BreakoutGenerator{window: window}, nil
}

// Window implements Generator.
func (g *BreakoutGenerator) Window() int {
	return g.window
}

// Generate implements Generator.
func (g *BreakoutGenerator) Generate(series types.Series) ([]types.SignalEvent, error) {
	return g.GenerateFromSet(series, types.NewIndicatorSet(series))
}

// GenerateFromSet implements Generator.
func (g *BreakoutGenerator) GenerateFromSet(series types.Series, set types.IndicatorSet) ([]types.SignalEvent, error) {
	if set.Len() != len(series) {
		return nil, errors.Newf(errors.ErrCodeInvalidParameter, "indicator set has %d positions, series has %d", set.Len(), len(series))
	}

	rollingHigh, hasHigh := set.Get(types.RollingHighKey(g.window))
	rollingLow, hasLow := set.Get(types.RollingLowKey(g.window))

	if !hasHigh || !hasLow {
		var err error

		rollingHigh, err = indicator.CalculateRollingExtrema(series, g.window, indicator.FieldHigh)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeSignalGeneration, "failed to calculate rolling high", err)
		}

		rollingLow, err = indicator.CalculateRollingExtrema(series, g.window, indicator.FieldLow)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeSignalGeneration, "failed to calculate rolling low", err)
		}
	}

	// KeyMACD only ever holds MACD(12, 26, 9); other periods are stored under suffixed keys
	macdLine, ok := set.Get(types.KeyMACD)
	if !ok {
		result, err := indicator.CalculateMACD(series)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeSignalGeneration, "failed to calculate macd", err)
		}

		macdLine = result.MACD
	}

	events, err := Detect(series, rollingHigh, rollingLow, macdLine, g.window)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSignalGeneration, "failed to detect breakouts", err)
	}

	return events, nil
}
