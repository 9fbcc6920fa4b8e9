package indicator

import (
	"github.com/rxtech-lab/leaps/internal/types"
	"github.com/rxtech-lab/leaps/pkg/errors"
)

// Engine computes an IndicatorSet from a fixed list of configured indicators.
// It holds no state between calls and is safe for concurrent use once built.
type Engine struct {
	indicators []Indicator
}

// NewEngine creates an engine over the given indicators.
func NewEngine(indicators ...Indicator) *Engine {
	return &Engine{indicators: indicators}
}

// Indicators returns the configured indicators.
func (e *Engine) Indicators() []Indicator {
	return e.indicators
}

// Compute runs every indicator over series and merges their lines into one set.
// Indicators producing the same key with the same configuration yield identical lines,
// so a later one simply replaces the earlier.
func (e *Engine) Compute(series types.Series) (types.IndicatorSet, error) {
	set := types.NewIndicatorSet(series)

	for _, ind := range e.indicators {
		lines, err := ind.Compute(series)
		if err != nil {
			return types.IndicatorSet{}, errors.Wrapf(errors.ErrCodeIndicatorCalculation, err, "failed to calculate %s", ind.Name())
		}

		for key, line := range lines {
			set.Lines[key] = line
		}
	}

	return set, nil
}

// DefaultIndicators returns the chart overlay set: sma 20/50/200, ema 12/26, macd(12,26,9),
// bollinger(20, 2) and rolling extrema over signalWindow.
func DefaultIndicators(signalWindow int) ([]Indicator, error) {
	registry := NewDefaultRegistry()

	specs := []struct {
		name   types.IndicatorType
		params []any
	}{
		{types.IndicatorTypeMA, []any{20}},
		{types.IndicatorTypeMA, []any{50}},
		{types.IndicatorTypeMA, []any{200}},
		{types.IndicatorTypeEMA, []any{12}},
		{types.IndicatorTypeEMA, []any{26}},
		{types.IndicatorTypeMACD, nil},
		{types.IndicatorTypeBollingerBands, []any{DefaultBollingerPeriod, DefaultBollingerStdDev}},
		{types.IndicatorTypeRollingExtrema, []any{signalWindow}},
	}

	indicators := make([]Indicator, 0, len(specs))

	for _, spec := range specs {
		ind, err := registry.GetIndicator(spec.name, spec.params...)
		if err != nil {
			return nil, err
		}

		indicators = append(indicators, ind)
	}

	return indicators, nil
}
