package indicator

import (
	"github.com/rxtech-lab/leaps/internal/types"
	"github.com/rxtech-lab/leaps/pkg/errors"
)

// EMA indicator implements Exponential Moving Average calculation.
type EMA struct {
	period int
}

// NewEMA creates a new EMA indicator with default configuration.
func NewEMA() Indicator {
	return &EMA{
		period: 20, // Default period
	}
}

// Name returns the name of the indicator.
func (e *EMA) Name() types.IndicatorType {
	return types.IndicatorTypeEMA
}

// Config configures the EMA indicator. Expected parameters: period (int).
func (e *EMA) Config(params ...any) error {
	if len(params) != 1 {
		return errors.New(errors.ErrCodeMissingParameter, "Config expects 1 parameter: period (int)")
	}

	period, err := intParam(params[0], "period")
	if err != nil {
		return err
	}

	if err := checkSpan(period); err != nil {
		return err
	}

	e.period = period

	return nil
}

// Keys implements Indicator.
func (e *EMA) Keys() []string {
	return []string{types.EMAKey(e.period)}
}

// Compute implements Indicator.
func (e *EMA) Compute(series types.Series) (map[string]types.Line, error) {
	line, err := CalculateEMA(series, e.period)
	if err != nil {
		return nil, err
	}

	return map[string]types.Line{types.EMAKey(e.period): line}, nil
}

// CalculateEMA returns the exponential moving average of close with alpha = 2/(span+1),
// seeded by the first close. Every entry of a non-empty series is defined.
func CalculateEMA(series types.Series, span int) (types.Line, error) {
	if err := checkSpan(span); err != nil {
		return nil, err
	}

	return types.LineFromValues(exponentialMovingAverage(series.Closes(), span)), nil
}

// exponentialMovingAverage applies the recursive rule to any fully defined input,
// including derived lines such as the MACD line.
func exponentialMovingAverage(values []float64, span int) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}

	alpha := 2.0 / float64(span+1)

	// explicit conversions stop the compiler from fusing into FMA, so results are identical on every platform
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = float64(alpha*values[i]) + float64((1-alpha)*out[i-1])
	}

	return out
}
