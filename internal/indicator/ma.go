package indicator

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/leaps/internal/types"
	"github.com/rxtech-lab/leaps/pkg/errors"
)

// MA indicator implements Simple Moving Average calculation.
type MA struct {
	period int
}

// NewMA creates a new MA indicator with default configuration.
func NewMA() Indicator {
	return &MA{
		period: 20, // Default period
	}
}

// Name returns the name of the indicator.
func (m *MA) Name() types.IndicatorType {
	return types.IndicatorTypeMA
}

// Config configures the MA indicator. Expected parameters: period (int).
func (m *MA) Config(params ...any) error {
	if len(params) != 1 {
		return errors.New(errors.ErrCodeMissingParameter, "Config expects 1 parameter: period (int)")
	}

	period, err := intParam(params[0], "period")
	if err != nil {
		return err
	}

	if err := checkWindow(period); err != nil {
		return err
	}

	m.period = period

	return nil
}

// Keys implements Indicator.
func (m *MA) Keys() []string {
	return []string{types.SMAKey(m.period)}
}

// Compute implements Indicator.
func (m *MA) Compute(series types.Series) (map[string]types.Line, error) {
	line, err := CalculateSMA(series, m.period)
	if err != nil {
		return nil, err
	}

	return map[string]types.Line{types.SMAKey(m.period): line}, nil
}

// CalculateSMA returns the arithmetic mean of close over the trailing window bars, current bar
// included. Entries before index window-1 are undefined; a window longer than the series
// yields an entirely undefined line.
func CalculateSMA(series types.Series, window int) (types.Line, error) {
	if err := checkWindow(window); err != nil {
		return nil, err
	}

	return simpleMovingAverage(series.Closes(), window), nil
}

func simpleMovingAverage(values []float64, window int) types.Line {
	line := types.NewUndefinedLine(len(values))

	for i := window - 1; i < len(values); i++ {
		line[i] = optional.Some(windowMean(values[i-window+1 : i+1]))
	}

	return line
}

// windowMean sums in index order so the result matches a direct mean of the window.
func windowMean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}

	return sum / float64(len(values))
}
