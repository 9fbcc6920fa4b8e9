package indicator

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/leaps/internal/types"
	"github.com/rxtech-lab/leaps/pkg/errors"
)

// Field selects which price a rolling extremum is taken over.
type Field string

const (
	// FieldHigh yields the rolling max of high
	FieldHigh Field = "high"
	// FieldLow yields the rolling min of low
	FieldLow Field = "low"
)

// RollingExtrema produces the rolling max(high) and min(low) lines used by breakout detection.
type RollingExtrema struct {
	window int
}

// NewRollingExtrema creates a new rolling extrema indicator with a one-month (20 bar) window.
func NewRollingExtrema() Indicator {
	return &RollingExtrema{
		window: 20,
	}
}

// Name returns the name of the indicator.
func (r *RollingExtrema) Name() types.IndicatorType {
	return types.IndicatorTypeRollingExtrema
}

// Config configures the window. Expected parameters: window (int).
func (r *RollingExtrema) Config(params ...any) error {
	if len(params) != 1 {
		return errors.New(errors.ErrCodeMissingParameter, "Config expects 1 parameter: window (int)")
	}

	window, err := intParam(params[0], "window")
	if err != nil {
		return err
	}

	if err := checkWindow(window); err != nil {
		return err
	}

	r.window = window

	return nil
}

// Keys implements Indicator.
func (r *RollingExtrema) Keys() []string {
	return []string{types.RollingHighKey(r.window), types.RollingLowKey(r.window)}
}

// Compute implements Indicator.
func (r *RollingExtrema) Compute(series types.Series) (map[string]types.Line, error) {
	high, err := CalculateRollingExtrema(series, r.window, FieldHigh)
	if err != nil {
		return nil, err
	}

	low, err := CalculateRollingExtrema(series, r.window, FieldLow)
	if err != nil {
		return nil, err
	}

	return map[string]types.Line{
		types.RollingHighKey(r.window): high,
		types.RollingLowKey(r.window):  low,
	}, nil
}

// CalculateRollingExtrema returns the max (FieldHigh) or min (FieldLow) over the trailing window
// bars, defined from index window-1 onward.
func CalculateRollingExtrema(series types.Series, window int, field Field) (types.Line, error) {
	if err := checkWindow(window); err != nil {
		return nil, err
	}

	switch field {
	case FieldHigh:
		return rollingExtremum(series.Highs(), window, func(a, b float64) bool { return a > b }), nil
	case FieldLow:
		return rollingExtremum(series.Lows(), window, func(a, b float64) bool { return a < b }), nil
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidField, "unsupported field %q, expected high or low", field)
	}
}

// rollingExtremum keeps a monotonic deque of indices; its front is always the extremum of the
// current window.
func rollingExtremum(values []float64, window int, beats func(a, b float64) bool) types.Line {
	line := types.NewUndefinedLine(len(values))
	deque := make([]int, 0, min(window, len(values)))

	for i, v := range values {
		if len(deque) > 0 && deque[0] <= i-window {
			deque = deque[1:]
		}

		for len(deque) > 0 && !beats(values[deque[len(deque)-1]], v) {
			deque = deque[:len(deque)-1]
		}

		deque = append(deque, i)

		if i >= window-1 {
			line[i] = optional.Some(values[deque[0]])
		}
	}

	return line
}
