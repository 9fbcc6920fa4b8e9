// Package indicator computes technical indicators over a whole bar series.
//
// Every calculation returns lines aligned 1:1 with the input series. Positions
// whose trailing window has not filled yet are undefined (optional.None), never zero.
//
// EMA convention: the recursion is seeded with the first observation
// (ema[0] = x[0], ema[i] = a*x[i] + (1-a)*ema[i-1], a = 2/(span+1)), the same
// as pandas ewm(span, adjust=False). There is no SMA seed period, so an EMA
// line is defined from index 0. MACD and its signal line inherit this.
package indicator

import (
	"math"

	"github.com/rxtech-lab/leaps/internal/types"
	"github.com/rxtech-lab/leaps/pkg/errors"
)

// Indicator is a configurable calculation that produces one or more named lines for a series.
type Indicator interface {
	// Name returns the name of the indicator
	Name() types.IndicatorType
	// Config configures the indicator parameters
	Config(params ...any) error
	// Keys returns the IndicatorSet keys Compute will produce with the current configuration
	Keys() []string
	// Compute calculates the lines for the given series
	Compute(series types.Series) (map[string]types.Line, error)
}

// intParam accepts int-like values as decoded from YAML (int) or JSON (float64).
func intParam(value any, name string) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v != math.Trunc(v) {
			return 0, errors.Newf(errors.ErrCodeInvalidType, "invalid value for %s parameter, expected an integer, got %v", name, v)
		}

		return int(v), nil
	default:
		return 0, errors.Newf(errors.ErrCodeInvalidType, "invalid type for %s parameter, expected int", name)
	}
}

func floatParam(value any, name string) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	default:
		return 0, errors.Newf(errors.ErrCodeInvalidType, "invalid type for %s parameter, expected float64", name)
	}
}

func checkWindow(window int) error {
	if window <= 0 {
		return errors.Newf(errors.ErrCodeInvalidWindow, "window must be a positive integer, got %d", window)
	}

	return nil
}

func checkSpan(span int) error {
	if span <= 0 {
		return errors.Newf(errors.ErrCodeInvalidSpan, "span must be a positive integer, got %d", span)
	}

	return nil
}
