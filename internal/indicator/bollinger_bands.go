package indicator

import (
	"math"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/leaps/internal/types"
	"github.com/rxtech-lab/leaps/pkg/errors"
)

const (
	DefaultBollingerPeriod = 20
	DefaultBollingerStdDev = 2.0
)

// BollingerResult holds the three bands, all aligned with the input series.
type BollingerResult struct {
	Upper  types.Line
	Middle types.Line
	Lower  types.Line
}

// BollingerBands implements the Indicator interface for Bollinger Bands.
type BollingerBands struct {
	period int     // Number of periods for moving average
	stdDev float64 // Number of standard deviations
}

// NewBollingerBands creates a new Bollinger Bands indicator with default configuration.
func NewBollingerBands() Indicator {
	return &BollingerBands{
		period: DefaultBollingerPeriod,
		stdDev: DefaultBollingerStdDev,
	}
}

// Name returns the name of the indicator.
func (bb *BollingerBands) Name() types.IndicatorType {
	return types.IndicatorTypeBollingerBands
}

// Config configures the Bollinger Bands indicator. Expected parameters: period (int), stdDev (float64).
func (bb *BollingerBands) Config(params ...any) error {
	if len(params) != 2 {
		return errors.New(errors.ErrCodeMissingParameter, "Config expects 2 parameters: period (int), stdDev (float64)")
	}

	period, err := intParam(params[0], "period")
	if err != nil {
		return err
	}

	if err := checkWindow(period); err != nil {
		return err
	}

	stdDev, err := floatParam(params[1], "stdDev")
	if err != nil {
		return err
	}

	if err := checkStdDev(stdDev); err != nil {
		return err
	}

	bb.period = period
	bb.stdDev = stdDev

	return nil
}

// Keys implements Indicator.
func (bb *BollingerBands) Keys() []string {
	return []string{types.KeyBollingerUpper, types.KeyBollingerMiddle, types.KeyBollingerLower}
}

// Compute implements Indicator.
func (bb *BollingerBands) Compute(series types.Series) (map[string]types.Line, error) {
	result, err := CalculateBollingerBands(series, bb.period, bb.stdDev)
	if err != nil {
		return nil, err
	}

	return map[string]types.Line{
		types.KeyBollingerUpper:  result.Upper,
		types.KeyBollingerMiddle: result.Middle,
		types.KeyBollingerLower:  result.Lower,
	}, nil
}

// CalculateBollingerBands returns sma(window) +/- k * stddev(close, window) where stddev is the
// population standard deviation (ddof = 0) over the same trailing window.
func CalculateBollingerBands(series types.Series, window int, k float64) (BollingerResult, error) {
	if err := checkWindow(window); err != nil {
		return BollingerResult{}, err
	}

	if err := checkStdDev(k); err != nil {
		return BollingerResult{}, err
	}

	closes := series.Closes()
	middle := simpleMovingAverage(closes, window)
	upper := types.NewUndefinedLine(len(closes))
	lower := types.NewUndefinedLine(len(closes))

	for i := window - 1; i < len(closes); i++ {
		mean := middle[i].Unwrap()

		var squaredDiffSum float64

		for _, v := range closes[i-window+1 : i+1] {
			diff := v - mean
			squaredDiffSum += diff * diff
		}

		sd := math.Sqrt(squaredDiffSum / float64(window))

		upper[i] = optional.Some(mean + k*sd)
		lower[i] = optional.Some(mean - k*sd)
	}

	return BollingerResult{
		Upper:  upper,
		Middle: middle,
		Lower:  lower,
	}, nil
}

func checkStdDev(k float64) error {
	if k <= 0 || math.IsNaN(k) || math.IsInf(k, 0) {
		return errors.Newf(errors.ErrCodeInvalidStdDev, "stdDev must be a positive number, got %f", k)
	}

	return nil
}
