package indicator

import (
	"github.com/rxtech-lab/leaps/internal/types"
	"github.com/rxtech-lab/leaps/pkg/errors"
)

const (
	DefaultMACDFastPeriod   = 12
	DefaultMACDSlowPeriod   = 26
	DefaultMACDSignalPeriod = 9
)

// MACDResult holds the three MACD lines, all aligned with the input series.
type MACDResult struct {
	MACD      types.Line
	Signal    types.Line
	Histogram types.Line
}

// MACD represents the Moving Average Convergence Divergence indicator.
type MACD struct {
	fastPeriod   int
	slowPeriod   int
	signalPeriod int
}

// NewMACD creates a new MACD indicator with default configuration.
func NewMACD() Indicator {
	return &MACD{
		fastPeriod:   DefaultMACDFastPeriod,
		slowPeriod:   DefaultMACDSlowPeriod,
		signalPeriod: DefaultMACDSignalPeriod,
	}
}

// Name returns the name of the indicator.
func (m *MACD) Name() types.IndicatorType {
	return types.IndicatorTypeMACD
}

// Config configures the MACD indicator. Expected parameters: none (defaults 12, 26, 9)
// or fastPeriod (int), slowPeriod (int), signalPeriod (int).
func (m *MACD) Config(params ...any) error {
	if len(params) == 0 {
		m.fastPeriod = DefaultMACDFastPeriod
		m.slowPeriod = DefaultMACDSlowPeriod
		m.signalPeriod = DefaultMACDSignalPeriod

		return nil
	}

	if len(params) != 3 {
		return errors.New(errors.ErrCodeMissingParameter, "Config expects 3 parameters: fastPeriod (int), slowPeriod (int), signalPeriod (int)")
	}

	periods := make([]int, 3)
	names := []string{"fastPeriod", "slowPeriod", "signalPeriod"}

	for i, param := range params {
		period, err := intParam(param, names[i])
		if err != nil {
			return err
		}

		if period <= 0 {
			return errors.Newf(errors.ErrCodeInvalidSpan, "%s must be a positive integer, got %d", names[i], period)
		}

		periods[i] = period
	}

	m.fastPeriod = periods[0]
	m.slowPeriod = periods[1]
	m.signalPeriod = periods[2]

	return nil
}

// Keys implements Indicator.
func (m *MACD) Keys() []string {
	macd, signal, histogram := types.MACDKeys(m.fastPeriod, m.slowPeriod, m.signalPeriod)

	return []string{macd, signal, histogram}
}

// Compute implements Indicator.
func (m *MACD) Compute(series types.Series) (map[string]types.Line, error) {
	result, err := CalculateMACDWithPeriods(series, m.fastPeriod, m.slowPeriod, m.signalPeriod)
	if err != nil {
		return nil, err
	}

	macd, signal, histogram := types.MACDKeys(m.fastPeriod, m.slowPeriod, m.signalPeriod)

	return map[string]types.Line{
		macd:      result.MACD,
		signal:    result.Signal,
		histogram: result.Histogram,
	}, nil
}

// CalculateMACD computes MACD(12, 26, 9): macd = ema12 - ema26, signal = EMA(macd, 9)
// seeded by macd[0], histogram = macd - signal.
func CalculateMACD(series types.Series) (MACDResult, error) {
	return CalculateMACDWithPeriods(series, DefaultMACDFastPeriod, DefaultMACDSlowPeriod, DefaultMACDSignalPeriod)
}

// CalculateMACDWithPeriods computes MACD with explicit EMA spans.
func CalculateMACDWithPeriods(series types.Series, fastPeriod, slowPeriod, signalPeriod int) (MACDResult, error) {
	for _, span := range []int{fastPeriod, slowPeriod, signalPeriod} {
		if err := checkSpan(span); err != nil {
			return MACDResult{}, err
		}
	}

	closes := series.Closes()
	fast := exponentialMovingAverage(closes, fastPeriod)
	slow := exponentialMovingAverage(closes, slowPeriod)

	macd := make([]float64, len(closes))
	for i := range closes {
		macd[i] = fast[i] - slow[i]
	}

	signal := exponentialMovingAverage(macd, signalPeriod)

	histogram := make([]float64, len(closes))
	for i := range closes {
		histogram[i] = macd[i] - signal[i]
	}

	return MACDResult{
		MACD:      types.LineFromValues(macd),
		Signal:    types.LineFromValues(signal),
		Histogram: types.LineFromValues(histogram),
	}, nil
}
