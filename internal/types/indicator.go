package types

import (
	"fmt"
	"sort"
	"time"
)

type IndicatorType string

const (
	IndicatorTypeMA             IndicatorType = "ma"
	IndicatorTypeEMA            IndicatorType = "ema"
	IndicatorTypeMACD           IndicatorType = "macd"
	IndicatorTypeBollingerBands IndicatorType = "bollinger_bands"
	IndicatorTypeRollingExtrema IndicatorType = "rolling_extrema"
)

// Keys used inside an IndicatorSet.
const (
	KeyMACD            = "macd"
	KeyMACDSignal      = "macd_signal"
	KeyMACDHistogram   = "macd_histogram"
	KeyBollingerUpper  = "bollinger_upper"
	KeyBollingerMiddle = "bollinger_middle"
	KeyBollingerLower  = "bollinger_lower"
)

// SMAKey returns the IndicatorSet key of a simple moving average over window bars.
func SMAKey(window int) string {
	return fmt.Sprintf("sma_%d", window)
}

// EMAKey returns the IndicatorSet key of an exponential moving average with the given span.
func EMAKey(span int) string {
	return fmt.Sprintf("ema_%d", span)
}

// MACDKeys returns the keys of the macd, signal and histogram lines. The default 12/26/9
// periods use KeyMACD, KeyMACDSignal and KeyMACDHistogram; other periods get a
// "_<fast>_<slow>_<signal>" suffix so they never replace the default lines.
func MACDKeys(fast, slow, signal int) (macd, signalLine, histogram string) {
	if fast == 12 && slow == 26 && signal == 9 {
		return KeyMACD, KeyMACDSignal, KeyMACDHistogram
	}

	suffix := fmt.Sprintf("_%d_%d_%d", fast, slow, signal)

	return KeyMACD + suffix, KeyMACDSignal + suffix, KeyMACDHistogram + suffix
}

// RollingHighKey returns the IndicatorSet key of the rolling max(high) over window bars.
func RollingHighKey(window int) string {
	return fmt.Sprintf("rolling_high_%d", window)
}

// RollingLowKey returns the IndicatorSet key of the rolling min(low) over window bars.
func RollingLowKey(window int) string {
	return fmt.Sprintf("rolling_low_%d", window)
}

// IndicatorSet maps indicator keys to lines aligned with the timestamps of one Series.
type IndicatorSet struct {
	Times []time.Time
	Lines map[string]Line
}

// NewIndicatorSet creates an empty set aligned with the given series.
func NewIndicatorSet(series Series) IndicatorSet {
	return IndicatorSet{
		Times: series.Times(),
		Lines: make(map[string]Line),
	}
}

// Len returns the number of aligned positions.
func (s IndicatorSet) Len() int {
	return len(s.Times)
}

// Get returns the line stored under key.
func (s IndicatorSet) Get(key string) (Line, bool) {
	line, ok := s.Lines[key]

	return line, ok
}

// Names returns every key in lexical order.
func (s IndicatorSet) Names() []string {
	names := make([]string, 0, len(s.Lines))
	for name := range s.Lines {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
