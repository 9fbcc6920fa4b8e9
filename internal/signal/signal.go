// Package signal turns indicator lines into discrete buy/sell events using a
// lagged breakout rule confirmed by MACD momentum.
package signal

import (
	"github.com/rxtech-lab/leaps/internal/types"
	"github.com/rxtech-lab/leaps/pkg/errors"
)

// Detect emits a Buy at bar i when high[i] breaks the previous bar's rolling high while
// macdLine[i] > 0, and a Sell when low[i] breaks the previous bar's rolling low while
// macdLine[i] < 0. Bars before index window are never evaluated. The two conditions are
// checked independently, Buy first, and events come out in bar order.
//
// A series of length <= window yields an empty result, not an error.
func Detect(series types.Series, rollingHigh, rollingLow, macdLine types.Line, window int) ([]types.SignalEvent, error) {
	if window <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidWindow, "window must be a positive integer, got %d", window)
	}

	n := len(series)
	if len(rollingHigh) != n || len(rollingLow) != n || len(macdLine) != n {
		return nil, errors.Newf(errors.ErrCodeInvalidParameter,
			"indicator lines must be aligned with the series: series=%d rollingHigh=%d rollingLow=%d macd=%d",
			n, len(rollingHigh), len(rollingLow), len(macdLine))
	}

	events := []types.SignalEvent{}

	for i := window; i < n; i++ {
		macd, ok := macdLine.At(i)
		if !ok {
			continue
		}

		bar := series[i]

		if prevHigh, ok := rollingHigh.At(i - 1); ok && bar.High > prevHigh && macd > 0 {
			events = append(events, types.SignalEvent{Time: bar.Time, Price: bar.High, Kind: types.SignalKindBuy})
		}

		if prevLow, ok := rollingLow.At(i - 1); ok && bar.Low < prevLow && macd < 0 {
			events = append(events, types.SignalEvent{Time: bar.Time, Price: bar.Low, Kind: types.SignalKindSell})
		}
	}

	return events, nil
}
