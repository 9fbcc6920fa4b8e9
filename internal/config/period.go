package config

import "github.com/rxtech-lab/leaps/pkg/errors"

// signalWindows maps a chart period to its breakout window in trading days.
var signalWindows = map[string]int{
	"1mo": 20,
	"3mo": 60,
	"6mo": 120,
	"1y":  250,
}

// lookbackDays maps a fetch period to calendar days. ytd and max are approximations.
var lookbackDays = map[string]int{
	"1mo": 30,
	"3mo": 90,
	"6mo": 180,
	"1y":  365,
	"2y":  730,
	"5y":  1825,
	"10y": 3650,
	"ytd": 365,
	"max": 1825,
}

// SignalWindowForPeriod returns the breakout window for a symbolic period.
func SignalWindowForPeriod(period string) (int, error) {
	window, ok := signalWindows[period]
	if !ok {
		return 0, errors.Newf(errors.ErrCodeInvalidPeriod, "unsupported signal period %q, expected one of 1mo, 3mo, 6mo, 1y", period)
	}

	return window, nil
}

// LookbackDays returns the number of calendar days to fetch for a symbolic period.
func LookbackDays(period string) (int, error) {
	days, ok := lookbackDays[period]
	if !ok {
		return 0, errors.Newf(errors.ErrCodeInvalidPeriod, "unsupported period %q", period)
	}

	return days, nil
}
