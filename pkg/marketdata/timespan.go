package marketdata

import (
	"github.com/polygon-io/client-go/rest/models"
	"github.com/rxtech-lab/leaps/pkg/errors"
)

// Timespan is a bar interval such as 1d or 15m.
type Timespan string

const (
	TimespanOneMinute      Timespan = "1m"
	TimespanFiveMinutes    Timespan = "5m"
	TimespanFifteenMinutes Timespan = "15m"
	TimespanThirtyMinutes  Timespan = "30m"
	TimespanOneHour        Timespan = "1h"
	TimespanFourHours      Timespan = "4h"
	TimespanOneDay         Timespan = "1d"
	TimespanOneWeek        Timespan = "1w"
	TimespanOneMonth       Timespan = "1M"
)

type polygonInterval struct {
	multiplier int
	timespan   models.Timespan
}

var timespans = map[Timespan]polygonInterval{
	TimespanOneMinute:      {1, models.Minute},
	TimespanFiveMinutes:    {5, models.Minute},
	TimespanFifteenMinutes: {15, models.Minute},
	TimespanThirtyMinutes:  {30, models.Minute},
	TimespanOneHour:        {1, models.Hour},
	TimespanFourHours:      {4, models.Hour},
	TimespanOneDay:         {1, models.Day},
	TimespanOneWeek:        {1, models.Week},
	TimespanOneMonth:       {1, models.Month},
}

// ParseTimespan validates an interval string.
func ParseTimespan(value string) (Timespan, error) {
	t := Timespan(value)
	if _, ok := timespans[t]; !ok {
		return "", errors.Newf(errors.ErrCodeInvalidTimespan, "unsupported interval %q", value)
	}

	return t, nil
}

// Multiplier returns the polygon multiplier of the interval. Unknown intervals fall back to 1.
func (t Timespan) Multiplier() int {
	if interval, ok := timespans[t]; ok {
		return interval.multiplier
	}

	return 1
}

// Timespan returns the polygon timespan of the interval. Unknown intervals fall back to a day.
func (t Timespan) Timespan() models.Timespan {
	if interval, ok := timespans[t]; ok {
		return interval.timespan
	}

	return models.Day
}
