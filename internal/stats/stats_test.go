package stats

import (
	"math"
	"testing"
	"time"

	"github.com/rxtech-lab/leaps/internal/types"
	"github.com/stretchr/testify/suite"
)

type StatsTestSuite struct {
	suite.Suite
}

func TestStatsSuite(t *testing.T) {
	suite.Run(t, new(StatsTestSuite))
}

func bar(at time.Time, close, high, low float64, volume int64) types.Bar {
	return types.Bar{Time: at, Open: close, High: high, Low: low, Close: close, Volume: volume}
}

func (suite *StatsTestSuite) TestSummarize() {
	day := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	series := types.Series{
		bar(day, 100, 101, 99, 1000),
		bar(day.AddDate(0, 0, 1), 110, 112, 100, 3000),
		bar(day.AddDate(0, 0, 2), 99, 111, 95, 2000),
	}

	summary := Summarize(series)

	suite.Equal(3, summary.Bars)
	suite.Equal(day, summary.Start)
	suite.Equal(day.AddDate(0, 0, 2), summary.End)
	suite.Equal(99.0, summary.LastClose)
	suite.Equal(112.0, summary.High)
	suite.Equal(95.0, summary.Low)
	suite.InDelta(-1.0, summary.ReturnPct, 1e-12)
	suite.Equal(2000.0, summary.AverageVolume)
	suite.Equal(int64(3000), summary.MaxVolume)
	suite.Equal(int64(1000), summary.MinVolume)

	// returns: +10%, -10%
	suite.InDelta(0.0, summary.MeanDailyReturn, 1e-12)
	suite.InDelta(0.1, summary.MaxDailyReturn, 1e-12)
	suite.InDelta(-0.1, summary.MinDailyReturn, 1e-12)
	suite.InDelta(math.Sqrt(0.02)*math.Sqrt(252), summary.AnnualizedVolatility, 1e-9)
}

func (suite *StatsTestSuite) TestSummarizeDegenerate() {
	suite.Equal(types.PeriodSummary{}, Summarize(nil))

	day := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	single := Summarize(types.Series{bar(day, 50, 51, 49, 10)})
	suite.Equal(1, single.Bars)
	suite.Equal(0.0, single.ReturnPct)
	suite.Equal(0.0, single.AnnualizedVolatility)
	suite.Equal(10.0, single.AverageVolume)
}

func (suite *StatsTestSuite) TestDailyReturns() {
	day := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	series := types.Series{
		bar(day, 100, 100, 100, 0),
		bar(day.AddDate(0, 0, 1), 125, 125, 125, 0),
		bar(day.AddDate(0, 0, 2), 100, 100, 100, 0),
	}

	suite.Equal([]float64{0.25, -0.2}, DailyReturns(series))
	suite.Nil(DailyReturns(series[:1]))
}

func (suite *StatsTestSuite) TestYearly() {
	series := types.Series{
		bar(time.Date(2023, 12, 28, 0, 0, 0, 0, time.UTC), 50, 50, 50, 5),
		bar(time.Date(2023, 12, 29, 0, 0, 0, 0, time.UTC), 60, 60, 60, 5),
		bar(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), 80, 80, 80, 7),
		bar(time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), 40, 40, 40, 3),
		bar(time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC), 100, 100, 100, 1),
	}

	years := Yearly(series)
	suite.Require().Len(years, 2)

	suite.Equal(types.YearlyPerformance{
		Year: 2023, FirstClose: 50, LastClose: 60, MaxClose: 60, MinClose: 50, TotalVolume: 10, ChangePct: 20,
	}, years[0])

	suite.Equal(2024, years[1].Year)
	suite.Equal(80.0, years[1].FirstClose)
	suite.Equal(100.0, years[1].LastClose)
	suite.Equal(100.0, years[1].MaxClose)
	suite.Equal(40.0, years[1].MinClose)
	suite.Equal(int64(11), years[1].TotalVolume)
	suite.InDelta(25.0, years[1].ChangePct, 1e-12)

	suite.Empty(Yearly(nil))
}

func (suite *StatsTestSuite) TestYearlyGroupsMixedLocationsInUTC() {
	plusTwo := time.FixedZone("UTC+2", 2*60*60)

	series := types.Series{
		bar(time.Date(2024, 12, 31, 12, 0, 0, 0, time.UTC), 10, 10, 10, 1),
		// 2024-12-31 23:00 UTC, already 2025 on the local clock
		bar(time.Date(2025, 1, 1, 1, 0, 0, 0, plusTwo), 20, 20, 20, 1),
		bar(time.Date(2024, 12, 31, 23, 30, 0, 0, time.UTC), 30, 30, 30, 1),
		bar(time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), 40, 40, 40, 1),
	}

	years := Yearly(series)
	suite.Require().Len(years, 2)
	suite.Equal(2024, years[0].Year)
	suite.Equal(10.0, years[0].FirstClose)
	suite.Equal(30.0, years[0].LastClose)
	suite.Equal(int64(3), years[0].TotalVolume)
	suite.Equal(2025, years[1].Year)
	suite.Equal(40.0, years[1].FirstClose)
}
