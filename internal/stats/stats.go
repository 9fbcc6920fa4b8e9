// Package stats derives descriptive period statistics from a bar series.
package stats

import (
	"math"

	"github.com/rxtech-lab/leaps/internal/types"
)

// TradingDaysPerYear annualizes daily volatility.
const TradingDaysPerYear = 252

// Summarize computes the period summary of series. An empty series yields a zero summary.
func Summarize(series types.Series) types.PeriodSummary {
	if len(series) == 0 {
		return types.PeriodSummary{}
	}

	first := series[0]
	last := series[len(series)-1]

	summary := types.PeriodSummary{
		Bars:      len(series),
		Start:     first.Time,
		End:       last.Time,
		LastClose: last.Close,
		High:      first.High,
		Low:       first.Low,
		MaxVolume: first.Volume,
		MinVolume: first.Volume,
	}

	if first.Close != 0 {
		summary.ReturnPct = (last.Close - first.Close) / first.Close * 100
	}

	var totalVolume float64

	for _, bar := range series {
		summary.High = math.Max(summary.High, bar.High)
		summary.Low = math.Min(summary.Low, bar.Low)
		summary.MaxVolume = max(summary.MaxVolume, bar.Volume)
		summary.MinVolume = min(summary.MinVolume, bar.Volume)
		totalVolume += float64(bar.Volume)
	}

	summary.AverageVolume = totalVolume / float64(len(series))

	returns := DailyReturns(series)
	if len(returns) == 0 {
		return summary
	}

	summary.MeanDailyReturn = mean(returns)
	summary.MaxDailyReturn = returns[0]
	summary.MinDailyReturn = returns[0]

	for _, r := range returns {
		summary.MaxDailyReturn = math.Max(summary.MaxDailyReturn, r)
		summary.MinDailyReturn = math.Min(summary.MinDailyReturn, r)
	}

	summary.AnnualizedVolatility = sampleStdDev(returns) * math.Sqrt(TradingDaysPerYear)

	return summary
}

// DailyReturns returns the close-to-close fractional changes, one shorter than series.
// Changes from a zero close are skipped.
func DailyReturns(series types.Series) []float64 {
	if len(series) < 2 {
		return nil
	}

	returns := make([]float64, 0, len(series)-1)

	for i := 1; i < len(series); i++ {
		prev := series[i-1].Close
		if prev == 0 {
			continue
		}

		returns = append(returns, (series[i].Close-prev)/prev)
	}

	return returns
}

// Yearly groups series by UTC calendar year in ascending order, so bars carrying different
// locations still land in one entry per year.
func Yearly(series types.Series) []types.YearlyPerformance {
	years := []types.YearlyPerformance{}

	for _, bar := range series {
		year := bar.Time.UTC().Year()

		if len(years) == 0 || years[len(years)-1].Year != year {
			years = append(years, types.YearlyPerformance{
				Year:       year,
				FirstClose: bar.Close,
				MaxClose:   bar.Close,
				MinClose:   bar.Close,
			})
		}

		current := &years[len(years)-1]
		current.LastClose = bar.Close
		current.MaxClose = math.Max(current.MaxClose, bar.Close)
		current.MinClose = math.Min(current.MinClose, bar.Close)
		current.TotalVolume += bar.Volume
	}

	for i := range years {
		if years[i].FirstClose != 0 {
			years[i].ChangePct = (years[i].LastClose - years[i].FirstClose) / years[i].FirstClose * 100
		}
	}

	return years
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}

	return sum / float64(len(values))
}

// sampleStdDev uses the n-1 denominator; fewer than two values give 0.
func sampleStdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}

	m := mean(values)

	var squared float64
	for _, v := range values {
		squared += (v - m) * (v - m)
	}

	return math.Sqrt(squared / float64(len(values)-1))
}
