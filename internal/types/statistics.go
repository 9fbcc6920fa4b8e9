package types

import "time"

// PeriodSummary holds descriptive statistics of a series over its whole period.
type PeriodSummary struct {
	Bars      int       `json:"bars"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	LastClose float64   `json:"lastClose"`
	// High is the max bar high, Low the min bar low
	High float64 `json:"high"`
	Low  float64 `json:"low"`
	// ReturnPct is the close-to-close change over the period in percent
	ReturnPct     float64 `json:"returnPct"`
	AverageVolume float64 `json:"averageVolume"`
	MaxVolume     int64   `json:"maxVolume"`
	MinVolume     int64   `json:"minVolume"`
	// Daily return statistics are fractions, not percent
	MeanDailyReturn float64 `json:"meanDailyReturn"`
	MaxDailyReturn  float64 `json:"maxDailyReturn"`
	MinDailyReturn  float64 `json:"minDailyReturn"`
	// AnnualizedVolatility is the sample stddev of daily returns scaled by sqrt(252)
	AnnualizedVolatility float64 `json:"annualizedVolatility"`
}

// YearlyPerformance aggregates the closes and volume of one calendar year.
type YearlyPerformance struct {
	Year        int     `json:"year"`
	FirstClose  float64 `json:"firstClose"`
	LastClose   float64 `json:"lastClose"`
	MaxClose    float64 `json:"maxClose"`
	MinClose    float64 `json:"minClose"`
	TotalVolume int64   `json:"totalVolume"`
	ChangePct   float64 `json:"changePct"`
}
