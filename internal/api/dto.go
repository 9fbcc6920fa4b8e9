package api

import (
	"time"

	"github.com/rxtech-lab/leaps/internal/analysis"
	"github.com/rxtech-lab/leaps/internal/config"
	"github.com/rxtech-lab/leaps/internal/types"
)

// ComputeRequest is the body of every compute endpoint.
type ComputeRequest struct {
	Symbol     string                   `json:"symbol"`
	Signal     config.SignalConfig      `json:"signal"`
	Indicators []config.IndicatorConfig `json:"indicators" validate:"dive"`
	Bars       []types.Bar              `json:"bars" validate:"required"`
}

// IndicatorResponse carries aligned lines. Undefined positions are null.
type IndicatorResponse struct {
	Times []time.Time           `json:"times"`
	Lines map[string][]*float64 `json:"lines"`
}

// SignalResponse lists the breakout signals.
type SignalResponse struct {
	Window  int                 `json:"window"`
	Signals []types.SignalEvent `json:"signals"`
}

// MarkResponse is the chart annotation of one signal.
type MarkResponse struct {
	Time  time.Time       `json:"time"`
	Price float64         `json:"price"`
	Title string          `json:"title"`
	Color types.MarkColor `json:"color"`
	Shape types.MarkShape `json:"shape"`
}

// AnalyzeResponse is the full analysis of the posted bars.
type AnalyzeResponse struct {
	Symbol     string                    `json:"symbol"`
	Window     int                       `json:"window"`
	Bars       int                       `json:"bars"`
	Dropped    int                       `json:"dropped"`
	Indicators IndicatorResponse         `json:"indicators"`
	Signals    []types.SignalEvent       `json:"signals"`
	Marks      []MarkResponse            `json:"marks"`
	Summary    types.PeriodSummary       `json:"summary"`
	Yearly     []types.YearlyPerformance `json:"yearly"`
}

// ErrorResponse is written for every failed request.
type ErrorResponse struct {
	Code     int    `json:"code"`
	Category string `json:"category"`
	Message  string `json:"message"`
}

func newIndicatorResponse(set types.IndicatorSet) IndicatorResponse {
	lines := make(map[string][]*float64, len(set.Lines))
	for name, line := range set.Lines {
		lines[name] = line.Pointers()
	}

	return IndicatorResponse{
		Times: set.Times,
		Lines: lines,
	}
}

func newAnalyzeResponse(result *analysis.Result, window int) AnalyzeResponse {
	marks := make([]MarkResponse, 0, len(result.Marks))
	for _, mark := range result.Marks {
		marks = append(marks, MarkResponse{
			Time:  mark.Signal.Time,
			Price: mark.Signal.Price,
			Title: mark.Title,
			Color: mark.Color,
			Shape: mark.Shape,
		})
	}

	return AnalyzeResponse{
		Symbol:     result.Symbol,
		Window:     window,
		Bars:       result.Series.Len(),
		Dropped:    result.Dropped,
		Indicators: newIndicatorResponse(result.Indicators),
		Signals:    result.Signals,
		Marks:      marks,
		Summary:    result.Summary,
		Yearly:     result.Yearly,
	}
}
