package main

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/rxtech-lab/leaps/internal/analysis"
	"github.com/rxtech-lab/leaps/internal/types"
)

// listItem implements list.Item interface for the symbol list.
type listItem struct {
	name        string
	description string
}

func (i listItem) Title() string       { return i.name }
func (i listItem) Description() string { return i.description }
func (i listItem) FilterValue() string { return i.name }

// NewSymbolList creates a new list for symbol selection.
func NewSymbolList(symbols []string) list.Model {
	items := make([]list.Item, 0, len(symbols))
	for _, symbol := range symbols {
		items = append(items, listItem{name: symbol, description: "Bars, indicators and breakout signals"})
	}

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true

	l := list.New(items, delegate, 0, 0)
	l.Title = "Select Symbol"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	return l
}

// NewBarTable creates a new table for displaying bars with their indicators and marks.
func NewBarTable() table.Model {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Open", Width: 10},
		{Title: "High", Width: 10},
		{Title: "Low", Width: 10},
		{Title: "Close", Width: 10},
		{Title: "Volume", Width: 14},
		{Title: "SMA 20", Width: 10},
		{Title: "MACD", Width: 8},
		{Title: "Signal", Width: 8},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)

	t.SetStyles(s)

	return t
}

// UpdateBarRows fills the table with the bars of result, newest first.
func UpdateBarRows(t table.Model, result *analysis.Result) table.Model {
	if result == nil {
		t.SetRows(nil)

		return t
	}

	marks := make(map[int64]types.Mark, len(result.Marks))
	for _, mark := range result.Marks {
		marks[mark.Signal.Time.UnixNano()] = mark
	}

	sma, _ := result.Indicators.Get(types.SMAKey(20))
	macd, _ := result.Indicators.Get(types.KeyMACD)

	rows := make([]table.Row, 0, result.Series.Len())

	for i := result.Series.Len() - 1; i >= 0; i-- {
		bar := result.Series[i]

		signal := ""
		if mark, ok := marks[bar.Time.UnixNano()]; ok {
			signal = mark.Title
		}

		rows = append(rows, table.Row{
			bar.Time.Format("2006-01-02"),
			FormatPrice(bar.Open),
			FormatPrice(bar.High),
			FormatPrice(bar.Low),
			FormatPrice(bar.Close),
			FormatVolume(bar.Volume),
			FormatOptional(sma, i),
			FormatOptional(macd, i),
			signal,
		})
	}

	t.SetRows(rows)

	return t
}

// ResultTitle summarizes a result in one line.
func ResultTitle(result *analysis.Result, window int) string {
	if result == nil {
		return ""
	}

	return fmt.Sprintf("%s | last %s | return %s | %d signals (window %d)",
		result.Symbol,
		FormatPrice(result.Summary.LastClose),
		FormatPercent(result.Summary.ReturnPct),
		len(result.Signals),
		window)
}
