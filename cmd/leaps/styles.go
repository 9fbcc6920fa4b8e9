package main

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rxtech-lab/leaps/internal/types"
	"github.com/shopspring/decimal"
)

// Style definitions.
var (
	// TitleStyle for headers.
	TitleStyle = lipgloss.NewStyle().Bold(true)

	// HelpStyle for help text.
	HelpStyle = lipgloss.NewStyle().Faint(true)

	// ErrorStyle for error messages.
	ErrorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))

	// LabelStyle for the left column of key/value output.
	LabelStyle = lipgloss.NewStyle().Width(24)

	BuyStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	SellStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
)

// FormatPrice rounds a price to 2 decimals for display.
func FormatPrice(value float64) string {
	return decimal.NewFromFloat(value).StringFixed(2)
}

// FormatPercent rounds a percentage to 2 decimals and appends the sign.
func FormatPercent(value float64) string {
	return decimal.NewFromFloat(value).StringFixed(2) + "%"
}

// FormatVolume renders a volume with thousands separators.
func FormatVolume(value int64) string {
	digits := decimal.NewFromInt(value).String()

	negative := len(digits) > 0 && digits[0] == '-'
	if negative {
		digits = digits[1:]
	}

	out := make([]byte, 0, len(digits)+len(digits)/3)
	for i := range len(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, ',')
		}

		out = append(out, digits[i])
	}

	if negative {
		return "-" + string(out)
	}

	return string(out)
}

// FormatOptional renders a defined value with 2 decimals and an undefined one as "-".
func FormatOptional(line types.Line, i int) string {
	value, ok := line.At(i)
	if !ok {
		return "-"
	}

	return FormatPrice(value)
}

// RenderMark renders the chart mark of a signal.
func RenderMark(mark types.Mark) string {
	if mark.Color == types.MarkColorGreen {
		return BuyStyle.Render("▲ " + mark.Title)
	}

	return SellStyle.Render("▼ " + mark.Title)
}
