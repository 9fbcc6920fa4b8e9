package indicator

import (
	"time"

	"github.com/rxtech-lab/leaps/internal/types"
)

var testStart = time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

// seriesFromCloses builds daily bars whose high/low straddle the close by 1%.
func seriesFromCloses(closes ...float64) types.Series {
	series := make(types.Series, len(closes))
	for i, c := range closes {
		series[i] = types.Bar{
			Time:   testStart.AddDate(0, 0, i),
			Open:   c,
			High:   c * 1.01,
			Low:    c * 0.99,
			Close:  c,
			Volume: 1_000_000,
		}
	}

	return series
}

// zigzag produces a deterministic, non-monotonic price path.
func zigzag(n int) []float64 {
	closes := make([]float64, n)
	price := 100.0

	for i := range closes {
		switch i % 7 {
		case 0, 1, 2:
			price += 1.5
		case 3, 4:
			price -= 2.25
		default:
			price += 0.5
		}

		closes[i] = price
	}

	return closes
}
