// Package series checks OHLC consistency and ordering of bar series before any
// indicator runs on them.
package series

import (
	"github.com/rxtech-lab/leaps/internal/types"
	"github.com/rxtech-lab/leaps/pkg/errors"
)

// IsConsistent reports whether a bar satisfies high >= max(open, close, low)
// and low <= min(open, close).
func IsConsistent(bar types.Bar) bool {
	return bar.High >= bar.Low &&
		bar.High >= bar.Open &&
		bar.High >= bar.Close &&
		bar.Low <= bar.Open &&
		bar.Low <= bar.Close
}

// Validate returns the bars of s that satisfy the OHLC invariant, in their original order.
// Inconsistent bars are dropped, never repaired. The result may be empty.
// Validate is idempotent: Validate(Validate(s)) equals Validate(s).
func Validate(s types.Series) types.Series {
	out := make(types.Series, 0, len(s))

	for _, bar := range s {
		if IsConsistent(bar) {
			out = append(out, bar)
		}
	}

	return out
}

// CheckOrder verifies that timestamps are strictly increasing, which also rules out duplicates.
func CheckOrder(s types.Series) error {
	for i := 1; i < len(s); i++ {
		if !s[i].Time.After(s[i-1].Time) {
			return errors.Newf(errors.ErrCodeUnsortedSeries,
				"timestamps must be strictly increasing: bar %d (%s) does not follow bar %d (%s)",
				i, s[i].Time.Format("2006-01-02T15:04:05Z07:00"), i-1, s[i-1].Time.Format("2006-01-02T15:04:05Z07:00"))
		}
	}

	return nil
}
