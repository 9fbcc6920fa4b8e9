package types

import "time"

// Bar is one sampled period of a traded instrument.
type Bar struct {
	Time   time.Time `json:"time"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// Series is an ordered sequence of bars with strictly increasing, unique timestamps.
// Producers must not mutate a Series after handing it to the engine.
type Series []Bar

// Len returns the number of bars.
func (s Series) Len() int {
	return len(s)
}

// Times returns the timestamps of the series.
func (s Series) Times() []time.Time {
	times := make([]time.Time, len(s))
	for i, b := range s {
		times[i] = b.Time
	}

	return times
}

// Closes returns the close prices of the series.
func (s Series) Closes() []float64 {
	values := make([]float64, len(s))
	for i, b := range s {
		values[i] = b.Close
	}

	return values
}

// Highs returns the high prices of the series.
func (s Series) Highs() []float64 {
	values := make([]float64, len(s))
	for i, b := range s {
		values[i] = b.High
	}

	return values
}

// Lows returns the low prices of the series.
func (s Series) Lows() []float64 {
	values := make([]float64, len(s))
	for i, b := range s {
		values[i] = b.Low
	}

	return values
}

// Tail returns a copy of the last n bars. A non-positive n yields an empty series.
func (s Series) Tail(n int) Series {
	if n <= 0 {
		return Series{}
	}

	if n > len(s) {
		n = len(s)
	}

	out := make(Series, n)
	copy(out, s[len(s)-n:])

	return out
}
