package types

import "github.com/moznion/go-optional"

// Line is a derived series aligned 1:1 with its input Series.
// A None entry means "not yet computable" (warm-up) and is distinct from zero.
type Line []optional.Option[float64]

// NewUndefinedLine returns a line of length n with every entry undefined.
func NewUndefinedLine(n int) Line {
	line := make(Line, n)
	for i := range line {
		line[i] = optional.None[float64]()
	}

	return line
}

// LineFromValues wraps every value as defined.
func LineFromValues(values []float64) Line {
	line := make(Line, len(values))
	for i, v := range values {
		line[i] = optional.Some(v)
	}

	return line
}

// At returns the value at index i and whether it is defined.
// Out-of-range indices are reported as undefined.
func (l Line) At(i int) (float64, bool) {
	if i < 0 || i >= len(l) || l[i].IsNone() {
		return 0, false
	}

	return l[i].Unwrap(), true
}

// FirstDefined returns the index of the first defined entry, or -1.
func (l Line) FirstDefined() int {
	for i, v := range l {
		if v.IsSome() {
			return i
		}
	}

	return -1
}

// Pointers converts the line into nil-able values, the shape used by JSON and SQL encoders.
func (l Line) Pointers() []*float64 {
	out := make([]*float64, len(l))
	for i := range l {
		if v, ok := l.At(i); ok {
			value := v
			out[i] = &value
		}
	}

	return out
}
