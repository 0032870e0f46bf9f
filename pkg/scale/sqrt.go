package scale

import "math"

// Sqrt maps a size value to a radius so that circle area grows linearly with
// the value:
//
//	r = MinR + (MaxR-MinR) * sqrt((v-D0)/(D1-D0))
//
// Values are clamped into [D0, D1], so every radius lies in [MinR, MaxR].
type Sqrt struct {
	D0, D1     float64
	MinR, MaxR float64
}

// NewSqrt creates a radius scale. Negative radii are clamped to zero and the
// radii are swapped when minR > maxR.
func NewSqrt(d0, d1, minR, maxR float64) Sqrt {
	minR, maxR = math.Max(0, minR), math.Max(0, maxR)
	if minR > maxR {
		minR, maxR = maxR, minR
	}
	return Sqrt{D0: d0, D1: d1, MinR: minR, MaxR: maxR}
}

// Map returns the radius for v. A degenerate domain yields the midpoint
// radius for every value.
func (s Sqrt) Map(v float64) float64 {
	if !(s.D1 > s.D0) {
		return (s.MinR + s.MaxR) / 2
	}
	if math.IsNaN(v) {
		v = s.D0
	}
	v = math.Min(math.Max(v, s.D0), s.D1)
	return s.MinR + (s.MaxR-s.MinR)*math.Sqrt((v-s.D0)/(s.D1-s.D0))
}

// SizeDomain derives the radius domain from observed sizes: the minimum
// (0 when there are no sizes or it is zero) and the maximum (1 when zero).
func SizeDomain(values []float64) (d0, d1 float64) {
	lo, hi, ok := extent(values)
	if !ok {
		return 0, 1
	}
	if hi == 0 {
		hi = 1
	}
	return lo, hi
}
