// Package scale maps data values onto pixel coordinates.
//
// Positional axes use [Linear] or [Log] scales; bubble radii use [Sqrt] so
// that rendered area, not radius, is proportional to the value. Domains are
// derived from observed values with [PaddedDomain] or [PaddedLogDomain], and
// zoom/pan is applied by rescaling with a [Transform].
package scale

import "math"

// Scale is a monotonic mapping from a data domain onto a pixel range.
type Scale interface {
	// Map converts a data value to a pixel coordinate.
	Map(v float64) float64
	// Invert converts a pixel coordinate back to a data value.
	Invert(px float64) float64
	// Domain returns the data interval.
	Domain() (lo, hi float64)
	// Range returns the pixel interval. The first value may exceed the
	// second for inverted axes.
	Range() (r0, r1 float64)
	// Ticks returns roughly n tick values inside the domain.
	Ticks(n int) []float64
	// Mid returns the domain midpoint in data space.
	Mid() float64
	// WithDomain returns a copy using a new domain and the same range.
	WithDomain(lo, hi float64) Scale
}

// Linear maps values with y = r0 + (v-d0)/(d1-d0)*(r1-r0).
type Linear struct {
	D0, D1 float64
	R0, R1 float64
}

// NewLinear creates a linear scale.
func NewLinear(d0, d1, r0, r1 float64) Linear {
	return Linear{D0: d0, D1: d1, R0: r0, R1: r1}
}

func (s Linear) Map(v float64) float64 {
	if s.D1 == s.D0 {
		return (s.R0 + s.R1) / 2
	}
	return s.R0 + (v-s.D0)/(s.D1-s.D0)*(s.R1-s.R0)
}

func (s Linear) Invert(px float64) float64 {
	if s.R1 == s.R0 {
		return (s.D0 + s.D1) / 2
	}
	return s.D0 + (px-s.R0)/(s.R1-s.R0)*(s.D1-s.D0)
}

func (s Linear) Domain() (float64, float64) { return s.D0, s.D1 }
func (s Linear) Range() (float64, float64)  { return s.R0, s.R1 }
func (s Linear) Mid() float64               { return (s.D0 + s.D1) / 2 }

func (s Linear) Ticks(n int) []float64 {
	return NiceTicks(s.D0, s.D1, n)
}

func (s Linear) WithDomain(lo, hi float64) Scale {
	s.D0, s.D1 = lo, hi
	return s
}

// Log maps values in log10 space. D0 and D1 must be positive; values at or
// below zero map to the start of the range.
type Log struct {
	D0, D1 float64
	R0, R1 float64
}

// NewLog creates a log scale.
func NewLog(d0, d1, r0, r1 float64) Log {
	return Log{D0: d0, D1: d1, R0: r0, R1: r1}
}

func (s Log) Map(v float64) float64 {
	l0, l1 := math.Log10(s.D0), math.Log10(s.D1)
	if v <= 0 || math.IsNaN(v) {
		v = s.D0
	}
	if l1 == l0 {
		return (s.R0 + s.R1) / 2
	}
	return s.R0 + (math.Log10(v)-l0)/(l1-l0)*(s.R1-s.R0)
}

func (s Log) Invert(px float64) float64 {
	l0, l1 := math.Log10(s.D0), math.Log10(s.D1)
	if s.R1 == s.R0 {
		return math.Pow(10, (l0+l1)/2)
	}
	return math.Pow(10, l0+(px-s.R0)/(s.R1-s.R0)*(l1-l0))
}

func (s Log) Domain() (float64, float64) { return s.D0, s.D1 }
func (s Log) Range() (float64, float64)  { return s.R0, s.R1 }

// Mid returns the geometric midpoint of the domain.
func (s Log) Mid() float64 {
	return math.Pow(10, (math.Log10(s.D0)+math.Log10(s.D1))/2)
}

func (s Log) Ticks(n int) []float64 {
	return LogTicks(s.D0, s.D1, n)
}

func (s Log) WithDomain(lo, hi float64) Scale {
	s.D0, s.D1 = lo, hi
	return s
}

var (
	_ Scale = Linear{}
	_ Scale = Log{}
)
