package scale

import "math"

const (
	// PadFraction is the share of the observed range added on each side.
	PadFraction = 0.12
	// ZeroRangePad is the padding used when all observed values are equal.
	ZeroRangePad = 10.0
	// zeroLogPad is the padding, in decades, for a single distinct value.
	zeroLogPad = 0.5
)

// Bounds holds optional explicit domain bounds. A nil field means the bound
// is derived from the data.
type Bounds struct {
	Min *float64
	Max *float64
}

// PaddedDomain derives a linear domain from observed values.
//
// The observed [min, max] is padded by PadFraction of its range on each side
// (ZeroRangePad when the range is zero) and the derived lower bound is clamped
// to zero. Explicit bounds replace the derived ones and may be negative.
// If the result is empty or inverted, hi becomes lo + 1.
func PaddedDomain(values []float64, b Bounds) (lo, hi float64) {
	min, max, ok := extent(values)
	if !ok {
		min, max = 0, 0
	}
	pad := (max - min) * PadFraction
	if pad == 0 {
		pad = ZeroRangePad
	}
	lo = clampFinite(math.Max(0, min-pad))
	hi = clampFinite(max + pad)

	if b.Min != nil && finite(*b.Min) {
		lo = *b.Min
	}
	if b.Max != nil && finite(*b.Max) {
		hi = *b.Max
	}
	if lo >= hi {
		hi = clampFinite(lo + 1)
	}
	return lo, hi
}

// clampFinite limits v to the finite float64 range.
func clampFinite(v float64) float64 {
	return math.Max(-math.MaxFloat64, math.Min(v, math.MaxFloat64))
}

// PaddedLogDomain derives a log domain from observed values.
//
// Only positive values are considered. Padding is applied in log10 space.
// Bounds at or below zero are replaced by the smallest positive observed value
// divided by 10, or 1 when no value is positive. An empty or inverted result
// is widened to one decade. Padded bounds are clamped to the positive finite
// float64 range.
func PaddedLogDomain(values []float64, b Bounds) (lo, hi float64) {
	positive := make([]float64, 0, len(values))
	for _, v := range values {
		if v > 0 && finite(v) {
			positive = append(positive, v)
		}
	}

	fallback := 1.0
	min, max, ok := extent(positive)
	if ok {
		fallback = min / 10
		l0, l1 := math.Log10(min), math.Log10(max)
		pad := (l1 - l0) * PadFraction
		if pad == 0 {
			pad = zeroLogPad
		}
		lo = math.Max(math.Pow(10, l0-pad), math.SmallestNonzeroFloat64)
		hi = math.Min(math.Pow(10, l1+pad), math.MaxFloat64)
	} else {
		lo, hi = 1, 10
	}

	if b.Min != nil && finite(*b.Min) {
		lo = *b.Min
	}
	if b.Max != nil && finite(*b.Max) {
		hi = *b.Max
	}
	if lo <= 0 {
		lo = fallback
	}
	if hi <= lo {
		hi = math.Min(lo*10, math.MaxFloat64)
	}
	return lo, hi
}

// extent returns the min and max of the finite values.
func extent(values []float64) (min, max float64, ok bool) {
	for _, v := range values {
		if !finite(v) {
			continue
		}
		if !ok {
			min, max, ok = v, v, true
			continue
		}
		min = math.Min(min, v)
		max = math.Max(max, v)
	}
	return min, max, ok
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
