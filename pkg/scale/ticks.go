package scale

import "math"

// NiceTicks returns about n evenly spaced "nice" values inside [lo, hi].
// The step is chosen from 1, 2, 2.5, 5 and 10 times a power of ten, picking
// the candidate whose tick count is closest to n.
func NiceTicks(lo, hi float64, n int) []float64 {
	if n < 2 || !finite(lo) || !finite(hi) {
		return nil
	}
	if lo > hi {
		lo, hi = hi, lo
	}
	if hi == lo {
		return []float64{lo}
	}
	step := NiceStep(lo, hi, n)

	first := math.Ceil(lo/step - 1e-9)
	last := math.Floor(hi/step + 1e-9)
	ticks := make([]float64, 0, int(last-first)+1)
	for i := first; i <= last; i++ {
		ticks = append(ticks, roundTo(i*step, step))
	}
	return ticks
}

// NiceStep returns the tick spacing NiceTicks would use.
func NiceStep(lo, hi float64, n int) float64 {
	span := math.Abs(hi - lo)
	mag := math.Pow(10, math.Floor(math.Log10(span/float64(n-1))))
	best, bestScore := mag, math.MaxFloat64
	for _, c := range []float64{1, 2, 2.5, 5, 10} {
		step := c * mag
		count := math.Floor(hi/step+1e-9) - math.Ceil(lo/step-1e-9) + 1
		score := math.Abs(count - float64(n))
		if score < bestScore {
			bestScore = score
			best = step
		}
	}
	return best
}

// LogTicks returns ticks for a log10 domain: every power of ten inside the
// domain, with 2× and 5× multiples added when that yields fewer than three
// ticks. Domains still left with fewer than three ticks fall back to linear
// nice ticks.
func LogTicks(lo, hi float64, n int) []float64 {
	if !(lo > 0) || !(hi > 0) || !finite(lo) || !finite(hi) {
		return nil
	}
	if lo > hi {
		lo, hi = hi, lo
	}
	e0 := int(math.Floor(math.Log10(lo)))
	e1 := int(math.Ceil(math.Log10(hi)))

	collect := func(mults ...float64) []float64 {
		var out []float64
		for e := e0; e <= e1; e++ {
			p := math.Pow(10, float64(e))
			for _, m := range mults {
				v := m * p
				if finite(v) && v >= lo*(1-1e-9) && v <= hi*(1+1e-9) {
					out = append(out, v)
				}
			}
		}
		return out
	}

	ticks := collect(1)
	if len(ticks) < 3 {
		ticks = collect(1, 2, 5)
	}
	if len(ticks) < 3 {
		return NiceTicks(lo, hi, n)
	}
	return ticks
}

// roundTo removes floating error from a multiple of step.
func roundTo(v, step float64) float64 {
	decimals := math.Max(0, -math.Floor(math.Log10(step))+1)
	p := math.Pow(10, decimals)
	r := math.Round(v*p) / p
	if r == 0 {
		return 0
	}
	return r
}
