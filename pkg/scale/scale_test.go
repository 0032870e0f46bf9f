package scale

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

const eps = 1e-9

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func ptr(v float64) *float64 { return &v }

func TestLinearMapInvert(t *testing.T) {
	s := NewLinear(0, 100, 0, 500)
	tests := []struct{ v, px float64 }{
		{0, 0}, {50, 250}, {100, 500}, {-10, -50},
	}
	for _, tt := range tests {
		if got := s.Map(tt.v); !approx(got, tt.px) {
			t.Errorf("Map(%v) = %v, want %v", tt.v, got, tt.px)
		}
		if got := s.Invert(tt.px); !approx(got, tt.v) {
			t.Errorf("Invert(%v) = %v, want %v", tt.px, got, tt.v)
		}
	}

	inv := NewLinear(0, 10, 300, 0)
	if got := inv.Map(10); got != 0 {
		t.Errorf("inverted Map(10) = %v, want 0", got)
	}
	if got := inv.Mid(); got != 5 {
		t.Errorf("Mid() = %v, want 5", got)
	}
}

func TestLogMap(t *testing.T) {
	s := NewLog(1, 1000, 0, 300)
	tests := []struct{ v, px float64 }{
		{1, 0}, {10, 100}, {100, 200}, {1000, 300},
		{0, 0}, {-5, 0},
	}
	for _, tt := range tests {
		if got := s.Map(tt.v); !approx(got, tt.px) {
			t.Errorf("Map(%v) = %v, want %v", tt.v, got, tt.px)
		}
	}
	if got := s.Invert(200); !approx(got, 100) {
		t.Errorf("Invert(200) = %v, want 100", got)
	}
	if got := s.Mid(); !approx(got, math.Sqrt(1000)) {
		t.Errorf("Mid() = %v, want geometric midpoint", got)
	}
}

func TestPaddedDomain(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		bounds Bounds
		lo, hi float64
	}{
		{"padded", []float64{100, 200}, Bounds{}, 88, 212},
		{"clamped at zero", []float64{5, 100}, Bounds{}, 0, 111.4},
		{"zero range", []float64{50, 50}, Bounds{}, 40, 60},
		{"zero range at origin", []float64{0}, Bounds{}, 0, 10},
		{"empty", nil, Bounds{}, 0, 10},
		{"min override", []float64{100, 200}, Bounds{Min: ptr(0)}, 0, 212},
		{"negative override", []float64{100, 200}, Bounds{Min: ptr(-50)}, -50, 212},
		{"max override", []float64{100, 200}, Bounds{Max: ptr(1000)}, 88, 1000},
		{"inverted overrides", []float64{100, 200}, Bounds{Min: ptr(500), Max: ptr(100)}, 500, 501},
		{"nan override ignored", []float64{100, 200}, Bounds{Min: ptr(math.NaN())}, 88, 212},
		{"negative data", []float64{-100, -20}, Bounds{}, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi := PaddedDomain(tt.values, tt.bounds)
			if !approx(lo, tt.lo) || !approx(hi, tt.hi) {
				t.Errorf("PaddedDomain() = [%v, %v], want [%v, %v]", lo, hi, tt.lo, tt.hi)
			}
		})
	}
}

func TestPaddedDomainLowerBoundNeverNegative(t *testing.T) {
	sets := [][]float64{
		{0, 1}, {1, 2, 3}, {0.001, 1e6}, {-5, 5}, {7}, {-1e9},
	}
	for _, values := range sets {
		if lo, _ := PaddedDomain(values, Bounds{}); lo < 0 {
			t.Errorf("PaddedDomain(%v) lower bound = %v, want >= 0", values, lo)
		}
	}
}

func TestPaddedLogDomain(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		bounds Bounds
		lo, hi float64
	}{
		{"two decades", []float64{10, 1000}, Bounds{}, math.Pow(10, 1-0.24), math.Pow(10, 3+0.24)},
		{"single value", []float64{100}, Bounds{}, math.Pow(10, 1.5), math.Pow(10, 2.5)},
		{"ignores non-positive", []float64{0, -3, 10, 1000}, Bounds{}, math.Pow(10, 1-0.24), math.Pow(10, 3+0.24)},
		{"no positive values", []float64{0, -1}, Bounds{}, 1, 10},
		{"zero min override", []float64{10, 1000}, Bounds{Min: ptr(0)}, 1, math.Pow(10, 3+0.24)},
		{"negative override no data", nil, Bounds{Min: ptr(-1)}, 1, 10},
		{"inverted", []float64{10, 1000}, Bounds{Min: ptr(50), Max: ptr(20)}, 50, 500},
		{"huge range stays finite", []float64{1, 1e300}, Bounds{}, 1e-36, math.MaxFloat64},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi := PaddedLogDomain(tt.values, tt.bounds)
			if !approx(lo, tt.lo) || !approx(hi, tt.hi) {
				t.Errorf("PaddedLogDomain() = [%v, %v], want [%v, %v]", lo, hi, tt.lo, tt.hi)
			}
			if lo <= 0 {
				t.Errorf("PaddedLogDomain() lower bound = %v, want > 0", lo)
			}
		})
	}
}

func TestSqrtRadius(t *testing.T) {
	s := NewSqrt(0, 4000, 8, 60)
	if got := s.Map(0); got != 8 {
		t.Errorf("Map(0) = %v, want 8", got)
	}
	if got := s.Map(4000); got != 60 {
		t.Errorf("Map(4000) = %v, want 60", got)
	}
	if got := s.Map(1000); !approx(got, 8+52*0.5) {
		t.Errorf("Map(1000) = %v, want 34", got)
	}
	if got := s.Map(-10); got != 8 {
		t.Errorf("Map(-10) = %v, want clamp to 8", got)
	}
	if got := s.Map(1e9); got != 60 {
		t.Errorf("Map(1e9) = %v, want clamp to 60", got)
	}
}

func TestSqrtMonotonicAndBounded(t *testing.T) {
	s := NewSqrt(120, 9800, 8, 60)
	prev := -1.0
	for v := -500.0; v <= 12000; v += 37 {
		r := s.Map(v)
		if r < prev-eps {
			t.Fatalf("Map(%v) = %v decreased from %v", v, r, prev)
		}
		if r < 8-eps || r > 60+eps {
			t.Fatalf("Map(%v) = %v outside [8, 60]", v, r)
		}
		prev = r
	}
}

func TestSqrtAreaLaw(t *testing.T) {
	s := NewSqrt(0, 5000, 0, 50)
	pairs := [][2]float64{{1000, 4000}, {250, 5000}, {1, 2}, {3300, 1100}}
	for _, p := range pairs {
		r1, r2 := s.Map(p[0]), s.Map(p[1])
		if got, want := (r1/r2)*(r1/r2), p[0]/p[1]; !approx(got, want) {
			t.Errorf("(r(%v)/r(%v))^2 = %v, want %v", p[0], p[1], got, want)
		}
	}
}

func TestSqrtDegenerateAndSwapped(t *testing.T) {
	s := NewSqrt(500, 500, 8, 60)
	if got := s.Map(500); got != 34 {
		t.Errorf("degenerate Map() = %v, want midpoint 34", got)
	}

	sw := NewSqrt(0, 1, 60, 8)
	if sw.MinR != 8 || sw.MaxR != 60 {
		t.Errorf("NewSqrt swapped = [%v, %v], want [8, 60]", sw.MinR, sw.MaxR)
	}

	neg := NewSqrt(0, 1, -4, 10)
	if neg.MinR != 0 {
		t.Errorf("NewSqrt negative MinR = %v, want 0", neg.MinR)
	}
}

func TestSizeDomain(t *testing.T) {
	tests := []struct {
		values []float64
		d0, d1 float64
	}{
		{[]float64{1000, 4000}, 1000, 4000},
		{[]float64{0, 0}, 0, 1},
		{nil, 0, 1},
		{[]float64{0, 250}, 0, 250},
	}
	for _, tt := range tests {
		d0, d1 := SizeDomain(tt.values)
		if d0 != tt.d0 || d1 != tt.d1 {
			t.Errorf("SizeDomain(%v) = [%v, %v], want [%v, %v]", tt.values, d0, d1, tt.d0, tt.d1)
		}
	}
}

func TestNiceTicks(t *testing.T) {
	tests := []struct {
		lo, hi float64
		n      int
		want   []float64
	}{
		{88, 212, 6, []float64{100, 120, 140, 160, 180, 200}},
		{0, 100, 5, []float64{0, 25, 50, 75, 100}},
		{0, 1, 6, []float64{0, 0.2, 0.4, 0.6, 0.8, 1}},
		{46.4, 83.6, 5, []float64{50, 60, 70, 80}},
		{5, 5, 5, []float64{5}},
	}
	for _, tt := range tests {
		got := NiceTicks(tt.lo, tt.hi, tt.n)
		if diff := cmp.Diff(tt.want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
			t.Errorf("NiceTicks(%v, %v, %d) mismatch (-want +got):\n%s", tt.lo, tt.hi, tt.n, diff)
		}
	}

	if got := NiceTicks(0, 10, 1); got != nil {
		t.Errorf("NiceTicks(n=1) = %v, want nil", got)
	}
}

func TestNiceTicksInsideDomain(t *testing.T) {
	domains := [][2]float64{{0, 1}, {3.7, 91.2}, {1234, 98765}, {-40, 40}, {0.001, 0.0042}}
	for _, d := range domains {
		for _, v := range NiceTicks(d[0], d[1], 6) {
			if v < d[0]-eps || v > d[1]+eps {
				t.Errorf("NiceTicks(%v, %v) produced %v outside domain", d[0], d[1], v)
			}
		}
	}
}

func TestLogTicks(t *testing.T) {
	tests := []struct {
		name   string
		lo, hi float64
		want   []float64
	}{
		{"many decades", 0.5, 20000, []float64{1, 10, 100, 1000, 10000}},
		{"few decades", 3, 300, []float64{5, 10, 20, 50, 100, 200}},
		{"within decade", 20, 80, []float64{20, 30, 40, 50, 60, 70, 80}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LogTicks(tt.lo, tt.hi, 6)
			if diff := cmp.Diff(tt.want, got, cmpopts.EquateApprox(1e-9, 0)); diff != "" {
				t.Errorf("LogTicks() mismatch (-want +got):\n%s", diff)
			}
		})
	}
	if got := LogTicks(0, 10, 6); got != nil {
		t.Errorf("LogTicks(0, 10) = %v, want nil", got)
	}
	for _, v := range LogTicks(1e-36, math.MaxFloat64, 6) {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			t.Fatalf("LogTicks up to MaxFloat64 produced %v", v)
		}
	}
}

func TestPaddedDomainHugeValues(t *testing.T) {
	lo, hi := PaddedDomain([]float64{0, math.MaxFloat64}, Bounds{})
	if lo != 0 || hi != math.MaxFloat64 {
		t.Errorf("PaddedDomain() = [%v, %v], want [0, MaxFloat64]", lo, hi)
	}
}

func TestTransformRescale(t *testing.T) {
	x := NewLinear(0, 100, 0, 500)
	y := NewLinear(0, 50, 300, 0)

	if got := Identity.RescaleX(x); got != Scale(x) {
		t.Errorf("Identity.RescaleX() = %v, want unchanged", got)
	}

	zoom := Transform{K: 2}
	zx := zoom.RescaleX(x)
	lo, hi := zx.Domain()
	if !approx(lo, 0) || !approx(hi, 50) {
		t.Errorf("RescaleX(k=2) domain = [%v, %v], want [0, 50]", lo, hi)
	}
	zy := zoom.RescaleY(y)
	lo, hi = zy.Domain()
	if !approx(lo, 25) || !approx(hi, 50) {
		t.Errorf("RescaleY(k=2) domain = [%v, %v], want [25, 50]", lo, hi)
	}

	// A point's zoomed position equals the transform applied to its original
	// position.
	for _, v := range []float64{0, 10, 33, 80} {
		if got, want := zx.Map(v), zoom.ApplyX(x.Map(v)); !approx(got, want) {
			t.Errorf("zoomed Map(%v) = %v, want %v", v, got, want)
		}
	}

	pan := Transform{K: 1, X: -100}
	px := pan.RescaleX(x)
	lo, hi = px.Domain()
	if !approx(lo, 20) || !approx(hi, 120) {
		t.Errorf("RescaleX(pan) domain = [%v, %v], want [20, 120]", lo, hi)
	}
}

func TestTransformThenKeepsFocusFixed(t *testing.T) {
	tr := Identity.Then(2, 150, 80)
	if got := tr.ApplyX(150); !approx(got, 150) {
		t.Errorf("ApplyX(focus) = %v, want 150", got)
	}
	if got := tr.ApplyY(80); !approx(got, 80) {
		t.Errorf("ApplyY(focus) = %v, want 80", got)
	}
	tr = tr.Then(1.5, 10, 10)
	if !approx(tr.K, 3) {
		t.Errorf("K = %v, want 3", tr.K)
	}
	if got := tr.Pan(5, -5); got.X != tr.X+5 || got.Y != tr.Y-5 {
		t.Errorf("Pan() = %+v", got)
	}
	if !(Transform{}).IsIdentity() || (Transform{K: 2}).IsIdentity() {
		t.Error("IsIdentity() wrong")
	}
}
