package format

import (
	"math"
	"testing"
)

func TestNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{100, "100"},
		{1234, "1,234"},
		{1234.5, "1,234.5"},
		{-98765, "-98,765"},
		{0.1 + 0.2, "0.3"},
		{math.NaN(), "0"},
		{math.Inf(1), "0"},
	}
	for _, tt := range tests {
		if got := Number(tt.in); got != tt.want {
			t.Errorf("Number(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCurrency(t *testing.T) {
	tests := []struct {
		in       float64
		symbol   string
		decimals int
		want     string
	}{
		{50, "€", 0, "€50"},
		{1234, "€", 0, "€1,234"},
		{42.5, "€", 2, "€42.50"},
		{1234.567, "$", 2, "$1,234.57"},
		{-1500, "€", 0, "-€1,500"},
		{-0.001, "€", 0, "€0"},
	}
	for _, tt := range tests {
		if got := Currency(tt.in, tt.symbol, tt.decimals); got != tt.want {
			t.Errorf("Currency(%v, %q, %d) = %q, want %q", tt.in, tt.symbol, tt.decimals, got, tt.want)
		}
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0%"},
		{0.12, "12%"},
		{0.125, "13%"},
		{1, "100%"},
		{12.5, "1,250%"},
	}
	for _, tt := range tests {
		if got := Percent(tt.in); got != tt.want {
			t.Errorf("Percent(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSI(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.0"},
		{1, "1.0"},
		{500, "500"},
		{523, "520"},
		{1000, "1.0k"},
		{2500, "2.5k"},
		{4000, "4.0k"},
		{12500, "13k"},
		{999.7, "1.0k"},
		{1500000, "1.5M"},
		{0.5, "500m"},
	}
	for _, tt := range tests {
		if got := SI(tt.in); got != tt.want {
			t.Errorf("SI(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAxis(t *testing.T) {
	tests := []struct {
		v    float64
		kind Kind
		want string
	}{
		{1200, KindNumber, "1,200"},
		{80, KindCurrency, "€80"},
		{0.4, KindPercent, "40%"},
		{1200, KindAuto, "1,200"},
	}
	for _, tt := range tests {
		if got := Axis(tt.v, tt.kind, DefaultCurrency); got != tt.want {
			t.Errorf("Axis(%v, %s) = %q, want %q", tt.v, tt.kind, got, tt.want)
		}
	}
}

func TestParseKind(t *testing.T) {
	tests := map[string]Kind{
		"":          KindAuto,
		"auto":      KindAuto,
		"Currency":  KindCurrency,
		" percent ": KindPercent,
		"number":    KindNumber,
		"bogus":     KindAuto,
	}
	for in, want := range tests {
		if got := ParseKind(in); got != want {
			t.Errorf("ParseKind(%q) = %q, want %q", in, got, want)
		}
	}

	if got := KindAuto.Resolve(KindCurrency); got != KindCurrency {
		t.Errorf("KindAuto.Resolve() = %q, want currency", got)
	}
	if got := KindPercent.Resolve(KindCurrency); got != KindPercent {
		t.Errorf("KindPercent.Resolve() = %q, want percent", got)
	}
}
