// Package format turns chart values into axis, tooltip and legend strings.
//
// Grouping follows English conventions ("1,234.5"). Formatting never fails:
// NaN and infinities render as "0" so a bad cell cannot break a label.
package format

import (
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Kind selects how an axis formats its tick values.
type Kind string

const (
	KindAuto     Kind = "auto"
	KindNumber   Kind = "number"
	KindCurrency Kind = "currency"
	KindPercent  Kind = "percent"
)

// DefaultCurrency is the symbol used when none is configured.
const DefaultCurrency = "€"

// ParseKind maps a config value onto a Kind. Unknown values become KindAuto.
func ParseKind(s string) Kind {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindNumber:
		return KindNumber
	case KindCurrency:
		return KindCurrency
	case KindPercent:
		return KindPercent
	}
	return KindAuto
}

// Resolve replaces KindAuto with fallback.
func (k Kind) Resolve(fallback Kind) Kind {
	if k == KindAuto || k == "" {
		return fallback
	}
	return k
}

var printer = message.NewPrinter(language.English)

// Number formats v with thousands grouping and no trailing zeros.
//
//	Number(1234)    // "1,234"
//	Number(1234.5)  // "1,234.5"
func Number(v float64) string {
	return humanize.Commaf(clean(v))
}

// Fixed formats v with grouping and exactly decimals fraction digits.
func Fixed(v float64, decimals int) string {
	if decimals < 0 {
		decimals = 0
	}
	return printer.Sprintf("%."+strconv.Itoa(decimals)+"f", clean(v))
}

// Currency formats v as a grouped amount prefixed with symbol. The sign goes
// before the symbol: "-€1,234".
func Currency(v float64, symbol string, decimals int) string {
	v = clean(v)
	sign := ""
	if v < 0 && Fixed(-v, decimals) != Fixed(0, decimals) {
		sign = "-"
	}
	return sign + symbol + Fixed(math.Abs(v), decimals)
}

// Percent formats a ratio as a whole percentage: 0.125 → "13%".
func Percent(v float64) string {
	return Fixed(math.Round(clean(v)*100), 0) + "%"
}

// SI formats v with two significant digits and an SI prefix, matching the
// size legend: 4000 → "4.0k", 12500 → "13k", 500 → "500".
func SI(v float64) string {
	v = clean(v)
	if v == 0 {
		return "0.0"
	}
	v = roundSignificant(v, 2)
	scaled, prefix := humanize.ComputeSI(v)
	exp := int(math.Floor(math.Log10(math.Abs(scaled)) + 1e-9))
	decimals := max(0, 1-exp)
	return strconv.FormatFloat(scaled, 'f', decimals, 64) + prefix
}

// Axis formats a tick value for the given axis kind.
func Axis(v float64, kind Kind, symbol string) string {
	switch kind {
	case KindCurrency:
		return Currency(v, symbol, 0)
	case KindPercent:
		return Percent(v)
	default:
		return Number(v)
	}
}

// clean drops non-finite values and binary noise such as 0.30000000000000004.
func clean(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	c, err := strconv.ParseFloat(strconv.FormatFloat(v, 'g', 12, 64), 64)
	if err != nil {
		return v
	}
	if c == 0 {
		return 0
	}
	return c
}

func roundSignificant(v float64, digits int) float64 {
	exp := math.Floor(math.Log10(math.Abs(v)))
	mult := math.Pow(10, exp-float64(digits-1))
	return math.Round(v/mult) * mult
}
