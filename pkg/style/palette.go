package style

import "sort"

var palettes = map[string][]string{
	"ocean":  {"#00c6ff", "#0072ff", "#4facfe", "#43e97b", "#38f9d7"},
	"coral":  {"#f7971e", "#ffd200", "#f953c6", "#b91d73", "#ee0979"},
	"forest": {"#56ab2f", "#a8e063", "#11998e", "#38ef7d", "#74ebd5"},
	"purple": {"#a18cd1", "#fbc2eb", "#c471ed", "#f64f59", "#c471ed"},
}

// Palette returns a copy of the named palette. Unknown names return ocean.
func Palette(name string) []string {
	p, ok := palettes[name]
	if !ok {
		p = palettes[DefaultScheme]
	}
	return append([]string(nil), p...)
}

// PaletteNames lists the known schemes in alphabetical order.
func PaletteNames() []string {
	names := make([]string, 0, len(palettes))
	for n := range palettes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Ordinal assigns palette colors to keys in first-seen order, cycling when
// there are more keys than colors.
type Ordinal struct {
	colors []string
	index  map[string]int
}

// NewOrdinal creates an ordinal color scale over the given palette.
func NewOrdinal(colors []string) *Ordinal {
	if len(colors) == 0 {
		colors = Palette(DefaultScheme)
	}
	return &Ordinal{colors: colors, index: make(map[string]int)}
}

// Color returns the color for key, assigning the next one on first use.
func (o *Ordinal) Color(key string) string {
	i, ok := o.index[key]
	if !ok {
		i = len(o.index)
		o.index[key] = i
	}
	return o.colors[i%len(o.colors)]
}
