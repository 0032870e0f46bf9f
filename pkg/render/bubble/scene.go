package bubble

import (
	"github.com/matzehuels/bubblechart/pkg/format"
	"github.com/matzehuels/bubblechart/pkg/query"
	"github.com/matzehuels/bubblechart/pkg/scale"
	"github.com/matzehuels/bubblechart/pkg/style"
)

// Size is a width and height in pixels.
type Size struct {
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Point is a pixel position.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Margin is the space between the container edge and the plot area.
type Margin struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// Line is a segment in plot coordinates.
type Line struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// Tick is one axis tick with its gridline position.
type Tick struct {
	Value float64 `json:"value"`
	Pos   float64 `json:"pos"`
	Label string  `json:"label"`
}

// Axis describes one positional axis.
type Axis struct {
	Title  string      `json:"title"`
	Format format.Kind `json:"format"`
	Log    bool        `json:"log,omitempty"`
	// Base is the unzoomed domain; Domain is the visible one.
	Base   [2]float64 `json:"base"`
	Domain [2]float64 `json:"domain"`
	Ticks  []Tick     `json:"ticks"`
	// TitlePos is the title anchor in plot coordinates. The Y title is drawn
	// rotated by -90°, so its anchor is given in the rotated frame.
	TitlePos Point `json:"title_pos"`
}

// QuadrantLabel is a caption for one quadrant.
type QuadrantLabel struct {
	Text string  `json:"text"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// Quadrants holds the divider lines and labels.
type Quadrants struct {
	// XMid and YMid are the divider positions in data space.
	XMid       float64          `json:"x_mid"`
	YMid       float64          `json:"y_mid"`
	Vertical   Line             `json:"vertical"`
	Horizontal Line             `json:"horizontal"`
	Labels     [4]QuadrantLabel `json:"labels"`
}

// TooltipRow is one name/value line of a tooltip.
type TooltipRow struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Tooltip is the hover content for a bubble.
type Tooltip struct {
	Title string       `json:"title"`
	Rows  []TooltipRow `json:"rows"`
}

// Bubble is one positioned, styled datum.
type Bubble struct {
	Datum         query.Datum `json:"datum"`
	CX            float64     `json:"cx"`
	CY            float64     `json:"cy"`
	R             float64     `json:"r"`
	Color         string      `json:"color"`
	FillOpacity   float64     `json:"fill_opacity"`
	StrokeWidth   float64     `json:"stroke_width"`
	StrokeOpacity float64     `json:"stroke_opacity"`
	Hovered       bool        `json:"hovered,omitempty"`
	// Label is the store label anchor (text centred, baseline at Y). Nil when
	// labels are hidden.
	Label   *Point  `json:"label,omitempty"`
	Tooltip Tooltip `json:"tooltip"`
}

// LegendEntry is one size sample in the legend, in container coordinates.
type LegendEntry struct {
	Value  float64 `json:"value"`
	R      float64 `json:"r"`
	Label  string  `json:"label"`
	CX     float64 `json:"cx"`
	CY     float64 `json:"cy"`
	LabelY float64 `json:"label_y"`
}

// Legend explains the size encoding.
type Legend struct {
	Title    string        `json:"title"`
	TitlePos Point         `json:"title_pos"`
	Entries  []LegendEntry `json:"entries"`
}

// Scene is the complete visual tree of one render. Positions of plot
// elements are relative to the plot origin (Margin.Left, Margin.Top); legend
// positions are relative to the container.
type Scene struct {
	Width  float64     `json:"width"`
	Height float64     `json:"height"`
	Margin Margin      `json:"margin"`
	Plot   Size        `json:"plot"`
	Theme  style.Theme `json:"theme"`

	// Message is set for placeholder scenes, Error for failed renders. Either
	// one means the scene has no chart content.
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`

	X         Axis       `json:"x"`
	Y         Axis       `json:"y"`
	Quadrants *Quadrants `json:"quadrants,omitempty"`
	Bubbles   []Bubble   `json:"bubbles,omitempty"`
	Legend    *Legend    `json:"legend,omitempty"`

	Currency  string          `json:"currency"`
	Transform scale.Transform `json:"transform"`
}

// Empty reports whether the scene shows a message instead of a chart.
func (s Scene) Empty() bool {
	return s.Message != "" || s.Error != ""
}

// Text returns the message to display for an empty scene.
func (s Scene) Text() string {
	if s.Error != "" {
		return s.Error
	}
	return s.Message
}
