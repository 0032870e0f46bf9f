// Package pipeline provides the render pipeline shared by the CLI and the
// HTTP API.
//
// A pipeline run takes a query result (fields and rows) plus a flat style
// option map, renders it through a registered visualization, and emits the
// requested output formats. Outputs are memoized in a [cache.Cache] keyed by
// a hash of everything that influences the bytes produced.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Render: build a [bubble.Scene] through the visualization's host
//     adapter, then apply the requested zoom and hover
//  2. Emit: serialize the scene to SVG, PNG or JSON
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, nil, logger)
//	req := pipeline.NewRequest(doc, pipeline.Options{
//	    Formats: []string{"svg"},
//	    Style:   map[string]any{"color_scheme": "coral"},
//	})
//	result, err := runner.Execute(ctx, req)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"time"

	"github.com/matzehuels/bubblechart/pkg/cache"
	"github.com/matzehuels/bubblechart/pkg/errors"
	"github.com/matzehuels/bubblechart/pkg/host"
	"github.com/matzehuels/bubblechart/pkg/query"
	"github.com/matzehuels/bubblechart/pkg/render/bubble"
	"github.com/matzehuels/bubblechart/pkg/scale"
	"github.com/matzehuels/bubblechart/pkg/style"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWidth is the default canvas width in pixels.
	DefaultWidth = 600.0

	// DefaultHeight is the default canvas height in pixels.
	DefaultHeight = 400.0

	// DefaultScale is the default PNG pixel density.
	DefaultScale = 2.0

	// MaxScale bounds the PNG pixel density.
	MaxScale = 8.0
)

// DefaultVizID is the visualization rendered when none is named.
const DefaultVizID = host.BubbleChartID

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatJSON: true,
}

// ContentType returns the MIME type of an output format.
func ContentType(format string) string {
	switch format {
	case FormatSVG:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	case FormatJSON:
		return "application/json"
	default:
		return "application/octet-stream"
	}
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a render run.
// This struct supports JSON serialization for API requests.
type Options struct {
	VizID   string   `json:"viz_id,omitempty"`
	Width   float64  `json:"width,omitempty"`
	Height  float64  `json:"height,omitempty"`
	Formats []string `json:"formats,omitempty"`

	// Zoom is an absolute zoom/pan transform applied after rendering.
	Zoom *scale.Transform `json:"zoom,omitempty"`

	// Hover highlights the bubble of this datum index and, in PNG output,
	// draws its tooltip.
	Hover *int `json:"hover,omitempty"`

	// Static omits the interaction script from SVG output.
	Static bool `json:"static,omitempty"`

	// Scale is the PNG pixel density.
	Scale float64 `json:"scale,omitempty"`

	// Style is the flat option map understood by [style.Parse].
	Style map[string]any `json:"config,omitempty"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Scene is the rendered scene. It is the zero Scene when every artifact
	// came from the cache.
	Scene bubble.Scene

	// RequestHash identifies the request in the cache.
	RequestHash string

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks whether the artifacts came from the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	RowCount    int
	BubbleCount int
	RenderTime  time.Duration
	EmitTime    time.Duration
}

// CacheInfo tracks cache hits for the run.
type CacheInfo struct {
	RenderHit bool // Whether all artifacts came from cache

	// Keys maps each format to its artifact cache key.
	Keys map[string]string

	// BackendErr is the first cache backend failure, coded
	// errors.ErrCodeCacheBackend. The run itself still succeeds.
	BackendErr error
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetDefaults()
	if err := errors.ValidateVisualizationID(o.VizID); err != nil {
		return err
	}
	if err := errors.ValidateDimensions(o.Width, o.Height); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Zoom != nil {
		if err := errors.ValidateZoom(o.Zoom.K, o.Zoom.X, o.Zoom.Y); err != nil {
			return err
		}
	}
	if o.Scale <= 0 || o.Scale > MaxScale {
		return errors.New(errors.ErrCodeInvalidInput, "scale %g out of range (0, %g]", o.Scale, MaxScale)
	}
	if o.Hover != nil && *o.Hover < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "hover index must not be negative")
	}
	o.validated = true
	return nil
}

// SetDefaults fills unset fields with their defaults.
func (o *Options) SetDefaults() {
	if o.VizID == "" {
		o.VizID = DefaultVizID
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
}

// StyleOptions parses the style option map.
func (o *Options) StyleOptions() style.Options {
	return style.Parse(o.Style)
}

// Size returns the canvas size.
func (o *Options) Size() bubble.Size {
	return bubble.Size{W: o.Width, H: o.Height}
}

// ArtifactKeyOpts returns cache key options for one output format. Only the
// parameters that affect a format's bytes are included.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case FormatSVG:
		k.Interactive = !o.Static
	case FormatPNG:
		k.Scale = o.Scale
	}
	return k
}

// =============================================================================
// Request
// =============================================================================

// Request is one render run: a query result plus options.
type Request struct {
	Fields  query.Fields `json:"fields"`
	Rows    []query.Row  `json:"rows"`
	Options Options      `json:"options"`
}

// NewRequest builds a request from a query document.
func NewRequest(doc query.Document, opts Options) Request {
	return Request{Fields: doc.Fields, Rows: doc.Data, Options: opts}
}

// Response returns the query metadata passed to the visualization.
func (r Request) Response() query.Response {
	return query.Response{Fields: r.Fields}
}

// Hash returns the content hash of everything that influences the scene.
// Output formats are not included; they are part of the artifact key.
func (r Request) Hash() (string, error) {
	h, err := cache.HashJSON(struct {
		VizID  string           `json:"viz_id"`
		Fields query.Fields     `json:"fields"`
		Rows   []query.Row      `json:"rows"`
		Style  map[string]any   `json:"style"`
		Width  float64          `json:"width"`
		Height float64          `json:"height"`
		Zoom   *scale.Transform `json:"zoom"`
		Hover  *int             `json:"hover"`
	}{
		VizID:  r.Options.VizID,
		Fields: r.Fields,
		Rows:   r.Rows,
		Style:  r.Options.Style,
		Width:  r.Options.Width,
		Height: r.Options.Height,
		Zoom:   r.Options.Zoom,
		Hover:  r.Options.Hover,
	})
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "hash request")
	}
	return h, nil
}
