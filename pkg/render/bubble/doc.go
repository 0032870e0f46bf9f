// Package bubble renders the store efficiency bubble chart.
//
// # Overview
//
// Each row becomes one bubble: discount volume on X, average order value on
// Y, and total sales encoded as bubble area. [Render] is a pure, synchronous
// pass from rows, fields, options and container size to a [Scene], the
// complete visual tree. Sinks in the [sink] subpackage turn a Scene into SVG,
// PNG or JSON.
//
//	scene := bubble.Render(rows, fields, style.Parse(cfg), bubble.Size{W: 600, H: 400})
//	svg := sink.RenderSVG(scene)
//
// # Scales
//
// X is linear, or log10 when x_axis_log_scale is set. Y is linear. Both
// domains are padded by 12% of the observed range with the lower bound kept
// at or above zero unless overridden. Radii use a square-root scale so that
// rendered area is proportional to the size value.
//
// # Interaction
//
// [Scene.Zoom] re-projects every positional element for a zoom/pan transform
// while keeping radii and the legend fixed, so the area encoding stays in
// screen pixels. [Scene.Hover] raises one bubble and [PlaceTooltip] positions
// a tooltip inside the viewport.
//
// # Failure handling
//
// Fewer than four fields or no rows yields a placeholder scene, not an error.
// [RenderSafe] converts a panic into a scene carrying an inline error message
// and also returns the error, so callers can always report completion.
//
// [sink]: github.com/matzehuels/bubblechart/pkg/render/bubble/sink
package bubble
