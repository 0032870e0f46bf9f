// Package sink converts a bubble chart [bubble.Scene] into output formats.
//
// # Formats
//
//   - SVG ([RenderSVG]): vector output with optional embedded CSS and script.
//     Interactive output supports hover highlighting with tooltips, wheel
//     zoom about the pointer and drag to pan. Double-click resets the view.
//   - PNG ([RenderPNG]): raster output drawn with go-chart's renderer.
//   - JSON ([RenderJSON]): the scene itself, for clients that draw their own
//     chart.
//
// # SVG structure
//
// The root element carries the geometry the script needs as data
// attributes (plot size, margins, unzoomed domains, formats, transform).
// Each bubble is a circle with class "bubble" and data attributes for its
// datum (data-store, data-x, data-y, data-size) and its unzoomed pixel
// position (data-px, data-py). Tooltips are groups with class "tooltip"
// whose data-for attribute names the bubble they belong to.
//
// Placeholder and error scenes render only the background and the message.
//
// # Example
//
//	scene := bubble.Render(rows, fields, style.Default(), bubble.Size{W: 800, H: 500})
//	svg := sink.RenderSVG(scene, sink.WithInteraction(true))
//	png, err := sink.RenderPNG(scene, sink.WithScale(2))
package sink
