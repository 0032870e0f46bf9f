// Package render groups the chart renderers.
//
// # Bubble Chart
//
// The [bubble] subpackage renders the store efficiency chart: one bubble per
// store, positioned by discounts redeemed (x) and average order value (y),
// sized by total sales. Rendering produces a [bubble.Scene], a plain value
// describing every axis, gridline, quadrant, bubble, label and tooltip in
// container coordinates. Scenes carry no output format.
//
//	scene := bubble.Render(rows, fields, opts, bubble.Size{W: 600, H: 400})
//
// Key bubble subpackages:
//   - [bubble/sink]: Output formats (SVG with zoom/tooltip script, PNG, JSON)
//
// # Interaction
//
// Zoom and hover are pure functions of a scene, so every sink and the
// terminal inspector show identical state:
//
//	zoomed := scene.Zoom(scale.Transform{K: 2, X: -300, Y: -200})
//	hovered := zoomed.Hover(3)
//	svg := sink.RenderSVG(hovered, sink.WithInteraction(false))
package render
