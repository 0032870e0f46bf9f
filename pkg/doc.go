// Package pkg provides the core libraries for bubblechart.
//
// # Overview
//
// Bubblechart renders Looker query results as a store efficiency bubble
// chart. The pkg directory is organized into four main areas:
//
//  1. [query], [style], [format], [scale] - Domain inputs (rows, options,
//     number formats, axis scales)
//  2. [render] - The bubble renderer and its output sinks
//  3. [host] - The visualization host contract (registry, container, update cycle)
//  4. [pipeline], [cache] - Orchestration (validate → render → emit → cache)
//
// # Architecture
//
// The typical data flow through bubblechart:
//
//	Query result (fields + rows) + option map
//	         ↓
//	    [host] package (Create / UpdateAsync on a container)
//	         ↓
//	    [render/bubble] package (mapping, scales, layout → Scene)
//	         ↓
//	    [render/bubble/sink] package (SVG / PNG / JSON)
//	         ↓
//	    [cache] package (artifacts keyed by request hash)
//
// # Quick Start
//
// Render a query document to SVG through the pipeline:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/bubblechart/pkg/pipeline"
//	    "github.com/matzehuels/bubblechart/pkg/query"
//	)
//
//	doc, _ := query.ImportJSON("examples/query.json")
//	runner := pipeline.NewRunner(nil, nil, nil, nil)
//	result, _ := runner.Execute(context.Background(), pipeline.NewRequest(doc, pipeline.Options{
//	    Formats: []string{pipeline.FormatSVG},
//	    Style:   map[string]any{"color_scheme": "coral"},
//	}))
//	svg := result.Artifacts[pipeline.FormatSVG]
//
// # Main Packages
//
// ## Domain
//
// [query] - Query documents, fields in host order, cells with value and
// rendered text, and the row-to-datum mapping.
//
// [style] - Coercion of the loosely typed host option map into typed
// options, color palettes and the light/dark theme.
//
// [format] - Axis and tooltip number formats (auto SI, grouped number,
// currency, percent).
//
// [scale] - Linear, log and sqrt scales, nice ticks, and the zoom/pan
// transform.
//
// ## Rendering
//
// [render/bubble] - Scene construction, zoom and hover.
//
// [render/bubble/sink] - SVG with an embedded interaction script, PNG via
// go-chart, and JSON.
//
// [fonts] - Text measurement used for tooltip and label sizing.
//
// ## Host & Orchestration
//
// [host] - The visualization registry, per-instance containers and the
// asynchronous update cycle with its done callback.
//
// [pipeline] - Options validation, request hashing and the cached [pipeline.Runner].
//
// [cache] - Null, file and Redis backends with artifact keyers.
//
// ## Utilities
//
// [errors] - Coded errors with user-facing messages and HTTP status mapping.
//
// [observability] - Render, cache and HTTP hooks with no-op defaults.
//
// [buildinfo] - Version information injected at build time.
package pkg
