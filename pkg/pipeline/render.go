package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/bubblechart/pkg/errors"
	"github.com/matzehuels/bubblechart/pkg/host"
	"github.com/matzehuels/bubblechart/pkg/observability"
	"github.com/matzehuels/bubblechart/pkg/render/bubble"
	"github.com/matzehuels/bubblechart/pkg/render/bubble/sink"
)

// RenderScene renders req through v into a fresh container and applies the
// requested zoom and hover. The returned error is non-nil when the scene is
// an inline error scene; the scene is still usable in that case. A cancelled
// context yields no scene.
func RenderScene(ctx context.Context, v host.Visualization, req Request) (bubble.Scene, error) {
	opts := req.Options
	c := host.NewContainer(opts.Size())
	styleOpts := opts.StyleOptions()

	v.Create(c, styleOpts)
	v.UpdateAsync(ctx, req.Rows, c, styleOpts, req.Response(), host.Details{Print: true}, nil)

	s, ok := c.Scene()
	if !ok {
		if err := c.Err(); err != nil {
			return bubble.Scene{}, err
		}
		return bubble.Scene{}, errors.New(errors.ErrCodeInternal, "visualization %q produced no output", v.ID())
	}
	if opts.Zoom != nil {
		s = s.Zoom(*opts.Zoom)
	}
	if opts.Hover != nil {
		s = s.Hover(*opts.Hover)
	}
	if err := c.Err(); err != nil {
		return s, errors.Wrap(errors.ErrCodeRenderFailure, err, "render %s", v.ID())
	}
	return s, nil
}

// Emit serializes s in each of the requested formats.
func Emit(ctx context.Context, s bubble.Scene, opts Options) (map[string][]byte, error) {
	hooks := observability.Render()
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		start := time.Now()
		hooks.OnSinkStart(ctx, format)

		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(s, sink.WithInteraction(!opts.Static))
		case FormatPNG:
			data, err = sink.RenderPNG(s, sink.WithScale(opts.Scale))
		case FormatJSON:
			data, err = sink.RenderJSON(s,
				sink.WithJSONVisualization(opts.VizID),
				sink.WithJSONOptions(opts.StyleOptions()))
		default:
			err = errors.New(errors.ErrCodeUnsupported, "unsupported format: %s", format)
		}

		hooks.OnSinkComplete(ctx, format, len(data), time.Since(start), err)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}
