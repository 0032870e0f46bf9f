package host

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/bubblechart/pkg/observability"
	"github.com/matzehuels/bubblechart/pkg/query"
	"github.com/matzehuels/bubblechart/pkg/render/bubble"
	"github.com/matzehuels/bubblechart/pkg/style"
)

// BubbleChartID identifies the store efficiency bubble chart.
const BubbleChartID = "bubble_chart_store"

// BubbleChart adapts [bubble.Render] to the plugin contract.
type BubbleChart struct{}

// NewBubbleChart returns the bubble chart visualization.
func NewBubbleChart() *BubbleChart { return &BubbleChart{} }

func (*BubbleChart) ID() string            { return BubbleChartID }
func (*BubbleChart) Label() string         { return "Bubble Chart: Store Efficiency" }
func (*BubbleChart) Options() []OptionSpec { return BubbleChartOptions() }

// Create resets the container. Nothing is drawn until the first update.
func (*BubbleChart) Create(c *Container, _ style.Options) {
	c.Clear()
}

// UpdateAsync renders rows into c, replacing any previous output. done is
// called exactly once on every path. A context that is already cancelled
// leaves the previous scene in place and records the context error.
func (v *BubbleChart) UpdateAsync(ctx context.Context, rows []query.Row, c *Container, opts style.Options, resp query.Response, _ Details, done Done) {
	done = Once(done)
	defer done()

	hooks := observability.Render()
	start := time.Now()
	hooks.OnRenderStart(ctx, v.ID(), len(rows))

	var (
		scene bubble.Scene
		err   error
	)
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("update panic: %v", r)
			c.replace(bubble.ErrorScene(opts, c.Size(), fmt.Errorf("%v", r)), err)
		}
		hooks.OnRenderComplete(ctx, v.ID(), len(scene.Bubbles), time.Since(start), err)
	}()

	if err = ctx.Err(); err != nil {
		c.fail(err)
		return
	}

	scene, err = bubble.RenderSafe(rows, resp.Fields.Ordered(), opts, c.Size())
	c.replace(scene, err)
}
