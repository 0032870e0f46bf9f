// Package host models the dashboard plugin contract.
//
// A dashboard host mounts a visualization into a [Container], calls
// Create once, and then calls UpdateAsync whenever the data, the
// configuration or the tile size changes. Every UpdateAsync call must invoke
// its [Done] callback exactly once, whatever happens during rendering.
//
// Visualizations are looked up in a [Registry] that is built explicitly at
// process start:
//
//	reg := host.DefaultRegistry()
//	viz, err := reg.Get(host.BubbleChartID)
//	c := host.NewContainer(bubble.Size{W: 800, H: 500})
//	viz.Create(c, opts)
//	viz.UpdateAsync(ctx, rows, c, opts, resp, host.Details{}, func() { ... })
//	scene, _ := c.Scene()
package host

import (
	"context"
	"sync"

	"github.com/matzehuels/bubblechart/pkg/query"
	"github.com/matzehuels/bubblechart/pkg/style"
)

// Done signals the host that an update has finished.
type Done func()

// Details carries per-update hints from the host.
type Details struct {
	// Changed lists what triggered the update: "data", "config" or "size".
	Changed []string `json:"changed,omitempty"`
	// Print is set when the tile is rendered for export.
	Print bool `json:"print,omitempty"`
}

// Visualization is a chart plugin.
type Visualization interface {
	// ID is the stable plugin identifier.
	ID() string
	// Label is the human-readable name.
	Label() string
	// Options describes the configuration panel.
	Options() []OptionSpec
	// Create prepares an empty container.
	Create(c *Container, opts style.Options)
	// UpdateAsync renders rows into c and calls done exactly once.
	UpdateAsync(ctx context.Context, rows []query.Row, c *Container, opts style.Options, resp query.Response, d Details, done Done)
}

// Once wraps done so that only its first invocation has any effect. A nil
// done becomes a no-op.
func Once(done Done) Done {
	var once sync.Once
	return func() {
		once.Do(func() {
			if done != nil {
				done()
			}
		})
	}
}
