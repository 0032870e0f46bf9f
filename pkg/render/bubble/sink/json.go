package sink

import (
	"encoding/json"

	"github.com/matzehuels/bubblechart/pkg/render/bubble"
	"github.com/matzehuels/bubblechart/pkg/style"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	visualization string
	options       *style.Options
}

// WithJSONVisualization records the visualization id in the output.
func WithJSONVisualization(id string) JSONOption {
	return func(r *jsonRenderer) { r.visualization = id }
}

// WithJSONOptions records the effective style options so that a client can
// re-render the same chart.
func WithJSONOptions(o style.Options) JSONOption {
	return func(r *jsonRenderer) { r.options = &o }
}

type jsonOutput struct {
	Visualization string         `json:"visualization,omitempty"`
	Options       *style.Options `json:"options,omitempty"`
	bubble.Scene
}

// RenderJSON encodes the scene as indented JSON.
func RenderJSON(s bubble.Scene, opts ...JSONOption) ([]byte, error) {
	var r jsonRenderer
	for _, opt := range opts {
		opt(&r)
	}
	return json.MarshalIndent(jsonOutput{
		Visualization: r.visualization,
		Options:       r.options,
		Scene:         s,
	}, "", "  ")
}
