package host

import (
	"slices"
	"sync"

	"github.com/matzehuels/bubblechart/pkg/errors"
)

// Registry maps visualization ids to implementations.
type Registry struct {
	mu   sync.RWMutex
	byID map[string]Visualization
}

// NewRegistry builds a registry from vs. Invalid or duplicate ids are
// rejected.
func NewRegistry(vs ...Visualization) (*Registry, error) {
	r := &Registry{byID: make(map[string]Visualization, len(vs))}
	for _, v := range vs {
		if err := r.Register(v); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// DefaultRegistry returns a registry holding every built-in visualization.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(NewBubbleChart())
	if err != nil {
		panic(err)
	}
	return r
}

// Register adds v.
func (r *Registry) Register(v Visualization) error {
	id := v.ID()
	if err := errors.ValidateVisualizationID(id); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; ok {
		return errors.New(errors.ErrCodeDuplicateViz, "visualization %q already registered", id)
	}
	r.byID[id] = v
	return nil
}

// Get returns the visualization registered under id.
func (r *Registry) Get(id string) (Visualization, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.byID[id]
	if !ok {
		return nil, errors.New(errors.ErrCodeVizNotFound, "unknown visualization %q", id)
	}
	return v, nil
}

// IDs returns the registered ids in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.byID))
	for id := range r.byID {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
