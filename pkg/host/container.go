package host

import (
	"sync"

	"github.com/matzehuels/bubblechart/pkg/render/bubble"
)

// Container is the element a visualization renders into. It holds the last
// scene and the tile size. All methods are safe for concurrent use.
type Container struct {
	mu      sync.Mutex
	size    bubble.Size
	scene   bubble.Scene
	has     bool
	err     error
	updates int
}

// NewContainer creates an empty container of the given size.
func NewContainer(size bubble.Size) *Container {
	return &Container{size: size}
}

// Size returns the tile size.
func (c *Container) Size() bubble.Size {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.size
}

// Resize changes the tile size. The current scene is kept until the next
// update.
func (c *Container) Resize(size bubble.Size) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.size = size
}

// Scene returns the last rendered scene.
func (c *Container) Scene() (bubble.Scene, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.scene, c.has
}

// Err returns the error of the last update, if any.
func (c *Container) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Updates returns how many updates have completed.
func (c *Container) Updates() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.updates
}

// Clear discards the rendered output.
func (c *Container) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scene, c.has, c.err = bubble.Scene{}, false, nil
}

// Apply replaces the current scene with fn(scene). It reports false, and
// does nothing, when the container is empty.
func (c *Container) Apply(fn func(bubble.Scene) bubble.Scene) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.has {
		return false
	}
	c.scene = fn(c.scene)
	return true
}

// replace swaps in the output of an update.
func (c *Container) replace(s bubble.Scene, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scene, c.has, c.err = s, true, err
	c.updates++
}

// fail records an update that produced no output.
func (c *Container) fail(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = err
	c.updates++
}
