package form

import (
	"strings"
	"sync"
)

// Context carries the latest published State from a Provider to the fields
// bound to the same form. Readers always see a complete snapshot.
type Context struct {
	mu    sync.RWMutex
	state State
}

// Current returns the most recently published state.
func (c *Context) Current() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *Context) publish(state State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = state
}

// Renderer is anything that renders itself, typically a bound *Field.
type Renderer interface {
	Render() string
}

// Provider publishes form state to bound fields.
type Provider struct {
	ctx *Context
}

// Provide makes state visible to every field bound to this form.
func (p *Provider) Provide(state State) {
	p.ctx.publish(state)
}

// Render publishes state and renders children top to bottom.
func (p *Provider) Render(state State, children ...Renderer) string {
	p.Provide(state)

	views := make([]string, 0, len(children))
	for _, child := range children {
		if child == nil {
			continue
		}
		views = append(views, child.Render())
	}
	return strings.Join(views, "\n")
}
