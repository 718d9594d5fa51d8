package tool

import (
	"context"
	"fmt"
	"strings"
	"sync"

	contractx "github.com/wanderstay/concierge/agent/contract"
)

// Handler executes one tool call on behalf of identity. The identity always
// comes from the session binding, never from model-controlled arguments.
// Handlers may return an error; the Executor absorbs it into a ToolResult.
type Handler func(ctx context.Context, identity string, args map[string]any) (string, error)

// Catalog maps tool names to their declarations and handlers. It is the
// single source of truth for what the reasoning service may invoke.
type Catalog struct {
	mu       sync.RWMutex
	specs    map[string]contractx.ToolSpec
	handlers map[string]Handler
	order    []string
}

func NewCatalog() *Catalog {
	return &Catalog{
		specs:    make(map[string]contractx.ToolSpec),
		handlers: make(map[string]Handler),
	}
}

func (c *Catalog) Register(spec contractx.ToolSpec, handler Handler) error {
	name := strings.TrimSpace(spec.Name)
	if name == "" {
		return fmt.Errorf("%w: tool name is empty", contractx.ErrValidation)
	}
	if handler == nil {
		return fmt.Errorf("%w: handler for tool=%s is nil", contractx.ErrValidation, name)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.specs[name]; exists {
		return fmt.Errorf("%w: tool=%s already registered", contractx.ErrValidation, name)
	}
	spec.Name = name
	c.specs[name] = spec
	c.handlers[name] = handler
	c.order = append(c.order, name)
	return nil
}

func (c *Catalog) MustRegister(spec contractx.ToolSpec, handler Handler) {
	if err := c.Register(spec, handler); err != nil {
		panic(err)
	}
}

// Resolve returns the handler and declaration for name.
func (c *Catalog) Resolve(name string) (Handler, contractx.ToolSpec, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	handler, ok := c.handlers[name]
	if !ok {
		return nil, contractx.ToolSpec{}, false
	}
	return handler, c.specs[name], true
}

// Specs returns the declarations in registration order.
func (c *Catalog) Specs() []contractx.ToolSpec {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]contractx.ToolSpec, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.specs[name])
	}
	return out
}
