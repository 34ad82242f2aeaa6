package widgets

import (
	"errors"
	"fmt"
	"sync"
)

// Controller owns the widgets mounted for the current page. Entering a page
// disposes everything the previous page mounted first, so nothing leaks
// across page transitions.
type Controller struct {
	registry *Registry
	plans    Plans

	mu      sync.Mutex
	page    string
	handles []Handle
	closed  bool
}

func NewController(registry *Registry, plans Plans) *Controller {
	return &Controller{registry: registry, plans: plans}
}

// Enter tears down the current page and mounts the plan of page. If a mount
// fails, the widgets mounted so far are disposed again.
func (c *Controller) Enter(page string) ([]Handle, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, ErrClosed
	}
	if err := c.teardown(); err != nil {
		return nil, err
	}

	for _, m := range c.plans[page] {
		w, err := c.registry.Get(m.Widget)
		if err == nil {
			var h Handle
			h, err = w.Mount(m.Container)
			if err == nil {
				c.handles = append(c.handles, h)
				continue
			}
		}
		return nil, errors.Join(fmt.Errorf("enter %s: %w", page, err), c.teardown())
	}

	c.page = page
	return append([]Handle(nil), c.handles...), nil
}

// Leave disposes the current page's widgets.
func (c *Controller) Leave() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.teardown()
}

// Close disposes everything; the controller cannot be used afterwards.
func (c *Controller) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	return c.teardown()
}

// Page is the page currently entered, empty before the first Enter.
func (c *Controller) Page() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page
}

// teardown disposes in reverse mount order. Callers hold mu.
func (c *Controller) teardown() error {
	var errs []error
	for i := len(c.handles) - 1; i >= 0; i-- {
		h := c.handles[i]
		w, err := c.registry.Get(h.Widget)
		if err == nil {
			err = w.Dispose(h)
		}
		if err != nil {
			errs = append(errs, err)
		}
	}
	c.handles = nil
	c.page = ""
	return errors.Join(errs...)
}
