// Package widgets describes the presentation collaborators (sliders,
// lightbox, scroll effects) a page starts in the browser, behind a small
// mount/dispose capability so pages never depend on a concrete library.
package widgets

import (
	"errors"
	"fmt"
	"maps"
	"sort"
	"sync"

	"github.com/google/uuid"
)

var (
	ErrUnknownWidget = errors.New("unknown widget")
	ErrUnknownHandle = errors.New("handle is not mounted")
	ErrClosed        = errors.New("controller is closed")
)

// Handle is a mounted widget instance. Options are handed to the client-side
// library unchanged.
type Handle struct {
	ID        string         `json:"id"`
	Widget    string         `json:"widget"`
	Container string         `json:"container"`
	Options   map[string]any `json:"options,omitempty"`
}

// Widget is the capability every presentation collaborator offers.
type Widget interface {
	Name() string
	Mount(container string) (Handle, error)
	Dispose(h Handle) error
}

// Tracked is a Widget that remembers its live handles, so a leaked mount
// is visible through Live.
type Tracked struct {
	name    string
	options map[string]any

	mu   sync.Mutex
	live map[string]Handle
}

func NewTracked(name string, options map[string]any) *Tracked {
	return &Tracked{name: name, options: options, live: make(map[string]Handle)}
}

func (t *Tracked) Name() string { return t.name }

func (t *Tracked) Mount(container string) (Handle, error) {
	if container == "" {
		return Handle{}, fmt.Errorf("mount %s: empty container", t.name)
	}
	h := Handle{
		ID:        uuid.NewString(),
		Widget:    t.name,
		Container: container,
		Options:   maps.Clone(t.options),
	}
	t.mu.Lock()
	t.live[h.ID] = h
	t.mu.Unlock()
	return h, nil
}

func (t *Tracked) Dispose(h Handle) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.live[h.ID]; !ok {
		return fmt.Errorf("dispose %s %s: %w", t.name, h.ID, ErrUnknownHandle)
	}
	delete(t.live, h.ID)
	return nil
}

// Live is the number of handles mounted and not yet disposed.
func (t *Tracked) Live() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.live)
}

// Registry maps widget names to implementations. Swapping an entry swaps the
// presentation library without touching pages.
type Registry struct {
	mu      sync.RWMutex
	widgets map[string]Widget
}

func NewRegistry(ws ...Widget) *Registry {
	r := &Registry{widgets: make(map[string]Widget, len(ws))}
	for _, w := range ws {
		r.Register(w)
	}
	return r
}

func (r *Registry) Register(w Widget) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.widgets[w.Name()] = w
}

func (r *Registry) Get(name string) (Widget, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.widgets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownWidget, name)
	}
	return w, nil
}

// Names lists the registered widgets, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.widgets))
	for n := range r.widgets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
