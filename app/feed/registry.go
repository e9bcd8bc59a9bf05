package feed

import (
	"errors"
	"sync"
)

var ErrNoSources = errors.New("no feed sources configured")

// Registry is the ordered source list and the cursor of the source on
// display. The mutex only guards readers outside the display loop (status
// API); the loop is the sole writer.
type Registry struct {
	mu      sync.RWMutex
	sources []Source
	index   int
}

// NewRegistry copies and sorts sources. It fails when sources is empty.
func NewRegistry(sources []Source) (*Registry, error) {
	if len(sources) == 0 {
		return nil, ErrNoSources
	}

	sorted := make([]Source, len(sources))
	copy(sorted, sources)
	SortSources(sorted)

	return &Registry{sources: sorted}, nil
}

func (r *Registry) Current() Source {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sources[r.index]
}

func (r *Registry) Index() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.index
}

func (r *Registry) Len() int {
	return len(r.sources)
}

// Sources returns a copy of the ordered source list.
func (r *Registry) Sources() []Source {
	out := make([]Source, len(r.sources))
	copy(out, r.sources)
	return out
}

func (r *Registry) Advance() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.index = (r.index + 1) % len(r.sources)
}

func (r *Registry) Retreat() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.index = (r.index - 1 + len(r.sources)) % len(r.sources)
}
