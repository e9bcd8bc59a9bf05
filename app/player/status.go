package player

import (
	"sync"
	"time"

	"github.com/lysyi3m/rss-marquee/app/feed"
)

type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseBanner    Phase = "banner"
	PhaseFetching  Phase = "fetching"
	PhaseScrolling Phase = "scrolling"
)

// Status is a point-in-time view of the loop for readers on other goroutines.
type Status struct {
	Feed      string        `json:"feed"`
	URL       string        `json:"url"`
	Category  feed.Category `json:"category"`
	Index     int           `json:"index"`
	Total     int           `json:"total"`
	Phase     Phase         `json:"phase"`
	Text      string        `json:"text,omitempty"`
	Shown     int           `json:"shown"`
	Cycles    int           `json:"cycles"`
	LastError string        `json:"last_error,omitempty"`
	UpdatedAt time.Time     `json:"updated_at"`
}

type statusBox struct {
	mu     sync.RWMutex
	status Status
}

func (b *statusBox) get() Status {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.status
}

func (b *statusBox) update(fn func(s *Status)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	fn(&b.status)
}
