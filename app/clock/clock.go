package clock

import (
	"sync"
	"time"
)

// Clock is the time source used by pacing code: scroll steps, banner holds
// and link retry backoff.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type Real struct{}

func (Real) Now() time.Time { return time.Now() }

func (Real) Sleep(d time.Duration) { time.Sleep(d) }

// Fake is a manually driven clock. Sleep advances Now by the requested
// duration and records it, so paced loops run instantly in tests.
type Fake struct {
	mu     sync.Mutex
	now    time.Time
	sleeps []time.Duration
}

func NewFake(start time.Time) *Fake {
	return &Fake{now: start}
}

func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *Fake) Sleep(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if d > 0 {
		f.now = f.now.Add(d)
	}
	f.sleeps = append(f.sleeps, d)
}

// Sleeps returns every duration passed to Sleep, in call order.
func (f *Fake) Sleeps() []time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]time.Duration, len(f.sleeps))
	copy(out, f.sleeps)
	return out
}

// CountSleeps returns how many times Sleep was called with exactly d.
func (f *Fake) CountSleeps(d time.Duration) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, s := range f.sleeps {
		if s == d {
			n++
		}
	}
	return n
}
