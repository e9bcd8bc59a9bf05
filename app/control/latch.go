package control

import "sync"

var _ Buttons = (*Latch)(nil)

// Latch remembers presses coming from other goroutines (keyboard, HTTP)
// until the feed loop reads them. Reading a button consumes its press.
type Latch struct {
	mu      sync.Mutex
	pressed map[Button]bool
}

func NewLatch() *Latch {
	return &Latch{pressed: make(map[Button]bool)}
}

func (l *Latch) Press(b Button) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pressed[b] = true
}

func (l *Latch) IsPressed(b Button) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.pressed[b] {
		return false
	}
	delete(l.pressed, b)
	return true
}
