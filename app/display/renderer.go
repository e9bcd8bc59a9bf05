package display

import (
	"fmt"
	"image/color"
	"time"

	"github.com/lysyi3m/rss-marquee/app/clock"
)

type Phase int

const (
	PreScroll Phase = iota
	Scrolling
	PostScroll
)

func (p Phase) String() string {
	switch p {
	case PreScroll:
		return "pre_scroll"
	case Scrolling:
		return "scrolling"
	case PostScroll:
		return "post_scroll"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// ScrollState is the progress of the text currently crossing the display.
type ScrollState struct {
	Phase    Phase
	Shift    int
	LastStep time.Time
}

type Timing struct {
	Padding int
	Step    time.Duration
	Hold    time.Duration
	Speed   int
}

func DefaultTiming() Timing {
	return Timing{
		Padding: 10,
		Step:    25 * time.Millisecond,
		Hold:    2 * time.Second,
		Speed:   1,
	}
}

var outlineOffsets = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

type Renderer struct {
	display Display
	clock   clock.Clock
	timing  Timing
	state   ScrollState
}

func NewRenderer(d Display, clk clock.Clock, timing Timing) *Renderer {
	if timing.Speed <= 0 {
		timing.Speed = 1
	}
	return &Renderer{
		display: d,
		clock:   clk,
		timing:  timing,
	}
}

func (r *Renderer) State() ScrollState {
	return r.state
}

// Reset abandons the text in flight so the next Step starts a new scroll.
func (r *Renderer) Reset() {
	r.state = ScrollState{Phase: PreScroll}
}

// Step moves the scroll of text forward by at most one frame. It reports true
// once the text has left the display and the hold time has passed, leaving
// the state ready for the next text. Each call may sleep, which is where the
// caller gets to poll its controls.
func (r *Renderer) Step(text string, style Style) (bool, error) {
	now := r.clock.Now()

	switch r.state.Phase {
	case PreScroll:
		width, _ := r.display.Bounds()
		r.state.Shift = width
		r.state.LastStep = now
		r.state.Phase = Scrolling

	case Scrolling:
		if wait := r.timing.Step - now.Sub(r.state.LastStep); wait > 0 {
			r.clock.Sleep(wait)
			return false, nil
		}

		r.display.SetFont(style.Font)
		r.state.Shift -= r.timing.Speed
		textWidth := r.display.MeasureText(text, 1)
		if r.state.Shift <= -textWidth-r.timing.Padding {
			r.state.Phase = PostScroll
		}
		r.state.LastStep = now

		r.fill(style.Background)
		r.draw(text, r.timing.Padding+r.state.Shift, style)
		if err := r.display.Present(); err != nil {
			return false, err
		}
		r.clock.Sleep(r.timing.Step)

	case PostScroll:
		if wait := r.timing.Hold - now.Sub(r.state.LastStep); wait > 0 {
			r.clock.Sleep(wait)
			return false, nil
		}
		r.state.Phase = PreScroll
		return true, nil
	}

	return false, nil
}

// Banner draws text centered, presents it and blocks for hold.
func (r *Renderer) Banner(text string, style Style, hold time.Duration) error {
	r.display.SetFont(style.Font)
	r.fill(style.Background)

	width, _ := r.display.Bounds()
	w := r.display.MeasureText(text, 1)
	x := int(float64(width)/2 - float64(w)/2 + 1)
	r.draw(text, x, style)

	if err := r.display.Present(); err != nil {
		return err
	}
	if hold > 0 {
		r.clock.Sleep(hold)
	}
	return nil
}

// Blank clears the display to bg and presents it.
func (r *Renderer) Blank(bg color.RGBA) error {
	r.fill(bg)
	return r.display.Present()
}

func (r *Renderer) fill(bg color.RGBA) {
	r.display.SetPen(bg)
	r.display.Clear()
}

func (r *Renderer) draw(text string, x int, style Style) {
	_, height := r.display.Bounds()
	glyphHeight := FontHeight(style.Font)

	if !style.Outlined {
		r.display.SetPen(style.Text)
		r.display.DrawText(text, x, (height-glyphHeight)/2+1, 1)
		return
	}

	const scale = 1
	y := int(float64(height)/2-float64(scale*glyphHeight)/2) + 1

	r.display.SetPen(style.Outline)
	for _, off := range outlineOffsets {
		r.display.DrawText(text, x+off[0], y+off[1], scale)
	}
	r.display.SetPen(style.Text)
	r.display.DrawText(text, x, y, scale)
}
