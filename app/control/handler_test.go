package control

import (
	"image"
	"math"
	"testing"

	"github.com/lysyi3m/rss-marquee/app/display"
)

type heldButtons map[Button]bool

func (b heldButtons) IsPressed(button Button) bool { return b[button] }

type countingCursor struct {
	advances, retreats int
}

func (c *countingCursor) Advance() { c.advances++ }

func (c *countingCursor) Retreat() { c.retreats++ }

func newTestHandler(buttons Buttons) (*Handler, *display.Matrix, *countingCursor, *int) {
	presents := 0
	m := display.NewMatrix(8, 8, 0.5, display.PresenterFunc(func(*image.RGBA) error {
		presents++
		return nil
	}))
	cursor := &countingCursor{}
	return NewHandler(buttons, m, m, cursor, display.Blank), m, cursor, &presents
}

func TestPollNothingPressed(t *testing.T) {
	h, m, cursor, presents := newTestHandler(heldButtons{})

	if sig := h.Poll(); sig != None {
		t.Errorf("Expected None, got: %s", sig)
	}
	if cursor.advances+cursor.retreats != 0 || *presents != 0 {
		t.Error("Expected no side effects")
	}
	if m.Brightness() != 0.5 {
		t.Errorf("Expected brightness unchanged, got: %v", m.Brightness())
	}
}

func TestPollBrightness(t *testing.T) {
	h, m, cursor, presents := newTestHandler(heldButtons{BrightnessUp: true})

	if sig := h.Poll(); sig != None {
		t.Errorf("Expected brightness not to navigate, got: %s", sig)
	}
	if math.Abs(m.Brightness()-0.51) > 1e-9 {
		t.Errorf("Expected brightness 0.51, got: %v", m.Brightness())
	}
	if cursor.advances+cursor.retreats != 0 || *presents != 0 {
		t.Error("Expected brightness to touch only the backlight")
	}

	h, m, _, _ = newTestHandler(heldButtons{BrightnessDown: true})
	h.Poll()
	if math.Abs(m.Brightness()-0.49) > 1e-9 {
		t.Errorf("Expected brightness 0.49, got: %v", m.Brightness())
	}
}

func TestPollForward(t *testing.T) {
	h, _, cursor, presents := newTestHandler(heldButtons{FeedForward: true})

	if sig := h.Poll(); sig != AdvanceFeed {
		t.Errorf("Expected AdvanceFeed, got: %s", sig)
	}
	if cursor.advances != 1 || cursor.retreats != 0 {
		t.Errorf("Expected one advance, got: %+v", cursor)
	}
	if *presents != 1 {
		t.Errorf("Expected display to be blanked, got %d presents", *presents)
	}
}

func TestPollBackward(t *testing.T) {
	h, _, cursor, _ := newTestHandler(heldButtons{FeedBackward: true})

	if sig := h.Poll(); sig != RetreatFeed {
		t.Errorf("Expected RetreatFeed, got: %s", sig)
	}
	if cursor.retreats != 1 || cursor.advances != 0 {
		t.Errorf("Expected one retreat, got: %+v", cursor)
	}
}

func TestPollForwardWins(t *testing.T) {
	h, m, cursor, _ := newTestHandler(heldButtons{
		BrightnessUp: true,
		FeedForward:  true,
		FeedBackward: true,
	})

	if sig := h.Poll(); sig != AdvanceFeed {
		t.Errorf("Expected forward to win, got: %s", sig)
	}
	if cursor.advances != 1 || cursor.retreats != 0 {
		t.Errorf("Expected only the forward move, got: %+v", cursor)
	}
	if m.Brightness() <= 0.5 {
		t.Error("Expected brightness to be applied alongside navigation")
	}
}

func TestLatchConsumesPress(t *testing.T) {
	l := NewLatch()

	if l.IsPressed(FeedForward) {
		t.Error("Expected no press initially")
	}

	l.Press(FeedForward)
	l.Press(FeedForward)
	if !l.IsPressed(FeedForward) {
		t.Error("Expected press to be latched")
	}
	if l.IsPressed(FeedForward) {
		t.Error("Expected press to be consumed by the first read")
	}
}

func TestParseButton(t *testing.T) {
	cases := map[string]Button{
		"brightness_up":   BrightnessUp,
		"down":            BrightnessDown,
		"NEXT":            FeedForward,
		" feed_backward ": FeedBackward,
	}
	for input, expected := range cases {
		got, err := ParseButton(input)
		if err != nil || got != expected {
			t.Errorf("ParseButton(%q): expected %s, got: %s (%v)", input, expected, got, err)
		}
	}

	if _, err := ParseButton("volume"); err == nil {
		t.Error("Expected error for unknown button")
	}
}

func TestSignalNavigates(t *testing.T) {
	if None.Navigates() {
		t.Error("Expected None not to navigate")
	}
	if !AdvanceFeed.Navigates() || !RetreatFeed.Navigates() {
		t.Error("Expected feed signals to navigate")
	}
}
