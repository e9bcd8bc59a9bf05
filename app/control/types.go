package control

import (
	"fmt"
	"strings"
)

type Button int

const (
	BrightnessUp Button = iota
	BrightnessDown
	FeedForward
	FeedBackward
)

var buttonNames = map[Button]string{
	BrightnessUp:   "brightness_up",
	BrightnessDown: "brightness_down",
	FeedForward:    "feed_forward",
	FeedBackward:   "feed_backward",
}

func (b Button) String() string {
	if name, ok := buttonNames[b]; ok {
		return name
	}
	return fmt.Sprintf("button(%d)", int(b))
}

// ParseButton accepts the names returned by Button.String, plus the short
// aliases up, down, next and prev.
func ParseButton(name string) (Button, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "brightness_up", "up":
		return BrightnessUp, nil
	case "brightness_down", "down":
		return BrightnessDown, nil
	case "feed_forward", "next":
		return FeedForward, nil
	case "feed_backward", "prev":
		return FeedBackward, nil
	}
	return 0, fmt.Errorf("unknown button: %s", name)
}

// Signal is what a poll asks the feed loop to do next.
type Signal int

const (
	None Signal = iota
	AdvanceFeed
	RetreatFeed
)

func (s Signal) String() string {
	switch s {
	case None:
		return "none"
	case AdvanceFeed:
		return "advance_feed"
	case RetreatFeed:
		return "retreat_feed"
	default:
		return fmt.Sprintf("signal(%d)", int(s))
	}
}

// Navigates reports whether the current feed must be abandoned.
func (s Signal) Navigates() bool {
	return s == AdvanceFeed || s == RetreatFeed
}

type Buttons interface {
	IsPressed(b Button) bool
}

type Cursor interface {
	Advance()
	Retreat()
}
