package control

import (
	"image/color"
	"log/slog"

	"github.com/lysyi3m/rss-marquee/app/display"
)

const BrightnessStep = display.BrightnessStep

type Handler struct {
	buttons    Buttons
	display    display.Display
	backlight  display.Backlight
	cursor     Cursor
	background color.RGBA
}

func NewHandler(buttons Buttons, d display.Display, backlight display.Backlight, cursor Cursor, background color.RGBA) *Handler {
	return &Handler{
		buttons:    buttons,
		display:    d,
		backlight:  backlight,
		cursor:     cursor,
		background: background,
	}
}

// Poll reads every button once. Brightness buttons only touch the backlight.
// A navigation press blanks the display, moves the cursor and returns the
// matching signal; forward is checked first, so it wins over backward.
func (h *Handler) Poll() Signal {
	if h.buttons.IsPressed(BrightnessUp) {
		h.backlight.AdjustBrightness(+BrightnessStep)
		slog.Debug("Brightness up", "brightness", h.backlight.Brightness())
	}

	if h.buttons.IsPressed(BrightnessDown) {
		h.backlight.AdjustBrightness(-BrightnessStep)
		slog.Debug("Brightness down", "brightness", h.backlight.Brightness())
	}

	if h.buttons.IsPressed(FeedForward) {
		slog.Info("Switching to next feed")
		h.blank()
		h.cursor.Advance()
		return AdvanceFeed
	}

	if h.buttons.IsPressed(FeedBackward) {
		slog.Info("Switching to previous feed")
		h.blank()
		h.cursor.Retreat()
		return RetreatFeed
	}

	return None
}

func (h *Handler) blank() {
	h.display.SetPen(h.background)
	h.display.Clear()
	if err := h.display.Present(); err != nil {
		slog.Warn("Failed to blank display", "error", err)
	}
}
