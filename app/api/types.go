package api

import (
	"image"

	"github.com/lysyi3m/rss-marquee/app/control"
	"github.com/lysyi3m/rss-marquee/app/display"
	"github.com/lysyi3m/rss-marquee/app/feed"
	"github.com/lysyi3m/rss-marquee/app/player"
)

type StatusSource interface {
	Status() player.Status
}

type FrameSource interface {
	Snapshot() *image.RGBA
}

var (
	_ StatusSource = (*player.Player)(nil)
	_ FrameSource  = (*display.Matrix)(nil)
)

type Handler struct {
	registry  *feed.Registry
	status    StatusSource
	latch     *control.Latch
	backlight display.Backlight
	frames    FrameSource
	version   string
}
