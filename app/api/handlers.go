package api

import (
	"bytes"
	"image/png"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lysyi3m/rss-marquee/app/control"
	"github.com/lysyi3m/rss-marquee/app/display"
	"github.com/lysyi3m/rss-marquee/app/feed"
)

func NewHandler(registry *feed.Registry, status StatusSource, latch *control.Latch,
	backlight display.Backlight, frames FrameSource, version string) *Handler {
	return &Handler{
		registry:  registry,
		status:    status,
		latch:     latch,
		backlight: backlight,
		frames:    frames,
		version:   version,
	}
}

func (h *Handler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
		"feeds":     h.registry.Len(),
		"version":   h.version,
	})
}

func (h *Handler) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":     h.status.Status(),
		"brightness": h.backlight.Brightness(),
	})
}

func (h *Handler) ListFeeds(c *gin.Context) {
	sources := h.registry.Sources()
	current := h.registry.Index()

	feeds := make([]gin.H, 0, len(sources))
	for i, source := range sources {
		feeds = append(feeds, gin.H{
			"index":        i,
			"name":         source.Name,
			"url":          source.URL,
			"category":     source.Category,
			"current":      i == current,
			"max_items":    source.Settings.MaxItems,
			"extract_html": source.Settings.ExtractHTML,
			"filters":      len(source.Filters),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"feeds": feeds,
		"total": len(feeds),
	})
}

func (h *Handler) GetFrame(c *gin.Context) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, h.frames.Snapshot()); err != nil {
		slog.Error("Frame encoding error", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

func (h *Handler) PressButton(c *gin.Context) {
	name := c.Param("button")

	button, err := control.ParseButton(name)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Unknown button",
			"details": err.Error(),
		})
		return
	}

	h.latch.Press(button)
	slog.Info("Button pressed via API", "button", button)

	c.JSON(http.StatusAccepted, gin.H{
		"success": true,
		"button":  button.String(),
	})
}
