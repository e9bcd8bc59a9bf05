package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lysyi3m/rss-marquee/app/clock"
	"github.com/lysyi3m/rss-marquee/app/storage"
)

const DefaultScratch = "rss_data.xml"

type Options struct {
	// Scratch is the storage entry holding the latest document.
	Scratch string
	// PollTicks bounds how many status polls one association attempt waits.
	PollTicks    int
	PollInterval time.Duration
	// Backoff is slept after every failed association attempt.
	Backoff time.Duration
}

// Coordinator owns the network association and moves one feed document at a
// time from the network into scratch storage.
type Coordinator struct {
	network Network
	link    Link
	storage storage.Storage
	clock   clock.Clock
	opts    Options
}

func NewCoordinator(network Network, link Link, store storage.Storage, clk clock.Clock, opts Options) *Coordinator {
	if opts.Scratch == "" {
		opts.Scratch = DefaultScratch
	}
	if opts.PollTicks <= 0 {
		opts.PollTicks = 100
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = 200 * time.Millisecond
	}
	return &Coordinator{
		network: network,
		link:    link,
		storage: store,
		clock:   clk,
		opts:    opts,
	}
}

// Connect makes sure a network association exists, trying up to maxAttempts
// times with a fixed backoff after each failure. It reports whether the link
// is up afterwards. Missing credentials skip the attempts entirely.
func (c *Coordinator) Connect(ctx context.Context, ssid, password string, maxAttempts int) bool {
	if c.link.Connected() {
		slog.Info("Already connected to network")
		return true
	}

	if ssid == "" {
		slog.Warn("No network credentials configured, running offline")
		return false
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if ctx.Err() != nil {
			break
		}

		slog.Info("Connecting to network", "ssid", ssid, "attempt", attempt, "max_attempts", maxAttempts)

		if err := c.link.Connect(ssid, password); err != nil {
			slog.Warn("Association request failed", "attempt", attempt, "error", err)
		} else {
			c.waitForLink()
		}

		if c.link.Connected() {
			slog.Info("Connected to network", "attempt", attempt)
			return true
		}

		slog.Warn("Failed to connect to network", "attempt", attempt, "status", c.link.Status(), "backoff", c.opts.Backoff)
		c.clock.Sleep(c.opts.Backoff)
	}

	return c.link.Connected()
}

// waitForLink polls the link until it leaves the connecting states or the
// tick budget runs out.
func (c *Coordinator) waitForLink() {
	for ticks := c.opts.PollTicks; ticks > 0; ticks-- {
		if !c.link.Status().Connecting() {
			return
		}
		c.clock.Sleep(c.opts.PollInterval)
	}
}

// Fetch downloads url into scratch storage and returns the stored document.
// The scratch entry is cleared first, so a failed fetch never leaves an older
// document behind for the parser.
func (c *Coordinator) Fetch(ctx context.Context, url string) ([]byte, error) {
	if err := c.Clear(); err != nil {
		return nil, err
	}

	body, err := c.network.Get(ctx, url)
	if err != nil {
		return nil, err
	}

	if err := c.storage.Write(c.opts.Scratch, body); err != nil {
		return nil, fmt.Errorf("failed to store feed: %w", err)
	}

	size, err := c.storage.Stat(c.opts.Scratch)
	if err != nil {
		return nil, fmt.Errorf("failed to verify stored feed: %w", err)
	}
	if size == 0 {
		return nil, fmt.Errorf("stored feed from %s is empty", url)
	}

	data, err := c.storage.Read(c.opts.Scratch)
	if err != nil {
		return nil, fmt.Errorf("failed to read stored feed: %w", err)
	}

	slog.Debug("Feed stored", "url", url, "scratch", c.opts.Scratch, "bytes", size)

	return data, nil
}

// Clear removes the scratch entry.
func (c *Coordinator) Clear() error {
	if err := c.storage.Remove(c.opts.Scratch); err != nil {
		return fmt.Errorf("failed to clear scratch: %w", err)
	}
	return nil
}
