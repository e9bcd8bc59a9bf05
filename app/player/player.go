package player

import (
	"context"
	"iter"
	"log/slog"
	"time"

	"github.com/lysyi3m/rss-marquee/app/clock"
	"github.com/lysyi3m/rss-marquee/app/control"
	"github.com/lysyi3m/rss-marquee/app/display"
	"github.com/lysyi3m/rss-marquee/app/feed"
	"github.com/lysyi3m/rss-marquee/app/parser"
	"github.com/lysyi3m/rss-marquee/app/sanitize"
)

type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

type Controls interface {
	Poll() control.Signal
}

type Options struct {
	Styles     display.Styles
	BannerHold time.Duration
}

// Player runs the feed loop: banner, fetch, parse, scroll every item, move
// to the next source.
type Player struct {
	registry  *feed.Registry
	fetcher   Fetcher
	renderer  *display.Renderer
	controls  Controls
	clock     clock.Clock
	filterer  *feed.Filterer
	extractor *parser.PageExtractor
	opts      Options
	status    statusBox
}

func New(registry *feed.Registry, fetcher Fetcher, renderer *display.Renderer, controls Controls,
	clk clock.Clock, opts Options) *Player {
	p := &Player{
		registry:  registry,
		fetcher:   fetcher,
		renderer:  renderer,
		controls:  controls,
		clock:     clk,
		filterer:  feed.NewFilterer(),
		extractor: parser.NewPageExtractor(),
		opts:      opts,
	}
	p.setPhase(PhaseIdle, "")
	return p
}

// Run cycles through the sources until ctx is cancelled.
func (p *Player) Run(ctx context.Context) error {
	slog.Info("Starting feed loop", "sources", p.registry.Len())

	for ctx.Err() == nil {
		p.Cycle(ctx)
	}

	slog.Info("Feed loop stopped")
	return ctx.Err()
}

// Cycle shows the current source once and moves the registry on by one.
// A navigation press during the cycle has already moved the cursor, so the
// final advance is applied on top of it.
func (p *Player) Cycle(ctx context.Context) {
	source := p.registry.Current()
	slog.Info("Displaying feed", "feed", source.Name, "category", source.Category, "index", p.registry.Index())

	p.setPhase(PhaseBanner, source.Name)
	if err := p.renderer.Banner(source.Name, p.opts.Styles.Banner, p.opts.BannerHold); err != nil {
		slog.Warn("Failed to draw banner", "feed", source.Name, "error", err)
	}

	p.setPhase(PhaseFetching, "")
	data, err := p.fetcher.Fetch(ctx, source.URL)
	if err != nil {
		slog.Error("Failed to fetch feed", "feed", source.Name, "url", source.URL, "error", err)
		p.status.update(func(s *Status) { s.LastError = err.Error() })
	} else {
		p.status.update(func(s *Status) { s.LastError = "" })
	}

	signal := p.play(ctx, source, data)
	if !signal.Navigates() && ctx.Err() == nil {
		signal = p.controls.Poll()
	}
	if signal.Navigates() {
		slog.Debug("Feed abandoned", "feed", source.Name, "signal", signal)
	}

	p.registry.Advance()

	if err := p.renderer.Blank(display.Blank); err != nil {
		slog.Warn("Failed to blank display", "error", err)
	}

	p.status.update(func(s *Status) {
		s.Cycles++
		s.Phase = PhaseIdle
		s.Text = ""
		s.UpdatedAt = p.clock.Now()
	})
}

func (p *Player) Status() Status {
	s := p.status.get()
	current := p.registry.Current()
	s.Feed = current.Name
	s.URL = current.URL
	s.Category = current.Category
	s.Index = p.registry.Index()
	s.Total = p.registry.Len()
	return s
}

func (p *Player) play(ctx context.Context, source feed.Source, data []byte) control.Signal {
	shown := 0
	p.status.update(func(s *Status) { s.Shown = 0 })

	for item := range p.items(source, data) {
		if ctx.Err() != nil {
			return control.None
		}

		item = feed.Item{
			Title: sanitize.Text(item.Title),
			Body:  sanitize.Text(item.Body),
		}

		if !p.filterer.Keep(item, source) {
			continue
		}
		if !p.filterer.Limit(shown, source) {
			break
		}
		shown++
		p.status.update(func(s *Status) { s.Shown = shown })

		slog.Debug("Displaying item", "feed", source.Name, "title", item.Title)

		if signal := p.scroll(ctx, item.Title, p.opts.Styles.Title); signal.Navigates() {
			return signal
		}
		if signal := p.scroll(ctx, item.Body, p.opts.Styles.Body); signal.Navigates() {
			return signal
		}
	}

	slog.Info("Feed finished", "feed", source.Name, "items", shown)
	return control.None
}

// scroll runs text across the display, polling the controls after every step.
func (p *Player) scroll(ctx context.Context, text string, style display.Style) control.Signal {
	p.setPhase(PhaseScrolling, text)

	for {
		if ctx.Err() != nil {
			p.renderer.Reset()
			return control.None
		}

		done, err := p.renderer.Step(text, style)
		if err != nil {
			slog.Warn("Failed to draw frame", "error", err)
			p.renderer.Reset()
			return control.None
		}

		if signal := p.controls.Poll(); signal.Navigates() {
			p.renderer.Reset()
			return signal
		}

		if done {
			return control.None
		}
	}
}

// items yields the feed entries of data. Sources marked extract_html fall
// back to a single readable item when data is an HTML page.
func (p *Player) items(source feed.Source, data []byte) iter.Seq[feed.Item] {
	return func(yield func(feed.Item) bool) {
		if len(data) == 0 {
			return
		}

		doc := parser.NewDocument(data)
		if doc.Count() == 0 && source.Settings.ExtractHTML && parser.LooksLikeHTML(data) {
			item, err := p.extractor.Run(data, source.URL)
			if err != nil {
				slog.Warn("Failed to extract page", "feed", source.Name, "error", err)
				return
			}
			yield(feed.Item{Title: item.Title, Body: item.Body})
			return
		}

		for item := range doc.Items() {
			if !yield(feed.Item{Title: item.Title, Body: item.Body}) {
				return
			}
		}
	}
}

func (p *Player) setPhase(phase Phase, text string) {
	p.status.update(func(s *Status) {
		s.Phase = phase
		s.Text = text
		s.UpdatedAt = p.clock.Now()
	})
}
