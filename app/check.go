package main

import (
	"context"
	"log/slog"

	"github.com/lysyi3m/rss-marquee/app/feed"
	"github.com/lysyi3m/rss-marquee/app/fetch"
	"github.com/lysyi3m/rss-marquee/app/parser"
)

// runCheck fetches every source once and compares the display parser with a
// strict parse. It reports whether every feed could be fetched and parsed.
func runCheck(ctx context.Context, registry *feed.Registry, coordinator *fetch.Coordinator) bool {
	validator := parser.NewValidator()
	ok := true

	for _, source := range registry.Sources() {
		if ctx.Err() != nil {
			return false
		}

		data, err := coordinator.Fetch(ctx, source.URL)
		if err != nil {
			slog.Error("Check failed: fetch", "feed", source.Name, "url", source.URL, "error", err)
			ok = false
			continue
		}

		report, err := validator.Run(data)
		if err != nil {
			if source.Settings.ExtractHTML && parser.LooksLikeHTML(data) {
				slog.Info("Check: HTML page source", "feed", source.Name, "bytes", len(data))
				continue
			}
			slog.Error("Check failed: parse", "feed", source.Name, "kind", report.Kind, "items", report.Heuristic, "error", err)
			ok = false
			continue
		}

		attrs := []any{
			"feed", source.Name,
			"category", source.Category,
			"kind", report.Kind,
			"feed_type", report.FeedType,
			"title", report.Title,
			"heuristic_items", report.Heuristic,
			"strict_items", report.Strict,
		}
		if report.Consistent() {
			slog.Info("Check passed", attrs...)
		} else {
			slog.Warn("Check: item count mismatch", attrs...)
		}
	}

	if err := coordinator.Clear(); err != nil {
		slog.Warn("Failed to clear scratch storage", "error", err)
	}

	return ok
}
