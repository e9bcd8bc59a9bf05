package parser

import (
	"bytes"
	"fmt"

	"github.com/mmcdole/gofeed"
)

// Report compares the heuristic extractor with a strict parse of the same
// document.
type Report struct {
	Kind      Kind
	FeedType  string
	Title     string
	Heuristic int
	Strict    int
}

// Consistent reports whether both parsers found the same number of items.
func (r *Report) Consistent() bool {
	return r.Heuristic == r.Strict
}

// Validator runs a strict gofeed parse next to the heuristic one. It backs the
// --check mode and never sits on the display path.
type Validator struct {
	gofeedParser *gofeed.Parser
}

func NewValidator() *Validator {
	return &Validator{
		gofeedParser: gofeed.NewParser(),
	}
}

func (v *Validator) Run(data []byte) (*Report, error) {
	doc := NewDocument(data)
	report := &Report{
		Kind:      doc.Kind,
		FeedType:  feedTypeName(gofeed.DetectFeedType(bytes.NewReader(data))),
		Heuristic: doc.Count(),
	}

	feed, err := v.gofeedParser.Parse(bytes.NewReader(data))
	if err != nil {
		return report, fmt.Errorf("failed to parse feed: %w", err)
	}

	report.Title = feed.Title
	report.Strict = len(feed.Items)

	return report, nil
}

func feedTypeName(t gofeed.FeedType) string {
	switch t {
	case gofeed.FeedTypeAtom:
		return "atom"
	case gofeed.FeedTypeRSS:
		return "rss"
	case gofeed.FeedTypeJSON:
		return "json"
	default:
		return "unknown"
	}
}
