package parser

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"codeberg.org/readeck/go-readability/v2"
)

const maxExcerptRunes = 280

// PageExtractor turns an HTML page into a single item. It is used for feeds
// configured with extract_html whose URL serves a web page instead of a feed.
type PageExtractor struct{}

func NewPageExtractor() *PageExtractor {
	return &PageExtractor{}
}

func (e *PageExtractor) Run(data []byte, pageURL string) (Item, error) {
	if len(data) == 0 {
		return Item{}, fmt.Errorf("HTML data is empty")
	}

	u, err := url.Parse(pageURL)
	if err != nil {
		u = nil
	}

	article, err := readability.FromReader(bytes.NewReader(data), u)
	if err != nil {
		return Item{}, fmt.Errorf("failed to extract content: %w", err)
	}

	body := article.Excerpt()
	if body == "" {
		var b strings.Builder
		if err := article.RenderText(&b); err == nil {
			body = truncateRunes(strings.TrimSpace(b.String()), maxExcerptRunes)
		}
	}

	item := Item{Title: article.Title(), Body: body}
	if item.Title == "" && item.Body == "" {
		return Item{}, fmt.Errorf("no content extracted from HTML data")
	}

	slog.Debug("Page extracted", "url", pageURL, "title", item.Title, "body_length", len(item.Body))

	return item, nil
}

// LooksLikeHTML reports whether data appears to be a web page rather than a
// feed document.
func LooksLikeHTML(data []byte) bool {
	head := data
	if len(head) > 1024 {
		head = head[:1024]
	}
	lower := bytes.ToLower(head)
	return bytes.Contains(lower, []byte("<html")) || bytes.Contains(lower, []byte("<!doctype html"))
}

func truncateRunes(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
