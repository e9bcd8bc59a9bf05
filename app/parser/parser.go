package parser

import (
	"iter"
	"slices"
	"strings"
)

// NewDocument detects the kind of data: Atom when it has a <feed root and at
// least one <entry>, RSS otherwise.
func NewDocument(data []byte) *Document {
	text := string(data)
	kind := KindRSS
	if strings.Contains(text, feedRoot) && strings.Contains(text, atomMarkers.delimiter) {
		kind = KindAtom
	}
	return &Document{Data: text, Kind: kind}
}

func (d *Document) markers() markers {
	if d.Kind == KindAtom {
		return atomMarkers
	}
	return rssMarkers
}

// Items yields the document's items in document order. The sequence is lazy
// and can be ranged over more than once. Missing tags produce empty fields,
// never an error.
func (d *Document) Items() iter.Seq[Item] {
	m := d.markers()
	return func(yield func(Item) bool) {
		fragments := strings.Split(d.Data, m.delimiter)
		for _, fragment := range fragments[1:] {
			if !yield(extractItem(fragment, m)) {
				return
			}
		}
	}
}

// Count returns the number of delimiter occurrences, which equals the number
// of items Items yields.
func (d *Document) Count() int {
	return strings.Count(d.Data, d.markers().delimiter)
}

// Parse is a convenience wrapper collecting every item of data.
func Parse(data []byte) []Item {
	return slices.Collect(NewDocument(data).Items())
}

func extractItem(fragment string, m markers) Item {
	body := extractBetween(fragment, m.bodyStart, m.bodyEnd)
	if m.bodyAttrs {
		body = stripOpenTagRest(body)
	}
	return Item{
		Title: unwrapCDATA(extractBetween(fragment, titleStart, titleEnd)),
		Body:  unwrapCDATA(body),
	}
}

// extractBetween returns the trimmed text between the first start marker and
// the first end marker after it, or "" when either is missing.
func extractBetween(data, start, end string) string {
	i := strings.Index(data, start)
	if i < 0 {
		return ""
	}
	rest := data[i+len(start):]
	j := strings.Index(rest, end)
	if j < 0 {
		return ""
	}
	return strings.TrimSpace(rest[:j])
}

// stripOpenTagRest drops the remainder of an open tag (attributes and the
// closing '>') when it sits on the first line of the captured body.
func stripOpenTagRest(body string) string {
	gt := strings.IndexByte(body, '>')
	if gt < 0 {
		return body
	}
	if nl := strings.IndexByte(body, '\n'); nl >= 0 && nl < gt {
		return body
	}
	return strings.TrimSpace(body[gt+1:])
}

// unwrapCDATA returns the inner text of a field that is exactly one CDATA
// section.
func unwrapCDATA(field string) string {
	if strings.HasPrefix(field, cdataOpen) && strings.HasSuffix(field, cdataClose) {
		inner := field[len(cdataOpen) : len(field)-len(cdataClose)]
		if !strings.Contains(inner, cdataClose) {
			return inner
		}
	}
	return field
}
