package parser

import (
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/lysyi3m/rss-marquee/app/sanitize"
)

func TestParseRSSExample(t *testing.T) {
	data := `<rss><channel><title>Feed</title>` +
		`<item><title>A &amp; B</title><description><![CDATA[Hello <b>world</b>!]]></description></item>` +
		`</channel></rss>`

	doc := NewDocument([]byte(data))
	if doc.Kind != KindRSS {
		t.Fatalf("Expected RSS document, got: %s", doc.Kind)
	}

	items := slices.Collect(doc.Items())
	if len(items) != 1 {
		t.Fatalf("Expected 1 item, got: %d", len(items))
	}

	if items[0].Title != "A &amp; B" {
		t.Errorf("Expected raw title 'A &amp; B', got: '%s'", items[0].Title)
	}
	if items[0].Body != "Hello <b>world</b>!" {
		t.Errorf("Expected raw body 'Hello <b>world</b>!', got: '%s'", items[0].Body)
	}

	if got := sanitize.Text(items[0].Title); got != "A & B" {
		t.Errorf("Expected sanitized title 'A & B', got: '%s'", got)
	}
	if got := sanitize.Text(items[0].Body); got != "Hello world!" {
		t.Errorf("Expected sanitized body 'Hello world!', got: '%s'", got)
	}
}

func TestParseAtomExample(t *testing.T) {
	data := `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Atom</title>
  <entry><title>T</title><content type="html">&lt;p&gt;Hi&lt;/p&gt;</content></entry>
</feed>`

	doc := NewDocument([]byte(data))
	if doc.Kind != KindAtom {
		t.Fatalf("Expected Atom document, got: %s", doc.Kind)
	}

	items := slices.Collect(doc.Items())
	if len(items) != 1 {
		t.Fatalf("Expected 1 item, got: %d", len(items))
	}
	if items[0].Title != "T" {
		t.Errorf("Expected title 'T', got: '%s'", items[0].Title)
	}
	if items[0].Body != "&lt;p&gt;Hi&lt;/p&gt;" {
		t.Errorf("Expected attributes stripped from body, got: '%s'", items[0].Body)
	}
	if got := sanitize.Text(items[0].Body); got != "" {
		t.Errorf("Expected escaped markup body to sanitize to '', got: '%s'", got)
	}
}

func TestParseRSSItemCount(t *testing.T) {
	for k := 0; k <= 5; k++ {
		var b strings.Builder
		b.WriteString(`<?xml version="1.0"?><rss version="2.0"><channel><title>Feed</title>`)
		for i := 0; i < k; i++ {
			fmt.Fprintf(&b, "<item>\n  <title>Item %d</title>\n  <description>Body %d</description>\n</item>\n", i, i)
		}
		b.WriteString(`</channel></rss>`)

		items := Parse([]byte(b.String()))
		if len(items) != k {
			t.Fatalf("Expected %d items, got: %d", k, len(items))
		}
		for i, item := range items {
			if item.Title != fmt.Sprintf("Item %d", i) {
				t.Errorf("Expected title 'Item %d', got: '%s'", i, item.Title)
			}
			if item.Body != fmt.Sprintf("Body %d", i) {
				t.Errorf("Expected body 'Body %d', got: '%s'", i, item.Body)
			}
		}
	}
}

func TestParseAtomItemCount(t *testing.T) {
	for k := 1; k <= 4; k++ {
		var b strings.Builder
		b.WriteString(`<feed xmlns="http://www.w3.org/2005/Atom"><title>Feed</title>`)
		for i := 0; i < k; i++ {
			fmt.Fprintf(&b, `<entry><title>Entry %d</title><content type="html" xml:lang="en">Content %d</content></entry>`, i, i)
		}
		b.WriteString(`</feed>`)

		items := Parse([]byte(b.String()))
		if len(items) != k {
			t.Fatalf("Expected %d items, got: %d", k, len(items))
		}
		for i, item := range items {
			if item.Body != fmt.Sprintf("Content %d", i) {
				t.Errorf("Expected body 'Content %d', got: '%s'", i, item.Body)
			}
			if strings.Contains(item.Body, "type=") {
				t.Errorf("Expected content attributes stripped, got: '%s'", item.Body)
			}
		}
	}
}

func TestParseFeedWithoutEntriesIsRSS(t *testing.T) {
	data := `<feed><title>Empty</title></feed><item><title>x</title></item>`
	doc := NewDocument([]byte(data))
	if doc.Kind != KindRSS {
		t.Errorf("Expected RSS when no <entry> marker is present, got: %s", doc.Kind)
	}
	if doc.Count() != 1 {
		t.Errorf("Expected 1 item, got: %d", doc.Count())
	}
}

func TestParseMissingTagsDegrade(t *testing.T) {
	data := `<rss><channel>
<item><title>Only title</title></item>
<item><description>Only body</description></item>
<item><title>Unclosed title<description>Body</description></item>
</channel></rss>`

	items := Parse([]byte(data))
	if len(items) != 3 {
		t.Fatalf("Expected 3 items, got: %d", len(items))
	}

	if items[0].Title != "Only title" || items[0].Body != "" {
		t.Errorf("Unexpected first item: %+v", items[0])
	}
	if items[1].Title != "" || items[1].Body != "Only body" {
		t.Errorf("Unexpected second item: %+v", items[1])
	}
	if items[2].Title != "" || items[2].Body != "Body" {
		t.Errorf("Unexpected third item: %+v", items[2])
	}
}

func TestParseNoDelimiters(t *testing.T) {
	for _, data := range []string{"", "not a feed", "<html><body>page</body></html>"} {
		if items := Parse([]byte(data)); len(items) != 0 {
			t.Errorf("Expected no items for %q, got: %d", data, len(items))
		}
	}
}

func TestItemsIsRestartable(t *testing.T) {
	doc := NewDocument([]byte(`<item><title>a</title></item><item><title>b</title></item>`))

	first := slices.Collect(doc.Items())
	second := slices.Collect(doc.Items())
	if !slices.Equal(first, second) {
		t.Errorf("Expected identical sequences, got: %v and %v", first, second)
	}

	n := 0
	for range doc.Items() {
		n++
		break
	}
	if n != 1 {
		t.Errorf("Expected early break to stop after 1 item, got: %d", n)
	}
}

func TestUnwrapCDATAOnlyWholeField(t *testing.T) {
	if got := unwrapCDATA("<![CDATA[x]]>"); got != "x" {
		t.Errorf("Expected 'x', got: '%s'", got)
	}
	if got := unwrapCDATA("a <![CDATA[x]]>"); got != "a <![CDATA[x]]>" {
		t.Errorf("Expected partial CDATA to be left alone, got: '%s'", got)
	}
}
