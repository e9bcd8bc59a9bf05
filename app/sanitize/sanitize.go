// Package sanitize turns raw feed text (CDATA sections, escaped and raw
// markup, HTML entities) into plain text that a bitmap font can render.
package sanitize

import (
	"regexp"
	"strings"
)

type replacement struct {
	entity string
	value  string
}

// entities is decoded in order. Compound entities that contain "&amp;" must
// come before "&amp;" itself.
var entities = []replacement{
	{"&nbsp;", " "},
	{"&lt;", "<"},
	{"&gt;", ">"},
	{"&amp;mdash;", "—"},
	{"&amp;ndash;", "–"},
	{"&amp;amp;", "&"},
	{"&amp;", "&"},
	{"&mdash;", "—"},
	{"&ndash;", "–"},
	{"&quot;", `"`},
	{"&#39;", "'"},
	{"&ldquo;", `"`},
	{"&rdquo;", `"`},
	{"&lsquo;", "'"},
	{"&rsquo;", "'"},
	{"&hellip;", "..."},
	{"&euro;", ":Euro:"},
	{"&pound;", ":Pound:"},
	{"&yen;", ":Yen:"},
	{"&#8216;", "'"},
	{"&#8217;", "'"},
	{"&#038;", "&"},
	{"&#8230;", "..."},
}

var (
	cdataPattern      = regexp.MustCompile(`(?s)<!\[CDATA\[(.*?)\]\]>`)
	escapedTagPattern = regexp.MustCompile(`&lt;.*&gt;`)
	curlyQuotes       = strings.NewReplacer("‘", "'", "’", "'", "‚", "'", "‛", "'")
)

// Text runs the cleanup pipeline until the result stops changing, so
// Text(Text(s)) == Text(s). Every pass that changes the text either shortens
// it or removes an ampersand, which bounds the number of passes.
func Text(raw string) string {
	text := raw
	for {
		next := pass(text)
		if next == text {
			return next
		}
		text = next
	}
}

func pass(text string) string {
	text = RemoveCDATA(text)
	text = RemoveEscapedTags(text)
	text = DecodeEntities(text)
	text = RemoveTags(text)
	text = CollapseWhitespace(text)
	return curlyQuotes.Replace(text)
}

// RemoveCDATA replaces every <![CDATA[x]]> wrapper with x.
func RemoveCDATA(text string) string {
	return cdataPattern.ReplaceAllString(text, "$1")
}

// RemoveEscapedTags deletes markup that is still entity-escaped after
// extraction. The match is greedy within a line: everything from the first
// &lt; to the last &gt; goes.
func RemoveEscapedTags(text string) string {
	return escapedTagPattern.ReplaceAllString(text, "")
}

func DecodeEntities(text string) string {
	for _, r := range entities {
		text = strings.ReplaceAll(text, r.entity, r.value)
	}
	return text
}

// RemoveTags deletes each <...> span. An opening '<' with no closing '>'
// truncates the text at that point.
func RemoveTags(text string) string {
	for {
		start := strings.IndexByte(text, '<')
		if start < 0 {
			return text
		}
		end := strings.IndexByte(text[start:], '>')
		if end < 0 {
			return text[:start]
		}
		text = text[:start] + text[start+end+1:]
	}
}

func CollapseWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
