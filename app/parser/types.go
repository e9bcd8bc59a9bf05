package parser

// Kind is the document flavour chosen by marker detection.
type Kind int

const (
	KindRSS Kind = iota
	KindAtom
)

func (k Kind) String() string {
	if k == KindAtom {
		return "atom"
	}
	return "rss"
}

// Item is one headline/summary pair as it appears in the document, before
// sanitization.
type Item struct {
	Title string
	Body  string
}

// Document is a fetched feed body with its detected kind. It lives for one
// feed cycle.
type Document struct {
	Data string
	Kind Kind
}

type markers struct {
	delimiter string
	bodyStart string
	bodyEnd   string
	// bodyAttrs is set when the body open tag is matched without its closing
	// '>' so attributes end up in the captured text.
	bodyAttrs bool
}

var (
	rssMarkers  = markers{delimiter: "<item>", bodyStart: "<description>", bodyEnd: "</description>"}
	atomMarkers = markers{delimiter: "<entry>", bodyStart: "<content", bodyEnd: "</content>", bodyAttrs: true}
)

const (
	titleStart = "<title>"
	titleEnd   = "</title>"
	feedRoot   = "<feed"
	cdataOpen  = "<![CDATA["
	cdataClose = "]]>"
)
