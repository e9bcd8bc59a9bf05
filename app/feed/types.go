package feed

// Category groups sources on the display. Sources are ordered by the
// category label, then by name.
type Category string

const (
	CategoryTech          Category = "Tech"
	CategoryNews          Category = "News"
	CategoryScience       Category = "Science"
	CategoryEntertainment Category = "Entertainment"
	CategoryBusiness      Category = "Business"
	CategoryOther         Category = "Other"
)

// Source is one configured feed. Immutable once loaded.
type Source struct {
	Name     string
	URL      string
	Category Category
	Settings Settings
	Filters  []Filter
}

// Item is a sanitized headline/summary pair ready for display.
type Item struct {
	Title string
	Body  string
}

// Configuration types

type Config struct {
	Feeds []ConfigFeed `yaml:"feeds"`
}

type ConfigFeed struct {
	Name     string   `yaml:"name"`
	URL      string   `yaml:"url"`
	Category string   `yaml:"category"`
	Settings Settings `yaml:"settings"`
	Filters  []Filter `yaml:"filters"`
}

type Settings struct {
	Enabled     *bool `yaml:"enabled"`
	MaxItems    int   `yaml:"max_items"`    // 0 shows every item
	ExtractHTML bool  `yaml:"extract_html"` // fall back to page extraction for HTML URLs
}

type Filter struct {
	Field    string   `yaml:"field"`
	Includes []string `yaml:"includes"`
	Excludes []string `yaml:"excludes"`
}

// IsEnabled treats a missing enabled key as enabled.
func (s Settings) IsEnabled() bool {
	return s.Enabled == nil || *s.Enabled
}
