package feed

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yml
var defaultFeeds []byte

var validFilterFields = map[string]bool{
	"title": true,
	"body":  true,
}

// Loader reads the feed table from a YAML file, or from the built-in table
// when no path is given.
type Loader struct {
	path string
}

func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Run returns every enabled source. It fails when the table cannot be read,
// is invalid, or has no enabled source.
func (l *Loader) Run() ([]Source, error) {
	data := defaultFeeds
	if l.path != "" {
		var err error
		data, err = os.ReadFile(l.path)
		if err != nil {
			return nil, fmt.Errorf("failed to read file: %w", err)
		}
	}

	config, err := l.parseConfig(data)
	if err != nil {
		return nil, err
	}

	if err := l.validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid feed table %s: %w", l.describe(), err)
	}

	sources := make([]Source, 0, len(config.Feeds))
	for _, f := range config.Feeds {
		if !f.Settings.IsEnabled() {
			slog.Debug("Feed disabled, skipping", "feed", f.Name)
			continue
		}

		category := CategoryOf(f.Name)
		if f.Category != "" {
			category = Category(f.Category)
		}

		sources = append(sources, Source{
			Name:     f.Name,
			URL:      f.URL,
			Category: category,
			Settings: f.Settings,
			Filters:  f.Filters,
		})
	}

	if len(sources) == 0 {
		return nil, ErrNoSources
	}

	slog.Debug("Feed table loaded", "source", l.describe(), "configured", len(config.Feeds), "enabled", len(sources))

	return sources, nil
}

func (l *Loader) describe() string {
	if l.path == "" {
		return "built-in"
	}
	return l.path
}

func (l *Loader) parseConfig(data []byte) (*Config, error) {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &config, nil
}

func (l *Loader) validateConfig(config *Config) error {
	seen := make(map[string]bool, len(config.Feeds))

	for i, f := range config.Feeds {
		if f.Name == "" {
			return fmt.Errorf("feed name is required at index %d", i)
		}
		if f.URL == "" {
			return fmt.Errorf("feed URL is required for %s", f.Name)
		}
		if seen[f.Name] {
			return fmt.Errorf("duplicate feed name: %s", f.Name)
		}
		seen[f.Name] = true

		if f.Category != "" && !validCategories[Category(f.Category)] {
			return fmt.Errorf("invalid category for %s: %s", f.Name, f.Category)
		}
		if f.Settings.MaxItems < 0 {
			return fmt.Errorf("max items must be non-negative for %s", f.Name)
		}

		for j, filter := range f.Filters {
			if !validFilterFields[filter.Field] {
				return fmt.Errorf("invalid filter field for %s at index %d: %s", f.Name, j, filter.Field)
			}
			if len(filter.Includes) == 0 && len(filter.Excludes) == 0 {
				return fmt.Errorf("filter for %s at index %d must have at least one include or exclude rule", f.Name, j)
			}
		}
	}

	return nil
}
