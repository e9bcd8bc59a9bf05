package feed

import (
	"log/slog"
	"strings"
)

// Filterer drops items that fail a source's include/exclude rules and caps
// the item count at the source's max_items.
type Filterer struct{}

func NewFilterer() *Filterer {
	return &Filterer{}
}

// Keep reports whether item passes every filter of source.
func (f *Filterer) Keep(item Item, source Source) bool {
	filtered, reason := f.applyFilters(item, source.Filters)
	if filtered {
		slog.Debug("Item filtered", "feed", source.Name, "title", item.Title, "reason", reason)
	}
	return !filtered
}

// Limit reports whether another item may be shown after shown items.
func (f *Filterer) Limit(shown int, source Source) bool {
	return source.Settings.MaxItems == 0 || shown < source.Settings.MaxItems
}

func (f *Filterer) applyFilters(item Item, filters []Filter) (bool, string) {
	for _, filter := range filters {
		value := f.getFieldValue(item, filter.Field)

		for _, exclude := range filter.Excludes {
			if f.matchesFilter(value, exclude) {
				return true, "excluded by " + filter.Field + " filter: contains '" + exclude + "'"
			}
		}

		if len(filter.Includes) > 0 {
			matched := false
			for _, include := range filter.Includes {
				if f.matchesFilter(value, include) {
					matched = true
					break
				}
			}
			if !matched {
				return true, "excluded by " + filter.Field + " filter: no include matched"
			}
		}
	}

	return false, ""
}

func (f *Filterer) matchesFilter(value, pattern string) bool {
	return strings.Contains(strings.ToLower(value), strings.ToLower(pattern))
}

func (f *Filterer) getFieldValue(item Item, field string) string {
	switch field {
	case "title":
		return item.Title
	case "body":
		return item.Body
	default:
		return ""
	}
}
