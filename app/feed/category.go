package feed

import (
	"cmp"
	"slices"
)

// knownCategories maps well-known feed names to their category. Names not
// listed here fall into CategoryOther.
var knownCategories = map[string]Category{
	"ArsTechnica": CategoryTech,
	"Engadget":    CategoryTech,
	"Gizmodo":     CategoryTech,
	"Lifehacker":  CategoryTech,
	"Mashable":    CategoryTech,
	"TechCrunch":  CategoryTech,
	"The Verge":   CategoryTech,
	"WIRED":       CategoryTech,

	"BBC":        CategoryNews,
	"CNN":        CategoryNews,
	"HuffPost":   CategoryNews,
	"HuffPostUS": CategoryNews,

	"NASA":       CategoryScience,
	"SciAmerica": CategoryScience,

	"Billboard":   CategoryEntertainment,
	"RollinStone": CategoryEntertainment,

	"FoolWatch": CategoryBusiness,
	"Forbes":    CategoryBusiness,
	"HBR":       CategoryBusiness,

	"Buzzfeed":   CategoryOther,
	"ESPN":       CategoryOther,
	"FeedBurner": CategoryOther,
}

var validCategories = map[Category]bool{
	CategoryTech:          true,
	CategoryNews:          true,
	CategoryScience:       true,
	CategoryEntertainment: true,
	CategoryBusiness:      true,
	CategoryOther:         true,
}

func CategoryOf(name string) Category {
	if c, ok := knownCategories[name]; ok {
		return c
	}
	return CategoryOther
}

// SortSources orders sources by category label, then name. The sort is
// stable so sources with equal keys keep their configured order.
func SortSources(sources []Source) {
	slices.SortStableFunc(sources, func(a, b Source) int {
		return cmp.Or(
			cmp.Compare(a.Category, b.Category),
			cmp.Compare(a.Name, b.Name),
		)
	})
}
