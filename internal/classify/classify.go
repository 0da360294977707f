// Package classify maps free-text shopping requests to a closed set of
// product categories using ordered keyword rules.
package classify

import (
	"strings"
)

// Category is one of the fixed product classification buckets.
type Category string

const (
	CategoryHalfLife       Category = "half-life"
	CategoryLego           Category = "lego"
	CategoryMonitor        Category = "monitor"
	CategoryShoes          Category = "shoes"
	CategoryLaptop         Category = "laptop"
	CategoryAudio          Category = "audio"
	CategoryPhone          Category = "phone"
	CategoryWatch          Category = "watch"
	CategoryNintendoSwitch Category = "nintendo-switch"
	CategoryPlaystation    Category = "playstation"
	CategoryXbox           Category = "xbox"
	CategoryGaming         Category = "gaming"
	CategoryGeneral        Category = "general"
)

type rule struct {
	category Category
	keywords []string
}

// Rule order matters: specific categories must come before broad ones so that
// "nintendo switch gaming bundle" lands on nintendo-switch, not gaming.
var rules = []rule{
	{CategoryLego, []string{"lego", "star wars", "blocks"}},
	{CategoryMonitor, []string{"monitor", "display", "screen"}},
	{CategoryShoes, []string{"shoes", "sneaker", "jordan", "nike"}},
	{CategoryLaptop, []string{"laptop", "macbook", "computer"}},
	{CategoryAudio, []string{"headphone", "airpods", "audio"}},
	{CategoryPhone, []string{"phone", "iphone", "samsung galaxy"}},
	{CategoryWatch, []string{"watch", "apple watch"}},
	{CategoryNintendoSwitch, []string{"nintendo", "switch"}},
	{CategoryPlaystation, []string{"playstation", "ps5", "ps4"}},
	{CategoryXbox, []string{"xbox"}},
	{CategoryGaming, []string{"gaming", "console"}},
}

// Classify resolves free text to a category; first matching rule wins and
// unmatched input falls back to CategoryGeneral. It never fails.
func Classify(text string) Category {
	request := strings.ToLower(text)

	// Half-Life collectibles outrank every keyword rule, including the split
	// spelling "half life" and the two words appearing apart.
	if strings.Contains(request, "half-life") || strings.Contains(request, "half life") ||
		(strings.Contains(request, "half") && strings.Contains(request, "life")) {
		return CategoryHalfLife
	}

	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(request, kw) {
				return r.category
			}
		}
	}
	return CategoryGeneral
}

// All lists every category in rule order, general last.
func All() []Category {
	out := []Category{CategoryHalfLife}
	for _, r := range rules {
		out = append(out, r.category)
	}
	return append(out, CategoryGeneral)
}
