package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Category
	}{
		{"half-life hyphenated", "looking for Half-Life memorabilia", CategoryHalfLife},
		{"half life split", "any half life figures?", CategoryHalfLife},
		{"half and life apart", "half of my life I wanted one of these", CategoryHalfLife},
		{"lego", "a big LEGO set", CategoryLego},
		{"star wars maps to lego", "star wars collectibles", CategoryLego},
		{"monitor", "need a new monitor", CategoryMonitor},
		{"display maps to monitor", "4k display for my desk", CategoryMonitor},
		{"shoes", "I want some shoes", CategoryShoes},
		{"jordan maps to shoes", "jordans in black", CategoryShoes},
		{"laptop", "a laptop for work", CategoryLaptop},
		{"macbook maps to laptop", "is the macbook worth it", CategoryLaptop},
		{"audio", "audio gear", CategoryAudio},
		{"airpods maps to audio", "lost my airpods again", CategoryAudio},
		{"phone", "phone upgrade time", CategoryPhone},
		{"watch", "a watch for running", CategoryWatch},
		{"nintendo", "nintendo stuff", CategoryNintendoSwitch},
		{"switch", "a switch for the kids", CategoryNintendoSwitch},
		{"playstation", "playstation bundle", CategoryPlaystation},
		{"ps5 maps to playstation", "where can I get a ps5", CategoryPlaystation},
		{"xbox", "xbox controller", CategoryXbox},
		{"gaming", "gaming setup", CategoryGaming},
		{"console maps to gaming", "a console for the living room", CategoryGaming},
		{"fallback", "a nice coffee grinder", CategoryGeneral},
		{"empty input", "", CategoryGeneral},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.input))
		})
	}
}

// Classification is order-sensitive: a specific term beats a generic term in
// the same input no matter where it appears.
func TestClassifyOrderSensitivity(t *testing.T) {
	tests := []struct {
		input string
		want  Category
	}{
		{"gaming on the switch", CategoryNintendoSwitch},
		{"switch gaming bundle", CategoryNintendoSwitch},
		{"half-life gaming collectibles", CategoryHalfLife},
		{"xbox gaming console", CategoryXbox},
		{"playstation gaming deals", CategoryPlaystation},
		{"a monitor for gaming", CategoryMonitor},
		{"nike gaming chair", CategoryShoes},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.input), "input %q", tt.input)
	}
}

func TestAllIncludesEveryCategory(t *testing.T) {
	all := All()
	assert.Equal(t, CategoryHalfLife, all[0])
	assert.Equal(t, CategoryGeneral, all[len(all)-1])
	assert.Len(t, all, 13)
}
