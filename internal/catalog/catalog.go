// Package catalog is the mock product inventory. Data is fixed demo content;
// there is no real stock, sellers or pricing behind it.
package catalog

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"blinkbot/internal/classify"
)

// Product is a raw catalog entry before pricing.
type Product struct {
	Name      string `json:"name"`
	BasePrice int    `json:"base_price"`
	UsedPrice int    `json:"used_price,omitempty"` // zero when no used offer exists
	Brand     string `json:"brand"`
	Image     string `json:"image,omitempty"`

	// Second-hand collectible listings carry their own fixed shipping and
	// seller metadata and are never repriced.
	SecondHand bool   `json:"second_hand,omitempty"`
	Condition  string `json:"condition,omitempty"`
	Seller     string `json:"seller,omitempty"`
	Shipping   int    `json:"shipping,omitempty"`
	Location   string `json:"location,omitempty"`
}

// Emoji returns the display glyph used as an image fallback per category.
func Emoji(cat classify.Category) string {
	switch cat {
	case classify.CategoryHalfLife, classify.CategoryNintendoSwitch,
		classify.CategoryPlaystation, classify.CategoryXbox, classify.CategoryGaming:
		return "🎮"
	case classify.CategoryLego:
		return "🧱"
	case classify.CategoryMonitor:
		return "🖥️"
	case classify.CategoryShoes:
		return "👟"
	case classify.CategoryLaptop:
		return "💻"
	case classify.CategoryAudio:
		return "🎧"
	case classify.CategoryPhone:
		return "📱"
	case classify.CategoryWatch:
		return "⌚"
	default:
		return "📦"
	}
}

// MainlyNew reports whether search results for a category should always lead
// with new-condition items (consumer electronics) rather than a used/new mix.
func MainlyNew(cat classify.Category) bool {
	switch cat {
	case classify.CategoryGaming, classify.CategoryPhone, classify.CategoryLaptop,
		classify.CategoryAudio, classify.CategoryWatch:
		return true
	}
	return false
}

var products = map[classify.Category][]Product{
	classify.CategoryHalfLife: {
		{Name: "Half-Life 2 Collector's Edition (Used)", BasePrice: 89, Brand: "Valve", Image: "half-life.webp",
			SecondHand: true, Condition: "Used - Very Good", Seller: "retro_games_vault", Shipping: 12, Location: "Portland, OR"},
		{Name: "Half-Life Alyx VR Headcrab Plush (Pre-owned)", BasePrice: 45, Brand: "Valve", Image: "half-life-2.webp",
			SecondHand: true, Condition: "Used - Good", Seller: "gaming_collectibles_99", Shipping: 8, Location: "Seattle, WA"},
		{Name: "Half-Life Gordon Freeman Action Figure (Vintage)", BasePrice: 125, Brand: "NECA", Image: "half-life-3.webp",
			SecondHand: true, Condition: "Used - Excellent", Seller: "valve_memorabilia", Shipping: 15, Location: "Los Angeles, CA"},
		{Name: "Half-Life Orange Box PC Game Complete (Second Hand)", BasePrice: 35, Brand: "Valve", Image: "half-life-4.webp",
			SecondHand: true, Condition: "Used - Very Good", Seller: "classic_pc_games", Shipping: 5, Location: "Austin, TX"},
		{Name: "Half-Life Lambda Symbol Metal Pin (Pre-owned)", BasePrice: 18, Brand: "Valve", Image: "half-life-5.webp",
			SecondHand: true, Condition: "Used - Good", Seller: "nerd_accessories_co", Shipping: 3, Location: "Chicago, IL"},
	},
	classify.CategoryLego: {
		{Name: "LEGO Star Wars Imperial Star Destroyer", BasePrice: 699, Brand: "LEGO", Image: "lego-1.png"},
		{Name: "LEGO Star Wars Millennium Falcon", BasePrice: 849, Brand: "LEGO", Image: "lego-2.png"},
		{Name: "LEGO Star Wars AT-AT Walker", BasePrice: 799, Brand: "LEGO", Image: "lego-3.png"},
		{Name: "LEGO Star Wars X-Wing Starfighter", BasePrice: 199, Brand: "LEGO", Image: "lego-4.png"},
		{Name: "LEGO Star Wars Mandalorian Razor Crest", BasePrice: 599, Brand: "LEGO", Image: "lego-5.png"},
	},
	classify.CategoryMonitor: {
		{Name: "Samsung 4K Monitor M7 Series", BasePrice: 299, Brand: "Samsung"},
		{Name: "LG UltraFine 4K Display", BasePrice: 399, Brand: "LG"},
		{Name: "Dell Professional Monitor", BasePrice: 199, Brand: "Dell"},
	},
	classify.CategoryShoes: {
		{Name: "Air Jordan 4 Black Cat", BasePrice: 210, UsedPrice: 180, Brand: "Nike"},
		{Name: "Nike Air Force 1", BasePrice: 110, UsedPrice: 75, Brand: "Nike"},
		{Name: "Adidas Ultraboost 22", BasePrice: 190, UsedPrice: 120, Brand: "Adidas"},
		{Name: "Jordan 1 Retro High OG", BasePrice: 170, UsedPrice: 140, Brand: "Nike"},
	},
	classify.CategoryLaptop: {
		{Name: "MacBook Pro 14\" M3", BasePrice: 1999, UsedPrice: 1650, Brand: "Apple"},
		{Name: "MacBook Air M2", BasePrice: 1199, UsedPrice: 950, Brand: "Apple"},
		{Name: "ThinkPad X1 Carbon Gen 11", BasePrice: 1399, UsedPrice: 1050, Brand: "Lenovo"},
		{Name: "Surface Laptop 5", BasePrice: 1299, UsedPrice: 950, Brand: "Microsoft"},
	},
	classify.CategoryAudio: {
		{Name: "AirPods Pro 2nd Gen", BasePrice: 249, Brand: "Apple"},
		{Name: "Sony WH-1000XM5", BasePrice: 399, Brand: "Sony"},
		{Name: "Bose QuietComfort", BasePrice: 329, Brand: "Bose"},
	},
	classify.CategoryPhone: {
		{Name: "iPhone 15 Pro", BasePrice: 999, UsedPrice: 820, Brand: "Apple"},
		{Name: "iPhone 14", BasePrice: 729, UsedPrice: 580, Brand: "Apple"},
		{Name: "Samsung Galaxy S24", BasePrice: 799, UsedPrice: 650, Brand: "Samsung"},
		{Name: "Google Pixel 8", BasePrice: 699, UsedPrice: 520, Brand: "Google"},
	},
	classify.CategoryWatch: {
		{Name: "Apple Watch Series 9", BasePrice: 399, Brand: "Apple"},
		{Name: "Samsung Galaxy Watch 6", BasePrice: 329, Brand: "Samsung"},
		{Name: "Garmin Forerunner 955", BasePrice: 499, Brand: "Garmin"},
	},
	classify.CategoryNintendoSwitch: {
		{Name: "Nintendo Switch 2", BasePrice: 399, Brand: "Nintendo", Image: "switch-2.webp"},
		{Name: "Nintendo Switch OLED", BasePrice: 349, UsedPrice: 280, Brand: "Nintendo"},
		{Name: "Nintendo Switch (V2)", BasePrice: 299, UsedPrice: 220, Brand: "Nintendo"},
		{Name: "Nintendo Switch Lite", BasePrice: 199, UsedPrice: 150, Brand: "Nintendo"},
		{Name: "Nintendo Switch Pro Controller", BasePrice: 69, UsedPrice: 45, Brand: "Nintendo"},
	},
	classify.CategoryPlaystation: {
		{Name: "PlayStation 5", BasePrice: 499, UsedPrice: 420, Brand: "Sony"},
		{Name: "PlayStation 5 Digital", BasePrice: 399, UsedPrice: 340, Brand: "Sony"},
		{Name: "PlayStation 4 Pro", BasePrice: 299, UsedPrice: 250, Brand: "Sony"},
		{Name: "DualSense Controller", BasePrice: 69, UsedPrice: 45, Brand: "Sony"},
	},
	classify.CategoryXbox: {
		{Name: "Xbox Series X", BasePrice: 499, UsedPrice: 410, Brand: "Microsoft"},
		{Name: "Xbox Series S", BasePrice: 299, UsedPrice: 220, Brand: "Microsoft"},
		{Name: "Xbox Wireless Controller", BasePrice: 59, UsedPrice: 35, Brand: "Microsoft"},
	},
	classify.CategoryGaming: {
		{Name: "Steam Deck 256GB", BasePrice: 529, UsedPrice: 450, Brand: "Valve"},
		{Name: "ROG Ally Gaming Handheld", BasePrice: 699, UsedPrice: 550, Brand: "ASUS"},
		{Name: "Gaming Headset", BasePrice: 99, UsedPrice: 65, Brand: "SteelSeries"},
	},
}

// Lookup returns the candidate products for a category. For the general
// fallback the request text itself seeds three generic offers.
func Lookup(cat classify.Category, request string) []Product {
	if list, ok := products[cat]; ok {
		out := make([]Product, len(list))
		copy(out, list)
		return out
	}
	name := capitalize(strings.TrimSpace(request))
	if name == "" {
		name = "Item"
	}
	return []Product{
		{Name: name, BasePrice: 99, Brand: "Various"},
		{Name: "Premium " + strings.TrimSpace(request), BasePrice: 199, Brand: "Top Brand"},
		{Name: "Budget " + strings.TrimSpace(request), BasePrice: 49, Brand: "Value Brand"},
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
