package session

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"blinkbot/pkg"
)

// Persona selects the scripted starting state: a brand-new shopper going
// through onboarding, or the returning demo customer.
type Persona string

const (
	PersonaNew       Persona = "new"
	PersonaReturning Persona = "returning"
)

// Flow is the top-level conversation mode.
type Flow string

const (
	FlowOnboarding Flow = "onboarding"
	FlowChat       Flow = "chat"
)

// Profile is the mutable per-session customer record. PurchaseHistory and
// TotalSpent are static persona flavor; confirmed purchases in the live
// session are not folded back into them.
type Profile struct {
	Name            string               `json:"name"`
	Address         string               `json:"address"`
	ShoeSize        string               `json:"shoe_size"`
	ClothingSize    string               `json:"clothing_size"`
	Interests       []string             `json:"interests"`
	PreferredBrands []string             `json:"preferred_brands"`
	PurchaseHistory []pkg.PurchaseRecord `json:"purchase_history"`

	LastPurchasedShoes  string `json:"last_purchased_shoes,omitempty"`
	LastPurchasedLaptop string `json:"last_purchased_laptop,omitempty"`
	TotalSpent          int    `json:"total_spent"`
	MemberSince         string `json:"member_since,omitempty"`

	// At most one purchase can be pending details or funding at a time; a
	// new intent while one is pending simply replaces it.
	PendingPurchase *pkg.Item `json:"pending_purchase,omitempty"`
}

const (
	newUserBalance       = 0
	returningUserBalance = 150
)

func newUserProfile() Profile {
	return Profile{}
}

func returningUserProfile() Profile {
	return Profile{
		Name:            "Karim",
		Address:         "2847 Oak Street, San Francisco, CA 94115",
		ShoeSize:        "10.5",
		ClothingSize:    "M",
		Interests:       []string{"sneakers", "tech", "gaming"},
		PreferredBrands: []string{"Nike", "Apple", "Samsung", "Sony"},
		PurchaseHistory: []pkg.PurchaseRecord{
			{Item: "Air Jordan 4 Black Cat", Date: "2 weeks ago", Price: 210},
			{Item: "AirPods Pro 2nd Gen", Date: "1 month ago", Price: 249},
			{Item: "MacBook Pro 14\"", Date: "3 months ago", Price: 1999},
		},
		LastPurchasedShoes:  "Air Jordan 4 Black Cat",
		LastPurchasedLaptop: "MacBook Pro 14\"",
		TotalSpent:          2458,
		MemberSince:         "March 2024",
	}
}

var namePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^just call me (.+)$`),
	regexp.MustCompile(`(?i)^you can call me (.+)$`),
	regexp.MustCompile(`(?i)^call me (.+)$`),
	regexp.MustCompile(`(?i)^my name is (.+)$`),
	regexp.MustCompile(`(?i)^i'?m (.+)$`),
	regexp.MustCompile(`(?i)^it'?s (.+)$`),
}

// ExtractName pulls a name out of a free-text reply like "call me Frank" or
// "my name is frank.", normalizing it to leading-capital form. Input that
// matches no filler pattern is used verbatim. Idempotent on clean input.
func ExtractName(input string) string {
	name := strings.TrimSpace(input)
	for _, p := range namePatterns {
		if m := p.FindStringSubmatch(name); m != nil {
			name = strings.TrimSpace(m[1])
			break
		}
	}
	name = strings.TrimRight(name, ".,!?")
	if name == "" {
		return name
	}
	r, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r)) + strings.ToLower(name[size:])
}

func orNotProvided(s string) string {
	if s == "" {
		return "Not provided"
	}
	return s
}

// accountInfo renders the /info summary.
func accountInfo(p Profile, balance int) string {
	return fmt.Sprintf(
		"📊 **Your Account Info**\n\n"+
			"💰 **Balance:** $%d\n"+
			"👤 **Name:** %s\n"+
			"📍 **Address:** %s\n"+
			"👟 **Shoe Size:** %s\n"+
			"👕 **Clothing Size:** %s\n"+
			"🛍️ **Total Purchases:** %d\n"+
			"💵 **Total Spent:** $%d\n"+
			"📅 **Member Since:** %s\n\n"+
			"🏷️ **Preferred Brands:** %s\n"+
			"💡 **Interests:** %s",
		balance,
		orNotProvided(p.Name),
		orNotProvided(p.Address),
		orNotProvided(p.ShoeSize),
		orNotProvided(p.ClothingSize),
		len(p.PurchaseHistory),
		p.TotalSpent,
		orNotProvided(p.MemberSince),
		strings.Join(p.PreferredBrands, ", "),
		strings.Join(p.Interests, ", "),
	)
}
