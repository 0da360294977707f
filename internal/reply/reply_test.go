package reply

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"blinkbot/internal/classify"
)

func newGenerator(seed int64) *Generator {
	return NewGenerator(rand.New(rand.NewSource(seed)))
}

func TestContextualRendersProfileFacts(t *testing.T) {
	g := newGenerator(1)
	ctx := Context{
		Returning:           true,
		Request:             "Shoes",
		ShoeSize:            "10.5",
		LastPurchasedShoes:  "Air Jordan 4 Black Cat",
		LastPurchasedLaptop: "MacBook Pro 14\"",
	}
	for i := 0; i < 50; i++ {
		msg := g.Contextual(classify.CategoryShoes, ctx)
		assert.NotContains(t, msg, "{")
		assert.NotEmpty(t, msg)
	}
}

func TestContextualNewUserPool(t *testing.T) {
	g := newGenerator(2)
	ctx := Context{Returning: false, Request: "shoes"}
	for i := 0; i < 50; i++ {
		msg := g.Contextual(classify.CategoryShoes, ctx)
		// New-user phrasings never reference past purchases.
		assert.NotContains(t, msg, "last time")
		assert.NotContains(t, msg, "Oak Street")
	}
}

func TestContextualFallsBackToGeneral(t *testing.T) {
	g := newGenerator(3)
	ctx := Context{Returning: true, Request: "Garden Gnome"}
	seen := false
	for i := 0; i < 50; i++ {
		msg := g.Contextual(classify.CategoryGeneral, ctx)
		assert.NotContains(t, msg, "{request}")
		if strings.Contains(msg, "garden gnome") {
			seen = true
		}
	}
	assert.True(t, seen, "request text should appear lowercased in at least one phrasing")
}

func TestContextualDeterministicWithSeed(t *testing.T) {
	ctx := Context{Returning: true, Request: "lego"}
	a := newGenerator(42).Contextual(classify.CategoryLego, ctx)
	b := newGenerator(42).Contextual(classify.CategoryLego, ctx)
	assert.Equal(t, a, b)
}

func TestDetectCasual(t *testing.T) {
	tests := []struct {
		input string
		kind  CasualKind
		ok    bool
	}{
		{"hey there", CasualGreeting, true},
		{"Hello!", CasualGreeting, true},
		{"what's up", CasualGreeting, true},
		{"good morning", CasualGreeting, true},
		{"thanks a lot", CasualThanks, true},
		{"ok cool", CasualThanks, true},
		{"who are you", CasualAbout, true},
		{"tell me about yourself", CasualAbout, true},
		{"can you help me", CasualHelp, true},
		{"how does this work", CasualHelp, true},
		{"I want some shoes", "", false},
		{"find me a laptop", "", false},
	}
	for _, tt := range tests {
		kind, ok := DetectCasual(tt.input)
		assert.Equal(t, tt.ok, ok, "input %q", tt.input)
		if tt.ok {
			assert.Equal(t, tt.kind, kind, "input %q", tt.input)
		}
	}
}

func TestCasualPools(t *testing.T) {
	g := newGenerator(7)
	for _, kind := range []CasualKind{CasualGreeting, CasualThanks, CasualAbout, CasualHelp} {
		assert.NotEmpty(t, g.Casual(kind))
	}
	// Unknown kind falls back rather than panicking.
	assert.NotEmpty(t, g.Casual(CasualKind("nonsense")))
}
