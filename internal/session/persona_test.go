package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Frank", "Frank"},
		{"frank", "Frank"},
		{"call me frank.", "Frank"},
		{"just call me Frank!", "Frank"},
		{"you can call me FRANK", "Frank"},
		{"my name is frank", "Frank"},
		{"I'm frank", "Frank"},
		{"im frank", "Frank"},
		{"it's frank", "Frank"},
		{"  frank  ", "Frank"},
		{"frank?", "Frank"},
		{"émile", "Émile"},
		{"call me ÉMILE", "Émile"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExtractName(tt.input), "input %q", tt.input)
	}
}

func TestExtractNameIdempotent(t *testing.T) {
	for _, input := range []string{"call me frank", "my name is Sarah", "Alex"} {
		once := ExtractName(input)
		assert.Equal(t, once, ExtractName(once), "input %q", input)
	}
}

func TestAccountInfoNewUser(t *testing.T) {
	out := accountInfo(newUserProfile(), 0)
	assert.Contains(t, out, "Your Account Info")
	assert.Contains(t, out, "**Balance:** $0")
	assert.Contains(t, out, "**Name:** Not provided")
	assert.Contains(t, out, "**Total Purchases:** 0")
}

func TestAccountInfoReturningUser(t *testing.T) {
	out := accountInfo(returningUserProfile(), returningUserBalance)
	assert.Contains(t, out, "**Balance:** $150")
	assert.Contains(t, out, "**Name:** Karim")
	assert.Contains(t, out, "**Shoe Size:** 10.5")
	assert.Contains(t, out, "**Total Purchases:** 3")
	assert.Contains(t, out, "**Total Spent:** $2458")
	assert.Contains(t, out, "Nike, Apple, Samsung, Sony")
}
