// Package reply picks canned assistant phrasings. Each product category has
// a pool of contextual openers; returning users get variants referencing
// their purchase history. Selection is uniform over the pool from an
// injected random source.
package reply

import (
	"math/rand"
	"regexp"
	"strings"

	"blinkbot/internal/classify"
)

// Context carries the profile facts a phrasing may reference.
type Context struct {
	Returning           bool
	Request             string
	ShoeSize            string
	LastPurchasedShoes  string
	LastPurchasedLaptop string
}

// Generator selects replies.
type Generator struct {
	rng *rand.Rand
}

func NewGenerator(rng *rand.Rand) *Generator {
	return &Generator{rng: rng}
}

type pool struct {
	returning []string // used for both personas when newUser is empty
	newUser   []string
}

// Placeholders: {request}, {shoe_size}, {last_shoes}, {last_laptop}.
var contextualPools = map[classify.Category]pool{
	classify.CategoryShoes: {
		returning: []string{
			"More shoes! 👟 Since you loved those {last_shoes} from 2 weeks ago, I'm thinking size {shoe_size} again? Or trying something different this time?",
			"Nice! You're definitely building a solid collection. Size {shoe_size} like usual, shipping to Oak Street?",
			"Love the shoe game! Based on your Nike preferences and that size {shoe_size} fit from last time, want me to find similar options?",
		},
		newUser: []string{
			"Shoes! 👟 What size should I look for? I'll remember this for future searches.",
			"Nice choice! Looking for any particular style or brand?",
			"Shoe shopping! Let me know your size and I'll find some great options.",
		},
	},
	classify.CategoryLaptop: {
		returning: []string{
			"Laptop shopping again! That {last_laptop} treating you well, or time for an upgrade? 💻",
			"Tech time! Since you went premium with the MacBook last time, staying in the Apple ecosystem or exploring other options?",
			"Got it! You spent good money on that {last_laptop} - what's driving the need for another one?",
		},
	},
	classify.CategoryPhone: {
		returning: []string{
			"Phone hunting! 📱 What type of phone are you looking for?",
			"Nice! Any particular brand or features you have in mind?",
			"Phone shopping! Let me find some great options for you.",
		},
	},
	classify.CategoryAudio: {
		returning: []string{
			"Audio gear! Those AirPods Pro you got last month working out, or need something different? 🎧",
			"Headphone time! I remember you liked the AirPods Pro quality - going for similar premium stuff or trying over-ears?",
			"Got it! Since you're in the Apple ecosystem with that MacBook and AirPods, staying with Apple or exploring?",
		},
	},
	classify.CategoryMonitor: {
		returning: []string{
			"Monitor shopping! With that MacBook Pro setup, I'm thinking you want something that'll complement it nicely? 🖥️",
			"Nice! For your SF setup, thinking big screen for productivity or focusing on color accuracy?",
			"Got it! Based on your tech preferences, probably want something premium that matches your MacBook quality?",
		},
	},
	classify.CategoryWatch: {
		returning: []string{
			"Smart watch! Given your Apple ecosystem (MacBook, AirPods), I'm guessing Apple Watch? ⌚",
			"Watch shopping! You seem to like premium tech - going high-end or trying something more budget-friendly?",
			"Nice choice! For your Oak Street lifestyle, thinking fitness tracking or more general smart features?",
		},
	},
	classify.CategoryNintendoSwitch: {
		returning: []string{
			"Nintendo Switch! 🎮 Let me find some great options for you.",
			"Great choice! Finding Nintendo Switch options now.",
			"Nintendo time! Let me find some great Switch options for you.",
		},
	},
	classify.CategoryPlaystation: {
		returning: []string{
			"PlayStation! 🎮 Let me find some great options for you.",
			"Great choice! Finding PlayStation options now.",
			"PlayStation hunting! Let me find some great options.",
		},
	},
	classify.CategoryXbox: {
		returning: []string{
			"Xbox! 🎮 Let me find some great gaming options for you.",
			"Great choice! Finding Xbox options now.",
			"Xbox time! Let me find some awesome options.",
		},
	},
	classify.CategoryGaming: {
		returning: []string{
			"Gaming gear! 🎮 Console or PC setup?",
			"Nice! What kind of gaming gear are you looking for?",
			"Gaming time! Let me find some awesome options for you.",
		},
	},
	classify.CategoryLego: {
		returning: []string{
			"LEGO time! 🧱 What kind of sets are you looking for?",
			"Nice choice! Star Wars, architecture, or something else?",
			"LEGO hunting! Let me find some great sets for you.",
		},
	},
	classify.CategoryHalfLife: {
		returning: []string{
			"Half-Life collectibles! 🎮 I see gaming in your interests - perfect match! Looking for vintage stuff or specific items?",
			"Nice! Half-Life memorabilia is getting rare these days. I'll check eBay for some authentic pieces from collectors.",
			"Half-Life hunting! Given your taste for quality items, I'll find some genuine collectibles with good condition ratings.",
		},
		newUser: []string{
			"Half-Life collectibles! 🎮 Awesome choice - that's some legendary gaming history. I'll search eBay for authentic pieces.",
			"Nice! Half-Life items are becoming quite valuable. Let me find some second-hand treasures from collectors.",
			"Half-Life memorabilia! I'll dig through eBay listings to find some genuine vintage pieces for you.",
		},
	},
	classify.CategoryGeneral: {
		returning: []string{
			"On it! You've got good taste based on your purchase history - let me find quality {request} options.",
			"Got it! I'll focus on premium options since you usually go for quality stuff.",
			"Sweet! Let me hunt down some great options for you.",
		},
	},
}

// Contextual returns a category opener rendered against ctx. Categories
// without a dedicated pool fall back to the general pool.
func (g *Generator) Contextual(cat classify.Category, ctx Context) string {
	p, ok := contextualPools[cat]
	if !ok {
		p = contextualPools[classify.CategoryGeneral]
	}
	choices := p.returning
	if !ctx.Returning && len(p.newUser) > 0 {
		choices = p.newUser
	}
	return render(choices[g.rng.Intn(len(choices))], ctx)
}

func render(template string, ctx Context) string {
	r := strings.NewReplacer(
		"{request}", strings.ToLower(ctx.Request),
		"{shoe_size}", ctx.ShoeSize,
		"{last_shoes}", ctx.LastPurchasedShoes,
		"{last_laptop}", ctx.LastPurchasedLaptop,
	)
	return r.Replace(template)
}

// CasualKind buckets small talk into the canned response pools.
type CasualKind string

const (
	CasualGreeting CasualKind = "greeting"
	CasualThanks   CasualKind = "thanks"
	CasualAbout    CasualKind = "about"
	CasualHelp     CasualKind = "help"
)

var casualPatterns = []struct {
	kind CasualKind
	re   *regexp.Regexp
}{
	{CasualGreeting, regexp.MustCompile(`^(hey|hi|hello|yo|sup|what'?s up|how are you|good morning|good afternoon|good evening)`)},
	{CasualThanks, regexp.MustCompile(`^(thanks|thank you|cool|nice|awesome|great|perfect|ok|okay)`)},
	{CasualAbout, regexp.MustCompile(`^(how do you work|what do you do|who are you|tell me about)`)},
	{CasualHelp, regexp.MustCompile(`^(can you help|what can you do|how does this work)`)},
}

var casualPools = map[CasualKind][]string{
	CasualGreeting: {
		"Hey there! 👋 I'm doing great, thanks for asking! I'm basically your go-to for finding and buying the stuff you love.",
		"What's up! 😊 Just here chillin' and ready to help you find some cool stuff. What's on your wishlist?",
		"Hey! I'm good, just been hunting for some sweet deals. What can I help you find today?",
		"Sup! 🤙 Living my best life finding awesome products for people like you. Need anything specific?",
	},
	CasualThanks: {
		"You're so welcome! 😊 That's what I'm here for. Need anything else?",
		"No problem at all! Always happy to help. What else can I find for you?",
		"My pleasure! 🙌 I love helping people find great stuff. Anything else on your mind?",
		"Anytime! That's literally what I live for 😄 Got anything else you want me to hunt down?",
	},
	CasualAbout: {
		"I'm Blink! 🤖 Think of me as your personal shopping buddy who never sleeps. I find products, compare prices, and can even buy stuff for you instantly.",
		"I'm your go-to for finding cool stuff online! I hunt down the best deals and can even buy things for you. Pretty neat, right?",
		"I'm basically like having a really good friend who's obsessed with finding great deals 😅 Tell me what you want and I'll make it happen!",
		"I'm Blink - basically your best friend for finding awesome stuff! I live to hunt down great products at killer prices. What's something you've been wanting lately?",
	},
	CasualHelp: {
		"I can help you find literally anything! Just tell me what you're looking for - could be shoes, tech, clothes, whatever. I'll find options and can buy them for you too.",
		"Sure! Just say what you want - like 'find me some AirPods' or 'I need a new laptop' - and I'll hunt down the best options for you. Easy!",
		"I'm super easy to use! Just tell me what you want in normal language. I'll find it, show you options, and can even purchase it if you want. Try me!",
		"Absolutely! Think of me like texting a friend who's really good at shopping. Just say what you need and I'll handle the rest 🛍️",
	},
}

// DetectCasual reports whether text is small talk (greeting, thanks, a
// question about the assistant, or a help request) rather than a shopping
// request. Matching is a case-insensitive prefix check.
func DetectCasual(text string) (CasualKind, bool) {
	lower := strings.ToLower(strings.TrimSpace(text))
	for _, p := range casualPatterns {
		if p.re.MatchString(lower) {
			return p.kind, true
		}
	}
	return "", false
}

// Casual picks a response from the pool for kind. Unknown kinds fall back to
// the greeting pool.
func (g *Generator) Casual(kind CasualKind) string {
	choices, ok := casualPools[kind]
	if !ok {
		choices = casualPools[CasualGreeting]
	}
	return choices[g.rng.Intn(len(choices))]
}
