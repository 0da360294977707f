// Package session owns the conversation state machine: one active shopping
// chat whose turns flow through a single entry point, mutating the profile,
// balance and conversation mode, and appending messages to the chat log.
package session

import (
	"context"
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/rs/zerolog"

	"blinkbot/internal/catalog"
	"blinkbot/internal/chatlog"
	"blinkbot/internal/classify"
	"blinkbot/internal/config"
	"blinkbot/internal/pricing"
	"blinkbot/internal/reply"
	"blinkbot/internal/resolver"
	"blinkbot/pkg"
)

// Input is one user turn: plain text, an image attachment, or a simulated
// voice note.
type Input interface{ isInput() }

// Text is a typed chat turn.
type Text string

func (Text) isInput() {}

// Image is an uploaded image turn. The reference is opaque; the core never
// looks at pixel content.
type Image struct {
	Ref string
}

func (Image) isInput() {}

// Voice is a recorded voice turn. No speech recognition exists, so it always
// resolves to the same scripted phrase.
type Voice struct{}

func (Voice) isInput() {}

const voicePhrase = "I'm looking for some Star Wars Lego collectibles"

var (
	availabilityOptions = []string{"In Stock", "Limited Stock", "Back Ordered", "2-3 in stock"}
	deliveryOptions     = []string{"Tomorrow", "2-3 days", "3-5 days", "Next week"}
)

var (
	idNodeOnce sync.Once
	idNode     *snowflake.Node
)

func nextID() string {
	idNodeOnce.Do(func() {
		node, err := snowflake.NewNode(1)
		if err != nil {
			panic(fmt.Sprintf("snowflake node init: %v", err))
		}
		idNode = node
	})
	return idNode.Generate().String()
}

// Options configures a Session. Zero values fall back to sane defaults; Rand
// and Now exist so tests can pin randomness and time.
type Options struct {
	Log       chatlog.Log
	Rand      *rand.Rand
	Now       func() time.Time
	Assistant config.AssistantConfig
	Logger    zerolog.Logger
}

// Session is the conversation state machine for one active chat. It is safe
// for concurrent callers, but turns are processed strictly one at a time.
type Session struct {
	mu sync.Mutex

	persona Persona
	flow    Flow
	profile Profile
	balance int

	waitingForSize    bool
	pendingShoeSearch string

	log     chatlog.Log
	rng     *rand.Rand
	now     func() time.Time
	cfg     config.AssistantConfig
	pricing *pricing.Engine
	replies *reply.Generator
	urls    *resolver.URLResolver
	images  *resolver.ImageRecognizer
	logger  zerolog.Logger
}

// New creates a session initialized for the given persona.
func New(persona Persona, opts Options) *Session {
	if opts.Log == nil {
		opts.Log = chatlog.NewMemoryLog()
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Assistant == (config.AssistantConfig{}) {
		opts.Assistant = config.DefaultAssistant()
	}

	engine := pricing.NewEngine(opts.Rand)
	engine.CouponProbability = opts.Assistant.CouponProbability

	s := &Session{
		persona: persona,
		log:     opts.Log,
		rng:     opts.Rand,
		now:     opts.Now,
		cfg:     opts.Assistant,
		pricing: engine,
		replies: reply.NewGenerator(opts.Rand),
		urls:    resolver.NewURLResolver(opts.Rand),
		images:  resolver.NewImageRecognizer(opts.Rand),
		logger:  opts.Logger,
	}

	switch persona {
	case PersonaNew:
		s.flow = FlowOnboarding
		s.profile = newUserProfile()
		s.balance = newUserBalance
	default:
		s.persona = PersonaReturning
		s.flow = FlowChat
		s.profile = returningUserProfile()
		s.balance = returningUserBalance
	}
	return s
}

// Persona returns the active persona.
func (s *Session) Persona() Persona {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persona
}

// Profile returns a snapshot of the customer record.
func (s *Session) Profile() Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.profile
	if p.PendingPurchase != nil {
		item := *p.PendingPurchase
		p.PendingPurchase = &item
	}
	return p
}

// Balance returns the current account balance.
func (s *Session) Balance() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.balance
}

// Messages returns the full transcript.
func (s *Session) Messages(ctx context.Context) ([]pkg.Message, error) {
	return s.log.Messages(ctx)
}

// Start emits the persona's welcome turn. Call once, right after New.
func (s *Session) Start(ctx context.Context) ([]pkg.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.newEmitter(ctx)
	switch s.persona {
	case PersonaNew:
		e.assistant("Hey there! Welcome to Blink… So tell me, what do you want to buy?", "", nil, s.typingDelay())
	default:
		e.assistant("Hey Karim! 👋 Welcome back!\n\nHope you're enjoying those Air Jordan 4s you got yesterday! They're fire! 🔥\n\nTell me what's on your mind? Anything else you're hunting for today?", "", nil, s.typingDelay())
	}
	return e.done()
}

// HandleInput processes one user turn and returns the messages appended by
// it, in visible order. Unrecognized input never errors; it falls through to
// a general search or a re-prompt. Errors only surface from the chat log.
func (s *Session) HandleInput(ctx context.Context, in Input) ([]pkg.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.newEmitter(ctx)
	switch v := in.(type) {
	case Image:
		s.handleImage(e, v)
	case Voice:
		s.handleText(e, voicePhrase)
	case Text:
		s.handleText(e, string(v))
	default:
		s.logger.Warn().Msgf("ignoring unknown input type %T", in)
	}
	return e.done()
}

func (s *Session) handleText(e *emitter, text string) {
	e.user(text, "", nil)

	// Onboarding has exactly one scripted step: whatever the user says first
	// is taken as their initial product request.
	if s.flow == FlowOnboarding {
		s.handleFirstRequest(e, text)
		return
	}

	// A pasted link short-circuits everything else this turn.
	if url, ok := resolver.FindURL(text); ok {
		s.handleURL(e, url, text)
		return
	}

	if s.profile.PendingPurchase != nil && s.profile.Name == "" {
		s.collectName(e, text)
		return
	}
	if s.profile.PendingPurchase != nil && s.profile.Address == "" {
		s.collectAddress(e, text)
		return
	}

	if strings.TrimSpace(text) == "/info" {
		e.assistant(accountInfo(s.profile, s.balance), "", nil, s.typingDelay())
		return
	}

	if s.waitingForSize {
		s.handleSizeConfirmation(e, text)
		return
	}

	if kind, ok := reply.DetectCasual(text); ok {
		e.assistant(s.replies.Casual(kind), "", nil, s.typingDelay())
		return
	}

	s.handleShoppingRequest(e, text)
}

func (s *Session) handleFirstRequest(e *emitter, text string) {
	s.flow = FlowChat
	s.profile.MemberSince = s.now().Format("January 2006")
	s.handleShoppingRequest(e, text)
}

func (s *Session) handleShoppingRequest(e *emitter, text string) {
	cat := classify.Classify(text)
	s.logger.Info().Str("category", string(cat)).Msg("shopping request")

	e.assistant(s.replies.Contextual(cat, s.replyContext(text)), "", nil, s.typingDelay())

	// Shoes pause for a size check before searching.
	if cat == classify.CategoryShoes {
		s.waitingForSize = true
		s.pendingShoeSearch = text
		return
	}
	s.search(e, text)
}

var sizeRe = regexp.MustCompile(`\b\d+(\.\d+)?\b`)

func (s *Session) handleSizeConfirmation(e *emitter, text string) {
	lower := strings.ToLower(text)

	switch {
	case strings.Contains(lower, "yes") || strings.Contains(lower, "yeah") ||
		strings.Contains(lower, "sounds good") || strings.Contains(lower, "perfect"):
		e.assistant(fmt.Sprintf("Perfect! Searching for size %s shoes now...", s.profile.ShoeSize), "", nil, s.typingDelay())
	case sizeRe.MatchString(lower):
		size := sizeRe.FindString(lower)
		s.profile.ShoeSize = size
		e.assistant(fmt.Sprintf("Got it! Updated your size to %s. Searching now...", size), "", nil, s.typingDelay())
	default:
		e.assistant(`No worries! What size should I look for? Just tell me the number like "10" or "9.5"`, "", nil, s.typingDelay())
		return
	}

	query := s.pendingShoeSearch
	s.waitingForSize = false
	s.pendingShoeSearch = ""
	s.search(e, query)
}

func (s *Session) collectName(e *emitter, text string) {
	name := ExtractName(text)
	s.profile.Name = name
	e.assistant(fmt.Sprintf("Perfect, %s! Now I'll need your shipping address.", name), pkg.KindCollectAddress, nil, s.typingDelay())
}

func (s *Session) collectAddress(e *emitter, text string) {
	s.profile.Address = strings.TrimSpace(text)
	e.assistant("Great! I've got everything I need.", "", nil, s.typingDelay())

	item := *s.profile.PendingPurchase
	total := item.Price + item.Shipping

	if s.balance < total {
		// Pending purchase stays set until funding completes.
		e.assistant("Now to complete your order, you'll need to add funds to your Blink account.", pkg.KindFundingRequired, pkg.FundingRequiredPayload{
			Item:           item,
			Total:          total,
			CurrentBalance: s.balance,
			RequiredAmount: total,
		}, s.confirmDelay())
		return
	}

	s.profile.PendingPurchase = nil
	s.emitConfirmation(e, item, total)
}

func (s *Session) handleURL(e *emitter, url, original string) {
	s.logger.Info().Str("url", url).Msg("link turn")
	product := s.urls.Resolve(url)

	e.assistant("Perfect! I can see you want me to buy this item from the link. Let me grab the details...", "", nil, s.typingDelay())
	e.assistant("Got it! Here's what I found:", pkg.KindURLProduct, pkg.URLProductPayload{
		Product:         product,
		OriginalURL:     url,
		OriginalMessage: original,
	}, s.confirmDelay())
}

func (s *Session) handleImage(e *emitter, img Image) {
	e.user("", pkg.KindImage, pkg.ImagePayload{ImageRef: img.Ref})

	product := s.images.Recognize(img.Ref)
	e.assistant("Great! I can see the image you shared. Let me analyze it to find this product...", "", nil, s.typingDelay())
	e.assistant("Found it! Here's what I identified from your image:", pkg.KindImageProduct, pkg.ImageProductPayload{
		Product:       product,
		OriginalImage: img.Ref,
	}, s.imageAnalysisDelay())
}

// search classifies query, prices 3-5 catalog candidates and emits either a
// single search-result or a bundled search-results message. The first result
// is the primary recommendation.
func (s *Session) search(e *emitter, query string) {
	cat := classify.Classify(query)
	prods := catalog.Lookup(cat, query)
	mainlyNew := catalog.MainlyNew(cat)

	items := make([]pkg.Item, 0, len(prods))
	for _, p := range prods {
		items = append(items, s.buildItem(p, cat, mainlyNew))
	}

	if len(items) == 1 {
		e.assistant("Found it! Here's the best option:", pkg.KindSearchResult, items[0], s.searchDelay())
		return
	}
	e.assistant(fmt.Sprintf("Found %d good options. Here are the best matches:", len(items)),
		pkg.KindSearchResults, pkg.SearchResultsPayload{Results: items}, s.searchDelay())
}

func (s *Session) buildItem(p catalog.Product, cat classify.Category, mainlyNew bool) pkg.Item {
	q := s.pricing.PriceFor(p, mainlyNew)

	if p.SecondHand {
		return pkg.Item{
			Title:        p.Name,
			Price:        q.Price,
			Shipping:     q.Shipping,
			Brand:        p.Brand,
			Category:     string(cat),
			Availability: "In Stock",
			Authenticity: "Verified Seller",
			Description:  fmt.Sprintf("%s collectible from %s", p.Condition, p.Seller),
			Image:        p.Image,
			DeliveryDate: s.pick(deliveryOptions),
			IsUsed:       true,
			SecondHand:   true,
			Condition:    p.Condition,
			Seller:       p.Seller,
			Location:     p.Location,
		}
	}

	title := p.Name
	condition := "Brand new"
	authenticity := "Brand New"
	if q.Used {
		title += " (Used - Very Good)"
		condition = "Pre-owned"
		authenticity = "Certified Pre-Owned"
	} else if s.rng.Float64() > 0.8 {
		authenticity = "Certified Refurb"
	}

	image := p.Image
	if image == "" {
		image = catalog.Emoji(cat)
	}

	item := pkg.Item{
		Title:          title,
		Price:          q.Price,
		OriginalPrice:  q.OriginalPrice,
		Shipping:       q.Shipping,
		Brand:          p.Brand,
		Category:       string(cat),
		Availability:   s.pick(availabilityOptions),
		Authenticity:   authenticity,
		Description:    fmt.Sprintf("%s %s", condition, strings.ToLower(p.Name)),
		Image:          image,
		DeliveryDate:   s.pick(deliveryOptions),
		IsUsed:         q.Used,
		HasUsedOptions: p.UsedPrice > 0,
	}
	if q.Coupon != nil {
		item.CouponApplied = true
		item.CouponPercentage = q.Coupon.Percentage
	}
	if p.UsedPrice > 0 {
		item.UsedOptionsCount = s.rng.Intn(20) + 10
	}
	return item
}

func (s *Session) replyContext(request string) reply.Context {
	return reply.Context{
		Returning:           s.persona == PersonaReturning,
		Request:             request,
		ShoeSize:            s.profile.ShoeSize,
		LastPurchasedShoes:  s.profile.LastPurchasedShoes,
		LastPurchasedLaptop: s.profile.LastPurchasedLaptop,
	}
}

func (s *Session) pick(options []string) string {
	return options[s.rng.Intn(len(options))]
}

func (s *Session) typingDelay() time.Duration {
	return time.Duration(s.cfg.TypingDelayMS) * time.Millisecond
}

func (s *Session) searchDelay() time.Duration {
	return time.Duration(s.cfg.SearchDelayMS) * time.Millisecond
}

func (s *Session) confirmDelay() time.Duration {
	return time.Duration(s.cfg.ConfirmDelayMS) * time.Millisecond
}

func (s *Session) imageAnalysisDelay() time.Duration {
	return time.Duration(s.cfg.ImageAnalysisDelayMS) * time.Millisecond
}

// emitter collects the messages appended during one operation, recording the
// first log failure and swallowing the rest so turn handling code stays
// linear.
type emitter struct {
	s    *Session
	ctx  context.Context
	msgs []pkg.Message
	err  error
}

func (s *Session) newEmitter(ctx context.Context) *emitter {
	return &emitter{s: s, ctx: ctx}
}

func (e *emitter) append(msg pkg.Message) {
	if e.err != nil {
		return
	}
	if err := e.s.log.Append(e.ctx, msg); err != nil {
		e.err = fmt.Errorf("failed to append message: %w", err)
		return
	}
	e.msgs = append(e.msgs, msg)
}

func (e *emitter) user(text string, kind pkg.Kind, payload any) {
	e.append(pkg.Message{
		ID:        nextID(),
		Sender:    pkg.SenderUser,
		Text:      text,
		Kind:      kind,
		Payload:   payload,
		CreatedAt: e.s.now(),
	})
}

func (e *emitter) assistant(text string, kind pkg.Kind, payload any, delay time.Duration) {
	e.append(pkg.Message{
		ID:        nextID(),
		Sender:    pkg.SenderAssistant,
		Text:      text,
		Kind:      kind,
		Payload:   payload,
		CreatedAt: e.s.now(),
		DelayMS:   delay.Milliseconds(),
	})
}

func (e *emitter) done() ([]pkg.Message, error) {
	return e.msgs, e.err
}
