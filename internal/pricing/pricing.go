// Package pricing derives display prices from catalog entries: simulated
// market variance, used/new condition, random shipping and probabilistic
// coupon discounts. All draws come from an injected random source so tests
// are reproducible.
package pricing

import (
	"math"
	"math/rand"
	"strconv"

	"blinkbot/internal/catalog"
)

// DefaultCouponProbability is the chance a coupon code turns up for an item.
const DefaultCouponProbability = 0.3

var discountPercentages = []int{5, 10, 15, 20, 25}

// Coupon is a found discount. Discount is already rounded to whole dollars.
type Coupon struct {
	Percentage int    `json:"percentage"`
	Discount   int    `json:"discount"`
	Code       string `json:"code"`
}

// Quote is a priced offer. Price is the final display price (coupon already
// subtracted); OriginalPrice holds the pre-coupon price when a coupon applied
// and is zero otherwise.
type Quote struct {
	Price         int
	OriginalPrice int
	Shipping      int
	Used          bool
	Coupon        *Coupon
}

// Engine prices products. Not safe for concurrent use; the conversation core
// processes one turn at a time.
type Engine struct {
	rng               *rand.Rand
	CouponProbability float64
}

// NewEngine creates a pricing engine drawing from rng.
func NewEngine(rng *rand.Rand) *Engine {
	return &Engine{rng: rng, CouponProbability: DefaultCouponProbability}
}

// PriceFor quotes a product. Second-hand collectibles keep their exact listed
// price and fixed shipping. mainlyNew forces new condition for consumer
// electronics; otherwise a used offer is picked half the time when one exists.
func (e *Engine) PriceFor(p catalog.Product, mainlyNew bool) Quote {
	if p.SecondHand {
		return Quote{Price: p.BasePrice, Shipping: p.Shipping, Used: true}
	}

	used := !mainlyNew && p.UsedPrice > 0 && e.rng.Float64() > 0.5
	base := p.BasePrice
	variation := e.rng.Intn(50) - 25
	if used {
		base = p.UsedPrice
		variation = e.rng.Intn(40) - 20
	}
	price := base + variation

	shipping := 0
	if e.rng.Float64() > 0.6 {
		shipping = e.rng.Intn(20)
	}

	q := Quote{Price: price, Shipping: shipping, Used: used}
	if c := e.FindCoupon(price); c != nil {
		q.Coupon = c
		q.OriginalPrice = price
		q.Price = price - c.Discount
	}
	return q
}

// FindCoupon simulates a coupon lookup for the given price. Returns nil when
// no coupon turns up; otherwise the discount is round(price*pct/100) with pct
// drawn uniformly from {5,10,15,20,25}.
func (e *Engine) FindCoupon(price int) *Coupon {
	if e.rng.Float64() >= e.CouponProbability {
		return nil
	}
	pct := discountPercentages[e.rng.Intn(len(discountPercentages))]
	discount := int(math.Round(float64(price) * float64(pct) / 100))
	return &Coupon{
		Percentage: pct,
		Discount:   discount,
		Code:       "SAVE" + strconv.Itoa(pct),
	}
}
