package pricing

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blinkbot/internal/catalog"
)

func newEngine(seed int64) *Engine {
	return NewEngine(rand.New(rand.NewSource(seed)))
}

func TestFindCouponAlways(t *testing.T) {
	e := newEngine(1)
	e.CouponProbability = 1

	valid := map[int]bool{5: true, 10: true, 15: true, 20: true, 25: true}
	for i := 0; i < 200; i++ {
		price := 50 + i
		c := e.FindCoupon(price)
		require.NotNil(t, c)
		assert.True(t, valid[c.Percentage], "unexpected percentage %d", c.Percentage)
		want := int(math.Round(float64(price) * float64(c.Percentage) / 100))
		assert.Equal(t, want, c.Discount)
		assert.GreaterOrEqual(t, price-c.Discount, 0)
		assert.Equal(t, "SAVE", c.Code[:4])
	}
}

func TestFindCouponNever(t *testing.T) {
	e := newEngine(1)
	e.CouponProbability = 0
	for i := 0; i < 50; i++ {
		assert.Nil(t, e.FindCoupon(100))
	}
}

func TestPriceForVarianceRanges(t *testing.T) {
	p := catalog.Product{Name: "Thing", BasePrice: 200, UsedPrice: 150, Brand: "X"}

	e := newEngine(7)
	e.CouponProbability = 0
	for i := 0; i < 500; i++ {
		q := e.PriceFor(p, false)
		if q.Used {
			assert.GreaterOrEqual(t, q.Price, 150-20)
			assert.LessOrEqual(t, q.Price, 150+19)
		} else {
			assert.GreaterOrEqual(t, q.Price, 200-25)
			assert.LessOrEqual(t, q.Price, 200+24)
		}
		assert.GreaterOrEqual(t, q.Shipping, 0)
		assert.Less(t, q.Shipping, 20)
		assert.Zero(t, q.OriginalPrice)
	}
}

func TestPriceForMainlyNewNeverUsed(t *testing.T) {
	p := catalog.Product{Name: "Laptop", BasePrice: 1000, UsedPrice: 800, Brand: "X"}
	e := newEngine(3)
	for i := 0; i < 200; i++ {
		assert.False(t, e.PriceFor(p, true).Used)
	}
}

func TestPriceForSecondHandExact(t *testing.T) {
	p := catalog.Product{
		Name: "Collectible", BasePrice: 89, Brand: "Valve",
		SecondHand: true, Shipping: 12, Condition: "Used - Very Good",
	}
	e := newEngine(5)
	e.CouponProbability = 1 // must still not apply to collectibles
	for i := 0; i < 50; i++ {
		q := e.PriceFor(p, false)
		assert.Equal(t, 89, q.Price)
		assert.Equal(t, 12, q.Shipping)
		assert.True(t, q.Used)
		assert.Nil(t, q.Coupon)
	}
}

func TestPriceForCouponRetainsOriginal(t *testing.T) {
	p := catalog.Product{Name: "Thing", BasePrice: 200, Brand: "X"}
	e := newEngine(11)
	e.CouponProbability = 1
	q := e.PriceFor(p, true)
	require.NotNil(t, q.Coupon)
	assert.Equal(t, q.OriginalPrice-q.Coupon.Discount, q.Price)
	assert.Greater(t, q.OriginalPrice, 0)
}

func TestDeterministicWithSeed(t *testing.T) {
	p := catalog.Product{Name: "Thing", BasePrice: 120, UsedPrice: 90, Brand: "X"}
	a := newEngine(42).PriceFor(p, false)
	b := newEngine(42).PriceFor(p, false)
	assert.Equal(t, a, b)
}
