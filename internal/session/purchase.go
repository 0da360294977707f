package session

import (
	"context"
	"fmt"

	"blinkbot/pkg"
)

// RaisePurchaseIntent starts the checkout for item (the user tapped Buy on a
// result card). Exactly one of three things happens: a detail-collection
// prompt when name or address is missing, a funding prompt when the balance
// cannot cover the order, or the purchase confirmation.
func (s *Session) RaisePurchaseIntent(ctx context.Context, item pkg.Item) ([]pkg.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.newEmitter(ctx)
	total := item.Price + item.Shipping

	if s.profile.Name == "" {
		s.profile.PendingPurchase = &item
		e.assistant("Great choice! 🎯 To complete your order, I'll need your name.\n\nWhat should I call you?", pkg.KindCollectName, nil, s.typingDelay())
		return e.done()
	}
	if s.profile.Address == "" {
		s.profile.PendingPurchase = &item
		e.assistant("Perfect! Now I'll need your shipping address.", pkg.KindCollectAddress, nil, s.typingDelay())
		return e.done()
	}

	if s.balance < total {
		s.profile.PendingPurchase = &item
		e.assistant("Great! Now to complete your order, you'll need to add funds to your Blink account.", pkg.KindFundingRequired, pkg.FundingRequiredPayload{
			Item:           item,
			Total:          total,
			CurrentBalance: s.balance,
			RequiredAmount: total,
		}, s.confirmDelay())
		return e.done()
	}

	s.profile.PendingPurchase = nil
	s.emitConfirmation(e, item, total)
	return e.done()
}

func (s *Session) emitConfirmation(e *emitter, item pkg.Item, total int) {
	repeat := s.persona == PersonaReturning

	var text string
	if repeat {
		text = fmt.Sprintf("Perfect! I can ship this to %s at %s like last time.\n\n✨ Here's your order:\n\n%s\n\nTotal: $%d ($%d + $%d shipping)\nDelivery: %s\n\nUse same details as before?",
			s.profile.Name, s.profile.Address, item.Title, total, item.Price, item.Shipping, item.DeliveryDate)
	} else {
		text = fmt.Sprintf("✨ Here's your order:\n\n%s\n\nTotal: $%d ($%d + $%d shipping)\nDelivery: %s\nShipping to: %s, %s\n\nReady to place your order?",
			item.Title, total, item.Price, item.Shipping, item.DeliveryDate, s.profile.Name, s.profile.Address)
	}

	e.assistant(text, pkg.KindPurchaseConfirmation, pkg.PurchaseConfirmationPayload{
		Item:             item,
		Total:            total,
		Name:             s.profile.Name,
		Address:          s.profile.Address,
		IsRepeatCustomer: repeat,
	}, s.confirmDelay())
}

// ConfirmPurchase places a confirmed order. A last coupon check can still
// lower the total; if the balance cannot cover the final total the order is
// parked behind a funding prompt instead of being debited.
func (s *Session) ConfirmPurchase(ctx context.Context, order pkg.Order) ([]pkg.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.newEmitter(ctx)

	coupon := s.pricing.FindCoupon(order.Item.Price)
	finalTotal := order.Total
	if coupon != nil {
		finalTotal -= coupon.Discount
	}

	if s.balance < finalTotal {
		s.profile.PendingPurchase = &order.Item
		e.assistant("To complete your order, you'll need to add funds to your Blink account.", pkg.KindFundingRequired, pkg.FundingRequiredPayload{
			Item:           order.Item,
			Total:          finalTotal,
			CurrentBalance: s.balance,
			RequiredAmount: finalTotal,
		}, s.confirmDelay())
		return e.done()
	}

	s.balance -= finalTotal
	s.logger.Info().Int("total", finalTotal).Int("balance", s.balance).Msg("order placed")

	pct := 0
	if coupon != nil {
		pct = coupon.Percentage
	}
	e.assistant(successMessage(order.Item.Title, "Wednesday", pct), pkg.KindPurchaseSuccess, pkg.PurchaseSuccessPayload{
		Item:             order.Item,
		CouponPercentage: pct,
	}, s.confirmDelay())
	return e.done()
}

// CompleteFunding credits amount to the balance. Optional top-ups only get an
// acknowledgment, even while a purchase is pending. A non-optional top-up
// answers a funding prompt: the parked order completes immediately (the
// amount requested already covers it, so no debit happens here) and a
// voluntary top-up offer follows.
func (s *Session) CompleteFunding(ctx context.Context, amount int, optional bool) ([]pkg.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.newEmitter(ctx)
	s.balance += amount
	s.logger.Info().Int("amount", amount).Bool("optional", optional).Int("balance", s.balance).Msg("funds added")

	pending := s.profile.PendingPurchase
	if optional || pending == nil {
		e.assistant(fmt.Sprintf("Perfect! Added $%d to your account. Your balance is now $%d.", amount, s.balance), "", nil, s.typingDelay())
		return e.done()
	}

	item := *pending
	s.profile.PendingPurchase = nil

	pct := 0
	if coupon := s.pricing.FindCoupon(item.Price); coupon != nil {
		pct = coupon.Percentage
	}
	e.assistant(successMessage(item.Title, item.DeliveryDate, pct), pkg.KindPurchaseSuccess, pkg.PurchaseSuccessPayload{
		Item:             item,
		CouponPercentage: pct,
	}, s.confirmDelay())

	e.assistant("If you enjoyed this experience and want even faster checkout next time, you can add funds to your Blink account. Send any amount you'd like to the address below:", pkg.KindOptionalFunding, pkg.OptionalFundingPayload{
		WalletAddress: s.cfg.WalletAddress,
	}, s.confirmDelay())
	return e.done()
}

func successMessage(title, delivery string, couponPct int) string {
	msg := fmt.Sprintf("🎉 BOOM! You just ordered your %s!\n\n📦 **Expect it at your doorstep by %s!**\n\n", title, delivery)
	if couponPct > 0 {
		msg += fmt.Sprintf("💰 **BTW I saved you %d%% with a coupon code**\n\n", couponPct)
	}
	msg += "I've already expedited your order and it's being prepared for shipment. You're going to absolutely love this - such a solid choice! 🔥\n\n⏰ **Free cancellation until Tuesday 11:59 PM** - but honestly, you're going to want to keep this one!\n\nI'll ping you with tracking info within the hour so you can watch your new treasure make its way to you. Get excited! 🚀"
	return msg
}
