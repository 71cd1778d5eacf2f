package checkout

import (
	"github.com/MaykalDroshev-Hull/kasameri-bg-sub000/internal/model"

	"github.com/shopspring/decimal"
)

// PromoWelcome is the only accepted promo code: a flat 5% off the subtotal.
// There is no general coupon engine.
const PromoWelcome = "WELCOME5"

var promoDiscountRate = decimal.RequireFromString("0.05")

// FeeSchedule is the single source of truth for delivery pricing. One flat
// fee applies to every non-pickup delivery method; pickup is always free.
// FreeDeliveryOver is a presentation-level threshold only — the totals
// engine never waives the fee itself.
type FeeSchedule struct {
	NonPickupFee     decimal.Decimal
	FreeDeliveryOver decimal.Decimal
}

// DefaultFeeSchedule returns the configured storefront fees in BGN.
func DefaultFeeSchedule() FeeSchedule {
	return FeeSchedule{
		NonPickupFee:     decimal.RequireFromString("4.90"),
		FreeDeliveryOver: decimal.RequireFromString("40.00"),
	}
}

// Fee returns the delivery fee for the method.
func (f FeeSchedule) Fee(method model.DeliveryMethod) decimal.Decimal {
	if method == model.DeliveryPickup {
		return decimal.Zero
	}
	return f.NonPickupFee
}

// QualifiesForFreeDelivery reports whether the subtotal crosses the
// advertised free-delivery threshold.
func (f FeeSchedule) QualifiesForFreeDelivery(subtotal decimal.Decimal) bool {
	return subtotal.GreaterThan(f.FreeDeliveryOver)
}

// Totals is the computed breakdown for the current draft.
type Totals struct {
	Subtotal    decimal.Decimal
	Discount    decimal.Decimal
	DeliveryFee decimal.Decimal
	Total       decimal.Decimal
}

// CalculateTotals computes discount, delivery fee, and total for the given
// subtotal and promo code against the draft's delivery method.
// Total = subtotal - discount + deliveryFee; the result is not clamped at
// zero, callers must ensure discount <= subtotal.
func (s *FormStore) CalculateTotals(subtotal decimal.Decimal, promoCode string) Totals {
	s.mu.Lock()
	method := s.form.DeliveryMethod
	s.mu.Unlock()

	discount := decimal.Zero
	if promoCode == PromoWelcome {
		discount = subtotal.Mul(promoDiscountRate).Round(2)
	}

	fee := s.fees.Fee(method)

	return Totals{
		Subtotal:    subtotal,
		Discount:    discount,
		DeliveryFee: fee,
		Total:       subtotal.Sub(discount).Add(fee),
	}
}
