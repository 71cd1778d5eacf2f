// Package ordertext renders Bulgarian plaintext order and inquiry summaries
// for notification emails and manual forwarding via messaging apps.
package ordertext

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/MaykalDroshev-Hull/kasameri-bg-sub000/internal/model"

	"github.com/shopspring/decimal"
)

// DeliveryLabel maps a delivery method to its Bulgarian display label.
func DeliveryLabel(m model.DeliveryMethod) string {
	switch m {
	case model.DeliveryCourierCOD:
		return "Куриер с наложен платеж"
	case model.DeliveryOwnTransport:
		return "Собствен транспорт"
	case model.DeliveryPickup:
		return "Лично вземане от стопанството"
	default:
		return string(m)
	}
}

// PaymentLabel maps a payment method to its Bulgarian display label.
func PaymentLabel(m model.PaymentMethod) string {
	switch m {
	case model.PaymentCashOnDelivery:
		return "Наложен платеж"
	case model.PaymentCard:
		return "Карта"
	default:
		return string(m)
	}
}

// qualityTiers annotates the fixed storefront price points. Any other price
// gets no annotation.
var qualityTiers = map[string]string{
	"2.80": "екстра качество",
	"2.20": "първо качество",
	"1.80": "второ качество",
}

// QualityTier returns the quality annotation for a unit price, or "".
func QualityTier(pricePerUnit decimal.Decimal) string {
	return qualityTiers[pricePerUnit.StringFixed(2)]
}

// OrderSummary renders the full plaintext summary for an accepted order.
// The same text is mailed to the operator inboxes and offered to the
// customer for forwarding.
func OrderSummary(req *model.OrderRequest, orderID string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "НОВА ПОРЪЧКА %s\n", orderID)
	fmt.Fprintf(&b, "Дата: %s\n\n", req.CreatedAt.Format("02.01.2006 15:04"))

	fmt.Fprintf(&b, "Клиент: %s\n", req.Customer.Name)
	fmt.Fprintf(&b, "Телефон: %s\n", req.Customer.Phone)
	if req.Customer.Email != "" {
		fmt.Fprintf(&b, "Имейл: %s\n", req.Customer.Email)
	}

	b.WriteString("\nАртикули:\n")
	for _, item := range req.Items {
		name := item.Name
		if item.Variety != "" {
			name = fmt.Sprintf("%s (%s)", name, item.Variety)
		}
		fmt.Fprintf(&b, "• %s — %s %s x %s лв = %s лв",
			name, item.Qty.String(), item.Unit,
			item.PricePerUnit.StringFixed(2), item.LineTotal.StringFixed(2))
		if tier := QualityTier(item.PricePerUnit); tier != "" {
			fmt.Fprintf(&b, " (%s)", tier)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\nМеждинна сума: %s лв\n", req.Subtotal.StringFixed(2))
	if req.Discount.IsPositive() {
		fmt.Fprintf(&b, "Отстъпка: -%s лв\n", req.Discount.StringFixed(2))
	}
	if req.Delivery.Fee.IsPositive() {
		fmt.Fprintf(&b, "Доставка (%s): %s лв\n",
			DeliveryLabel(req.Delivery.Method), req.Delivery.Fee.StringFixed(2))
	} else {
		fmt.Fprintf(&b, "Доставка: %s — безплатно\n", DeliveryLabel(req.Delivery.Method))
	}
	fmt.Fprintf(&b, "Общо: %s лв\n", req.Total.StringFixed(2))

	if req.Delivery.Address != nil {
		a := req.Delivery.Address
		fmt.Fprintf(&b, "\nАдрес: %s, %s %s", a.Street, a.Postcode, a.City)
		if a.Extra != "" {
			fmt.Fprintf(&b, " (%s)", a.Extra)
		}
		b.WriteString("\n")
	}
	if p := req.Delivery.Preferred; p != nil && (p.Date != "" || p.Slot != "") {
		fmt.Fprintf(&b, "Предпочитано време: %s %s\n",
			p.Date, p.Slot)
	}
	fmt.Fprintf(&b, "Плащане: %s\n", PaymentLabel(req.Payment.Method))
	if req.Notes != "" {
		fmt.Fprintf(&b, "Бележки: %s\n", req.Notes)
	}

	return b.String()
}

// InquirySummary renders the plaintext summary for a distributor inquiry.
func InquirySummary(req *model.DistributorRequest, inquiryID string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "ЗАПИТВАНЕ ОТ ДИСТРИБУТОР %s\n\n", inquiryID)
	fmt.Fprintf(&b, "Фирма: %s\n", req.Company)
	fmt.Fprintf(&b, "Телефон: %s\n", req.Phone)
	if req.Region != "" {
		fmt.Fprintf(&b, "Регион: %s\n", req.Region)
	}
	if req.Message != "" {
		fmt.Fprintf(&b, "Съобщение: %s\n", req.Message)
	}

	return b.String()
}

// WhatsAppLink builds a wa.me deep link opening a chat with the business
// number and the rendered text prefilled.
func WhatsAppLink(businessPhone, text string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, businessPhone)
	return "https://wa.me/" + digits + "?text=" + url.QueryEscape(text)
}

// ViberLink builds a viber:// forward link with the rendered text. The UI
// falls back to clipboard copy of the same text when the scheme cannot be
// opened.
func ViberLink(text string) string {
	return "viber://forward?text=" + url.QueryEscape(text)
}
