// Package messaging builds the chat handoff that forwards a placed order to
// the store's WhatsApp number. Delivery is not confirmed.
package messaging

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"storefront/internal/domain"
)

const deepLinkBase = "https://wa.me/"

// ErrInvalidPhone is returned when the destination has no usable digits.
var ErrInvalidPhone = errors.New("messaging: invalid phone number")

// WhatsApp formats orders for a single destination number.
type WhatsApp struct {
	Phone     string
	StoreName string
}

// Handoff renders o and returns the deep link that opens the chat.
func (w WhatsApp) Handoff(o domain.Order) (string, error) {
	return DeepLink(w.Phone, FormatOrderMessage(w.StoreName, o))
}

// FormatOrderMessage renders the order summary sent to the store.
func FormatOrderMessage(store string, o domain.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*Nueva Orden - %s*\n\n", store)
	fmt.Fprintf(&b, "*Orden ID:* %s\n", o.ID)
	fmt.Fprintf(&b, "*Cliente:* %s\n", o.CustomerInfo.Name)
	fmt.Fprintf(&b, "*Email:* %s\n", o.CustomerInfo.Email)
	fmt.Fprintf(&b, "*Teléfono:* %s\n", o.CustomerInfo.Phone)
	fmt.Fprintf(&b, "*Dirección:* %s\n", o.CustomerInfo.Address)
	if o.CustomerInfo.Notes != "" {
		fmt.Fprintf(&b, "*Notas:* %s\n", o.CustomerInfo.Notes)
	}
	b.WriteString("\n*Productos:*\n")
	for i, item := range o.Items {
		fmt.Fprintf(&b, "%d. %s\n", i+1, item.Name)
		fmt.Fprintf(&b, "   Cantidad: %d\n", item.Quantity)
		fmt.Fprintf(&b, "   Precio: $%s\n", item.Price.StringFixed(2))
		fmt.Fprintf(&b, "   Subtotal: $%s\n\n", item.Subtotal().StringFixed(2))
	}
	if o.AppliedCoupon != nil {
		fmt.Fprintf(&b, "*Cupón:* %s (-%d%%)\n", o.AppliedCoupon.Code, o.AppliedCoupon.Discount)
	}
	fmt.Fprintf(&b, "*Total: $%s*\n\n", o.Total.StringFixed(2))
	b.WriteString("¡Gracias por tu compra!")
	return b.String()
}

// DeepLink builds https://wa.me/<digits>?text=<escaped>. Spaces are encoded
// as %20 rather than '+'.
func DeepLink(phone, text string) (string, error) {
	digits := normalizePhone(phone)
	if digits == "" {
		return "", ErrInvalidPhone
	}
	escaped := strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
	return deepLinkBase + digits + "?text=" + escaped, nil
}

func normalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' || r == ' ' || r == '-' || r == '(' || r == ')':
		default:
			return ""
		}
	}
	return b.String()
}
