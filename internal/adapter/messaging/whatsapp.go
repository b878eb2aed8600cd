package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/quickbites/storefront/internal/core/domain"
	"github.com/quickbites/storefront/internal/event"
	"github.com/quickbites/storefront/internal/port"
)

// OrderSummary renders the plaintext summary shared with the store chat:
// order id, customer contact fields, one "- qty x name" line per item, the
// final total and the payment reference.
func OrderSummary(order domain.Order) string {
	var b strings.Builder

	fmt.Fprintf(&b, "🍔 New Order: %s\n", order.ID)
	fmt.Fprintf(&b, "Name: %s\n", order.UserDetails.Name)
	fmt.Fprintf(&b, "Phone: %s\n", order.UserDetails.Phone)
	fmt.Fprintf(&b, "Address: %s\n", order.UserDetails.Address)
	b.WriteString("Items:\n")
	for _, it := range order.Items {
		fmt.Fprintf(&b, "- %d x %s\n", it.Quantity, it.Name)
	}
	fmt.Fprintf(&b, "Total: ₹%d\n", order.TotalAmount)
	fmt.Fprintf(&b, "Payment ID: %s", order.PaymentID)

	return b.String()
}

// ChatLink builds the deep link that opens a chat composer prefilled with
// text, addressed to phone.
func ChatLink(phone, text string) string {
	return "https://wa.me/" + phone + "?text=" + url.QueryEscape(text)
}

// WhatsAppHandoff composes the order-summary deep link and pushes it to the
// client for opening. Best effort by contract; a failure here never rolls
// back the order.
type WhatsAppHandoff struct {
	publisher  port.EventPublisher
	storePhone string
}

func NewWhatsAppHandoff(publisher port.EventPublisher, storePhone string) *WhatsAppHandoff {
	return &WhatsAppHandoff{publisher: publisher, storePhone: storePhone}
}

func (h *WhatsAppHandoff) ShareOrderSummary(ctx context.Context, order domain.Order) error {
	link := ChatLink(h.storePhone, OrderSummary(order))

	raw, err := json.Marshal(map[string]string{"url": link})
	if err != nil {
		return fmt.Errorf("encode chat link: %w", err)
	}
	return h.publisher.Publish(ctx, event.ClientChatTopic, raw)
}
