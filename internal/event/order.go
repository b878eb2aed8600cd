// Package event defines the subjects and payloads exchanged over the
// realtime channel: row-change events for orders coming in from the backend,
// and client-bound push messages going out.
package event

import "github.com/quickbites/storefront/internal/core/domain"

const (
	// OrdersUpdatedTopic carries row-change events for the orders table.
	OrdersUpdatedTopic = "orders.updated"

	// ClientNotificationsTopic carries local notifications for the client.
	ClientNotificationsTopic = "client.notifications"

	// ClientHapticsTopic carries haptic feedback pulses for the client.
	ClientHapticsTopic = "client.haptics"

	// ClientChatTopic carries chat deep links for the client to open.
	ClientChatTopic = "client.chat"
)

// OrderChanged is the payload of an orders row-change event: the record
// before and after the update.
type OrderChanged struct {
	Old domain.Order `json:"old"`
	New domain.Order `json:"new"`
}
