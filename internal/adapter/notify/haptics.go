package notify

import (
	"context"

	"github.com/quickbites/storefront/internal/event"
	"github.com/quickbites/storefront/internal/port"
)

// ClientHaptics pushes haptic feedback pulses to the client over the
// realtime channel. Fire and forget.
type ClientHaptics struct {
	publisher port.EventPublisher
}

func NewClientHaptics(publisher port.EventPublisher) *ClientHaptics {
	return &ClientHaptics{publisher: publisher}
}

func (h *ClientHaptics) NotifySuccess(ctx context.Context) error {
	return h.publisher.Publish(ctx, event.ClientHapticsTopic, []byte(`{"type":"success"}`))
}
