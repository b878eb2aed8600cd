package port

import "context"

// HandlerFunc processes a single realtime message. A non-nil error is logged
// by the adapter; it never stops the subscription.
type HandlerFunc func(ctx context.Context, msg []byte) error

// Subscription is a live realtime feed. It must be released exactly once;
// after Unsubscribe no further messages are delivered.
type Subscription interface {
	Unsubscribe() error
}

// EventSubscriber opens subscriptions to realtime subjects.
type EventSubscriber interface {
	Subscribe(ctx context.Context, topic string, handler HandlerFunc) (Subscription, error)
}

// EventPublisher pushes a message to a realtime subject.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, msg []byte) error
}
