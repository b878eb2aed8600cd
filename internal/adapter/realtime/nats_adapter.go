package realtime

import (
	"context"
	"fmt"
	"log"

	"github.com/nats-io/nats.go"

	"github.com/quickbites/storefront/internal/port"
)

// NATSAdapter bridges the realtime ports onto a NATS connection: order
// row-change events come in as subscriptions, client push messages go out as
// plain publishes.
type NATSAdapter struct {
	conn *nats.Conn
}

func NewNATSAdapter(conn *nats.Conn) *NATSAdapter {
	return &NATSAdapter{conn: conn}
}

// Connect dials the NATS server and wraps the connection.
func Connect(url string) (*NATSAdapter, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("connect to nats: %w", err)
	}
	return &NATSAdapter{conn: conn}, nil
}

func (a *NATSAdapter) Subscribe(ctx context.Context, topic string, handler port.HandlerFunc) (port.Subscription, error) {
	sub, err := a.conn.Subscribe(topic, func(msg *nats.Msg) {
		if err := handler(ctx, msg.Data); err != nil {
			log.Printf("realtime: handler for %s: %v", topic, err)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("subscribe %s: %w", topic, err)
	}
	return sub, nil
}

func (a *NATSAdapter) Publish(ctx context.Context, topic string, msg []byte) error {
	return a.conn.Publish(topic, msg)
}

func (a *NATSAdapter) Close() error {
	a.conn.Close()
	return nil
}
