package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/quickbites/storefront/internal/event"
	"github.com/quickbites/storefront/internal/port"
)

const (
	scheduleQueueKey   = "notify:queue"
	schedulePayloadKey = "notify:payload"

	drainInterval = time.Second
)

// popDueScript atomically removes and returns the payloads of every queued
// notification whose fire time is at or before now.
var popDueScript = redis.NewScript(`
local due = redis.call('ZRANGEBYSCORE', KEYS[1], '-inf', ARGV[1])
if #due == 0 then
	return {}
end

local payloads = {}
for i, id in ipairs(due) do
	payloads[i] = redis.call('HGET', KEYS[2], id)
	redis.call('ZREM', KEYS[1], id)
	redis.call('HDEL', KEYS[2], id)
end

return payloads
`)

// PushNotifier implements the local-notification collaborator: immediate
// notifications are pushed to the client over the realtime channel, deferred
// ones are parked in a Redis sorted set keyed by fire time and drained by
// Run.
type PushNotifier struct {
	publisher port.EventPublisher
	client    *redis.Client
	nowFunc   func() time.Time
}

func NewPushNotifier(publisher port.EventPublisher, client *redis.Client) *PushNotifier {
	return &PushNotifier{
		publisher: publisher,
		client:    client,
		nowFunc:   time.Now,
	}
}

func (p *PushNotifier) Notify(ctx context.Context, n port.Notification) error {
	raw, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}
	return p.publisher.Publish(ctx, event.ClientNotificationsTopic, raw)
}

// Schedule parks n until fireAt. Scheduling an id that is already pending
// overwrites the earlier entry.
func (p *PushNotifier) Schedule(ctx context.Context, n port.Notification, fireAt time.Time) error {
	raw, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}

	if err := p.client.HSet(ctx, schedulePayloadKey, n.ID, raw).Err(); err != nil {
		return fmt.Errorf("store notification payload: %w", err)
	}
	return p.client.ZAdd(ctx, scheduleQueueKey, redis.Z{
		Score:  float64(fireAt.Unix()),
		Member: n.ID,
	}).Err()
}

func (p *PushNotifier) Cancel(ctx context.Context, id string) error {
	if err := p.client.ZRem(ctx, scheduleQueueKey, id).Err(); err != nil {
		return fmt.Errorf("cancel notification: %w", err)
	}
	return p.client.HDel(ctx, schedulePayloadKey, id).Err()
}

// Run drains due notifications until ctx is cancelled. Dispatch failures are
// logged; the loop keeps going.
func (p *PushNotifier) Run(ctx context.Context) {
	ticker := time.NewTicker(drainInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := p.dispatchDue(ctx); err != nil {
				log.Printf("notify: dispatch due: %v", err)
			}
		}
	}
}

func (p *PushNotifier) dispatchDue(ctx context.Context) error {
	now := p.nowFunc().Unix()

	payloads, err := popDueScript.Run(ctx, p.client,
		[]string{scheduleQueueKey, schedulePayloadKey}, now).StringSlice()
	if err != nil {
		return fmt.Errorf("pop due notifications: %w", err)
	}

	for _, raw := range payloads {
		if raw == "" {
			continue
		}
		var n port.Notification
		if err := json.Unmarshal([]byte(raw), &n); err != nil {
			log.Printf("notify: invalid queued notification: %v", err)
			continue
		}
		if err := p.Notify(ctx, n); err != nil {
			log.Printf("notify: dispatch %s: %v", n.ID, err)
		}
	}
	return nil
}
