package workflowinfra

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/jobgate-vn/jobgate/recruitment/workflow"
)

// RedisNotifier implements workflow.Notifier by pushing transition
// events onto a Redis list. A downstream worker turns events into
// emails; this side only enqueues.
type RedisNotifier struct {
	client    *redis.Client
	queueName string
}

// NewRedisNotifier creates a Redis-backed notifier
func NewRedisNotifier(client *redis.Client, queueName string) workflow.Notifier {
	return &RedisNotifier{
		client:    client,
		queueName: queueName,
	}
}

// Notify enqueues one transition event
func (n *RedisNotifier) Notify(ctx context.Context, event workflow.TransitionEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal transition event for %s %s: %w", event.Kind, event.EntityID, err)
	}

	if err := n.client.LPush(ctx, n.queueName, data).Err(); err != nil {
		return fmt.Errorf("enqueue transition event for %s %s: %w", event.Kind, event.EntityID, err)
	}

	return nil
}

// QueueSize returns the number of pending events
func (n *RedisNotifier) QueueSize(ctx context.Context) (int64, error) {
	size, err := n.client.LLen(ctx, n.queueName).Result()
	if err != nil {
		return 0, fmt.Errorf("get notification queue size: %w", err)
	}
	return size, nil
}
