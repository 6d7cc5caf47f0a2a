package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"incidentTrust/internal/domain"
	"incidentTrust/pkg/e"

	"github.com/redis/go-redis/v9"
)

// ErrQueueEmpty is returned by BRPop when no event arrived within the timeout.
var ErrQueueEmpty = errors.New("audit queue is empty")

// AuditQueue buffers audit events in a redis list. It implements the
// service audit hook; a dispatcher drains it.
type AuditQueue struct {
	client *redis.Client
	key    string
}

func NewAuditQueue(client *redis.Client, key string) *AuditQueue {
	return &AuditQueue{client: client, key: key}
}

func (q *AuditQueue) Record(ctx context.Context, ev domain.AuditEvent) error {
	const op = "redis.AuditQueue.Record"

	b, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := q.client.LPush(ctx, q.key, b).Err(); err != nil {
		return e.Infrastructure(op, err)
	}
	return nil
}

func (q *AuditQueue) BRPop(ctx context.Context, timeout time.Duration) (domain.AuditEvent, error) {
	var ev domain.AuditEvent

	res, err := q.client.BRPop(ctx, timeout, q.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ev, ErrQueueEmpty
		}
		return ev, err
	}
	if len(res) < 2 {
		return ev, ErrQueueEmpty
	}
	if err := json.Unmarshal([]byte(res[1]), &ev); err != nil {
		return ev, fmt.Errorf("decode audit event: %w", err)
	}
	return ev, nil
}

func (q *AuditQueue) Len(ctx context.Context) (int64, error) {
	return q.client.LLen(ctx, q.key).Result()
}
