package redis

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"incidentTrust/internal/domain"
	"incidentTrust/pkg/e"

	"github.com/redis/go-redis/v9"
)

const guestKeyPrefix = "guest:"

// The scripts run atomically on the server, so the quota check and the
// increment cannot interleave with another caller.
var (
	createScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 1 then
  return redis.error_reply('EXISTS')
end
redis.call('HSET', KEYS[1],
  'id', ARGV[1],
  'action_count', ARGV[2],
  'max_actions', ARGV[3],
  'last_active_at', ARGV[4],
  'expires_at', ARGV[5],
  'created_at', ARGV[6])
redis.call('PEXPIREAT', KEYS[1], ARGV[5])
return 1
`)

	incrementScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then
  return redis.error_reply('NOTFOUND')
end
local now = tonumber(ARGV[1])
if tonumber(redis.call('HGET', KEYS[1], 'expires_at')) <= now then
  return redis.error_reply('NOTFOUND')
end
local used = tonumber(redis.call('HGET', KEYS[1], 'action_count'))
local max = tonumber(redis.call('HGET', KEYS[1], 'max_actions'))
if used >= max then
  return redis.error_reply('LIMIT')
end
redis.call('HINCRBY', KEYS[1], 'action_count', 1)
redis.call('HSET', KEYS[1], 'last_active_at', ARGV[1])
return redis.call('HGETALL', KEYS[1])
`)

	grantScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then
  return redis.error_reply('NOTFOUND')
end
redis.call('HINCRBY', KEYS[1], 'max_actions', ARGV[1])
return redis.call('HGETALL', KEYS[1])
`)
)

// GuestStore keeps guest sessions as redis hashes that expire with the
// session.
type GuestStore struct {
	client *redis.Client
	logger *slog.Logger
}

func NewGuestStore(client *redis.Client, logger *slog.Logger) *GuestStore {
	return &GuestStore{client: client, logger: logger}
}

func guestKey(id string) string { return guestKeyPrefix + id }

func (s *GuestStore) CreateGuest(ctx context.Context, g *domain.Guest) error {
	const op = "redis.Guest.Create"

	if g == nil || g.ID == "" || g.MaxActions <= 0 || g.ActionCount < 0 || g.ActionCount > g.MaxActions {
		return fmt.Errorf("%s: %w", op, e.Validation("malformed guest"))
	}

	err := createScript.Run(ctx, s.client, []string{guestKey(g.ID)},
		g.ID,
		g.ActionCount,
		g.MaxActions,
		g.LastActiveAt.UnixMilli(),
		g.ExpiresAt.UnixMilli(),
		g.CreatedAt.UnixMilli(),
	).Err()
	if err != nil {
		return s.scriptError(ctx, op, g.ID, err)
	}
	return nil
}

func (s *GuestStore) GetGuest(ctx context.Context, id string) (*domain.Guest, error) {
	const op = "redis.Guest.Get"

	fields, err := s.client.HGetAll(ctx, guestKey(id)).Result()
	if err != nil {
		s.logger.Error("redis query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("%s: %w", op, e.NotFound("guest %s", id))
	}
	return decodeGuest(id, fields)
}

func (s *GuestStore) IncrementActionIf(ctx context.Context, id string, now time.Time) (*domain.Guest, error) {
	const op = "redis.Guest.IncrementActionIf"

	res, err := incrementScript.Run(ctx, s.client, []string{guestKey(id)}, now.UnixMilli()).Slice()
	if err != nil {
		return nil, s.scriptError(ctx, op, id, err)
	}
	return decodeGuestReply(id, res)
}

func (s *GuestStore) GrantActions(ctx context.Context, id string, n int) (*domain.Guest, error) {
	const op = "redis.Guest.GrantActions"
	if n <= 0 {
		return nil, fmt.Errorf("%s: %w", op, e.Validation("granted actions must be positive"))
	}

	res, err := grantScript.Run(ctx, s.client, []string{guestKey(id)}, n).Slice()
	if err != nil {
		return nil, s.scriptError(ctx, op, id, err)
	}
	return decodeGuestReply(id, res)
}

func (s *GuestStore) scriptError(ctx context.Context, op, id string, err error) error {
	switch msg := err.Error(); {
	case strings.HasPrefix(msg, "NOTFOUND"):
		return fmt.Errorf("%s: %w", op, e.NotFound("guest %s", id))
	case strings.HasPrefix(msg, "EXISTS"):
		return fmt.Errorf("%s: %w", op, e.Conflict("guest %s already exists", id))
	case strings.HasPrefix(msg, "LIMIT"):
		return fmt.Errorf("%s: %w", op, e.LimitExceeded("guest action quota exhausted"))
	}
	s.logger.Error("redis script failed", slog.String("op", op), slog.Any("error", err))
	return e.WrapError(ctx, op, err)
}

func decodeGuestReply(id string, res []any) (*domain.Guest, error) {
	fields := make(map[string]string, len(res)/2)
	for i := 0; i+1 < len(res); i += 2 {
		k, _ := res[i].(string)
		v, _ := res[i+1].(string)
		fields[k] = v
	}
	return decodeGuest(id, fields)
}

func decodeGuest(id string, fields map[string]string) (*domain.Guest, error) {
	num := func(name string) (int64, error) {
		v, err := strconv.ParseInt(fields[name], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("guest %s: field %s: %w", id, name, err)
		}
		return v, nil
	}

	g := &domain.Guest{ID: id}
	var err error
	var v int64
	if v, err = num("action_count"); err != nil {
		return nil, err
	}
	g.ActionCount = int(v)
	if v, err = num("max_actions"); err != nil {
		return nil, err
	}
	g.MaxActions = int(v)
	if v, err = num("last_active_at"); err != nil {
		return nil, err
	}
	g.LastActiveAt = time.UnixMilli(v).UTC()
	if v, err = num("expires_at"); err != nil {
		return nil, err
	}
	g.ExpiresAt = time.UnixMilli(v).UTC()
	if v, err = num("created_at"); err != nil {
		return nil, err
	}
	g.CreatedAt = time.UnixMilli(v).UTC()
	return g, nil
}
