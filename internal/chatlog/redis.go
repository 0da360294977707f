package chatlog

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"

	"blinkbot/pkg"
)

// RedisLog stores the transcript as a Redis list under one key per session.
// Each append refreshes the TTL, so an idle demo session expires on its own.
// Payloads round-trip through JSON, so reads return them as generic maps;
// fine for the consuming view, which only re-serializes them.
type RedisLog struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewRedisLog connects to redisURL (redis://...) and pings it before use.
func NewRedisLog(ctx context.Context, redisURL, sessionID string, ttl time.Duration) (*RedisLog, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return &RedisLog{
		client: client,
		key:    "conversation:" + sessionID,
		ttl:    ttl,
	}, nil
}

func (l *RedisLog) Append(ctx context.Context, msg pkg.Message) error {
	data, err := sonic.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}
	if err := l.client.RPush(ctx, l.key, data).Err(); err != nil {
		return err
	}
	return l.client.Expire(ctx, l.key, l.ttl).Err()
}

func (l *RedisLog) Messages(ctx context.Context) ([]pkg.Message, error) {
	raw, err := l.client.LRange(ctx, l.key, 0, -1).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}
	msgs := make([]pkg.Message, 0, len(raw))
	for _, entry := range raw {
		var msg pkg.Message
		if err := sonic.Unmarshal([]byte(entry), &msg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal message: %w", err)
		}
		msgs = append(msgs, msg)
	}
	return msgs, nil
}

func (l *RedisLog) Clear(ctx context.Context) error {
	return l.client.Del(ctx, l.key).Err()
}

// Close releases the underlying connection.
func (l *RedisLog) Close() error {
	return l.client.Close()
}
