package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"stmtapi/internal/config"
	"stmtapi/internal/model"
)

// redisCache implements AnswerCache on top of a Redis instance.
type redisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis creates a Redis-backed answer cache and verifies connectivity.
func NewRedis(cfg config.RedisConfig) (AnswerCache, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("redis addr is required")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	ttl := time.Duration(cfg.AnswerTTLSec) * time.Second
	if ttl <= 0 {
		ttl = time.Hour
	}

	return &redisCache{client: client, ttl: ttl}, nil
}

func (c *redisCache) Get(ctx context.Context, documentID, question string) (*model.Answer, error) {
	raw, err := c.client.Get(ctx, Key(documentID, question)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("cache get: %w", err)
	}

	var ans model.Answer
	if err := json.Unmarshal(raw, &ans); err != nil {
		// A corrupt entry is treated as a miss; it will be overwritten.
		return nil, nil
	}
	return &ans, nil
}

func (c *redisCache) Set(ctx context.Context, ans *model.Answer) error {
	raw, err := json.Marshal(ans)
	if err != nil {
		return fmt.Errorf("cache marshal: %w", err)
	}
	if err := c.client.Set(ctx, Key(ans.DocumentID, ans.Question), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}
