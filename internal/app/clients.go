package app

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/opsdeck/qcdesk-backend/internal/platform/logger"
)

// wireRedis connects the verification-code store. Returns nil when no
// REDIS_ADDR is configured; the verification endpoints are then disabled.
func wireRedis(cfg Config, log *logger.Logger) (*redis.Client, error) {
	if cfg.RedisAddr == "" {
		log.Warn("REDIS_ADDR not set, verification codes disabled")
		return nil, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}
