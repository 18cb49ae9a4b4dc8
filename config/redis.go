package config

import (
	"context"
	"strings"

	"github.com/redis/go-redis/v9"
)

// NewRedis returns nil when no address is configured; callers treat a nil
// client as "redis disabled" (no turn locking, no details cache).
func NewRedis(cfg RedisConfig) (*redis.Client, error) {
	if cfg.Addr == "" {
		return nil, nil
	}

	var client *redis.Client
	if strings.HasPrefix(cfg.Addr, "redis://") || strings.HasPrefix(cfg.Addr, "rediss://") {
		opt, err := redis.ParseURL(cfg.Addr)
		if err != nil {
			return nil, err
		}
		client = redis.NewClient(opt)
	} else {
		client = redis.NewClient(&redis.Options{Addr: cfg.Addr})
	}

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return client, nil
}
