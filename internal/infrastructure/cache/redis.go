package cache

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sangkips/gymcore-api/internal/config"
	log "github.com/sirupsen/logrus"
)

// NewRedisClient connects to Redis. It returns nil when no address is configured
// or the server does not answer, in which case callers run without a cache.
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	if cfg.Addr == "" {
		log.Info("REDIS_ADDR not set, settings cache disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     10,
		MinIdleConns: 5,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Warnf("Redis connection failed, settings cache disabled: %v", err)
		_ = client.Close()
		return nil
	}

	log.Printf("Redis connected: %s", cfg.Addr)
	return client
}
