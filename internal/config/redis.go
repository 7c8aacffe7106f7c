package config

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis returns nil when REDIS_ADDR is empty or unreachable; callers
// then read rules straight from MySQL.
func ConnectRedis(env Env) *redis.Client {
	if env.RedisAddr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{Addr: env.RedisAddr})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("warning: redis %s unavailable, rule cache disabled: %v", env.RedisAddr, err)
		_ = client.Close()
		return nil
	}
	return client
}
