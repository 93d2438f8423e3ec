package db

import (
	"context"

	"github.com/redis/go-redis/v9"
)

var Redis *redis.Client

// ConnectRedis accepts a redis:// URL or a bare host:port.
func ConnectRedis(ctx context.Context, redisURL string) error {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		opt = &redis.Options{Addr: redisURL}
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return err
	}

	Redis = client
	return nil
}

func CloseRedis() {
	if Redis != nil {
		Redis.Close()
	}
}
