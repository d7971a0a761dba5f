package db

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

var Redis *redis.Client
var Ctx = context.Background()

const InFlightKeyPrefix = "sathi:inflight:"

func ConnectRedis(redisURL string) error {
	if redisURL == "" {
		return errors.New("redis url is not set")
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		opt = &redis.Options{Addr: redisURL}
	}

	Redis = redis.NewClient(opt)

	_, err = Redis.Ping(Ctx).Result()
	return err
}

func PingRedis(ctx context.Context) error {
	if Redis == nil {
		return errors.New("redis not configured")
	}
	return Redis.Ping(ctx).Err()
}

func CloseRedis() {
	if Redis != nil {
		Redis.Close()
	}
}
