package cache

import (
	"context"
	"sync"

	"github.com/redis/go-redis/v9"
)

var (
	_instances = sync.Map{}
)

// GetRedisClient 同一個address共用一個client
func GetRedisClient(address string, options ...Option) *redis.Client {
	client, ok := _instances.Load(address)
	if !ok {
		client, _ = _instances.LoadOrStore(address, createRedisClient(address, options...))
	}
	return client.(*redis.Client)
}

func createRedisClient(address string, options ...Option) *redis.Client {
	opts := &redis.Options{
		Addr: address,
	}

	for _, option := range options {
		option(opts)
	}

	return redis.NewClient(opts)
}

// Ping 啟動時確認redis可連線
func Ping(ctx context.Context, client *redis.Client) error {
	return client.Ping(ctx).Err()
}

type Option func(*redis.Options)

func WithPassword(password string) Option {
	return func(o *redis.Options) {
		o.Password = password
	}
}

func WithDB(db int) Option {
	return func(o *redis.Options) {
		o.DB = db
	}
}

func WithPoolSize(poolSize int) Option {
	return func(o *redis.Options) {
		if poolSize > 0 {
			o.PoolSize = poolSize
		}
	}
}
