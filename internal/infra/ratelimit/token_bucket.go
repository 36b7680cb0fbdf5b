package ratelimit

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/redis/go-redis/v9"
)

type LimiterConfig struct {
	// 每個時間窗最多請求數, 同時也是bucket容量
	Limit  int
	Window time.Duration
}

// RatePerMs 每毫秒補充的token數
func (c LimiterConfig) RatePerMs() float64 {
	return float64(c.Limit) / float64(c.Window.Milliseconds())
}

func PerMinute(limit int) LimiterConfig {
	return LimiterConfig{Limit: limit, Window: time.Minute}
}

type Result struct {
	Allowed   bool
	Remaining int
}

// 初始化時bucket為滿, 每次呼叫依經過時間補充token後嘗試扣1
var tokenBucketScript = redis.NewScript(`
	local key = KEYS[1]
	local capacity = tonumber(ARGV[1])
	local rate = tonumber(ARGV[2])
	local now = tonumber(ARGV[3])
	local ttl = tonumber(ARGV[4])

	local bucket = redis.call('HMGET', key, 'tokens', 'last_refill')
	local currentTokens = tonumber(bucket[1])
	local lastRefill = tonumber(bucket[2])

	if currentTokens == nil then
		currentTokens = capacity
		lastRefill = now
	end

	local elapsed = math.max(0, now - lastRefill)
	currentTokens = math.min(capacity, currentTokens + elapsed * rate)

	local allowed = 0
	if currentTokens >= 1 then
		currentTokens = currentTokens - 1
		allowed = 1
	end

	redis.call('HSET', key, 'tokens', currentTokens, 'last_refill', now)
	redis.call('EXPIRE', key, ttl)

	return {allowed, math.floor(currentTokens)}
`)

// RsTokenBucket redis token bucket, 多個實例共用同一份計數
type RsTokenBucket struct {
	client redis.Scripter
	prefix string
	now    func() time.Time
}

func NewRsTokenBucket(client redis.Scripter, prefix string) *RsTokenBucket {
	return &RsTokenBucket{client: client, prefix: prefix, now: time.Now}
}

// Allow 以 key 區分bucket
func (r *RsTokenBucket) Allow(ctx context.Context, key string, cfg LimiterConfig) (Result, error) {
	ttl := int64(math.Ceil(cfg.Window.Seconds())) + 1
	res, err := tokenBucketScript.Run(
		ctx,
		r.client,
		[]string{fmt.Sprintf("%s:%s", r.prefix, key)},
		cfg.Limit,
		cfg.RatePerMs(),
		r.now().UnixMilli(),
		ttl,
	).Int64Slice()
	if err != nil {
		return Result{}, err
	}
	if len(res) != 2 {
		return Result{}, fmt.Errorf("unexpected token bucket reply: %v", res)
	}
	return Result{Allowed: res[0] == 1, Remaining: int(res[1])}, nil
}
