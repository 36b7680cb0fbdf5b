package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type RedisCacheTestSuite struct {
	suite.Suite
	mr    *miniredis.Miniredis
	cache *RedisCache
	ctx   context.Context
}

func TestRedisCacheTestSuite(t *testing.T) {
	suite.Run(t, new(RedisCacheTestSuite))
}

func (suite *RedisCacheTestSuite) SetupTest() {
	suite.mr = miniredis.RunT(suite.T())
	client := redis.NewClient(&redis.Options{Addr: suite.mr.Addr()})
	suite.cache = NewRedisCache(client, "test")
	suite.ctx = context.Background()
}

func (suite *RedisCacheTestSuite) TestPrefixAndMiss() {
	_, err := suite.cache.Get(suite.ctx, "missing")
	suite.ErrorIs(err, ErrCacheMiss)

	require.NoError(suite.T(), suite.cache.Set(suite.ctx, "k", "v", time.Minute))
	suite.True(suite.mr.Exists("test:k"))

	val, err := suite.cache.Get(suite.ctx, "k")
	require.NoError(suite.T(), err)
	suite.Equal("v", val)

	ttl, err := suite.cache.TTL(suite.ctx, "k")
	require.NoError(suite.T(), err)
	suite.Equal(time.Minute, ttl)
}

func (suite *RedisCacheTestSuite) TestSetNX() {
	ok, err := suite.cache.SetNX(suite.ctx, "lock", 1, time.Minute)
	require.NoError(suite.T(), err)
	suite.True(ok)

	ok, err = suite.cache.SetNX(suite.ctx, "lock", 1, time.Minute)
	require.NoError(suite.T(), err)
	suite.False(ok)
}

func (suite *RedisCacheTestSuite) TestJSONRoundTrip() {
	type item struct {
		Name  string `json:"name"`
		Price int    `json:"price"`
	}
	require.NoError(suite.T(), suite.cache.SetJSON(suite.ctx, "item", item{Name: "Jollof", Price: 2500}, time.Minute))

	var got item
	require.NoError(suite.T(), suite.cache.GetJSON(suite.ctx, "item", &got))
	suite.Equal("Jollof", got.Name)
	suite.Equal(2500, got.Price)
}

func (suite *RedisCacheTestSuite) TestDeleteByPattern() {
	require.NoError(suite.T(), suite.cache.Set(suite.ctx, "menu:a", 1, 0))
	require.NoError(suite.T(), suite.cache.Set(suite.ctx, "menu:b", 1, 0))
	require.NoError(suite.T(), suite.cache.Set(suite.ctx, "item:a", 1, 0))

	require.NoError(suite.T(), suite.cache.DeleteByPattern(suite.ctx, "menu:*"))

	suite.False(suite.mr.Exists("test:menu:a"))
	suite.False(suite.mr.Exists("test:menu:b"))
	suite.True(suite.mr.Exists("test:item:a"))
}

func (suite *RedisCacheTestSuite) TestHashOperations() {
	_, err := suite.cache.HGetAll(suite.ctx, "h")
	suite.ErrorIs(err, ErrCacheMiss)

	require.NoError(suite.T(), suite.cache.HSet(suite.ctx, "h", time.Minute, map[string]any{"code": "abc", "attempts": 0}))
	n, err := suite.cache.HIncrBy(suite.ctx, "h", "attempts", 1)
	require.NoError(suite.T(), err)
	suite.Equal(int64(1), n)

	fields, err := suite.cache.HGetAll(suite.ctx, "h")
	require.NoError(suite.T(), err)
	suite.Equal("abc", fields["code"])
	suite.Equal("1", fields["attempts"])
	suite.Equal(time.Minute, suite.mr.TTL("test:h"))
}
