//go:build integration

package bucket

import (
	"context"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"symposium/pkg/testutil/containers"
)

type RedisStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *RedisStore
	clock time.Time
	ctx   context.Context
}

func TestRedisStoreSuite(t *testing.T) {
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
}

func (s *RedisStoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.Require().NoError(s.redis.Client.FlushDB(s.ctx).Err())
	s.clock = time.Now().Truncate(time.Second)
	s.store = NewRedisStore(s.redis.Client)
	s.store.now = func() time.Time { return s.clock }
}

func (s *RedisStoreSuite) TestAllowUpToLimit() {
	for i := range testLimit {
		result, err := s.store.Allow(s.ctx, "k:limit", testLimit, testWindow)
		s.Require().NoError(err)
		s.True(result.Allowed)
		s.Equal(testLimit-i-1, result.Remaining)
		s.clock = s.clock.Add(time.Millisecond)
	}

	result, err := s.store.Allow(s.ctx, "k:limit", testLimit, testWindow)
	s.Require().NoError(err)
	s.False(result.Allowed)
	s.Positive(result.RetryAfter)

	card, err := s.redis.Client.ZCard(s.ctx, "k:limit").Result()
	s.Require().NoError(err)
	s.EqualValues(testLimit, card)
}

func (s *RedisStoreSuite) TestWindowSlides() {
	for range testLimit {
		_, err := s.store.Allow(s.ctx, "k:slide", testLimit, testWindow)
		s.Require().NoError(err)
	}

	s.clock = s.clock.Add(testWindow + time.Second)
	result, err := s.store.Allow(s.ctx, "k:slide", testLimit, testWindow)
	s.Require().NoError(err)
	s.True(result.Allowed)
	s.Equal(testLimit-1, result.Remaining)
}

func (s *RedisStoreSuite) TestKeyExpires() {
	_, err := s.store.Allow(s.ctx, "k:ttl", testLimit, testWindow)
	s.Require().NoError(err)

	ttl, err := s.redis.Client.PTTL(s.ctx, "k:ttl").Result()
	s.Require().NoError(err)
	s.Positive(ttl)
	s.LessOrEqual(ttl, testWindow)
}

func (s *RedisStoreSuite) TestClosedClientErrors() {
	client := s.redis.Client.Options()
	broken := NewRedisStore(newClosedClient(client.Addr))
	_, err := broken.Allow(s.ctx, "k:err", testLimit, testWindow)
	s.Error(err)
}

func newClosedClient(addr string) *goredis.Client {
	c := goredis.NewClient(&goredis.Options{Addr: addr})
	_ = c.Close()
	return c
}
