package xredis

import (
	"context"
	"time"

	"github.com/farmlink/backend/pkg/xcontext"
	"github.com/redis/go-redis/v9"
)

// Client is the subset of redis the service relies on. Sets are the only
// structure in use.
type Client interface {
	SAdd(ctx context.Context, key string, members ...string) error
	SMembers(ctx context.Context, key string) ([]string, error)
	SRem(ctx context.Context, key string, members ...string) error

	// SDrain returns every member of the set and deletes it atomically.
	SDrain(ctx context.Context, key string) ([]string, error)

	Close() error
}

type client struct {
	redisClient *redis.Client
}

func NewClient(ctx context.Context) (*client, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:            xcontext.Configs(ctx).Redis.Addr,
		MaxRetries:      5,
		MinRetryBackoff: 8 * time.Millisecond,
		MaxRetryBackoff: 512 * time.Millisecond,
		DialTimeout:     5 * time.Second,
		ReadTimeout:     5 * time.Second,
		WriteTimeout:    5 * time.Second,
		PoolFIFO:        false,
		PoolSize:        5,
	})

	if err := redisClient.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &client{redisClient: redisClient}, nil
}

func (c *client) SAdd(ctx context.Context, key string, members ...string) error {
	return c.redisClient.SAdd(ctx, key, toAny(members)...).Err()
}

func (c *client) SMembers(ctx context.Context, key string) ([]string, error) {
	return c.redisClient.SMembers(ctx, key).Result()
}

func (c *client) SRem(ctx context.Context, key string, members ...string) error {
	return c.redisClient.SRem(ctx, key, toAny(members)...).Err()
}

func (c *client) SDrain(ctx context.Context, key string) ([]string, error) {
	var members *redis.StringSliceCmd
	_, err := c.redisClient.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		members = pipe.SMembers(ctx, key)
		pipe.Del(ctx, key)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return members.Val(), nil
}

func (c *client) Close() error {
	return c.redisClient.Close()
}

func toAny(members []string) []any {
	result := make([]any, len(members))
	for i := range members {
		result[i] = members[i]
	}
	return result
}
