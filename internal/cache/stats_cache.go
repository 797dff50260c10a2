package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/linskybing/formflow/internal/domain/submission"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var ErrMiss = errors.New("stats cache miss")

// StatsCache stores computed stats per form version.
type StatsCache interface {
	Get(ctx context.Context, formID uint) (*submission.Stats, error)
	Set(ctx context.Context, stats *submission.Stats) error
	Invalidate(ctx context.Context, formID uint) error
}

// NopCache never stores anything.
type NopCache struct{}

func (NopCache) Get(context.Context, uint) (*submission.Stats, error) { return nil, ErrMiss }
func (NopCache) Set(context.Context, *submission.Stats) error         { return nil }
func (NopCache) Invalidate(context.Context, uint) error               { return nil }

// RedisStatsCache keeps JSON-encoded stats under formflow:stats:<id>.
type RedisStatsCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisStatsCache connects and pings the server before returning.
func NewRedisStatsCache(addr, password string, db int, ttl time.Duration, logger *zap.Logger) (*RedisStatsCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStatsCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}, nil
}

func statsKey(formID uint) string {
	return "formflow:stats:" + strconv.FormatUint(uint64(formID), 10)
}

func (c *RedisStatsCache) Get(ctx context.Context, formID uint) (*submission.Stats, error) {
	data, err := c.client.Get(ctx, statsKey(formID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, err
	}

	var stats submission.Stats
	if err := json.Unmarshal(data, &stats); err != nil {
		c.logger.Warn("dropping undecodable stats entry", zap.Uint("form_id", formID), zap.Error(err))
		_ = c.client.Del(ctx, statsKey(formID)).Err()
		return nil, ErrMiss
	}
	return &stats, nil
}

func (c *RedisStatsCache) Set(ctx context.Context, stats *submission.Stats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}
	return c.client.Set(ctx, statsKey(stats.FormID), data, c.ttl).Err()
}

func (c *RedisStatsCache) Invalidate(ctx context.Context, formID uint) error {
	return c.client.Del(ctx, statsKey(formID)).Err()
}

func (c *RedisStatsCache) Close() error {
	return c.client.Close()
}
