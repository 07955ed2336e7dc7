package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TTL 상수 정의
const (
	TTLMember     = 5 * time.Minute  // 멤버 프로필
	TTLPointStats = 1 * time.Minute  // 포인트 요약 (잦은 변동)
	TTLNavigation = 30 * time.Minute // 네비게이션 카탈로그 (정적 설정)
	TTLDefault    = 5 * time.Minute  // 기본값
)

// 캐시 키 접두사
const (
	PrefixMember     = "member:"
	PrefixPoints     = "points:"
	PrefixNavigation = "navigation"
)

// ErrCacheMiss is returned when the key does not exist.
var ErrCacheMiss = errors.New("cache miss")

// Service Redis 캐시 서비스 인터페이스
type Service interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error

	// 멤버 캐시
	GetMember(ctx context.Context, userID string, dest interface{}) error
	SetMember(ctx context.Context, userID string, data interface{}) error
	InvalidateMember(ctx context.Context, userID string) error

	// 포인트 요약 캐시
	GetPointSummary(ctx context.Context, userID string, dest interface{}) error
	SetPointSummary(ctx context.Context, userID string, data interface{}) error
	InvalidatePointSummary(ctx context.Context, userID string) error

	// 유틸리티
	IsAvailable() bool
	Ping(ctx context.Context) error
}

// redisCache Redis 기반 캐시 구현
type redisCache struct {
	client *redis.Client
}

// NewService creates a redis-backed cache service.
func NewService(client *redis.Client) Service {
	return &redisCache{client: client}
}

func (c *redisCache) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		return err
	}
	return json.Unmarshal(data, dest)
}

func (c *redisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal 실패: %w", err)
	}
	return c.client.Set(ctx, key, data, ttl).Err()
}

func (c *redisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

func (c *redisCache) GetMember(ctx context.Context, userID string, dest interface{}) error {
	return c.Get(ctx, PrefixMember+userID, dest)
}

func (c *redisCache) SetMember(ctx context.Context, userID string, data interface{}) error {
	return c.Set(ctx, PrefixMember+userID, data, TTLMember)
}

func (c *redisCache) InvalidateMember(ctx context.Context, userID string) error {
	return c.Delete(ctx, PrefixMember+userID)
}

func (c *redisCache) GetPointSummary(ctx context.Context, userID string, dest interface{}) error {
	return c.Get(ctx, PrefixPoints+userID, dest)
}

func (c *redisCache) SetPointSummary(ctx context.Context, userID string, data interface{}) error {
	return c.Set(ctx, PrefixPoints+userID, data, TTLPointStats)
}

func (c *redisCache) InvalidatePointSummary(ctx context.Context, userID string) error {
	return c.Delete(ctx, PrefixPoints+userID)
}

func (c *redisCache) IsAvailable() bool {
	return c.client != nil
}

func (c *redisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
