package service

import (
	"adaptive_learning_backend/internal/model"
	"adaptive_learning_backend/pkg/logger"
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const profileCacheKeyPrefix = "adaptive:profile:"

// ProfileCache 画像的 redis 旁路缓存，nil 实例等价于未启用缓存
type ProfileCache struct {
	Redis *redis.Client
	TTL   time.Duration
}

func NewProfileCache(rdb *redis.Client, ttl time.Duration) *ProfileCache {
	return &ProfileCache{Redis: rdb, TTL: ttl}
}

func (c *ProfileCache) Get(ctx context.Context, userID string) (*model.LearningProfile, bool) {
	if c == nil || c.Redis == nil {
		return nil, false
	}
	val, err := c.Redis.Get(ctx, profileCacheKeyPrefix+userID).Result()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		logger.Log.Warn("profile cache read failed", zap.String("userId", userID), zap.Error(err))
		return nil, false
	}
	var p model.LearningProfile
	if err := json.Unmarshal([]byte(val), &p); err != nil {
		return nil, false
	}
	return &p, true
}

func (c *ProfileCache) Set(ctx context.Context, p *model.LearningProfile) {
	if c == nil || c.Redis == nil {
		return
	}
	data, err := json.Marshal(p)
	if err != nil {
		return
	}
	if err := c.Redis.Set(ctx, profileCacheKeyPrefix+p.UserID, data, c.TTL).Err(); err != nil {
		logger.Log.Warn("profile cache write failed", zap.String("userId", p.UserID), zap.Error(err))
	}
}

func (c *ProfileCache) Invalidate(ctx context.Context, userID string) {
	if c == nil || c.Redis == nil {
		return
	}
	c.Redis.Del(ctx, profileCacheKeyPrefix+userID)
}
