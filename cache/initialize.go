package cache

import (
	"fmt"

	"forum/config"

	"github.com/umakantv/go-utils/cache"
	"github.com/umakantv/go-utils/logger"
	"go.uber.org/zap"
)

// InitializeCache connects the topic list cache. It returns nil when no
// cache type is configured; handlers then read straight from the store.
func InitializeCache(cfg config.CacheConfig) (cache.Cache, error) {
	if cfg.Type == "" {
		logger.Info("Topic cache disabled")
		return nil, nil
	}

	c, err := cache.New(cache.Config{
		Type:          cfg.Type,
		RedisAddr:     cfg.RedisAddr,
		RedisPassword: cfg.RedisPassword,
		RedisDB:       cfg.RedisDB,
	})
	if err != nil {
		logger.Error("Failed to initialize cache", zap.String("type", cfg.Type), zap.Error(err))
		return nil, fmt.Errorf("failed to initialize cache: %w", err)
	}
	logger.Info("Topic cache ready", zap.String("type", cfg.Type), zap.String("addr", cfg.RedisAddr))
	return c, nil
}
