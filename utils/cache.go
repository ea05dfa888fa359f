// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"doctorsmile/config"

	"github.com/go-redis/redis/v8"
)

// FunnelCacheClient is the dedicated client for funnel session caching.
var FunnelCacheClient *redis.Client

// InitFunnelCache initializes the Redis client for funnel session storage
// (using the funnel DB from AppConfig).
func InitFunnelCache() {
	FunnelCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisFunnelDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := FunnelCacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Funnel Cache): %v", err)
	}
}

// GetFunnelCacheClient returns the Redis client for funnel session caching.
func GetFunnelCacheClient() *redis.Client {
	if FunnelCacheClient == nil {
		InitFunnelCache()
	}
	return FunnelCacheClient
}
