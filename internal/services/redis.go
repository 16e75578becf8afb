package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var RedisClient *redis.Client

const newsCacheTTL = 10 * time.Minute

// InitRedis initializes the Redis client
func InitRedis() error {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://redis:6379" // Default Redis address for Docker
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return fmt.Errorf("failed to parse Redis URL: %v", err)
	}

	RedisClient = redis.NewClient(opt)

	ctx := context.Background()
	if _, err := RedisClient.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %v", err)
	}

	return nil
}

func newsCacheKey(category string) string {
	return fmt.Sprintf("news:articles:%s", category)
}

// CacheNewsArticles stores a fetched article list for a category.
func CacheNewsArticles(ctx context.Context, category string, articles []NewsArticle) error {
	data, err := json.Marshal(articles)
	if err != nil {
		return err
	}
	return RedisClient.Set(ctx, newsCacheKey(category), data, newsCacheTTL).Err()
}

// GetCachedNewsArticles retrieves a cached article list for a category.
// Returns redis.Nil via the error when the key is absent or expired.
func GetCachedNewsArticles(ctx context.Context, category string) ([]NewsArticle, error) {
	data, err := RedisClient.Get(ctx, newsCacheKey(category)).Result()
	if err != nil {
		return nil, err
	}
	var articles []NewsArticle
	if err := json.Unmarshal([]byte(data), &articles); err != nil {
		return nil, err
	}
	return articles, nil
}
