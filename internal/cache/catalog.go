package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"github.com/linkdeck-dev/linkdeck/internal/models"
)

const (
	platformsKey  = "catalog:platforms"
	categoriesKey = "catalog:categories"
)

// CatalogCache keeps the platform/category catalog in redis as JSON
// payloads with a TTL. The catalog is reference data that changes rarely
// and is read on every directory page load.
type CatalogCache struct {
	client *redisv9.Client
	ttl    time.Duration
}

func NewCatalogCache(client *redisv9.Client, ttl time.Duration) *CatalogCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CatalogCache{client: client, ttl: ttl}
}

func (c *CatalogCache) GetPlatforms(ctx context.Context) ([]models.Platform, bool, error) {
	raw, err := c.client.Get(ctx, platformsKey).Result()
	if err == redisv9.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get platforms failed: %w", err)
	}

	var platforms []models.Platform
	if err := json.Unmarshal([]byte(raw), &platforms); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached platforms failed: %w", err)
	}
	return platforms, true, nil
}

func (c *CatalogCache) SetPlatforms(ctx context.Context, platforms []models.Platform) error {
	payload, err := json.Marshal(platforms)
	if err != nil {
		return fmt.Errorf("marshal platforms cache failed: %w", err)
	}
	if err := c.client.Set(ctx, platformsKey, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set platforms failed: %w", err)
	}
	return nil
}

func (c *CatalogCache) GetCategories(ctx context.Context) ([]models.Category, bool, error) {
	raw, err := c.client.Get(ctx, categoriesKey).Result()
	if err == redisv9.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get categories failed: %w", err)
	}

	var categories []models.Category
	if err := json.Unmarshal([]byte(raw), &categories); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached categories failed: %w", err)
	}
	return categories, true, nil
}

func (c *CatalogCache) SetCategories(ctx context.Context, categories []models.Category) error {
	payload, err := json.Marshal(categories)
	if err != nil {
		return fmt.Errorf("marshal categories cache failed: %w", err)
	}
	if err := c.client.Set(ctx, categoriesKey, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set categories failed: %w", err)
	}
	return nil
}
