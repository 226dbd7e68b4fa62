package cache

import (
	"context"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/NemoTravel/results/internal/models"
)

// Cache stores parsed search snapshots so a results session can be rebuilt
// without re-fetching or re-parsing the search response.
type Cache interface {
	Get(ctx context.Context, searchID int) (*models.SearchSnapshot, bool)
	Set(ctx context.Context, snapshot *models.SearchSnapshot) error
	Close() error
}

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Host:     "localhost",
		Port:     "6379",
		Password: "",
		DB:       0,
		TTL:      30 * time.Minute,
	}
}

func NewRedisCache(cfg RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Host + ":" + cfg.Port,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisCache{
		client: client,
		ttl:    cfg.TTL,
	}, nil
}

func (c *RedisCache) Get(ctx context.Context, searchID int) (*models.SearchSnapshot, bool) {
	data, err := c.client.Get(ctx, snapshotKey(searchID)).Bytes()
	if err != nil {
		return nil, false
	}

	var snapshot models.SearchSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, false
	}

	return &snapshot, true
}

func (c *RedisCache) Set(ctx context.Context, snapshot *models.SearchSnapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, snapshotKey(snapshot.SearchID), data, c.ttl).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func snapshotKey(searchID int) string {
	return "results:search:" + strconv.Itoa(searchID)
}

// NoOpCache disables caching; every session must be loaded explicitly.
type NoOpCache struct{}

func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

func (c *NoOpCache) Get(ctx context.Context, searchID int) (*models.SearchSnapshot, bool) {
	return nil, false
}

func (c *NoOpCache) Set(ctx context.Context, snapshot *models.SearchSnapshot) error {
	return nil
}

func (c *NoOpCache) Close() error {
	return nil
}
