package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mcdev12/kickoff/go/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const keyPrefix = "kickoff:geocode:"

// RedisCache keeps geocoding results in Redis with a TTL
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClient connects to Redis and verifies the connection with a ping
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Info().Str("addr", opts.Addr).Int("db", opts.DB).Msg("Connected to redis geocode cache")
	return client, nil
}

// NewRedisCache wraps a connected client. A zero ttl keeps entries forever.
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{
		client: client,
		ttl:    ttl,
	}
}

// Key returns the redis key for a query. Queries differing only in case or
// surrounding whitespace share an entry.
func Key(query string) string {
	return keyPrefix + strings.ToLower(strings.TrimSpace(query))
}

func (c *RedisCache) Get(ctx context.Context, query string) (models.Coordinates, bool, error) {
	raw, err := c.client.Get(ctx, Key(query)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return models.Coordinates{}, false, nil
		}
		return models.Coordinates{}, false, fmt.Errorf("failed to read geocode cache: %w", err)
	}

	var coords models.Coordinates
	if err := json.Unmarshal(raw, &coords); err != nil {
		return models.Coordinates{}, false, fmt.Errorf("failed to decode cached coordinates: %w", err)
	}

	return coords, true, nil
}

func (c *RedisCache) Set(ctx context.Context, query string, coords models.Coordinates) error {
	raw, err := json.Marshal(coords)
	if err != nil {
		return fmt.Errorf("failed to encode coordinates: %w", err)
	}

	if err := c.client.Set(ctx, Key(query), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write geocode cache: %w", err)
	}
	return nil
}
