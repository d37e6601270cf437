package artwork

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/teranga-labs/musee-api/internal/platform/constants"
)

// RedisCacheRepository implements CacheRepository using Redis. Snapshots are
// stored as JSON with a short TTL; a miss is reported as a nil value.
type RedisCacheRepository struct {
	client *redis.Client
}

// NewRedisCacheRepository creates a new Redis-backed CacheRepository.
func NewRedisCacheRepository(client *redis.Client) *RedisCacheRepository {
	return &RedisCacheRepository{client: client}
}

func (repository *RedisCacheRepository) GetPopular(context context.Context) ([]*Artwork, error) {
	raw, err := repository.client.Get(context, constants.RedisKeyPopularArtworks).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis_popular_get_failed: %w", err)
	}

	var artworks []*Artwork
	if err := json.Unmarshal(raw, &artworks); err != nil {
		return nil, fmt.Errorf("redis_popular_decode_failed: %w", err)
	}
	return artworks, nil
}

func (repository *RedisCacheRepository) SetPopular(context context.Context, artworks []*Artwork) error {
	raw, err := json.Marshal(artworks)
	if err != nil {
		return fmt.Errorf("redis_popular_encode_failed: %w", err)
	}

	if err := repository.client.Set(context, constants.RedisKeyPopularArtworks, raw, constants.CatalogCacheTTL).Err(); err != nil {
		return fmt.Errorf("redis_popular_set_failed: %w", err)
	}
	return nil
}

func (repository *RedisCacheRepository) GetStats(context context.Context) (*Stats, error) {
	raw, err := repository.client.Get(context, constants.RedisKeyStatistics).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis_stats_get_failed: %w", err)
	}

	stats := &Stats{}
	if err := json.Unmarshal(raw, stats); err != nil {
		return nil, fmt.Errorf("redis_stats_decode_failed: %w", err)
	}
	return stats, nil
}

func (repository *RedisCacheRepository) SetStats(context context.Context, stats *Stats) error {
	raw, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("redis_stats_encode_failed: %w", err)
	}

	if err := repository.client.Set(context, constants.RedisKeyStatistics, raw, constants.CatalogCacheTTL).Err(); err != nil {
		return fmt.Errorf("redis_stats_set_failed: %w", err)
	}
	return nil
}

func (repository *RedisCacheRepository) Invalidate(context context.Context) error {
	if err := repository.client.Del(context, constants.RedisKeyPopularArtworks, constants.RedisKeyStatistics).Err(); err != nil {
		return fmt.Errorf("redis_cache_invalidate_failed: %w", err)
	}
	return nil
}
