package cache

import (
	"context"
	"errors"
	"fmt"
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/platform/obs"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisGeocodePrefix = "geocode:"

// RedisGeocodeCache stores address -> coordinates as "lat,lon" strings under
// "geocode:<address>" keys. It implements ports.GeocodeCache.
type RedisGeocodeCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisGeocodeCache wraps client. A zero ttl keeps entries forever.
func NewRedisGeocodeCache(client *redis.Client, ttl time.Duration) *RedisGeocodeCache {
	return &RedisGeocodeCache{client: client, ttl: ttl}
}

func (r *RedisGeocodeCache) GetMany(
	ctx context.Context,
	addresses []string,
) (_ map[string]domain.Coordinates, err error) {
	defer obs.Time(ctx, "geocode.redis.GetMany")(&err)

	if r.client == nil {
		return nil, errors.New("geocode cache: redis client is nil")
	}

	uniq := uniqueKeys(addresses)
	if len(uniq) == 0 {
		return map[string]domain.Coordinates{}, nil
	}

	keys := make([]string, len(uniq))
	for i, a := range uniq {
		keys[i] = redisGeocodePrefix + a
	}

	vals, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("get geocode cache: redis mget: %w", err)
	}

	out := make(map[string]domain.Coordinates, len(uniq))
	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			continue // miss
		}
		c, err := decodeCoordinates(s)
		if err != nil {
			return nil, fmt.Errorf("get geocode cache: key %q: %w", keys[i], err)
		}
		out[uniq[i]] = c
	}

	return out, nil
}

func (r *RedisGeocodeCache) PutMany(ctx context.Context, results map[string]domain.Coordinates) error {
	if r.client == nil {
		return errors.New("geocode cache: redis client is nil")
	}

	if len(results) == 0 {
		return nil
	}

	pipe := r.client.TxPipeline()
	for addr, c := range results {
		if strings.TrimSpace(addr) == "" {
			return fmt.Errorf("insert geocode cache: empty address key")
		}
		pipe.Set(ctx, redisGeocodePrefix+addr, encodeCoordinates(c), r.ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("insert geocode cache: redis exec: %w", err)
	}

	return nil
}

func encodeCoordinates(c domain.Coordinates) string {
	return strconv.FormatFloat(c.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lon, 'f', -1, 64)
}

func decodeCoordinates(s string) (domain.Coordinates, error) {
	latStr, lonStr, ok := strings.Cut(s, ",")
	if !ok {
		return domain.Coordinates{}, fmt.Errorf("malformed coordinates %q", s)
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("parse latitude %q: %w", latStr, err)
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("parse longitude %q: %w", lonStr, err)
	}

	return domain.Coordinates{Lat: lat, Lon: lon}, nil
}
