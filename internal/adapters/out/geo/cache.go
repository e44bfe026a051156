package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/ports"

	"github.com/go-redis/redis/v8"
)

const postalCodeTTL = 24 * time.Hour

// CachingResolver decorates an AddressResolver with a redis cache for
// postal-code lookups. Postal-code data changes rarely, so a daily TTL keeps
// the provider traffic low without staleness concerns.
//
// Cache failures are logged and treated as misses; the resolver never fails a
// request because redis is down. Forward geocoding is passed through uncached:
// it only runs for postal codes that lack embedded coordinates, which the
// postal-code cache already keeps rare.
type CachingResolver struct {
	inner  ports.AddressResolver
	client *redis.Client
	logger *slog.Logger
}

// NewCachingResolver wraps the resolver with a redis-backed postal-code cache.
func NewCachingResolver(inner ports.AddressResolver, client *redis.Client, logger *slog.Logger) *CachingResolver {
	return &CachingResolver{
		inner:  inner,
		client: client,
		logger: logger.With("component", "geo_cache"),
	}
}

// cachedAddress is the redis representation of a resolved postal code.
type cachedAddress struct {
	Street       string   `json:"street"`
	Neighborhood string   `json:"neighborhood"`
	City         string   `json:"city"`
	Region       string   `json:"region"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
}

// ResolvePostalCode returns the cached address when present, otherwise asks
// the wrapped resolver and stores the result.
func (r *CachingResolver) ResolvePostalCode(ctx context.Context, code string) (*ports.ResolvedAddress, error) {
	key := fmt.Sprintf("postal_code:%s", code)

	data, err := r.client.Get(ctx, key).Bytes()
	if err == nil {
		var cached cachedAddress
		if unmarshalErr := json.Unmarshal(data, &cached); unmarshalErr == nil {
			return r.fromCache(cached)
		}
		r.logger.WarnContext(ctx, "dropping unreadable cache entry", "key", key)
	} else if !errors.Is(err, redis.Nil) {
		r.logger.WarnContext(ctx, "postal-code cache read failed", "key", key, "error", err)
	}

	resolved, err := r.inner.ResolvePostalCode(ctx, code)
	if err != nil {
		return nil, err
	}

	r.store(ctx, key, resolved)
	return resolved, nil
}

// GeocodeAddress passes through to the wrapped resolver.
func (r *CachingResolver) GeocodeAddress(ctx context.Context, fullAddress string) (*kernel.GeoPoint, error) {
	return r.inner.GeocodeAddress(ctx, fullAddress)
}

func (r *CachingResolver) fromCache(cached cachedAddress) (*ports.ResolvedAddress, error) {
	resolved := &ports.ResolvedAddress{
		Street:       cached.Street,
		Neighborhood: cached.Neighborhood,
		City:         cached.City,
		Region:       cached.Region,
	}

	if cached.Latitude != nil && cached.Longitude != nil {
		point, err := kernel.NewGeoPoint(*cached.Latitude, *cached.Longitude)
		if err != nil {
			return nil, err
		}
		resolved.Location = &point
	}

	return resolved, nil
}

func (r *CachingResolver) store(ctx context.Context, key string, resolved *ports.ResolvedAddress) {
	cached := cachedAddress{
		Street:       resolved.Street,
		Neighborhood: resolved.Neighborhood,
		City:         resolved.City,
		Region:       resolved.Region,
	}

	if resolved.Location != nil {
		lat := resolved.Location.Latitude()
		lon := resolved.Location.Longitude()
		cached.Latitude = &lat
		cached.Longitude = &lon
	}

	data, err := json.Marshal(cached)
	if err != nil {
		r.logger.WarnContext(ctx, "failed to marshal cache entry", "key", key, "error", err)
		return
	}

	if err := r.client.Set(ctx, key, data, postalCodeTTL).Err(); err != nil {
		r.logger.WarnContext(ctx, "postal-code cache write failed", "key", key, "error", err)
	}
}
