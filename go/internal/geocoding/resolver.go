package geocoding

import (
	"context"
	"strings"

	"github.com/mcdev12/kickoff/go/clients/geocoding_client"
	"github.com/mcdev12/kickoff/go/internal/metrics"
	"github.com/mcdev12/kickoff/go/internal/models"
	"github.com/rs/zerolog/log"
)

// Searcher is the geocoding provider
type Searcher interface {
	Search(ctx context.Context, q string) ([]geocoding_client.Place, error)
}

// Waiter is the rate limiter consulted before every provider call
type Waiter interface {
	Wait(ctx context.Context)
}

// Cache stores resolved coordinates by query string
type Cache interface {
	Get(ctx context.Context, query string) (models.Coordinates, bool, error)
	Set(ctx context.Context, query string, coords models.Coordinates) error
}

const (
	resultHit    = "hit"
	resultMiss   = "miss"
	resultCached = "cached"
	resultError  = "error"
)

// Resolver turns free text into coordinates. It never returns an error:
// every failure is logged and reported as no result.
type Resolver struct {
	searcher         Searcher
	limiter          Waiter
	cache            Cache
	apiKeyConfigured bool
}

// NewResolver creates a resolver. limiter and cache may be nil.
func NewResolver(searcher Searcher, limiter Waiter, cache Cache, apiKeyConfigured bool) *Resolver {
	return &Resolver{
		searcher:         searcher,
		limiter:          limiter,
		cache:            cache,
		apiKeyConfigured: apiKeyConfigured,
	}
}

// ResolveAddress geocodes a free-text address
func (r *Resolver) ResolveAddress(ctx context.Context, address string) (models.Coordinates, bool) {
	return r.resolve(ctx, strings.TrimSpace(address))
}

// ResolvePlace geocodes a place from its name, city and country. Empty parts
// are left out of the query.
func (r *Resolver) ResolvePlace(ctx context.Context, name, city, country string) (models.Coordinates, bool) {
	return r.resolve(ctx, JoinQuery(name, city, country))
}

// JoinQuery joins the non-empty parts with ", "
func JoinQuery(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ", ")
}

func (r *Resolver) resolve(ctx context.Context, query string) (models.Coordinates, bool) {
	if query == "" {
		return models.Coordinates{}, false
	}

	logger := log.With().Str("query", query).Logger()

	if !r.apiKeyConfigured {
		logger.Warn().Msg("geocoding skipped: no API key configured")
		metrics.GeocodeLookupsTotal.WithLabelValues(resultError).Inc()
		return models.Coordinates{}, false
	}

	if r.cache != nil {
		coords, found, err := r.cache.Get(ctx, query)
		if err != nil {
			logger.Warn().Err(err).Msg("geocode cache read failed")
		} else if found {
			metrics.GeocodeLookupsTotal.WithLabelValues(resultCached).Inc()
			return coords, true
		}
	}

	if r.limiter != nil {
		r.limiter.Wait(ctx)
	}

	places, err := r.searcher.Search(ctx, query)
	if err != nil {
		logger.Warn().Err(err).Msg("geocoding request failed")
		metrics.GeocodeLookupsTotal.WithLabelValues(resultError).Inc()
		return models.Coordinates{}, false
	}

	if len(places) == 0 {
		logger.Info().Msg("geocoder returned no result")
		metrics.GeocodeLookupsTotal.WithLabelValues(resultMiss).Inc()
		return models.Coordinates{}, false
	}

	place := places[0]
	if !place.Lat.Valid || !place.Lon.Valid {
		logger.Warn().Msg("geocoder result without coordinates")
		metrics.GeocodeLookupsTotal.WithLabelValues(resultError).Inc()
		return models.Coordinates{}, false
	}

	coords, err := models.NewCoordinates(place.Lon.Value, place.Lat.Value)
	if err != nil {
		logger.Warn().Err(err).Msg("geocoder returned invalid coordinates")
		metrics.GeocodeLookupsTotal.WithLabelValues(resultError).Inc()
		return models.Coordinates{}, false
	}

	metrics.GeocodeLookupsTotal.WithLabelValues(resultHit).Inc()
	logger.Debug().
		Float64("longitude", coords.Longitude).
		Float64("latitude", coords.Latitude).
		Msg("geocoded")

	if r.cache != nil {
		if err := r.cache.Set(ctx, query, coords); err != nil {
			logger.Warn().Err(err).Msg("geocode cache write failed")
		}
	}

	return coords, true
}
