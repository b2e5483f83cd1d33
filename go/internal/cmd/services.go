package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/kickoff/go/clients/football_api_client"
	"github.com/mcdev12/kickoff/go/clients/geocoding_client"
	"github.com/mcdev12/kickoff/go/internal/config"
	"github.com/mcdev12/kickoff/go/internal/geocoding"
	"github.com/mcdev12/kickoff/go/internal/leagues"
	leaguedb "github.com/mcdev12/kickoff/go/internal/leagues/db"
	"github.com/mcdev12/kickoff/go/internal/memstore"
	"github.com/mcdev12/kickoff/go/internal/onboarding"
	"github.com/mcdev12/kickoff/go/internal/progress"
	"github.com/mcdev12/kickoff/go/internal/ratelimit"
	"github.com/mcdev12/kickoff/go/internal/teams"
	"github.com/mcdev12/kickoff/go/internal/venues"
	venuesdb "github.com/mcdev12/kickoff/go/internal/venues/db"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type health interface {
	Ping(ctx context.Context) error
}

type Services struct {
	Config       *config.Config
	Health       health
	Leagues      *leagues.App
	Orchestrator *onboarding.Orchestrator
	Bulk         *onboarding.BulkDriver
	Discoverer   *onboarding.Discoverer
	Progress     progress.Func

	closers []func() error
}

func setupServices(ctx context.Context, cfg *config.Config, dryRun bool) (*Services, error) {
	// Wire up dependency injection chain
	// Store → Repository layer → App layer → Orchestrator → Bulk driver
	clock := clockwork.NewRealClock()
	s := &Services{Config: cfg}

	var (
		leagueRepo leagues.LeagueRepository
		teamRepo   teams.TeamsRepository
		venueRepo  venues.VenueRepository
	)
	if dryRun {
		store := memstore.New(clock)
		leagueRepo, teamRepo, venueRepo = store, store, store
		s.Health = store
		log.Warn().Msg("dry run: writing to an in-memory store")
	} else {
		database, err := setupDatabase(cfg.DB)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, database.Close)
		leagueRepo = leagues.NewRepository(leaguedb.New(database))
		teamRepo = teams.NewRepository(database)
		venueRepo = venues.NewRepository(venuesdb.New(database))
		s.Health = dbHealth{db: database}
	}

	// Upstream provider, paced by one shared limiter
	upstreamLimiter := ratelimit.New("api-football", cfg.UpstreamInterval, clock)
	upstream := football_api_client.NewFootballApiClient(cfg.Upstream(), upstreamLimiter)

	// Geocoding
	geoClient := geocoding_client.NewGeocodingClient(cfg.GeocoderBaseURL, cfg.GeocoderAPIKey, cfg.GeocoderTimeout)
	geoLimiter := ratelimit.New("geocoder", cfg.GeocoderInterval, clock)
	resolver := geocoding.NewResolver(geoClient, geoLimiter, s.geocodeCache(ctx, cfg), geoClient.HasAPIKey())
	if !geoClient.HasAPIKey() {
		log.Warn().Msg("GEOCODER_API_KEY not set: venues without provider coordinates stay unresolved")
	}

	// Apps
	leaguesApp := leagues.NewApp(leagueRepo, clock, cfg.Cutover())
	teamsApp := teams.NewApp(teamRepo, clock)
	venuesApp := venues.NewApp(venueRepo, resolver, clock)
	s.Leagues = leaguesApp

	s.Orchestrator = onboarding.NewOrchestrator(onboarding.OrchestratorConfig{
		Leagues: leaguesApp,
		Teams:   teamsApp,
		Venues:  venuesApp,
		Roster:  upstream,
		Limiter: upstreamLimiter,
		Clock:   clock,
	})
	s.Bulk = onboarding.NewBulkDriver(onboarding.BulkConfig{
		Orchestrator: s.Orchestrator,
		Index:        leaguesApp,
		Health:       s.Health,
		Pacing:       cfg.LeaguePacing,
		Clock:        clock,
	})
	s.Discoverer = onboarding.NewDiscoverer(upstream, cfg.DiscoverTypes...)

	// Progress sinks
	s.Progress = progress.Multi(progress.Log(zerolog.InfoLevel), s.natsSink(ctx, cfg))

	return s, nil
}

// geocodeCache connects to Redis when REDIS_URL is set. A cache that cannot be
// reached is left out rather than failing startup.
func (s *Services) geocodeCache(ctx context.Context, cfg *config.Config) geocoding.Cache {
	if cfg.RedisURL == "" {
		return nil
	}
	client, err := geocoding.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Warn().Err(err).Msg("geocode cache disabled")
		return nil
	}
	s.closers = append(s.closers, client.Close)
	log.Info().Dur("ttl", cfg.GeocodeCacheTTL).Msg("geocode cache enabled")
	return geocoding.NewRedisCache(client, cfg.GeocodeCacheTTL)
}

func (s *Services) natsSink(ctx context.Context, cfg *config.Config) progress.Func {
	if cfg.NatsURL == "" {
		return nil
	}
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	publisher, err := progress.NewJetStreamPublisher(connectCtx, cfg.JetStream())
	if err != nil {
		log.Warn().Err(err).Msg("progress publishing to NATS disabled")
		return nil
	}
	s.closers = append(s.closers, publisher.Close)
	return publisher.Sink()
}

// LeaguesFor returns the seed list or, with discover, the provider's usable
// leagues for the current season
func (s *Services) LeaguesFor(ctx context.Context, discover bool, seedFile string, season int) ([]leagues.LeagueDescriptor, error) {
	if !discover {
		return config.LoadSeed(seedFile)
	}
	if season == 0 {
		season = leagues.SeasonFor(time.Now(), s.Config.Cutover()).StartYear
	}
	return s.Discoverer.Discover(ctx, season)
}

func (s *Services) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("failed to close services: %w", err)
	}
	return nil
}
