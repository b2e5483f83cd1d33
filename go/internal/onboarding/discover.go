package onboarding

import (
	"context"
	"fmt"
	"strings"

	"github.com/mcdev12/kickoff/go/clients/football_api_client"
	"github.com/mcdev12/kickoff/go/internal/leagues"
	"github.com/rs/zerolog/log"
)

// LeagueCatalog lists every league the provider knows for a season
type LeagueCatalog interface {
	GetLeaguesBySeason(ctx context.Context, season int) ([]football_api_client.LeagueEntry, error)
}

// Discoverer selects the leagues worth onboarding from the provider catalog
type Discoverer struct {
	catalog LeagueCatalog
	types   map[string]bool
}

// NewDiscoverer creates a discoverer. When types is non-empty only leagues
// of those provider types (League, Cup) are kept.
func NewDiscoverer(catalog LeagueCatalog, types ...string) *Discoverer {
	d := &Discoverer{catalog: catalog, types: make(map[string]bool)}
	for _, t := range types {
		if t = strings.TrimSpace(t); t != "" {
			d.types[strings.ToLower(t)] = true
		}
	}
	return d
}

// Discover returns the leagues whose season entry for the given year is
// current and covers fixture events, in provider order
func (d *Discoverer) Discover(ctx context.Context, season int) ([]leagues.LeagueDescriptor, error) {
	entries, err := d.catalog.GetLeaguesBySeason(ctx, season)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoUsableData, err)
	}

	var (
		result  []leagues.LeagueDescriptor
		skipped int
	)
	for _, entry := range entries {
		s, ok := entry.SeasonFor(season)
		if !ok || !s.Current || !s.Coverage.Fixtures.Events {
			skipped++
			continue
		}
		if len(d.types) > 0 && !d.types[strings.ToLower(entry.League.Type)] {
			skipped++
			continue
		}
		result = append(result, leagueDescriptor(entry, s))
	}

	log.Info().
		Int("season", season).
		Int("catalog", len(entries)).
		Int("usable", len(result)).
		Int("skipped", skipped).
		Msg("discovered leagues")

	if len(result) == 0 {
		return nil, ErrNoUsableData
	}
	return result, nil
}
