package onboarding

import "github.com/mcdev12/kickoff/go/internal/models"

// EntityStats counts reconciliation outcomes for one entity kind. Skipped
// entities were never attempted.
type EntityStats struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Errors  int `json:"errors"`
	Skipped int `json:"skipped"`
}

// Attempted is the number of reconciliations that reached the store or failed
func (s EntityStats) Attempted() int {
	return s.Created + s.Updated + s.Errors
}

func (s EntityStats) add(outcome models.SyncOutcome) EntityStats {
	switch outcome {
	case models.SyncOutcomeCreated:
		s.Created++
	case models.SyncOutcomeUpdated:
		s.Updated++
	case models.SyncOutcomeSkipped:
		s.Skipped++
	default:
		s.Errors++
	}
	return s
}

func (s EntityStats) plus(o EntityStats) EntityStats {
	return EntityStats{
		Created: s.Created + o.Created,
		Updated: s.Updated + o.Updated,
		Errors:  s.Errors + o.Errors,
		Skipped: s.Skipped + o.Skipped,
	}
}

// Stats holds the per-kind counters of an onboarding. It is a value: Add and
// Merge return a new Stats and leave the receiver untouched.
type Stats struct {
	League EntityStats `json:"league"`
	Team   EntityStats `json:"team"`
	Venue  EntityStats `json:"venue"`
}

// Add returns s with one outcome of kind counted
func (s Stats) Add(kind models.EntityKind, outcome models.SyncOutcome) Stats {
	switch kind {
	case models.EntityKindLeague:
		s.League = s.League.add(outcome)
	case models.EntityKindTeam:
		s.Team = s.Team.add(outcome)
	case models.EntityKindVenue:
		s.Venue = s.Venue.add(outcome)
	}
	return s
}

// Merge returns the sum of s and o
func (s Stats) Merge(o Stats) Stats {
	return Stats{
		League: s.League.plus(o.League),
		Team:   s.Team.plus(o.Team),
		Venue:  s.Venue.plus(o.Venue),
	}
}

// Kind returns the counters for one kind
func (s Stats) Kind(kind models.EntityKind) EntityStats {
	switch kind {
	case models.EntityKindLeague:
		return s.League
	case models.EntityKindTeam:
		return s.Team
	case models.EntityKindVenue:
		return s.Venue
	}
	return EntityStats{}
}
