package models

import "errors"

// SyncOutcome is the result of reconciling one entity
type SyncOutcome string

const (
	SyncOutcomeCreated SyncOutcome = "created"
	SyncOutcomeUpdated SyncOutcome = "updated"
	SyncOutcomeSkipped SyncOutcome = "skipped"
	SyncOutcomeError   SyncOutcome = "error"
)

// EntityKind names the three reconciled entity kinds
type EntityKind string

const (
	EntityKindLeague EntityKind = "league"
	EntityKindTeam   EntityKind = "team"
	EntityKindVenue  EntityKind = "venue"
)

// ErrMissingExternalID rejects provider records that cannot be keyed
var ErrMissingExternalID = errors.New("missing external id")
