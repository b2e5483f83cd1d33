package onboarding

import (
	"errors"
	"fmt"

	"github.com/mcdev12/kickoff/go/internal/models"
)

// WarningNoTeams is set on a successful result whose roster was empty
const WarningNoTeams = "No teams found for this league"

// ErrNoUsableData is returned by discovery when the provider offers no league
// worth onboarding
var ErrNoUsableData = errors.New("upstream provider returned no usable data")

// FatalConnectivityError means the store could not be reached. It aborts a
// whole run and is the only error a bulk run returns.
type FatalConnectivityError struct {
	Cause error
}

func (e *FatalConnectivityError) Error() string {
	return fmt.Sprintf("cannot reach persistent store: %v", e.Cause)
}

func (e *FatalConnectivityError) Unwrap() error {
	return e.Cause
}

// LeagueSyncError aborts the onboarding of one league
type LeagueSyncError struct {
	LeagueExternalID string
	Cause            error
}

func (e *LeagueSyncError) Error() string {
	return fmt.Sprintf("league %s: %v", e.LeagueExternalID, e.Cause)
}

func (e *LeagueSyncError) Unwrap() error {
	return e.Cause
}

// EntitySyncError records a failed team or venue reconciliation. It is
// counted and reported, never propagated.
type EntitySyncError struct {
	Kind       models.EntityKind
	ExternalID string
	Cause      error
}

func (e *EntitySyncError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Kind, e.ExternalID, e.Cause)
}

func (e *EntitySyncError) Unwrap() error {
	return e.Cause
}

// IsFatal reports whether err should stop the process with a non-zero exit
func IsFatal(err error) bool {
	var fatal *FatalConnectivityError
	return errors.As(err, &fatal) || errors.Is(err, ErrNoUsableData)
}
