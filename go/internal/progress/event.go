// Package progress carries live onboarding status to the CLI, websocket
// subscribers and NATS.
package progress

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Step names the phase of a league onboarding
type Step string

const (
	StepLeague     Step = "league"
	StepTeams      Step = "teams"
	StepProcessing Step = "processing"
)

// Event is one progress notification. Current and Total are only set for
// StepProcessing.
type Event struct {
	RunID            string    `json:"run_id,omitempty"`
	LeagueExternalID string    `json:"league_external_id"`
	Step             Step      `json:"step"`
	Message          string    `json:"message"`
	Current          int       `json:"current,omitempty"`
	Total            int       `json:"total,omitempty"`
	Time             time.Time `json:"time"`
}

// Func receives progress events. A nil Func is valid and drops events.
type Func func(Event)

// Emit calls f when it is set
func (f Func) Emit(e Event) {
	if f != nil {
		f(e)
	}
}

// Multi fans an event out to every non-nil sink in order
func Multi(sinks ...Func) Func {
	var kept []Func
	for _, s := range sinks {
		if s != nil {
			kept = append(kept, s)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	return func(e Event) {
		for _, s := range kept {
			s(e)
		}
	}
}

// WithRun stamps every event with runID before handing it to f
func WithRun(f Func, runID string) Func {
	if f == nil {
		return nil
	}
	return func(e Event) {
		e.RunID = runID
		f(e)
	}
}

// Log writes events to the global zerolog logger at the given level
func Log(level zerolog.Level) Func {
	return func(e Event) {
		ev := log.WithLevel(level).
			Str("step", string(e.Step)).
			Str("league_external_id", e.LeagueExternalID)
		if e.RunID != "" {
			ev = ev.Str("run_id", e.RunID)
		}
		if e.Total > 0 {
			ev = ev.Int("current", e.Current).Int("total", e.Total)
		}
		ev.Msg(e.Message)
	}
}
