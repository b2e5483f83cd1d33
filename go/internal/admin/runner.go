package admin

import (
	"context"
	"errors"
	"sync"

	"github.com/mcdev12/kickoff/go/internal/leagues"
	"github.com/mcdev12/kickoff/go/internal/onboarding"
	"github.com/mcdev12/kickoff/go/internal/progress"
	"github.com/rs/zerolog/log"
)

// ErrRunInProgress is returned when an onboarding is already running in this
// process
var ErrRunInProgress = errors.New("an onboarding run is already in progress")

// BulkRunner runs a bulk onboarding
type BulkRunner interface {
	Run(ctx context.Context, descs []leagues.LeagueDescriptor, report progress.Func) (*onboarding.RunReport, error)
}

// Source returns the leagues a bulk run should onboard: the seed list, or the
// provider catalog when discover is set
type Source func(ctx context.Context, discover bool) ([]leagues.LeagueDescriptor, error)

// Runner lets at most one onboarding run at a time. The admin API and the
// scheduler both go through it.
type Runner struct {
	bulk     BulkRunner
	single   onboarding.LeagueOnboarder
	source   Source
	progress progress.Func

	mu      sync.Mutex
	running bool
	last    *onboarding.RunReport
}

func NewRunner(bulk BulkRunner, single onboarding.LeagueOnboarder, source Source, report progress.Func) *Runner {
	return &Runner{
		bulk:     bulk,
		single:   single,
		source:   source,
		progress: report,
	}
}

func (r *Runner) acquire() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		return ErrRunInProgress
	}
	r.running = true
	return nil
}

func (r *Runner) release(run *onboarding.RunReport) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.running = false
	if run != nil {
		r.last = run
	}
}

// Running reports whether a run is in progress
func (r *Runner) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

// Last returns the report of the most recent finished bulk run, or nil
func (r *Runner) Last() *onboarding.RunReport {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

// Leagues resolves the input of a bulk run
func (r *Runner) Leagues(ctx context.Context, discover bool) ([]leagues.LeagueDescriptor, error) {
	return r.source(ctx, discover)
}

// OnboardLeague onboards one league and waits for it
func (r *Runner) OnboardLeague(ctx context.Context, desc leagues.LeagueDescriptor) (onboarding.Result, error) {
	if err := r.acquire(); err != nil {
		return onboarding.Result{}, err
	}
	defer r.release(nil)

	return r.single.Onboard(ctx, desc, r.progress), nil
}

// RunBulk onboards descs and waits for the run to finish
func (r *Runner) RunBulk(ctx context.Context, descs []leagues.LeagueDescriptor) (*onboarding.RunReport, error) {
	if err := r.acquire(); err != nil {
		return nil, err
	}

	run, err := r.bulk.Run(ctx, descs, r.progress)
	r.release(run)
	return run, err
}

// StartBulk starts a bulk run in the background. It fails right away when
// another run holds the runner. done, when set, receives the outcome.
func (r *Runner) StartBulk(ctx context.Context, descs []leagues.LeagueDescriptor, done func(*onboarding.RunReport, error)) error {
	if err := r.acquire(); err != nil {
		return err
	}

	go func() {
		run, err := r.bulk.Run(ctx, descs, r.progress)
		r.release(run)
		if err != nil {
			log.Error().Err(err).Msg("background bulk onboarding failed")
		}
		if done != nil {
			done(run, err)
		}
	}()
	return nil
}
