package optimizer

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/pggpgg/kobayashi-stfc/abilities"
	"github.com/pggpgg/kobayashi-stfc/montecarlo"
	"github.com/pggpgg/kobayashi-stfc/record"
)

// Result is one candidate's scoring outcome. Err is set for a
// ScenarioInfeasible or CompileFailure crew (spec §7); the candidate is
// skipped from ranking, not the whole run.
type Result struct {
	Candidate Candidate
	Stats     record.AggregateStats
	Warnings  []abilities.CompileWarning
	Err       error
}

// RunOptions bundles everything one optimize call needs (spec §9's
// "replace free-form named parameters" note).
type RunOptions struct {
	Enumerate EnumerateOptions

	Ship    record.AttackerStats
	Hostile record.DefenderStats
	Profile record.PlayerProfile

	CompileOptions     abilities.CompileOptions
	FightsPerCandidate uint64
	BaseSeed           uint64

	RankMetric RankMetric
	TopK       int
	Workers    int
}

// State is one of the job lifecycle states spec §4.4 names.
type State string

const (
	StateQueued    State = "queued"
	StateRunning   State = "running"
	StateDone      State = "done"
	StateError     State = "error"
	StateCancelled State = "cancelled"
)

// Status is the payload an out-of-band status endpoint would serve (spec
// §4.4's optimize_status -> {state, progress, partial_or_final_result}).
type Status struct {
	ID     uuid.UUID
	State  State
	Done   int64
	Total  int64
	Ranked []RankedEntry
	Err    error
}

// Job is a long-running optimize call exposed as an async job (spec §4.4).
// Cancellation state lands in StateCancelled rather than a separate
// "Done-partial" state: spec §4.4 names exactly {Queued, Running, Done,
// Error, Cancelled} as the job's states, while spec §7's error taxonomy
// describes the same event as "job ends in Done-partial" — read together,
// Cancelled *is* this job's Done-partial: the ranked list it carries is
// whatever was scored before the flag was observed, same as a completed
// run's list would be, just shorter.
type Job struct {
	id   uuid.UUID
	opts RunOptions

	progress  Progress
	cancelled atomic.Bool

	mu     sync.Mutex
	state  State
	ranked []RankedEntry
	err    error
}

// NewJob creates a job in the Queued state. Call Start to run it.
func NewJob(opts RunOptions) *Job {
	return &Job{id: uuid.New(), opts: opts, state: StateQueued}
}

func (j *Job) ID() uuid.UUID { return j.id }

// Start launches the job's worker pool in the background (spec §4.4's
// optimize_start(...) -> job_id).
func (j *Job) Start(ctx context.Context) {
	j.setState(StateRunning)
	go j.run(ctx)
}

// Run executes the job synchronously and returns its ranked list (spec
// §4.4's optimize(scenario, options) -> RankedList).
func Run(ctx context.Context, opts RunOptions) []RankedEntry {
	job := NewJob(opts)
	job.setState(StateRunning)
	job.run(ctx)
	return job.Result()
}

// Cancel sets the cooperative cancellation flag. The candidate feeder
// observes it before handing out each next candidate; workers finish the
// candidates already queued and exit cleanly. The ranked list the job ends
// with is whatever was scored up to that point (spec §4.4, §5).
func (j *Job) Cancel() {
	j.cancelled.Store(true)
}

// Status returns a snapshot of progress and state (spec §4.4's
// optimize_status).
func (j *Job) Status() Status {
	j.mu.Lock()
	defer j.mu.Unlock()
	return Status{
		ID:     j.id,
		State:  j.state,
		Done:   j.progress.Done.Load(),
		Total:  j.progress.Total.Load(),
		Ranked: j.ranked,
		Err:    j.err,
	}
}

// Result returns the job's ranked list. Only meaningful once the job has
// reached a terminal state.
func (j *Job) Result() []RankedEntry {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.ranked
}

func (j *Job) setState(s State) {
	j.mu.Lock()
	j.state = s
	j.mu.Unlock()
}

func (j *Job) run(ctx context.Context) {
	if ctx.Err() != nil {
		j.mu.Lock()
		j.state = StateError
		j.err = ctx.Err()
		j.mu.Unlock()
		return
	}

	enum := NewEnumerator(j.opts.Enumerate)
	results := runPool(ctx, enum, j.opts.Workers, &j.cancelled, &j.progress, j.scorer())
	ranked := Rank(results, j.opts.RankMetric, j.opts.TopK)

	j.mu.Lock()
	defer j.mu.Unlock()
	j.ranked = ranked
	if j.cancelled.Load() {
		j.state = StateCancelled
	} else {
		j.state = StateDone
	}
}

// scorer compiles each candidate's crew into a BuffSet and runs the Monte
// Carlo batch against it. A ScenarioInfeasible or CompileFailure crew (spec
// §7) is reported in Result.Err and excluded from ranking, not propagated
// as a run-wide error (spec §7's "does not fail the entire run for one bad
// crew").
func (j *Job) scorer() func(Candidate) Result {
	return func(cand Candidate) Result {
		buf, warnings, err := abilities.Compile(cand.Crew, j.opts.Ship, j.opts.Hostile, j.opts.Profile, j.opts.CompileOptions)
		if err != nil {
			return Result{Candidate: cand, Warnings: warnings, Err: err}
		}

		scenario := montecarlo.Scenario{
			Attacker: j.opts.Ship,
			Defender: j.opts.Hostile,
			Buf:      buf,
		}
		// Workers: 1 — the optimizer's own worker pool already parallelizes
		// across candidates (spec §5's "parallelism is exclusively
		// per-candidate"); fanning out again inside one candidate's Monte
		// Carlo batch would oversubscribe the machine for no benefit.
		stats, err := montecarlo.Run(context.Background(), scenario, j.opts.FightsPerCandidate, j.opts.BaseSeed, montecarlo.RunOptions{Workers: 1})
		if err != nil {
			return Result{Candidate: cand, Warnings: warnings, Err: err}
		}
		return Result{Candidate: cand, Stats: stats, Warnings: warnings}
	}
}
