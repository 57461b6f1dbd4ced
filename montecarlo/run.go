package montecarlo

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/pggpgg/kobayashi-stfc/abilities"
	"github.com/pggpgg/kobayashi-stfc/combat"
	"github.com/pggpgg/kobayashi-stfc/record"
)

// Scenario bundles one fight's shared, read-only inputs. The compiled
// BuffSet is computed once by the caller and shared by reference across
// every iteration Run fans out — spec §4.3's "scenario cache".
type Scenario struct {
	Attacker record.AttackerStats
	Defender record.DefenderStats
	Buf      *abilities.BuffSet
	Options  combat.SimulateOptions
}

// RunOptions configures how Run partitions work across goroutines.
type RunOptions struct {
	// Workers caps parallelism. <= 0 uses runtime.GOMAXPROCS(0).
	Workers int
}

func (o RunOptions) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// accumulator is a streaming reduction over fight outcomes (spec §4.3): no
// per-fight outcome is retained, only running counts and sums.
type accumulator struct {
	n       uint64
	wins    uint64
	stalls  uint64
	losses  uint64
	r1Kills uint64
	invalid uint64

	hullFracSumWinning float64
	damageRound1Sum    float64
	roundsSum          uint64
}

func (a *accumulator) observe(out record.FightOutcome) {
	a.n++
	if out.Invalid {
		a.invalid++
		return
	}
	a.roundsSum += uint64(out.Rounds)
	switch {
	case out.Win:
		a.wins++
		a.hullFracSumWinning += out.AttackerHullFrac
		if out.Rounds == 1 {
			a.r1Kills++
		}
	case out.Stall:
		a.stalls++
	default:
		a.losses++
	}
	a.damageRound1Sum += out.DamageDealtRound1
}

// merge folds another block's accumulator into this one. Integer counts add
// exactly; float sums depend on how they are grouped, so Run always merges
// the same fixed blocks in the same order (spec §8's reduction
// commutativity property).
func (a *accumulator) merge(b accumulator) {
	a.n += b.n
	a.wins += b.wins
	a.stalls += b.stalls
	a.losses += b.losses
	a.r1Kills += b.r1Kills
	a.invalid += b.invalid
	a.hullFracSumWinning += b.hullFracSumWinning
	a.damageRound1Sum += b.damageRound1Sum
	a.roundsSum += b.roundsSum
}

func (a accumulator) finish() record.AggregateStats {
	n := a.n
	lo, hi := wilson95(a.wins, n)
	stats := record.AggregateStats{
		N:             n,
		InvalidFights: a.invalid,
		WinRate95CI:   [2]float64{lo, hi},
	}
	if n == 0 {
		return stats
	}
	nf := float64(n)
	stats.WinRate = float64(a.wins) / nf
	stats.StallRate = float64(a.stalls) / nf
	stats.LossRate = float64(a.losses) / nf
	stats.R1KillRate = float64(a.r1Kills) / nf
	stats.AvgDamageRound1 = a.damageRound1Sum / nf
	if a.wins > 0 {
		stats.AvgHullFracWhenWining = a.hullFracSumWinning / float64(a.wins)
	}
	if valid := n - a.invalid; valid > 0 {
		stats.AvgRounds = float64(a.roundsSum) / float64(valid)
	}
	return stats
}

// Run executes n fights for one scenario and reduces them into
// AggregateStats (spec §4.3). Fight i derives its seed from
// combat.DeriveSeed(baseSeed, i). Fights are reduced in fixed blocks of
// reduceBlock whose boundaries depend only on n, workers take whole
// blocks, and block partials are merged in block order, so the result is
// identical regardless of worker count (spec §8's reduction-commutativity
// and seed-independence properties).
func Run(ctx context.Context, scenario Scenario, n uint64, baseSeed uint64, opts RunOptions) (record.AggregateStats, error) {
	if n == 0 {
		return accumulator{}.finish(), nil
	}

	const reduceBlock = 64
	blocks := (n + reduceBlock - 1) / reduceBlock
	workers := opts.workers()
	if uint64(workers) > blocks {
		workers = int(blocks)
	}

	chunk := blocks / uint64(workers)
	remainder := blocks % uint64(workers)

	partials := make([]accumulator, blocks)
	g, gctx := errgroup.WithContext(ctx)

	var next uint64
	for w := 0; w < workers; w++ {
		start := next
		size := chunk
		if uint64(w) < remainder {
			size++
		}
		end := start + size
		next = end

		g.Go(func() error {
			for i := start * reduceBlock; i < min(end*reduceBlock, n); i++ {
				if gctx.Err() != nil {
					break
				}
				seed := combat.DeriveSeed(baseSeed, i)
				out := combat.Simulate(scenario.Attacker, scenario.Defender, scenario.Buf, seed, scenario.Options)
				partials[i/reduceBlock].observe(out)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return record.AggregateStats{}, err
	}

	var total accumulator
	for _, p := range partials {
		total.merge(p)
	}
	return total.finish(), nil
}
